/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing widget trees.

It allows developers to define screens using a type-safe, fluent builder pattern instead of
hand-writing project documents. This is particularly useful for templates, unit testing, and
leveraging IDE autocompletion/type-checking.

Example usage:

	b := dsl.New("Login")

	b.Root("Column").Prop("alignment", "center").
		Child("Text").Prop("value", "Welcome").Up().
		Child("TextField").Prop("label", "Username").Up().
		Child("ElevatedButton").Prop("text", "Login").On("click", "on_login")

	project, err := b.Build()
	// ... pass project to wireframe.New(project)
*/
package dsl
