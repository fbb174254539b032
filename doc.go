/*
Package wireframe is the editing core of a visual UI builder for Flet.

Users compose a tree of widget nodes, edit their properties, and wireframe
keeps the tree valid against a widget catalog, generates the matching Python
source, persists projects with forward schema migration and records every
edit for undo and redo.

# Architecture

The Editor is a command facade over the packages that do the work:

  - pkg/schema: the widget catalog (properties, defaults, slots, enum aliases).
  - pkg/tree: structural operations (insert, delete, move, reorder, wrap).
  - pkg/validator: schema conformance checks.
  - pkg/codegen: Flet source generation.
  - pkg/document: the persisted document format and its migrations.
  - pkg/history: snapshot-based transactions with undo and redo.
  - pkg/hittest: drop-zone classification for drag and drop.

Storage is pluggable through ports.ProjectStore (file, memory, redis, sqlite
and bolt adapters), optionally decorated by pkg/persistence/middleware.

# Usage

	editor := wireframe.New(domain.NewStarterProject("Login"),
		wireframe.WithStore(file.New("")),
	)

	id, err := editor.AddWidget("ElevatedButton")
	if err != nil {
		log.Fatal(err)
	}
	_ = editor.SetProperty("text", "Sign up")
	_ = editor.SetProperty("on_click", "on_signup")

	code, err := editor.GenerateCode()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(code)

	editor.Undo()
	_ = editor.Save(ctx, "login")

Every command except Select runs as one history transaction. A command that
fails leaves the project and its history untouched.
*/
package wireframe
