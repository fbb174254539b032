// Package codegen renders a widget tree as a Flet (Python) program.
//
// Output is deterministic: properties follow registry declaration order,
// undeclared properties follow sorted by name, and properties equal to their
// registry default are omitted. Event handler names referenced anywhere in the
// tree get an empty stub defined before the entry point.
//
// Generate does not validate. Callers run the validator first and surface its
// findings separately.
package codegen
