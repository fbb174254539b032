// Package schema is the static catalog of widget types.
//
// Each entry declares the properties a widget understands (name, value kind,
// default and enum options) and the child slots it exposes. The catalog is an
// immutable package-level table; lookups never mutate it and callers receive
// copies.
//
// Basic usage:
//
//	defaults, err := schema.DefaultsFor("Text")
//	if errors.Is(err, schema.ErrUnknownWidgetType) {
//	    // Handle unknown type
//	}
//
//	slot, _ := schema.DefaultSlot("Column") // "controls"
//
// Enum-typed properties carry domain values such as "spaceBetween". The
// EnumAliases table maps them to the constant expressions of the target
// framework:
//
//	expr, ok := schema.ResolveEnum("alignment", "spaceBetween")
//	// expr == "ft.MainAxisAlignment.SPACE_BETWEEN"
package schema
