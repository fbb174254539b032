// Package tree implements the structural operations on a widget tree.
//
// Operations report "not found" or unmet preconditions with a boolean result
// and leave the tree untouched in that case. Nil arguments and out-of-range
// explicit indexes are programmer errors and panic.
//
// The engine does not consult the widget registry: inserting a child into a
// leaf widget or overfilling a single-child slot is permitted, and detected
// later by the validator.
package tree
