package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownWidgetType is matched by every registry lookup miss.
var ErrUnknownWidgetType = errors.New("unknown widget type")

// UnknownWidgetTypeError reports a type name absent from the registry.
type UnknownWidgetTypeError struct {
	Type string
}

func (e *UnknownWidgetTypeError) Error() string {
	return fmt.Sprintf("unknown widget type %q", e.Type)
}

// Is allows errors.Is(err, ErrUnknownWidgetType).
func (e *UnknownWidgetTypeError) Is(target error) bool {
	return target == ErrUnknownWidgetType
}

// ValueError represents a property value that does not conform to its kind.
type ValueError struct {
	Key    string // Property name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed the check
}

func (e *ValueError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("property %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("property %q: %s (got %T)", e.Key, e.Reason, e.Value)
}
