package schema

import (
	"fmt"
	"regexp"
)

// Kind is the value kind of a declared property.
type Kind string

const (
	KindString  Kind = "str"
	KindFloat   Kind = "float"
	KindBool    Kind = "bool"
	KindEnum    Kind = "enum"
	KindColor   Kind = "color"
	KindPadding Kind = "padding"
	KindEvent   Kind = "event"
)

var (
	hexColor   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	namedColor = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
	identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	pyReserved = map[string]bool{
		"False": true, "None": true, "True": true, "and": true, "as": true, "assert": true,
		"async": true, "await": true, "break": true, "class": true, "continue": true,
		"def": true, "del": true, "elif": true, "else": true, "except": true, "finally": true,
		"for": true, "from": true, "global": true, "if": true, "import": true, "in": true,
		"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true, "pass": true,
		"raise": true, "return": true, "try": true, "while": true, "with": true, "yield": true,
	}
)

// Check reports whether value conforms to the kind. Nil is accepted by every
// kind since defaults may be null.
func (k Kind) Check(value any) error {
	if value == nil {
		return nil
	}
	switch k {
	case KindString, KindEnum:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case KindFloat:
		if _, ok := AsFloat(value); !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
	case KindBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
	case KindColor:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected color string, got %T", value)
		}
		if !hexColor.MatchString(s) && !namedColor.MatchString(s) {
			return fmt.Errorf("malformed color %q", s)
		}
	case KindPadding:
		f, ok := AsFloat(value)
		if !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
		if f < 0 {
			return fmt.Errorf("padding must not be negative")
		}
	case KindEvent:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected handler name, got %T", value)
		}
		if !IsIdentifier(s) {
			return fmt.Errorf("%q is not a valid handler name", s)
		}
	default:
		return fmt.Errorf("unsupported kind: %s", k)
	}
	return nil
}

// IsIdentifier reports whether s can name a handler function in generated code.
func IsIdentifier(s string) bool {
	return identifier.MatchString(s) && !pyReserved[s]
}

// AsFloat converts any Go numeric value to float64.
func AsFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
