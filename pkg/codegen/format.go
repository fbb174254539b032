package codegen

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/wireframe/pkg/schema"
)

func formatDeclared(widgetType string, p schema.PropSpec, value any) string {
	switch p.Kind {
	case schema.KindEvent:
		if s, ok := value.(string); ok {
			// Names that cannot be a Python function get no handler.
			if !schema.IsIdentifier(s) {
				return "None"
			}
			return s
		}
	case schema.KindEnum:
		if s, ok := value.(string); ok {
			key, err := schema.EnumKeyFor(widgetType, p.Name)
			if err == nil {
				if expr, ok := schema.ResolveEnum(key, s); ok {
					return expr
				}
			}
		}
	}
	return formatValue(value, p.Kind == schema.KindFloat)
}

// formatValue renders a Python literal. asFloat forces a decimal point on
// integral numbers.
func formatValue(value any, asFloat bool) string {
	switch v := value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return quote(v)
	case []any:
		items := make([]string, len(v))
		for i, e := range v {
			items[i] = formatValue(e, false)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]string, len(keys))
		for i, k := range keys {
			items[i] = quote(k) + ": " + formatValue(v[k], false)
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	if f, ok := schema.AsFloat(value); ok {
		return formatNumber(f, asFloat)
	}
	return quote(fmt.Sprint(value))
}

func formatNumber(f float64, asFloat bool) string {
	switch {
	case math.IsNaN(f):
		return `float("nan")`
	case math.IsInf(f, 1):
		return `float("inf")`
	case math.IsInf(f, -1):
		return `float("-inf")`
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if asFloat && !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// quote renders s as a double-quoted Python string literal.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			switch {
			case unicode.IsPrint(r):
				sb.WriteRune(r)
			case r <= 0xff:
				fmt.Fprintf(&sb, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&sb, `\u%04x`, r)
			default:
				fmt.Fprintf(&sb, `\U%08x`, r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, aNum := schema.AsFloat(a)
	fb, bNum := schema.AsFloat(b)
	if aNum || bNum {
		return aNum && bNum && fa == fb
	}
	return reflect.DeepEqual(a, b)
}
