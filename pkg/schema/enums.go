package schema

// EnumAliases maps (enum key, domain value) to the Flet constant expression
// emitted by the code generator. Expressions are never evaluated.
var EnumAliases = map[string]map[string]string{
	"weight": {
		"normal": "ft.FontWeight.NORMAL",
		"bold":   "ft.FontWeight.BOLD",
		"w100":   "ft.FontWeight.W_100",
		"w200":   "ft.FontWeight.W_200",
		"w300":   "ft.FontWeight.W_300",
		"w400":   "ft.FontWeight.W_400",
		"w500":   "ft.FontWeight.W_500",
		"w600":   "ft.FontWeight.W_600",
		"w700":   "ft.FontWeight.W_700",
		"w800":   "ft.FontWeight.W_800",
		"w900":   "ft.FontWeight.W_900",
	},
	"text_align": {
		"left":    "ft.TextAlign.LEFT",
		"center":  "ft.TextAlign.CENTER",
		"right":   "ft.TextAlign.RIGHT",
		"justify": "ft.TextAlign.JUSTIFY",
	},
	"container_alignment": {
		"center":       "ft.alignment.center",
		"topLeft":      "ft.alignment.top_left",
		"topCenter":    "ft.alignment.top_center",
		"topRight":     "ft.alignment.top_right",
		"centerLeft":   "ft.alignment.center_left",
		"centerRight":  "ft.alignment.center_right",
		"bottomLeft":   "ft.alignment.bottom_left",
		"bottomCenter": "ft.alignment.bottom_center",
		"bottomRight":  "ft.alignment.bottom_right",
	},
	"alignment": {
		"start":        "ft.MainAxisAlignment.START",
		"center":       "ft.MainAxisAlignment.CENTER",
		"end":          "ft.MainAxisAlignment.END",
		"spaceBetween": "ft.MainAxisAlignment.SPACE_BETWEEN",
		"spaceAround":  "ft.MainAxisAlignment.SPACE_AROUND",
		"spaceEvenly":  "ft.MainAxisAlignment.SPACE_EVENLY",
	},
	"horizontal_alignment": crossAxis,
	"vertical_alignment":   crossAxis,
}

var crossAxis = map[string]string{
	"start":   "ft.CrossAxisAlignment.START",
	"center":  "ft.CrossAxisAlignment.CENTER",
	"end":     "ft.CrossAxisAlignment.END",
	"stretch": "ft.CrossAxisAlignment.STRETCH",
}

// ResolveEnum returns the constant expression for a domain enum value.
func ResolveEnum(key, value string) (string, bool) {
	values, ok := EnumAliases[key]
	if !ok {
		return "", false
	}
	expr, ok := values[value]
	return expr, ok
}
