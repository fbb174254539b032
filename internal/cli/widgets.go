package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/wireframe/internal/presentation/tui"
	"github.com/aretw0/wireframe/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Widgets prints the widget catalog as json, yaml or a markdown table.
func (a *App) Widgets(format string) error {
	catalog := schema.Registry()
	var out string
	switch strings.ToLower(format) {
	case FormatJSON:
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return err
		}
		out = string(data) + "\n"
	case FormatYAML:
		data, err := yaml.Marshal(catalog)
		if err != nil {
			return err
		}
		out = string(data)
	case "", FormatMarkdown:
		out = widgetTable(catalog)
		if a.Interactive() {
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			if out, err = render(out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown format %q (want markdown, json or yaml)", format)
	}
	_, err := fmt.Fprint(a.Out, out)
	return err
}

func widgetTable(catalog []*schema.WidgetSpec) string {
	var sb strings.Builder
	sb.WriteString("| Widget | Category | Slots | Properties |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, w := range catalog {
		slots := make([]string, len(w.Slots))
		for i, s := range w.Slots {
			if s.Max == schema.Unbounded {
				slots[i] = s.Name + "[]"
			} else {
				slots[i] = s.Name
			}
		}
		props := make([]string, len(w.Props))
		for i, p := range w.Props {
			props[i] = p.Name
		}
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", w.Type, w.Category,
			dash(strings.Join(slots, ", ")), dash(strings.Join(props, ", ")))
	}
	return sb.String()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
