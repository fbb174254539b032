package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/schema"
)

// Overlay contains editor state to highlight on the diagram.
type Overlay struct {
	SelectedNode string
	// Invalid lists nodes reported by the validator.
	Invalid []string
}

// GenerateMermaid produces a Mermaid flowchart of the widget tree.
// Shapes follow the role of each node:
// - Root: ((Circle))
// - Containers: [[Subroutine]]
// - Widgets with an event handler: {{Hexagon}}
// - Default: [Rectangle]
// Edges are labelled with the slot the child occupies.
func GenerateMermaid(root *domain.WidgetNode, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if root == nil {
		return sb.String()
	}

	var walk func(n *domain.WidgetNode, isRoot bool)
	walk = func(n *domain.WidgetNode, isRoot bool) {
		safeID := sanitizeMermaidID(n.ID)

		opener, closer := "[", "]"
		container, err := schema.AcceptsChildren(n.Type)
		switch {
		case isRoot:
			opener, closer = "((", "))"
		case err == nil && container:
			opener, closer = "[[", "]]"
		case hasHandler(n):
			opener, closer = "{{", "}}"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label(n), closer)

		for _, c := range n.Children {
			arrow := "-->"
			if c.Slot != "" {
				arrow = fmt.Sprintf("-- %s -->", c.Slot)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, sanitizeMermaidID(c.ID))
		}
		for _, c := range n.Children {
			walk(c, false)
		}
	}
	walk(root, true)

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef invalid fill:#ffebee,stroke:#c62828,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Invalid {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s invalid;\n", safeID)
			}
		}
		if overlay.SelectedNode != "" {
			fmt.Fprintf(&sb, "    class %s selected;\n", sanitizeMermaidID(overlay.SelectedNode))
		}
	}

	return sb.String()
}

// label is the node type plus the most telling text prop, if any.
func label(n *domain.WidgetNode) string {
	for _, key := range []string{"value", "text", "label"} {
		if s, ok := n.Props[key].(string); ok && s != "" {
			return fmt.Sprintf("%s <br/> %s", n.Type, strings.ReplaceAll(s, "\"", "'"))
		}
	}
	return n.Type
}

func hasHandler(n *domain.WidgetNode) bool {
	for name, v := range n.Props {
		if s, ok := v.(string); ok && s != "" && strings.HasPrefix(name, "on_") {
			return true
		}
	}
	return false
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
