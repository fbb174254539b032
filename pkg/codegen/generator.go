package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/schema"
	"github.com/aretw0/wireframe/pkg/tree"
)

// Generate renders the full program for root.
func (g *Generator) Generate(root *domain.WidgetNode) (string, error) {
	if root == nil {
		return "", fmt.Errorf("codegen: tree has no root")
	}
	body, err := g.render(root, 2)
	if err != nil {
		return "", err
	}
	handlers, err := Handlers(root)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("import flet as ft\n\n\n")
	for _, name := range handlers {
		fmt.Fprintf(&sb, "def %s(e: ft.ControlEvent):\n%spass\n\n\n", name, g.indent)
	}
	sb.WriteString("def main(page: ft.Page):\n")
	fmt.Fprintf(&sb, "%spage.title = %s\n", g.indent, quote(g.title))
	fmt.Fprintf(&sb, "%spage.theme_mode = %s\n\n", g.indent, themeMode(g.theme))
	fmt.Fprintf(&sb, "%spage.add(\n", g.indent)
	fmt.Fprintf(&sb, "%s%s\n", g.pad(2), body)
	fmt.Fprintf(&sb, "%s)\n\n\n", g.indent)
	sb.WriteString("ft.app(target=main)\n")
	return sb.String(), nil
}

// Handlers returns the sorted, deduplicated event handler names referenced by
// event-typed properties anywhere in the tree. Values that are not valid
// identifiers are skipped.
func Handlers(root *domain.WidgetNode) ([]string, error) {
	set := make(map[string]struct{})
	var err error
	tree.Walk(root, func(n *domain.WidgetNode) bool {
		spec, lookupErr := schema.Lookup(n.Type)
		if lookupErr != nil {
			err = fmt.Errorf("codegen: node %q: %w", n.ID, lookupErr)
			return false
		}
		for _, p := range spec.Props {
			if p.Kind != schema.KindEvent {
				continue
			}
			if name, ok := n.Props[p.Name].(string); ok && schema.IsIdentifier(name) {
				set[name] = struct{}{}
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Expression renders the constructor expression of a single subtree at the
// outermost indentation level.
func (g *Generator) Expression(n *domain.WidgetNode) (string, error) {
	return g.render(n, 0)
}

func (g *Generator) pad(level int) string {
	return strings.Repeat(g.indent, level)
}

// render returns the expression for n. The first line carries no indentation;
// continuation lines are indented relative to level.
func (g *Generator) render(n *domain.WidgetNode, level int) (string, error) {
	spec, err := schema.Lookup(n.Type)
	if err != nil {
		return "", fmt.Errorf("codegen: node %q: %w", n.ID, err)
	}

	args := g.props(n, spec)

	groups := make(map[string][]*domain.WidgetNode, len(spec.Slots))
	for _, c := range n.Children {
		slot := c.Slot
		if slot == "" && len(spec.Slots) == 1 {
			slot = spec.Slots[0].Name
		}
		groups[slot] = append(groups[slot], c)
	}
	for _, s := range spec.Slots {
		children := groups[s.Name]
		if len(children) == 0 {
			continue
		}
		if s.Max == 1 {
			expr, err := g.render(children[0], level+1)
			if err != nil {
				return "", err
			}
			args = append(args, s.Name+"="+expr)
			continue
		}
		var sb strings.Builder
		sb.WriteString(s.Name + "=[\n")
		for _, c := range children {
			expr, err := g.render(c, level+2)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "%s%s,\n", g.pad(level+2), expr)
		}
		sb.WriteString(g.pad(level+1) + "]")
		args = append(args, sb.String())
	}

	if len(args) == 0 {
		return "ft." + n.Type + "()", nil
	}
	var sb strings.Builder
	sb.WriteString("ft." + n.Type + "(\n")
	for _, a := range args {
		fmt.Fprintf(&sb, "%s%s,\n", g.pad(level+1), a)
	}
	sb.WriteString(g.pad(level) + ")")
	return sb.String(), nil
}

// props renders name=value pairs, pruning values equal to the registry default.
func (g *Generator) props(n *domain.WidgetNode, spec *schema.WidgetSpec) []string {
	var args []string
	for _, p := range spec.Props {
		value, ok := n.Props[p.Name]
		if !ok || equalValues(value, p.Default) {
			continue
		}
		args = append(args, p.Name+"="+formatDeclared(n.Type, p, value))
	}

	var extra []string
	for k := range n.Props {
		if _, declared := spec.Prop(k); !declared {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		args = append(args, k+"="+formatValue(n.Props[k], false))
	}
	return args
}

func themeMode(mode string) string {
	switch mode {
	case domain.ThemeDark:
		return "ft.ThemeMode.DARK"
	case "system":
		return "ft.ThemeMode.SYSTEM"
	default:
		return "ft.ThemeMode.LIGHT"
	}
}
