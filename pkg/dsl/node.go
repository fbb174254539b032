package dsl

import (
	"strings"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/tree"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    *domain.WidgetNode
	parent  *NodeBuilder
	builder *Builder
}

// Child appends a widget to the node's default slot and returns its builder.
func (n *NodeBuilder) Child(widgetType string) *NodeBuilder {
	return n.ChildIn(defaultSlot(n.node.Type), widgetType)
}

// ChildIn appends a widget to the named slot and returns its builder.
func (n *NodeBuilder) ChildIn(slot, widgetType string) *NodeBuilder {
	child := domain.NewNode(domain.NewID(idPrefix(widgetType)), widgetType, nil)
	tree.InsertChild(n.node, child, -1, slot)
	return &NodeBuilder{node: child, parent: n, builder: n.builder}
}

// ID replaces the generated id.
func (n *NodeBuilder) ID(id string) *NodeBuilder {
	if id == "" {
		n.builder.fail("dsl: empty id for %s", n.node.Type)
		return n
	}
	n.node.ID = id
	return n
}

// Prop sets a property.
func (n *NodeBuilder) Prop(name string, value any) *NodeBuilder {
	n.node.SetProp(name, value)
	return n
}

// Props sets several properties at once.
func (n *NodeBuilder) Props(props map[string]any) *NodeBuilder {
	for k, v := range props {
		n.node.SetProp(k, v)
	}
	return n
}

// On binds an event, e.g. On("click", "on_login") sets on_click.
func (n *NodeBuilder) On(event, handler string) *NodeBuilder {
	return n.Prop("on_"+strings.TrimPrefix(event, "on_"), handler)
}

// Up returns the parent builder. The root returns itself.
func (n *NodeBuilder) Up() *NodeBuilder {
	if n.parent == nil {
		return n
	}
	return n.parent
}

// Build returns a copy of the underlying node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() *domain.WidgetNode {
	return n.node.Clone()
}

// idPrefix follows the starter project: "btn" for buttons, "field" for text fields.
func idPrefix(widgetType string) string {
	switch {
	case strings.HasSuffix(widgetType, "Button"):
		return "btn"
	case strings.HasSuffix(widgetType, "Field"):
		return "field"
	default:
		return strings.ToLower(widgetType)
	}
}
