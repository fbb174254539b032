package domain

// WidgetNode is a node of the widget tree.
// A node exclusively owns its Children; ParentID is a lookup aid only.
type WidgetNode struct {
	// ID is unique across the tree and never reused within a process.
	ID string

	// Type is the registry key that determines legal props and child slots.
	Type string

	// Props holds the customised property values. Absent keys fall back to the
	// registry default at read time.
	Props map[string]any

	// Children is the ordered sequence of owned child nodes.
	Children []*WidgetNode

	// ParentID is the ID of the owning node, empty for the root.
	ParentID string

	// Order caches the index of the node in its parent's Children.
	Order int

	// Slot names the parent slot this node occupies. Empty is only legal when the
	// parent declares at most one slot.
	Slot string
}

// NewNode creates a detached node with a copy of the given props.
func NewNode(id, widgetType string, props map[string]any) *WidgetNode {
	n := &WidgetNode{
		ID:    id,
		Type:  widgetType,
		Props: make(map[string]any, len(props)),
	}
	for k, v := range props {
		n.Props[k] = v
	}
	return n
}

// Prop returns the customised value of a property and whether it is set.
func (n *WidgetNode) Prop(name string) (any, bool) {
	v, ok := n.Props[name]
	return v, ok
}

// SetProp sets a property value, allocating the map if needed.
func (n *WidgetNode) SetProp(name string, value any) {
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[name] = value
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *WidgetNode) Clone() *WidgetNode {
	if n == nil {
		return nil
	}
	c := &WidgetNode{
		ID:       n.ID,
		Type:     n.Type,
		ParentID: n.ParentID,
		Order:    n.Order,
		Slot:     n.Slot,
	}
	if n.Props != nil {
		c.Props = CopyProps(n.Props)
	}
	if n.Children != nil {
		c.Children = make([]*WidgetNode, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// CopyProps deep-copies a property map, including nested maps and slices.
func CopyProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CopyProps(t)
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = copyValue(e)
		}
		return s
	default:
		return v
	}
}
