package domain

import (
	"reflect"
	"sort"
)

// ChangeSet represents the changes between two project snapshots.
// It is serialized to JSON for partial updates on connected clients.
type ChangeSet struct {
	// Name is set when the project was renamed.
	Name *string `json:"name,omitempty"`

	// Selection is set when the selected node changed. An empty string means deselected.
	Selection *string `json:"selection,omitempty"`

	Theme *string `json:"theme,omitempty"`

	Added    []string `json:"added,omitempty"`
	Removed  []string `json:"removed,omitempty"`
	Modified []string `json:"modified,omitempty"`
}

// Empty reports whether the change set carries no changes.
func (c *ChangeSet) Empty() bool {
	return c == nil || (c.Name == nil && c.Selection == nil && c.Theme == nil &&
		len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0)
}

// Diff calculates the difference between oldProject and newProject.
// If oldProject is nil, every node of newProject is reported as added.
// It returns nil when nothing changed.
func Diff(oldProject, newProject *Project) *ChangeSet {
	if newProject == nil {
		return nil
	}
	cs := &ChangeSet{}

	var oldNodes map[string]*WidgetNode
	if oldProject == nil {
		cs.Name = &newProject.Name
		cs.Selection = &newProject.SelectedNodeID
		cs.Theme = &newProject.Theme
	} else {
		if oldProject.Name != newProject.Name {
			cs.Name = &newProject.Name
		}
		if oldProject.SelectedNodeID != newProject.SelectedNodeID {
			cs.Selection = &newProject.SelectedNodeID
		}
		if oldProject.Theme != newProject.Theme {
			cs.Theme = &newProject.Theme
		}
		oldNodes = index(oldProject.Tree)
	}
	newNodes := index(newProject.Tree)

	for id, n := range newNodes {
		prev, ok := oldNodes[id]
		switch {
		case !ok:
			cs.Added = append(cs.Added, id)
		case !sameNode(prev, n):
			cs.Modified = append(cs.Modified, id)
		}
	}
	for id := range oldNodes {
		if _, ok := newNodes[id]; !ok {
			cs.Removed = append(cs.Removed, id)
		}
	}
	sort.Strings(cs.Added)
	sort.Strings(cs.Removed)
	sort.Strings(cs.Modified)

	if cs.Empty() {
		return nil
	}
	return cs
}

func index(root *WidgetNode) map[string]*WidgetNode {
	out := make(map[string]*WidgetNode)
	var visit func(n *WidgetNode)
	visit = func(n *WidgetNode) {
		if n == nil {
			return
		}
		out[n.ID] = n
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(root)
	return out
}

// sameNode compares the node's own fields and the ids of its children, not the subtrees.
func sameNode(a, b *WidgetNode) bool {
	if a.Type != b.Type || a.ParentID != b.ParentID || a.Order != b.Order || a.Slot != b.Slot {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if a.Children[i].ID != b.Children[i].ID {
			return false
		}
	}
	if len(a.Props) == 0 && len(b.Props) == 0 {
		return true
	}
	return reflect.DeepEqual(a.Props, b.Props)
}
