package tree

import (
	"errors"
	"fmt"

	"github.com/aretw0/wireframe/pkg/domain"
)

// ErrCorruptTree is matched by every error returned from Check.
var ErrCorruptTree = errors.New("corrupt tree")

// InvariantError reports a structural invariant violated at a node.
type InvariantError struct {
	NodeID string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("node %q: %s", e.NodeID, e.Reason)
}

// Is allows errors.Is(err, ErrCorruptTree).
func (e *InvariantError) Is(target error) bool {
	return target == ErrCorruptTree
}

// Relink re-derives ParentID and Order of every descendant from the child
// sequences, which are the source of truth.
func Relink(root *domain.WidgetNode) {
	Walk(root, func(n *domain.WidgetNode) bool {
		for i, c := range n.Children {
			c.ParentID = n.ID
			c.Order = i
		}
		return true
	})
}

// Check returns the first structural invariant violation found in pre-order,
// or nil when the tree is consistent.
func Check(root *domain.WidgetNode) error {
	if root == nil {
		return &InvariantError{Reason: "tree has no root"}
	}
	if root.ParentID != "" {
		return &InvariantError{NodeID: root.ID, Reason: fmt.Sprintf("root has parent id %q", root.ParentID)}
	}
	seen := make(map[string]bool)
	var err error
	Walk(root, func(n *domain.WidgetNode) bool {
		if seen[n.ID] {
			err = &InvariantError{NodeID: n.ID, Reason: "duplicate id"}
			return false
		}
		seen[n.ID] = true
		for i, c := range n.Children {
			switch {
			case c == nil:
				err = &InvariantError{NodeID: n.ID, Reason: fmt.Sprintf("nil child at index %d", i)}
			case c.ParentID != n.ID:
				err = &InvariantError{NodeID: c.ID, Reason: fmt.Sprintf("parent id %q, expected %q", c.ParentID, n.ID)}
			case c.Order != i:
				err = &InvariantError{NodeID: c.ID, Reason: fmt.Sprintf("order %d, expected %d", c.Order, i)}
			}
			if err != nil {
				return false
			}
		}
		return true
	})
	return err
}
