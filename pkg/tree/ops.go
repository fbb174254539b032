package tree

import (
	"fmt"

	"github.com/aretw0/wireframe/pkg/domain"
)

// DefaultWrapperSlot is the slot used by WrapNode when none is given.
const DefaultWrapperSlot = "content"

// InsertChild attaches node to parent at index in the given slot.
// A negative index appends. Arity is not checked.
func InsertChild(parent, node *domain.WidgetNode, index int, slot string) {
	if parent == nil || node == nil {
		panic("tree: InsertChild with nil node")
	}
	if index > len(parent.Children) {
		panic(fmt.Sprintf("tree: insert index %d out of range [0,%d]", index, len(parent.Children)))
	}
	node.ParentID = parent.ID
	node.Slot = slot
	if index < 0 {
		parent.Children = append(parent.Children, node)
	} else {
		parent.Children = append(parent.Children, nil)
		copy(parent.Children[index+1:], parent.Children[index:])
		parent.Children[index] = node
	}
	reindex(parent)
}

// DeleteNode detaches the node with the given id from its parent.
// It returns false when id is the root or cannot be found.
func DeleteNode(root *domain.WidgetNode, id string) bool {
	parent := FindParent(root, id)
	if parent == nil {
		return false
	}
	detach(parent, IndexOf(parent, id))
	return true
}

// MoveNode re-parents the node with the given id under newParentID.
// It returns false when the node, its parent or the target cannot be found,
// or when the target is the node itself or one of its descendants.
func MoveNode(root *domain.WidgetNode, id, newParentID string, index int, slot string) bool {
	node := FindNode(root, id)
	source := FindParent(root, id)
	target := FindNode(root, newParentID)
	if node == nil || source == nil || target == nil {
		return false
	}
	if Contains(node, newParentID) {
		return false
	}

	limit := len(target.Children)
	if target == source {
		limit--
	}
	if index > limit {
		panic(fmt.Sprintf("tree: move index %d out of range [0,%d]", index, limit))
	}

	detach(source, IndexOf(source, id))
	InsertChild(target, node, index, slot)
	return true
}

// ReorderSibling shifts the node by delta positions among its siblings.
// It returns false, leaving the tree unchanged, if the new index is out of bounds.
func ReorderSibling(root *domain.WidgetNode, id string, delta int) bool {
	parent := FindParent(root, id)
	if parent == nil {
		return false
	}
	from := IndexOf(parent, id)
	to := from + delta
	if to < 0 || to >= len(parent.Children) {
		return false
	}
	if from == to {
		return true
	}
	node := parent.Children[from]
	if from < to {
		copy(parent.Children[from:to], parent.Children[from+1:to+1])
	} else {
		copy(parent.Children[to+1:from+1], parent.Children[to:from])
	}
	parent.Children[to] = node
	reindex(parent)
	return true
}

// WrapNode substitutes wrapper for the node in its parent, at the same index
// and slot, and makes the node wrapper's sole child in wrapperSlot.
// An empty wrapperSlot means DefaultWrapperSlot. Any children wrapper had are
// discarded. It returns false for the root or a missing id.
func WrapNode(root *domain.WidgetNode, id string, wrapper *domain.WidgetNode, wrapperSlot string) bool {
	if wrapper == nil {
		panic("tree: WrapNode with nil wrapper")
	}
	parent := FindParent(root, id)
	if parent == nil {
		return false
	}
	if wrapperSlot == "" {
		wrapperSlot = DefaultWrapperSlot
	}
	idx := IndexOf(parent, id)
	node := parent.Children[idx]

	parent.Children[idx] = wrapper
	wrapper.ParentID = parent.ID
	wrapper.Slot = node.Slot

	node.ParentID = wrapper.ID
	node.Slot = wrapperSlot
	wrapper.Children = []*domain.WidgetNode{node}

	reindex(parent)
	reindex(wrapper)
	return true
}

func detach(parent *domain.WidgetNode, idx int) {
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	reindex(parent)
}

func reindex(parent *domain.WidgetNode) {
	for i, c := range parent.Children {
		c.Order = i
	}
}
