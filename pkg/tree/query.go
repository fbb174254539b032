package tree

import "github.com/aretw0/wireframe/pkg/domain"

// Walk visits the subtree rooted at root depth-first in pre-order.
// Returning false from fn stops the walk; Walk then returns false.
func Walk(root *domain.WidgetNode, fn func(*domain.WidgetNode) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, c := range root.Children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// FindNode returns the node with the given id, or nil.
func FindNode(root *domain.WidgetNode, id string) *domain.WidgetNode {
	var found *domain.WidgetNode
	Walk(root, func(n *domain.WidgetNode) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindParent returns the node whose children contain id, or nil.
func FindParent(root *domain.WidgetNode, id string) *domain.WidgetNode {
	var found *domain.WidgetNode
	Walk(root, func(n *domain.WidgetNode) bool {
		if IndexOf(n, id) >= 0 {
			found = n
			return false
		}
		return true
	})
	return found
}

// IndexOf returns the position of id among parent's children, or -1.
func IndexOf(parent *domain.WidgetNode, id string) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.Children {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is root or one of its descendants.
func Contains(root *domain.WidgetNode, id string) bool {
	return FindNode(root, id) != nil
}

// IDs returns every id of the subtree in pre-order.
func IDs(root *domain.WidgetNode) []string {
	var ids []string
	Walk(root, func(n *domain.WidgetNode) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}
