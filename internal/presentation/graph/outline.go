package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/wireframe/pkg/domain"
)

// Outline renders the tree as indented text, one node per line:
//
//	Column (root)
//	├── [controls] Text (text-1a2b3c4d)
//	└── [controls] ElevatedButton (btn-5e6f7a8b) *
//
// The selected node is marked with a trailing asterisk.
func Outline(root *domain.WidgetNode, selected string) string {
	if root == nil {
		return ""
	}
	var sb strings.Builder
	writeLine(&sb, "", root, selected)
	outline(&sb, root, "", selected)
	return sb.String()
}

func outline(sb *strings.Builder, n *domain.WidgetNode, prefix, selected string) {
	for i, c := range n.Children {
		branch, next := "├── ", "│   "
		if i == len(n.Children)-1 {
			branch, next = "└── ", "    "
		}
		slot := ""
		if c.Slot != "" {
			slot = "[" + c.Slot + "] "
		}
		writeLine(sb, prefix+branch+slot, c, selected)
		outline(sb, c, prefix+next, selected)
	}
}

func writeLine(sb *strings.Builder, lead string, n *domain.WidgetNode, selected string) {
	mark := ""
	if n.ID == selected {
		mark = " *"
	}
	fmt.Fprintf(sb, "%s%s (%s)%s\n", lead, n.Type, n.ID, mark)
}
