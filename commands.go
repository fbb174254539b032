package wireframe

import "fmt"

// Command ops accepted by Apply.
const (
	OpAdd      = "add"
	OpSelect   = "select"
	OpDelete   = "delete"
	OpMoveBy   = "move_selected"
	OpWrap     = "wrap"
	OpSet      = "set"
	OpMoveNode = "move_node"
	OpUndo     = "undo"
	OpRedo     = "redo"
)

// Command is a serialisable editor command, as received by the HTTP and MCP
// adapters.
type Command struct {
	Op     string `json:"op" yaml:"op"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Value  any    `json:"value,omitempty" yaml:"value,omitempty"`
	Delta  int    `json:"delta,omitempty" yaml:"delta,omitempty"`
	Parent string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Index  *int   `json:"index,omitempty" yaml:"index,omitempty"`
	Slot   string `json:"slot,omitempty" yaml:"slot,omitempty"`
}

// Result reports what a command produced.
type Result struct {
	// NodeID is the node created by add or wrap.
	NodeID string `json:"node_id,omitempty"`
	// Changed is false for undo or redo with an empty stack.
	Changed bool `json:"changed"`
}

// Apply dispatches cmd to the matching editor method.
// Commands carrying an ID select that node first, so "set" and "delete" can
// target any node.
func (e *Editor) Apply(cmd Command) (Result, error) {
	switch cmd.Op {
	case OpUndo:
		return Result{Changed: e.Undo()}, nil
	case OpRedo:
		return Result{Changed: e.Redo()}, nil
	case OpSelect:
		return Result{Changed: true}, e.Select(cmd.ID)
	case OpMoveNode:
		index := -1
		if cmd.Index != nil {
			index = *cmd.Index
		}
		return Result{Changed: true}, e.MoveNode(cmd.ID, cmd.Parent, index, cmd.Slot)
	}

	if cmd.ID != "" {
		if err := e.Select(cmd.ID); err != nil {
			return Result{}, err
		}
	}

	var (
		id  string
		err error
	)
	switch cmd.Op {
	case OpAdd:
		id, err = e.AddWidget(cmd.Type)
	case OpDelete:
		err = e.DeleteSelected()
	case OpMoveBy:
		err = e.MoveSelected(cmd.Delta)
	case OpWrap:
		id, err = e.WrapSelected(cmd.Type)
	case OpSet:
		err = e.SetProperty(cmd.Name, cmd.Value)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{NodeID: id, Changed: true}, nil
}
