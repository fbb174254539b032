package wireframe

import "errors"

var (
	// ErrNoSelection is returned by commands that act on the selected node
	// when nothing is selected.
	ErrNoSelection = errors.New("no node selected")

	// ErrNodeNotFound is returned when a command names a node that is not in
	// the tree.
	ErrNodeNotFound = errors.New("node not found")

	// ErrRootImmutable is returned when a command would detach the root.
	ErrRootImmutable = errors.New("the root node cannot be deleted, moved or wrapped")

	// ErrOperationFailed is returned when a structural operation reports
	// failure. The project and its history are left unchanged.
	ErrOperationFailed = errors.New("structural operation failed")

	// ErrNoDropTarget is returned when a drop lands outside every registered box.
	ErrNoDropTarget = errors.New("no drop target at point")

	// ErrNoStore is returned by Save and Load when the editor has no store.
	ErrNoStore = errors.New("no project store configured")

	// ErrUnknownCommand is returned by Apply for an unrecognised op.
	ErrUnknownCommand = errors.New("unknown command")
)
