package wireframe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/codegen"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/history"
	"github.com/aretw0/wireframe/pkg/hittest"
	"github.com/aretw0/wireframe/pkg/ports"
	"github.com/aretw0/wireframe/pkg/schema"
	"github.com/aretw0/wireframe/pkg/tree"
	"github.com/aretw0/wireframe/pkg/validator"
)

// Editor applies user commands to a project. It is not safe for concurrent use.
type Editor struct {
	history     *history.Manager
	store       ports.ProjectStore
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	capacity    int
	codegenOpts []codegen.Option

	listeners []*history.Listener
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithStore sets the store used by Save and Load.
func WithStore(store ports.ProjectStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithHistoryCapacity bounds the undo stack.
func WithHistoryCapacity(n int) Option {
	return func(e *Editor) {
		e.capacity = n
	}
}

// WithCodegenOptions sets default options for GenerateCode.
func WithCodegenOptions(opts ...codegen.Option) Option {
	return func(e *Editor) {
		e.codegenOpts = append(e.codegenOpts, opts...)
	}
}

// New creates an editor for project. A nil project means a fresh starter project.
func New(project *domain.Project, opts ...Option) *Editor {
	e := &Editor{capacity: history.DefaultCapacity}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if project == nil {
		project = domain.NewStarterProject("")
	}
	e.history = history.New(project,
		history.WithCapacity(e.capacity),
		history.WithLogger(e.logger),
		history.WithLifecycleHooks(e.hooks),
	)
	return e
}

// Project returns the live project. Callers must not mutate it directly.
func (e *Editor) Project() *domain.Project { return e.history.Project() }

// Root returns the root of the live tree.
func (e *Editor) Root() *domain.WidgetNode { return e.history.Project().Tree }

// Selected returns the selected node, or nil.
func (e *Editor) Selected() *domain.WidgetNode {
	p := e.history.Project()
	if p.SelectedNodeID == "" {
		return nil
	}
	return tree.FindNode(p.Tree, p.SelectedNodeID)
}

// Subscribe registers fn for every change, including selection changes.
func (e *Editor) Subscribe(fn history.Listener) (unsubscribe func()) {
	l := &fn
	e.listeners = append(e.listeners, l)
	cancel := e.history.Subscribe(fn)
	return func() {
		cancel()
		for i, x := range e.listeners {
			if x == l {
				e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

// CanUndo reports whether Undo would succeed.
func (e *Editor) CanUndo() bool { return e.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// Depth returns the sizes of the undo and redo stacks.
func (e *Editor) Depth() (undo, redo int) { return e.history.Depth() }

// Undo reverts the last command. It returns false when there is nothing to undo.
func (e *Editor) Undo() bool { return e.history.Undo() }

// Redo re-applies the last undone command.
func (e *Editor) Redo() bool { return e.history.Redo() }

// AddWidget inserts a new widget of the given type and selects it.
// The widget becomes the last child of the selected container, in its default
// slot. When the selection is a leaf, it is inserted as the next sibling; with
// no selection it is appended to the root.
func (e *Editor) AddWidget(widgetType string) (string, error) {
	defaults, err := schema.DefaultsFor(widgetType)
	if err != nil {
		return "", err
	}
	node := domain.NewNode(domain.NewID(widgetType), widgetType, defaults)

	err = e.transact(func(p *domain.Project) error {
		target := tree.FindNode(p.Tree, p.SelectedNodeID)
		if target == nil {
			target = p.Tree
		}

		accepts, _ := schema.AcceptsChildren(target.Type)
		parent := tree.FindParent(p.Tree, target.ID)
		switch {
		case accepts || parent == nil:
			slot, _ := schema.DefaultSlot(target.Type)
			tree.InsertChild(target, node, -1, slot)
		default:
			tree.InsertChild(parent, node, tree.IndexOf(parent, target.ID)+1, target.Slot)
		}
		p.SelectedNodeID = node.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	e.logger.Debug("widget added", "type", widgetType, "node_id", node.ID, "parent_id", node.ParentID)
	return node.ID, nil
}

// Select changes the selection without recording a history entry.
// An empty id clears the selection.
func (e *Editor) Select(id string) error {
	p := e.history.Project()
	if id != "" && !tree.Contains(p.Tree, id) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	if p.SelectedNodeID == id {
		return nil
	}
	p.SelectedNodeID = id
	for _, l := range append([]*history.Listener(nil), e.listeners...) {
		(*l)(p)
	}
	return nil
}

// DeleteSelected removes the selected node and selects its former parent.
func (e *Editor) DeleteSelected() error {
	id, err := e.selectedNonRoot()
	if err != nil {
		return err
	}
	return e.transact(func(p *domain.Project) error {
		parent := tree.FindParent(p.Tree, id)
		if !tree.DeleteNode(p.Tree, id) {
			return ErrOperationFailed
		}
		p.SelectedNodeID = parent.ID
		return nil
	})
}

// MoveSelected shifts the selected node among its siblings by delta.
func (e *Editor) MoveSelected(delta int) error {
	id, err := e.selectedNonRoot()
	if err != nil {
		return err
	}
	return e.transact(func(p *domain.Project) error {
		if !tree.ReorderSibling(p.Tree, id, delta) {
			return fmt.Errorf("%w: cannot move %q by %d", ErrOperationFailed, id, delta)
		}
		return nil
	})
}

// WrapSelected wraps the selected node in a new widget of wrapperType, which
// becomes the selection. The node goes into the wrapper's default slot, or
// "content" when the wrapper declares none or several.
func (e *Editor) WrapSelected(wrapperType string) (string, error) {
	id, err := e.selectedNonRoot()
	if err != nil {
		return "", err
	}
	defaults, err := schema.DefaultsFor(wrapperType)
	if err != nil {
		return "", err
	}
	slot, _ := schema.DefaultSlot(wrapperType)
	wrapper := domain.NewNode(domain.NewID(wrapperType), wrapperType, defaults)

	err = e.transact(func(p *domain.Project) error {
		if !tree.WrapNode(p.Tree, id, wrapper, slot) {
			return ErrOperationFailed
		}
		p.SelectedNodeID = wrapper.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return wrapper.ID, nil
}

// SetProperty sets a property on the selected node. Values are not checked;
// Validate reports bad ones.
func (e *Editor) SetProperty(name string, value any) error {
	p := e.history.Project()
	if p.SelectedNodeID == "" {
		return ErrNoSelection
	}
	id := p.SelectedNodeID
	return e.transact(func(p *domain.Project) error {
		n := tree.FindNode(p.Tree, id)
		if n == nil {
			return fmt.Errorf("%w: %q", ErrNodeNotFound, id)
		}
		n.SetProp(name, value)
		return nil
	})
}

// MoveNode re-parents a node under parentID at index (negative appends).
// An empty slot means the parent's default slot.
func (e *Editor) MoveNode(id, parentID string, index int, slot string) error {
	p := e.history.Project()
	if id == p.Tree.ID {
		return ErrRootImmutable
	}
	target := tree.FindNode(p.Tree, parentID)
	if target == nil || !tree.Contains(p.Tree, id) {
		return ErrNodeNotFound
	}
	if slot == "" {
		slot, _ = schema.DefaultSlot(target.Type)
	}
	limit := len(target.Children)
	if tree.IndexOf(target, id) >= 0 {
		limit--
	}
	if index > limit {
		return fmt.Errorf("%w: index %d out of range [0,%d]", ErrOperationFailed, index, limit)
	}
	return e.transact(func(p *domain.Project) error {
		if !tree.MoveNode(p.Tree, id, parentID, index, slot) {
			return fmt.Errorf("%w: cannot move %q under %q", ErrOperationFailed, id, parentID)
		}
		return nil
	})
}

// DropAt moves nodeID according to the drop zone hit at (x, y). Before and
// after zones insert the node as a sibling of the target; the inside zone
// appends it to the target's default slot, whatever slot the target box
// itself occupies. Dropping on the root always appends to it.
func (e *Editor) DropAt(engine *hittest.Engine, nodeID string, x, y float64) error {
	hit, ok := engine.Hit(x, y)
	if !ok {
		return ErrNoDropTarget
	}
	root := e.Root()
	targetID := hit.Box.NodeID
	if targetID == nodeID {
		return fmt.Errorf("%w: %q dropped on itself", ErrOperationFailed, nodeID)
	}
	target := tree.FindNode(root, targetID)
	if target == nil {
		return fmt.Errorf("%w: drop target %q", ErrNodeNotFound, targetID)
	}

	parent := tree.FindParent(root, targetID)
	if hit.Zone == hittest.ZoneInside || parent == nil {
		slot, _ := schema.DefaultSlot(target.Type)
		if slot == "" {
			slot = tree.DefaultWrapperSlot
		}
		return e.MoveNode(nodeID, targetID, -1, slot)
	}

	index := tree.IndexOf(parent, targetID)
	if hit.Zone == hittest.ZoneAfter {
		index++
	}
	if from := tree.IndexOf(parent, nodeID); from >= 0 && from < index {
		index--
	}
	return e.MoveNode(nodeID, parent.ID, index, target.Slot)
}

// Validate checks the tree and returns every violation found.
func (e *Editor) Validate(opts ...validator.Option) []error {
	return validator.Errors(validator.ValidateAll(e.Root(), opts...))
}

// GenerateCode renders the project as Flet source.
func (e *Editor) GenerateCode(opts ...codegen.Option) (string, error) {
	all := append(append([]codegen.Option(nil), e.codegenOpts...), opts...)
	return codegen.GenerateProject(e.Project(), all...)
}

// Save writes the project to the configured store under id.
func (e *Editor) Save(ctx context.Context, id string) error {
	if e.store == nil {
		return ErrNoStore
	}
	if err := e.store.Save(ctx, id, e.Project()); err != nil {
		return fmt.Errorf("save %q: %w", id, err)
	}
	undo, redo := e.history.Depth()
	e.hooks.Fire(&domain.HistoryEvent{
		Timestamp: time.Now(),
		Type:      domain.EventSave,
		Project:   e.Project().Name,
		UndoDepth: undo,
		RedoDepth: redo,
	})
	e.logger.Info("project saved", "id", id)
	return nil
}

// Load replaces the project with the one stored under id and clears the
// history. On failure the current project is left untouched.
func (e *Editor) Load(ctx context.Context, id string) error {
	if e.store == nil {
		return ErrNoStore
	}
	project, err := e.store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load %q: %w", id, err)
	}
	e.Replace(project)
	e.logger.Info("project loaded", "id", id)
	return nil
}

// Replace swaps in project and clears the history.
func (e *Editor) Replace(project *domain.Project) {
	e.history.Replace(project)
}

// transact runs fn as one history transaction; failures are rolled back.
func (e *Editor) transact(fn func(*domain.Project) error) error {
	return e.history.TryTransact(fn)
}

func (e *Editor) selectedNonRoot() (string, error) {
	p := e.history.Project()
	if p.SelectedNodeID == "" {
		return "", ErrNoSelection
	}
	if p.SelectedNodeID == p.Tree.ID {
		return "", ErrRootImmutable
	}
	if !tree.Contains(p.Tree, p.SelectedNodeID) {
		return "", fmt.Errorf("%w: %q", ErrNodeNotFound, p.SelectedNodeID)
	}
	return p.SelectedNodeID, nil
}
