// Package history wraps a project with atomic transactions and snapshot-based
// undo/redo.
//
// Snapshots are full document copies, so restored projects never share nodes
// with the live tree or with other history entries. A Manager is not safe for
// concurrent use.
package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
)

// DefaultCapacity is the default bound of the undo stack.
const DefaultCapacity = 50

// Listener is notified with the live project after every change.
type Listener func(*domain.Project)

// Option configures a Manager.
type Option func(*Manager)

// WithCapacity bounds the undo stack. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers hooks fired after listeners are notified.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = m.hooks.Merge(hooks)
	}
}

type subscription struct {
	id int
	fn Listener
}

// Manager holds the current project and its undo/redo stacks.
type Manager struct {
	project  *domain.Project
	undo     []document.Document
	redo     []document.Document
	capacity int

	listeners []subscription
	nextSub   int

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// New creates a manager around project.
func New(project *domain.Project, opts ...Option) *Manager {
	m := &Manager{
		project:  project,
		capacity: DefaultCapacity,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Project returns the live project.
func (m *Manager) Project() *domain.Project { return m.project }

// Transact snapshots the project, applies fn to it in place, clears the redo
// stack and notifies subscribers.
func (m *Manager) Transact(fn func(*domain.Project)) {
	m.pushUndo(document.FromProject(m.project))
	fn(m.project)
	m.redo = nil
	m.changed(domain.EventCommit)
}

// TryTransact is like Transact but rolls the project back and records
// nothing when fn returns an error.
func (m *Manager) TryTransact(fn func(*domain.Project) error) error {
	snapshot := document.FromProject(m.project)
	if err := fn(m.project); err != nil {
		restored, rErr := document.ToProject(snapshot)
		if rErr != nil {
			return fmt.Errorf("rollback failed: %w (after %v)", rErr, err)
		}
		m.project = restored
		return err
	}
	m.pushUndo(snapshot)
	m.redo = nil
	m.changed(domain.EventCommit)
	return nil
}

// Undo restores the most recent snapshot. It returns false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}
	snapshot := m.undo[len(m.undo)-1]
	restored, err := document.ToProject(snapshot)
	if err != nil {
		m.logger.Error("undo snapshot could not be restored", "error", err)
		return false
	}
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, document.FromProject(m.project))
	m.project = restored
	m.changed(domain.EventUndo)
	return true
}

// Redo re-applies the most recently undone change. It returns false when
// there is nothing to redo.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}
	snapshot := m.redo[len(m.redo)-1]
	restored, err := document.ToProject(snapshot)
	if err != nil {
		m.logger.Error("redo snapshot could not be restored", "error", err)
		return false
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.pushUndo(document.FromProject(m.project))
	m.project = restored
	m.changed(domain.EventRedo)
	return true
}

// Replace swaps in a loaded project and clears both stacks.
func (m *Manager) Replace(project *domain.Project) {
	m.project = project
	m.undo = nil
	m.redo = nil
	m.changed(domain.EventLoad)
}

// Subscribe registers fn and returns a function that removes it.
func (m *Manager) Subscribe(fn Listener) (unsubscribe func()) {
	m.nextSub++
	id := m.nextSub
	m.listeners = append(m.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range m.listeners {
			if s.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// CanUndo reports whether Undo would succeed.
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) { return len(m.undo), len(m.redo) }

func (m *Manager) pushUndo(snapshot document.Document) {
	m.undo = append(m.undo, snapshot)
	if over := len(m.undo) - m.capacity; over > 0 {
		m.undo = append(m.undo[:0:0], m.undo[over:]...)
	}
}

func (m *Manager) changed(kind domain.EventType) {
	for _, s := range append([]subscription(nil), m.listeners...) {
		s.fn(m.project)
	}
	m.logger.Debug("history changed", "event", kind, "undo_depth", len(m.undo), "redo_depth", len(m.redo))
	m.hooks.Fire(&domain.HistoryEvent{
		Timestamp: time.Now(),
		Type:      kind,
		Project:   m.project.Name,
		UndoDepth: len(m.undo),
		RedoDepth: len(m.redo),
	})
}
