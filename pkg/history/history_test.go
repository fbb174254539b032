package history_test

import (
	"testing"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/history"
	"github.com/aretw0/wireframe/pkg/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(opts ...history.Option) *history.Manager {
	root := domain.NewNode("root", "Column", nil)
	return history.New(domain.NewProject("Demo", root), opts...)
}

func rename(name string) func(*domain.Project) {
	return func(p *domain.Project) { p.Name = name }
}

func TestTransactUndoRedo_Scenario(t *testing.T) {
	m := newManager()
	var afterSecond *domain.Project

	m.Transact(rename("one"))
	m.Transact(func(p *domain.Project) {
		p.Name = "two"
		tree.InsertChild(p.Tree, domain.NewNode("t1", "Text", map[string]any{"value": "x"}), -1, "controls")
	})
	afterSecond = m.Project().Clone()
	m.Transact(func(p *domain.Project) {
		p.Name = "three"
		tree.DeleteNode(p.Tree, "t1")
	})

	require.True(t, m.Undo())
	require.True(t, m.Undo())
	require.True(t, m.Redo())

	assert.Empty(t, cmp.Diff(afterSecond, m.Project(), cmpopts.EquateEmpty()))
	u, r := m.Depth()
	assert.Equal(t, 2, u)
	assert.Equal(t, 1, r)
}

func TestUndoRedo_Empty(t *testing.T) {
	m := newManager()
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.False(t, m.Undo())
	assert.False(t, m.Redo())
}

func TestTransact_ClearsRedo(t *testing.T) {
	m := newManager()
	m.Transact(rename("a"))
	m.Undo()
	require.True(t, m.CanRedo())

	m.Transact(rename("b"))
	assert.False(t, m.CanRedo())
}

func TestCapacity(t *testing.T) {
	m := newManager(history.WithCapacity(3))
	for _, n := range []string{"1", "2", "3", "4", "5"} {
		m.Transact(rename(n))
	}
	u, _ := m.Depth()
	assert.Equal(t, 3, u)

	for m.Undo() {
	}
	assert.Equal(t, "2", m.Project().Name)
}

func TestDefaultCapacity(t *testing.T) {
	m := newManager()
	for i := 0; i < history.DefaultCapacity+10; i++ {
		m.Transact(func(p *domain.Project) {})
	}
	u, _ := m.Depth()
	assert.Equal(t, history.DefaultCapacity, u)
}

func TestSnapshotsAreIndependent(t *testing.T) {
	m := newManager()
	var held *domain.WidgetNode
	m.Transact(func(p *domain.Project) {
		held = domain.NewNode("t1", "Text", map[string]any{"value": "before"})
		tree.InsertChild(p.Tree, held, -1, "controls")
	})
	m.Transact(rename("next"))
	m.Undo()

	// Mutating a node captured by an earlier mutator does not reach the restored tree.
	held.SetProp("value", "after")
	restored := tree.FindNode(m.Project().Tree, "t1")
	require.NotNil(t, restored)
	assert.Equal(t, "before", restored.Props["value"])
	assert.NotSame(t, held, restored)
}

func TestSubscribe(t *testing.T) {
	m := newManager()
	var names []string
	unsubscribe := m.Subscribe(func(p *domain.Project) { names = append(names, p.Name) })

	m.Transact(rename("a"))
	m.Undo()
	m.Redo()
	unsubscribe()
	m.Transact(rename("b"))

	assert.Equal(t, []string{"a", "Demo", "a"}, names)
}

func TestNotificationAfterRedoCleared(t *testing.T) {
	m := newManager()
	m.Transact(rename("a"))
	m.Undo()

	var canRedo bool
	m.Subscribe(func(*domain.Project) { canRedo = m.CanRedo() })
	m.Transact(rename("b"))
	assert.False(t, canRedo)
}

func TestTryTransact_RollsBack(t *testing.T) {
	m := newManager()
	err := m.TryTransact(func(p *domain.Project) error {
		p.Name = "broken"
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "Demo", m.Project().Name)
	assert.False(t, m.CanUndo())

	require.NoError(t, m.TryTransact(func(p *domain.Project) error {
		p.Name = "ok"
		return nil
	}))
	assert.True(t, m.CanUndo())
}

func TestReplace(t *testing.T) {
	m := newManager()
	m.Transact(rename("a"))
	m.Undo()

	loaded := domain.NewStarterProject("Loaded")
	notified := false
	m.Subscribe(func(*domain.Project) { notified = true })
	m.Replace(loaded)

	assert.Same(t, loaded, m.Project())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.True(t, notified)
}

func TestLifecycleHooks(t *testing.T) {
	var events []domain.EventType
	record := func(e *domain.HistoryEvent) { events = append(events, e.Type) }
	var lastDepth int
	m := newManager(history.WithLifecycleHooks(domain.LifecycleHooks{
		OnCommit: func(e *domain.HistoryEvent) {
			record(e)
			lastDepth = e.UndoDepth
		},
		OnUndo: record,
		OnRedo: record,
		OnLoad: record,
	}))

	m.Transact(rename("a"))
	m.Transact(rename("b"))
	m.Undo()
	m.Redo()
	m.Replace(domain.NewStarterProject("x"))

	assert.Equal(t, []domain.EventType{
		domain.EventCommit, domain.EventCommit, domain.EventUndo, domain.EventRedo, domain.EventLoad,
	}, events)
	assert.Equal(t, 2, lastDepth)
}
