package domain

import "time"

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventCommit EventType = "commit"
	EventUndo   EventType = "undo"
	EventRedo   EventType = "redo"
	EventLoad   EventType = "load"
	EventSave   EventType = "save"
)

// HistoryEvent describes a history or persistence transition of a project.
type HistoryEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Project   string    `json:"project"`
	UndoDepth int       `json:"undo_depth"`
	RedoDepth int       `json:"redo_depth"`
}

// LifecycleHooks defines callbacks for history and persistence observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnCommit func(*HistoryEvent)
	OnUndo   func(*HistoryEvent)
	OnRedo   func(*HistoryEvent)
	OnLoad   func(*HistoryEvent)
	OnSave   func(*HistoryEvent)
}

// Fire dispatches the event to the hook matching its type.
func (h LifecycleHooks) Fire(e *HistoryEvent) {
	var fn func(*HistoryEvent)
	switch e.Type {
	case EventCommit:
		fn = h.OnCommit
	case EventUndo:
		fn = h.OnUndo
	case EventRedo:
		fn = h.OnRedo
	case EventLoad:
		fn = h.OnLoad
	case EventSave:
		fn = h.OnSave
	}
	if fn != nil {
		fn(e)
	}
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	chain := func(a, b func(*HistoryEvent)) func(*HistoryEvent) {
		switch {
		case a == nil:
			return b
		case b == nil:
			return a
		}
		return func(e *HistoryEvent) {
			a(e)
			b(e)
		}
	}
	return LifecycleHooks{
		OnCommit: chain(h.OnCommit, other.OnCommit),
		OnUndo:   chain(h.OnUndo, other.OnUndo),
		OnRedo:   chain(h.OnRedo, other.OnRedo),
		OnLoad:   chain(h.OnLoad, other.OnLoad),
		OnSave:   chain(h.OnSave, other.OnSave),
	}
}
