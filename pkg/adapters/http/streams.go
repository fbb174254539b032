package http

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
)

// ChangeEvent is pushed to websocket subscribers after every change.
type ChangeEvent struct {
	Project string            `json:"project"`
	Changes *domain.ChangeSet `json:"changes"`
}

// StreamManager fans change events out to the subscribers of each project.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan ChangeEvent]struct{} // ProjectID -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty manager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan ChangeEvent]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a buffered channel for the project's events.
// The returned function unregisters and closes it.
func (sm *StreamManager) Subscribe(projectID string) (<-chan ChangeEvent, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan ChangeEvent, 10)
	if _, ok := sm.subscribers[projectID]; !ok {
		sm.subscribers[projectID] = make(map[chan ChangeEvent]struct{})
	}
	sm.subscribers[projectID][ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			if subs, ok := sm.subscribers[projectID]; ok {
				delete(subs, ch)
				close(ch)
				if len(subs) == 0 {
					delete(sm.subscribers, projectID)
				}
			}
		})
	}
}

// Subscribers returns the number of live subscriptions for a project.
func (sm *StreamManager) Subscribers(projectID string) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers[projectID])
}

// Broadcast sends the change set to every subscriber of the project.
// Nil change sets are ignored; slow clients drop events.
func (sm *StreamManager) Broadcast(projectID string, changes *domain.ChangeSet) {
	if changes == nil {
		return
	}
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	event := ChangeEvent{Project: projectID, Changes: changes}
	for ch := range sm.subscribers[projectID] {
		select {
		case ch <- event:
		default:
			sm.logger.Warn("Client buffer full, dropping change event", "project_id", projectID)
		}
	}
}

// subscribeEvents upgrades GET /projects/{id}/events to a websocket and
// streams change events until the client goes away.
func (s *Server) subscribeEvents(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	// Subscribed before the handshake completes so no change is missed.
	events, cancel := s.streams.Subscribe(id)
	defer cancel()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "project_id", id, "err", err)
		return
	}
	defer conn.CloseNow()

	// Reading keeps control frames flowing and notices client closes.
	ctx := conn.CloseRead(r.Context())
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := wsjson.Write(ctx, conn, event); err != nil {
				s.logger.Debug("websocket write failed", "project_id", id, "err", err)
				return
			}
		}
	}
}
