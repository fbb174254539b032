package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// ErrProjectExists is returned by Create when the id is taken.
var ErrProjectExists = errors.New("project already exists")

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serialises access to projects by id and caches one Editor per
// project. It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.ProjectStore

	mu      sync.Mutex                   // Global lock for the maps
	locks   map[string]*lockEntry        // Map of active locks
	editors map[string]*wireframe.Editor // Open editors, read under the per-id lock

	locker     ports.DistributedLocker // Optional distributed locker
	lockTTL    time.Duration
	editorOpts []wireframe.Option
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking. Editors are then reloaded from the
// store on every access, since other replicas may have written since.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEditorOptions are applied to every editor the manager opens.
func WithEditorOptions(opts ...wireframe.Option) Option {
	return func(m *Manager) {
		m.editorOpts = append(m.editorOpts, opts...)
	}
}

// NewManager creates a new Manager over the given persistence store.
func NewManager(store ports.ProjectStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		editors: make(map[string]*wireframe.Editor),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Open runs fn with the project's editor while holding its lock. Changes are
// kept in memory only; use Commit to persist them.
func (m *Manager) Open(ctx context.Context, id string, fn func(*wireframe.Editor) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		editor, err := m.editor(ctx, id)
		if err != nil {
			return err
		}
		return fn(editor)
	})
}

// Commit runs fn with the project's editor and saves the project when fn
// succeeds. When fn or the save fails the cached editor is dropped, so the
// next call sees the stored project again.
func (m *Manager) Commit(ctx context.Context, id string, fn func(*wireframe.Editor) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		editor, err := m.editor(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(editor); err != nil {
			m.Evict(id)
			return err
		}
		if err := editor.Save(ctx, id); err != nil {
			m.Evict(id)
			m.logger.Warn("commit discarded", "project_id", id, "err", err)
			return err
		}
		return nil
	})
}

// Create persists project under a new id and opens an editor for it.
func (m *Manager) Create(ctx context.Context, id string, project *domain.Project) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		_, err := m.store.Load(ctx, id)
		if err == nil {
			return fmt.Errorf("%w: %q", ErrProjectExists, id)
		}
		if !errors.Is(err, domain.ErrProjectNotFound) {
			return fmt.Errorf("failed to check project existence: %w", err)
		}

		editor := m.newEditor(project)
		if err := editor.Save(ctx, id); err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		m.cache(id, editor)
		return nil
	})
}

// Delete removes the project from the store and drops its editor.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.Evict(id)
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Evict drops the cached editor for id, discarding its history.
func (m *Manager) Evict(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.editors, id)
}

// Store returns the underlying project store.
func (m *Manager) Store() ports.ProjectStore {
	return m.store
}

// WithLock executes a function while holding the lock for the project.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"project_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// editor returns the cached editor for id, loading the project if needed.
// The caller holds the per-id lock.
func (m *Manager) editor(ctx context.Context, id string) (*wireframe.Editor, error) {
	if m.locker == nil {
		m.mu.Lock()
		editor, ok := m.editors[id]
		m.mu.Unlock()
		if ok {
			return editor, nil
		}
	}

	project, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	editor := m.newEditor(project)
	if m.locker == nil {
		m.cache(id, editor)
	}
	m.logger.Debug("project opened", "project_id", id)
	return editor, nil
}

func (m *Manager) newEditor(project *domain.Project) *wireframe.Editor {
	opts := append([]wireframe.Option{
		wireframe.WithStore(m.store),
		wireframe.WithLogger(m.logger),
	}, m.editorOpts...)
	return wireframe.New(project, opts...)
}

func (m *Manager) cache(id string, editor *wireframe.Editor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editors[id] = editor
}
