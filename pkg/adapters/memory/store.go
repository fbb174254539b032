package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
)

// Store implements ports.ProjectStore in memory.
// Projects are held in document form, so every Save and Load works on a copy.
// Safe for concurrent use.
type Store struct {
	data map[string]document.Document
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]document.Document),
	}
}

// Save persists the project in memory.
func (s *Store) Save(ctx context.Context, id string, project *domain.Project) error {
	doc := document.FromProject(project)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = doc
	return nil
}

// Load retrieves a copy of the project.
func (s *Store) Load(ctx context.Context, id string) (*domain.Project, error) {
	s.mu.RLock()
	doc, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	project, err := document.ToProject(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return project, nil
}

// Delete removes the project.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored project ids, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
