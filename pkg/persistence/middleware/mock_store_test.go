package middleware_test

import (
	"context"
	"sort"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
// It keeps the exact pointers it is given so tests can inspect them.
type MockStore struct {
	data  map[string]*domain.Project
	saves int
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.Project),
	}
}

func (s *MockStore) Save(ctx context.Context, id string, project *domain.Project) error {
	s.data[id] = project
	s.saves++
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) (*domain.Project, error) {
	project, ok := s.data[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

var _ ports.ProjectStore = (*MockStore)(nil)
