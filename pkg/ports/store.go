package ports

import (
	"context"

	"github.com/aretw0/wireframe/pkg/domain"
)

// ProjectStore defines the interface for persisting projects.
// Implementations store independent copies: mutating a saved or loaded
// project never affects the stored value.
type ProjectStore interface {
	// Save persists the project under the given id, replacing any previous value.
	Save(ctx context.Context, id string, project *domain.Project) error

	// Load retrieves the project stored under id.
	// Returns domain.ErrProjectNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Project, error)

	// Delete removes the project. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored projects.
	List(ctx context.Context) ([]string, error)
}
