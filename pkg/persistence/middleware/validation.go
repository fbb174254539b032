package middleware

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
	"github.com/aretw0/wireframe/pkg/validator"
)

type validationMiddleware struct {
	next   ports.ProjectStore
	strict bool
	logger *slog.Logger
}

// NewValidationMiddleware validates every tree before it is saved.
// When strict, invalid projects (including bad value kinds) are rejected;
// otherwise each violation is logged as a warning and the save proceeds.
func NewValidationMiddleware(strict bool, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = logging.NewNop()
	}
	return func(next ports.ProjectStore) ports.ProjectStore {
		return &validationMiddleware{next: next, strict: strict, logger: logger}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, id string, project *domain.Project) error {
	var opts []validator.Option
	if m.strict {
		opts = append(opts, validator.Strict())
	}
	if err := validator.ValidateAll(project.Tree, opts...); err != nil {
		if m.strict {
			return fmt.Errorf("refusing to save %q: %w", id, err)
		}
		for _, e := range validator.Errors(err) {
			m.logger.WarnContext(ctx, "saving invalid project", "project", id, "err", e)
		}
	}
	return m.next.Save(ctx, id, project)
}

func (m *validationMiddleware) Load(ctx context.Context, id string) (*domain.Project, error) {
	return m.next.Load(ctx, id)
}

func (m *validationMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
