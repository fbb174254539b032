package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/persistence/middleware"
	"github.com/aretw0/wireframe/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invalidProject() *domain.Project {
	project := domain.NewStarterProject("Broken")
	project.Tree.Children[0].SetProp("bogus", 1.0)
	return project
}

func TestValidationMiddleware_StrictRejects(t *testing.T) {
	underlying := NewMockStore()
	store := middleware.NewValidationMiddleware(true, nil)(underlying)

	err := store.Save(context.Background(), "broken", invalidProject())
	assert.ErrorIs(t, err, validator.ErrInvalidTree)
	assert.Zero(t, underlying.saves)

	require.NoError(t, store.Save(context.Background(), "ok", domain.NewStarterProject("OK")))
	assert.Equal(t, 1, underlying.saves)
}

func TestValidationMiddleware_LenientWarns(t *testing.T) {
	var buf bytes.Buffer
	underlying := NewMockStore()
	store := middleware.NewValidationMiddleware(false, logging.NewWithWriter(&buf, slog.LevelWarn))(underlying)

	require.NoError(t, store.Save(context.Background(), "broken", invalidProject()))
	assert.Equal(t, 1, underlying.saves)
	assert.Contains(t, buf.String(), "saving invalid project")
	assert.Contains(t, buf.String(), "bogus")
}

func TestChain_Order(t *testing.T) {
	underlying := NewMockStore()
	key := make([]byte, 32)
	store := middleware.Chain(
		middleware.NewValidationMiddleware(true, nil),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)(underlying)
	ctx := context.Background()

	// Validation sees the real tree, encryption stores the envelope.
	require.NoError(t, store.Save(ctx, "app", domain.NewStarterProject("App")))
	assert.Equal(t, middleware.EnvelopeType, underlying.data["app"].Tree.Type)

	loaded, err := store.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, "Column", loaded.Tree.Type)

	assert.Error(t, store.Save(ctx, "broken", invalidProject()))
}
