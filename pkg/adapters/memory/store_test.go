package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/wireframe/pkg/adapters/memory"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunProjectStoreContract(t, store)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := domain.NewStarterProject("p")
			assert.NoError(t, store.Save(ctx, "shared", p))
			_, err := store.Load(ctx, "shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, ids)
}

func TestMemoryStore_LoadMalformed(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "broken", &domain.Project{Name: "Broken"}))

	_, err := store.Load(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, document.ErrMalformed)
}
