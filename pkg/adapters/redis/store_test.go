package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/wireframe/pkg/adapters/redis"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
	"github.com/aretw0/wireframe/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunProjectStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "ephemeral", domain.NewStarterProject("Temp")))
	_, err := store.Load(ctx, "ephemeral")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "ephemeral")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "ephemeral")
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "app", domain.NewStarterProject("App")))
	assert.True(t, mr.Exists("custom:project:app"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"project:app"))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, ids)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)

	require.NoError(t, mr.Set(redis.DefaultPrefix+"project:broken", "{not json"))
	_, err := store.Load(context.Background(), "broken")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestRedisLocker_Contract(t *testing.T) {
	_, client := newClient(t)
	tests.LockerContractTest(t, redis.NewLocker(client, ""))
}

func TestRedisLocker_ForeignUnlock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "shared", time.Second)
	require.NoError(t, err)

	// The lock expires and someone else takes it.
	mr.FastForward(2 * time.Second)
	unlock2, err := locker.Lock(ctx, "shared", time.Second)
	require.NoError(t, err)

	// The stale holder must not release the new lock.
	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists(redis.DefaultPrefix+"lock:shared"))

	require.NoError(t, unlock2(ctx))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"lock:shared"))
}
