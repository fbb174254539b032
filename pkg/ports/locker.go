package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker defines the interface for distributed concurrency control.
// It lets the session manager coordinate access to a project across replicas.
type DistributedLocker interface {
	// Lock acquires a lock for key (e.g. a project id). It blocks until the lock
	// is acquired or the context is canceled; the lock expires after ttl.
	// The returned UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
