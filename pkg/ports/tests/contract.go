package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/wireframe/pkg/ports"
)

// LockerContractTest is a reusable test suite that verifies if an adapter complies with ports.DistributedLocker.
func LockerContractTest(t *testing.T, locker ports.DistributedLocker) {
	t.Helper()
	ctx := context.Background()

	t.Run("Lock_Unlock_Relock", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "contract-relock", time.Second)
		if err != nil {
			t.Fatalf("unexpected error acquiring lock: %v", err)
		}
		if err := unlock(ctx); err != nil {
			t.Fatalf("unexpected error releasing lock: %v", err)
		}

		unlock, err = locker.Lock(ctx, "contract-relock", time.Second)
		if err != nil {
			t.Fatalf("lock should be free after unlock: %v", err)
		}
		_ = unlock(ctx)
	})

	t.Run("Held_Lock_Blocks_Until_Context_Done", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "contract-held", 5*time.Second)
		if err != nil {
			t.Fatalf("unexpected error acquiring lock: %v", err)
		}
		defer func() { _ = unlock(ctx) }()

		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		if _, err := locker.Lock(waitCtx, "contract-held", time.Second); err == nil {
			t.Error("expected error acquiring a held lock, got nil")
		}
	})

	t.Run("Mutual_Exclusion", func(t *testing.T) {
		var inside, violations int32
		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				lockCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				defer cancel()
				unlock, err := locker.Lock(lockCtx, "contract-mutex", 5*time.Second)
				if err != nil {
					t.Errorf("unexpected error acquiring lock: %v", err)
					return
				}
				if atomic.AddInt32(&inside, 1) > 1 {
					atomic.AddInt32(&violations, 1)
				}
				time.Sleep(50 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				_ = unlock(ctx)
			}()
		}
		wg.Wait()
		if violations > 0 {
			t.Errorf("lock held by %d holders at once", violations+1)
		}
	})
}
