package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/wireframe/pkg/adapters/bolt"
	"github.com/aretw0/wireframe/pkg/adapters/file"
	"github.com/aretw0/wireframe/pkg/adapters/memory"
	"github.com/aretw0/wireframe/pkg/adapters/redis"
	"github.com/aretw0/wireframe/pkg/adapters/sqlite"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/aretw0/wireframe/pkg/persistence/middleware"
	"github.com/aretw0/wireframe/pkg/ports"
)

// Backend is an opened project store with its optional locker.
type Backend struct {
	Store  ports.ProjectStore
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases the backend's resources.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// OpenStore opens the configured backend and decorates it, from the outside
// in, with metrics (when m is non-nil), validation, redaction and encryption.
func (c Config) OpenStore(ctx context.Context, logger *slog.Logger, m *observability.Metrics) (*Backend, error) {
	b := &Backend{}
	sc := c.Store

	switch sc.Backend {
	case BackendMemory:
		b.Store = memory.NewStore()
	case BackendRedis:
		ttl, err := sc.Redis.Expiry()
		if err != nil {
			return nil, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if sc.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(sc.Redis.Prefix))
		}
		rs := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB, opts...)
		b.Store = rs
		b.close = rs.Client().Close
		if sc.Redis.Lock {
			b.Locker = redis.NewLocker(rs.Client(), sc.Redis.Prefix)
		}
	case BackendSQLite:
		if err := ensureParent(sc.Path); err != nil {
			return nil, err
		}
		s, err := sqlite.Open(ctx, sc.Path)
		if err != nil {
			return nil, err
		}
		b.Store, b.close = s, s.Close
	case BackendBolt:
		if err := ensureParent(sc.Path); err != nil {
			return nil, err
		}
		s, err := bolt.Open(sc.Path)
		if err != nil {
			return nil, err
		}
		b.Store, b.close = s, s.Close
	default:
		b.Store = file.New(sc.Dir)
	}

	var mws []middleware.Middleware
	if m != nil {
		mws = append(mws, middleware.NewMetricsMiddleware(m))
	}
	mws = append(mws, middleware.NewValidationMiddleware(sc.Strict, logger))
	if len(sc.Redact) > 0 {
		mws = append(mws, middleware.NewRedactionMiddleware(sc.Redact))
	}
	active, fallback, err := sc.Keys()
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	b.Store = middleware.Chain(mws...)(b.Store)
	return b, nil
}

func ensureParent(path string) error {
	if path == ":memory:" {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
