package middleware

import (
	"context"
	"time"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/aretw0/wireframe/pkg/ports"
)

type metricsMiddleware struct {
	next    ports.ProjectStore
	metrics *observability.Metrics
}

// NewMetricsMiddleware records the count, outcome and latency of every store
// operation.
func NewMetricsMiddleware(metrics *observability.Metrics) Middleware {
	return func(next ports.ProjectStore) ports.ProjectStore {
		return &metricsMiddleware{next: next, metrics: metrics}
	}
}

func (m *metricsMiddleware) Save(ctx context.Context, id string, project *domain.Project) error {
	start := time.Now()
	err := m.next.Save(ctx, id, project)
	m.metrics.ObserveStore("save", start, err)
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, id string) (*domain.Project, error) {
	start := time.Now()
	project, err := m.next.Load(ctx, id)
	m.metrics.ObserveStore("load", start, err)
	return project, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.metrics.ObserveStore("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.metrics.ObserveStore("list", start, err)
	return ids, err
}
