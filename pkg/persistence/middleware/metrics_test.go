package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/aretw0/wireframe/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func operations(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "wireframe_store_operations_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			key := ""
			for _, l := range m.GetLabel() {
				key += l.GetValue() + "/"
			}
			out[key] += m.GetCounter().GetValue()
		}
	}
	return out
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := middleware.NewMetricsMiddleware(observability.NewMetrics(reg))(NewMockStore())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", domain.NewStarterProject("A")))
	_, err := store.Load(ctx, "a")
	require.NoError(t, err)
	_, err = store.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrProjectNotFound)
	_, err = store.List(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "a"))

	// Labels are gathered sorted by name: operation, then status.
	assert.Equal(t, map[string]float64{
		"save/ok/":    1,
		"load/ok/":    1,
		"load/error/": 1,
		"list/ok/":    1,
		"delete/ok/":  1,
	}, operations(t, reg))
}
