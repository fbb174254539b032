package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return total
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()

	hooks.Fire(&domain.HistoryEvent{Type: domain.EventCommit, Project: "p", UndoDepth: 1})
	hooks.Fire(&domain.HistoryEvent{Type: domain.EventCommit, Project: "p", UndoDepth: 2})
	hooks.Fire(&domain.HistoryEvent{Type: domain.EventUndo, Project: "p", UndoDepth: 1, RedoDepth: 1})
	hooks.Fire(&domain.HistoryEvent{Type: domain.EventRedo, Project: "p", UndoDepth: 2})

	assert.Equal(t, 2.0, metricValue(t, reg, "wireframe_history_commits_total"))
	assert.Equal(t, 1.0, metricValue(t, reg, "wireframe_history_undo_total"))
	assert.Equal(t, 1.0, metricValue(t, reg, "wireframe_history_redo_total"))
	assert.Equal(t, 2.0, metricValue(t, reg, "wireframe_history_depth"))
}

func TestMetrics_ObserveStore(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveStore("save", time.Now(), nil)
	m.ObserveStore("load", time.Now(), errors.New("boom"))
	m.ValidationFailures.Inc()

	assert.Equal(t, 2.0, metricValue(t, reg, "wireframe_store_operations_total"))
	assert.Equal(t, 2.0, metricValue(t, reg, "wireframe_store_operation_duration_seconds"))
	assert.Equal(t, 1.0, metricValue(t, reg, "wireframe_validation_failures_total"))
}

func TestNewMetrics_Unregistered(t *testing.T) {
	m := observability.NewMetrics(nil)
	assert.NotPanics(t, func() { m.Hooks().Fire(&domain.HistoryEvent{Type: domain.EventLoad}) })
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)
	hooks := observability.LoggingHooks(logger)

	hooks.Fire(&domain.HistoryEvent{Type: domain.EventCommit, Project: "p"})
	hooks.Fire(&domain.HistoryEvent{Type: domain.EventSave, Project: "p"})

	out := buf.String()
	assert.NotContains(t, out, "msg=commit")
	assert.Contains(t, out, "msg=save")
	assert.Contains(t, out, "project=p")
}
