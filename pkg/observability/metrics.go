package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for editing sessions.
type Metrics struct {
	Commits            *prometheus.CounterVec
	Undos              *prometheus.CounterVec
	Redos              *prometheus.CounterVec
	Depth              *prometheus.GaugeVec
	StoreOperations    *prometheus.CounterVec
	StoreDuration      *prometheus.HistogramVec
	ValidationFailures prometheus.Counter
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wireframe_history_commits_total",
				Help: "Total number of committed history transactions",
			},
			[]string{"project"},
		),
		Undos: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wireframe_history_undo_total",
				Help: "Total number of undo operations",
			},
			[]string{"project"},
		),
		Redos: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wireframe_history_redo_total",
				Help: "Total number of redo operations",
			},
			[]string{"project"},
		),
		Depth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wireframe_history_depth",
				Help: "Current size of the undo and redo stacks",
			},
			[]string{"project", "stack"},
		),
		StoreOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wireframe_store_operations_total",
				Help: "Total number of project store operations",
			},
			[]string{"operation", "status"},
		),
		StoreDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "wireframe_store_operation_duration_seconds",
				Help: "Duration of project store operations",
			},
			[]string{"operation"},
		),
		ValidationFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wireframe_validation_failures_total",
				Help: "Total number of trees rejected or flagged by the validator",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Commits, m.Undos, m.Redos, m.Depth, m.StoreOperations, m.StoreDuration, m.ValidationFailures)
	}
	return m
}

// Hooks returns lifecycle hooks that record history metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	depth := func(e *domain.HistoryEvent) {
		m.Depth.WithLabelValues(e.Project, "undo").Set(float64(e.UndoDepth))
		m.Depth.WithLabelValues(e.Project, "redo").Set(float64(e.RedoDepth))
	}
	return domain.LifecycleHooks{
		OnCommit: func(e *domain.HistoryEvent) {
			m.Commits.WithLabelValues(e.Project).Inc()
			depth(e)
		},
		OnUndo: func(e *domain.HistoryEvent) {
			m.Undos.WithLabelValues(e.Project).Inc()
			depth(e)
		},
		OnRedo: func(e *domain.HistoryEvent) {
			m.Redos.WithLabelValues(e.Project).Inc()
			depth(e)
		},
		OnLoad: depth,
	}
}

// ObserveStore records the outcome and duration of a store operation.
func (m *Metrics) ObserveStore(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StoreOperations.WithLabelValues(operation, status).Inc()
	m.StoreDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// LoggingHooks returns lifecycle hooks that log every event at debug level,
// and saves and loads at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	log := func(level slog.Level) func(*domain.HistoryEvent) {
		return func(e *domain.HistoryEvent) {
			logger.Log(context.Background(), level, string(e.Type),
				"project", e.Project,
				"undo_depth", e.UndoDepth,
				"redo_depth", e.RedoDepth,
			)
		}
	}
	return domain.LifecycleHooks{
		OnCommit: log(slog.LevelDebug),
		OnUndo:   log(slog.LevelDebug),
		OnRedo:   log(slog.LevelDebug),
		OnLoad:   log(slog.LevelInfo),
		OnSave:   log(slog.LevelInfo),
	}
}
