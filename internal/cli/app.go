// Package cli implements the wireframe commands on top of the configured
// project store. cmd/wireframe only parses flags and calls into it.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/config"
	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/internal/presentation/tui"
	"github.com/aretw0/wireframe/pkg/codegen"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/aretw0/wireframe/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/term"
)

// Options select the configuration of an App.
type Options struct {
	ConfigPath string
	// LogLevel overrides the level from the config file when set.
	LogLevel string
	// Metrics registers prometheus collectors for the store and history.
	Metrics bool
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

// App holds everything a command needs.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Sessions *session.Manager
	Metrics  *observability.Metrics
	Registry *prometheus.Registry
	Out      io.Writer
	Printer  *tui.Printer

	backend *config.Backend
}

// Open loads the configuration and opens the project store.
func Open(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return New(ctx, cfg, opts)
}

// New opens the project store described by cfg.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	app := &App{
		Config: cfg,
		Logger: logging.New(level),
		Out:    opts.Out,
	}
	if app.Out == nil {
		app.Out = os.Stdout
	}
	app.Printer = tui.NewPrinter(app.Out)

	if opts.Metrics {
		app.Registry = prometheus.NewRegistry()
		app.Metrics = observability.NewMetrics(app.Registry)
	}

	app.backend, err = cfg.OpenStore(ctx, app.Logger, app.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	editorOpts := []wireframe.Option{
		wireframe.WithHistoryCapacity(cfg.History.Capacity),
		wireframe.WithLifecycleHooks(observability.LoggingHooks(app.Logger)),
		wireframe.WithCodegenOptions(codegenOptions(cfg.Codegen)...),
	}
	if app.Metrics != nil {
		editorOpts = append(editorOpts, wireframe.WithLifecycleHooks(app.Metrics.Hooks()))
	}
	sessOpts := []session.Option{
		session.WithLogger(app.Logger),
		session.WithEditorOptions(editorOpts...),
	}
	if app.backend.Locker != nil {
		sessOpts = append(sessOpts, session.WithLocker(app.backend.Locker))
	}
	app.Sessions = session.NewManager(app.backend.Store, sessOpts...)

	app.Logger.Debug("store opened", "backend", cfg.Store.Backend)
	return app, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.backend.Close()
}

// Interactive reports whether command output goes to a terminal.
func (a *App) Interactive() bool {
	f, ok := a.Out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func codegenOptions(c config.CodegenConfig) []codegen.Option {
	var opts []codegen.Option
	if c.Title != "" {
		opts = append(opts, codegen.WithTitle(c.Title))
	}
	if c.Indent > 0 {
		opts = append(opts, codegen.WithIndent(c.Indent))
	}
	return opts
}
