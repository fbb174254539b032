package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aretw0/wireframe"
	httpAdapter "github.com/aretw0/wireframe/pkg/adapters/http"
	"github.com/aretw0/wireframe/pkg/adapters/mcp"
	"github.com/aretw0/wireframe/pkg/adapters/process"
)

// shutdownTimeout bounds graceful shutdown of the HTTP listeners.
const shutdownTimeout = 5 * time.Second

// Serve runs the HTTP API on addr (the configured address when empty) until
// ctx is done.
func (a *App) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.Config.Server.Addr
	}
	opts := []httpAdapter.Option{httpAdapter.WithLogger(a.Logger)}
	if a.Metrics != nil {
		opts = append(opts, httpAdapter.WithMetrics(a.Metrics, a.Registry))
	}
	handler, err := httpAdapter.NewHandler(a.Sessions, opts...)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("Starting Wireframe Server", "address", addr, "backend", a.Config.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.Logger.Info("Start shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		a.Logger.Info("Wireframe Server stopped gracefully")
		return nil
	}
}

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP runs the MCP server over stdio or SSE.
func (a *App) ServeMCP(ctx context.Context, transport, addr string) error {
	srv := mcp.NewServer(mcp.WithLogger(a.Logger))
	switch transport {
	case "", TransportStdio:
		a.Logger.Info("Starting Wireframe MCP Server (Stdio)...", "version", strings.TrimSpace(wireframe.Version))
		return srv.ServeStdio()
	case TransportSSE:
		if addr == "" {
			addr = a.Config.Server.Addr
		}
		host := addr
		if strings.HasPrefix(host, ":") {
			host = "localhost" + host
		}
		err := srv.ServeSSE(ctx, addr, "http://"+host)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}

// Run generates the project's code and starts it with the preview command.
func (a *App) Run(ctx context.Context, id, workDir string) error {
	var code string
	if err := a.Sessions.Open(ctx, id, func(e *wireframe.Editor) error {
		var err error
		code, err = e.GenerateCode()
		return err
	}); err != nil {
		return err
	}

	opts := []process.RunnerOption{process.WithOutput(a.Out, os.Stderr)}
	if workDir != "" {
		opts = append(opts, process.WithBaseDir(workDir))
	}
	a.Logger.Info("starting preview", "project_id", id, "command", a.Config.Preview.Command)
	err := process.NewRunner(a.Config.Preview, opts...).Run(ctx, id, code)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
