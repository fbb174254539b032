// Package process runs generated Flet applications as local processes.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MainFile is the file name the generated code is written to.
const MainFile = "main.py"

// waitDelay bounds how long output is drained after a cancelled process
// is killed, since its children may hold the pipes open.
const waitDelay = 2 * time.Second

// ErrNoCommand is returned when the runner has nothing to execute.
var ErrNoCommand = errors.New("no preview command configured")

// Config describes the command that executes a generated app.
type Config struct {
	Command string            `yaml:"command" json:"command"`
	Args    []string          `yaml:"args" json:"args"`
	Env     map[string]string `yaml:"env" json:"env"`
}

// DefaultConfig runs the app with python3.
func DefaultConfig() Config {
	return Config{Command: "python3", Args: []string{MainFile}}
}

// Runner writes generated code to a working directory and executes it.
type Runner struct {
	cfg    Config
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the working directory for executed processes.
// By default a temporary directory is created per run and removed afterwards.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.dir = dir
	}
}

// WithOutput redirects the process stdout and stderr.
func WithOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{cfg: cfg, stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run writes code to MainFile and runs the configured command until it exits
// or ctx is cancelled. The project id is exported as WIREFRAME_PROJECT.
func (r *Runner) Run(ctx context.Context, project, code string) error {
	if r.cfg.Command == "" {
		return ErrNoCommand
	}

	dir := r.dir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "wireframe-run-*")
		if err != nil {
			return fmt.Errorf("failed to create work dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}
	if err := os.WriteFile(filepath.Join(dir, MainFile), []byte(code), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", MainFile, err)
	}

	cmd := exec.CommandContext(ctx, r.cfg.Command, r.cfg.Args...)
	cmd.Dir = dir
	cmd.Env = append(cmd.Environ(), r.env(project)...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w", r.cfg.Command, err)
	}
	return nil
}

// env returns KEY=VALUE pairs in key order. Keys are upper-cased.
func (r *Runner) env(project string) []string {
	keys := make([]string, 0, len(r.cfg.Env))
	for k := range r.cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := []string{"WIREFRAME_PROJECT=" + project}
	for _, k := range keys {
		env = append(env, fmt.Sprintf("%s=%s", strings.ToUpper(k), r.cfg.Env[k]))
	}
	return env
}
