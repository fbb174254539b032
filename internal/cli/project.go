package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/presentation/graph"
	"github.com/aretw0/wireframe/internal/presentation/tui"
	"github.com/aretw0/wireframe/pkg/adapters/file"
	"github.com/aretw0/wireframe/pkg/codegen"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/validator"
	"gopkg.in/yaml.v3"
)

// Inspect output formats.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMermaid  = "mermaid"
	FormatTree     = "tree"
	FormatMarkdown = "markdown"
)

// NewProject stores a starter project, or a bare Column when blank is set.
func (a *App) NewProject(ctx context.Context, id, name string, blank bool) error {
	project := domain.NewStarterProject(name)
	if blank {
		project = domain.NewProject(name, domain.NewNode(domain.RootNodeID, "Column", nil))
	}
	if err := a.Sessions.Create(ctx, id, project); err != nil {
		return err
	}
	a.Printer.Success("created project %q", id)
	return nil
}

// Import stores the project file at path under id, replacing any existing one.
func (a *App) Import(ctx context.Context, id, path string) error {
	project, err := file.LoadFile(path)
	if err != nil {
		return err
	}
	if err := a.Sessions.Store().Save(ctx, id, project); err != nil {
		return err
	}
	a.Sessions.Evict(id)
	a.Printer.Success("imported %s as %q", path, id)
	return nil
}

// Export writes the stored project to path.
func (a *App) Export(ctx context.Context, id, path string) error {
	return a.Sessions.Open(ctx, id, func(e *wireframe.Editor) error {
		return file.SaveFile(path, e.Project())
	})
}

// Remove deletes a stored project.
func (a *App) Remove(ctx context.Context, id string) error {
	return a.Sessions.Delete(ctx, id)
}

// List prints the stored project ids, one per line.
func (a *App) List(ctx context.Context) error {
	ids, err := a.Sessions.List(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(a.Out, id)
	}
	return nil
}

// Apply runs cmd against the stored project and saves the result.
func (a *App) Apply(ctx context.Context, id string, cmd wireframe.Command) (wireframe.Result, error) {
	var result wireframe.Result
	err := a.Sessions.Commit(ctx, id, func(e *wireframe.Editor) error {
		var err error
		result, err = e.Apply(cmd)
		return err
	})
	if err != nil {
		return wireframe.Result{}, fmt.Errorf("%s failed: %w", cmd.Op, err)
	}
	a.Logger.Debug("command applied", "project_id", id, "op", cmd.Op, "node_id", result.NodeID)
	return result, nil
}

// Validate prints every schema violation and fails when there is one.
func (a *App) Validate(ctx context.Context, id string, strict bool) error {
	var opts []validator.Option
	if strict {
		opts = append(opts, validator.Strict())
	}
	var errs []error
	if err := a.Sessions.Open(ctx, id, func(e *wireframe.Editor) error {
		errs = e.Validate(opts...)
		return nil
	}); err != nil {
		return err
	}
	if len(errs) == 0 {
		a.Printer.Success("project %q is valid", id)
		return nil
	}
	for _, err := range errs {
		a.Printer.Warn("%v", err)
	}
	return fmt.Errorf("%w: %d problem(s) in %q", validator.ErrInvalidTree, len(errs), id)
}

// GenerateOptions control Generate.
type GenerateOptions struct {
	Title string
	// Out is a file path; empty writes to the App output.
	Out string
	// Pretty highlights the code when the output is a terminal.
	Pretty bool
}

// Generate renders the project as Flet source.
func (a *App) Generate(ctx context.Context, id string, opts GenerateOptions) error {
	var cgOpts []codegen.Option
	if opts.Title != "" {
		cgOpts = append(cgOpts, codegen.WithTitle(opts.Title))
	}
	var code string
	if err := a.Sessions.Open(ctx, id, func(e *wireframe.Editor) error {
		var err error
		code, err = e.GenerateCode(cgOpts...)
		return err
	}); err != nil {
		return err
	}

	if opts.Out != "" {
		if err := os.WriteFile(opts.Out, []byte(code), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.Out, err)
		}
		a.Printer.Success("wrote %s", opts.Out)
		return nil
	}
	if opts.Pretty && a.Interactive() {
		rendered, err := tui.RenderCode(code)
		if err == nil {
			code = rendered
		} else {
			a.Logger.Warn("highlighting failed", "err", err)
		}
	}
	_, err := io.WriteString(a.Out, code)
	return err
}

// Inspect prints the project in one of the inspect formats.
func (a *App) Inspect(ctx context.Context, id, format string) error {
	var project *domain.Project
	if err := a.Sessions.Open(ctx, id, func(e *wireframe.Editor) error {
		project = e.Project().Clone()
		return nil
	}); err != nil {
		return err
	}

	var out []byte
	switch strings.ToLower(format) {
	case "", FormatJSON:
		data, err := document.Encode(project)
		if err != nil {
			return err
		}
		out = data
	case FormatYAML:
		data, err := yaml.Marshal(map[string]any(document.FromProject(project)))
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		out = data
	case FormatMermaid:
		overlay := &graph.Overlay{SelectedNode: project.SelectedNodeID}
		for _, err := range validator.Errors(validator.ValidateAll(project.Tree)) {
			var ve *validator.ValidationError
			if errors.As(err, &ve) {
				overlay.Invalid = append(overlay.Invalid, ve.NodeID)
			}
		}
		out = []byte(graph.GenerateMermaid(project.Tree, overlay))
	case FormatTree:
		out = []byte(graph.Outline(project.Tree, project.SelectedNodeID))
	default:
		return fmt.Errorf("unknown format %q (want json, yaml, mermaid or tree)", format)
	}
	_, err := a.Out.Write(out)
	return err
}

// ParseValue reads a command-line property value as a YAML scalar, so that
// true, 12 and 1.5 become bool and float values. Anything YAML cannot read as
// a value, such as "#ff0000", stays a string.
func ParseValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch x := v.(type) {
	case nil:
		if raw == "null" || raw == "~" {
			return nil
		}
		return raw
	case int:
		return float64(x)
	case string, bool, float64:
		return x
	default:
		// Lists and maps are kept only when they survive JSON, like persisted props.
		if _, err := json.Marshal(x); err != nil {
			return raw
		}
		return x
	}
}
