package codegen

import (
	"strings"

	"github.com/aretw0/wireframe/pkg/domain"
)

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the page title. Defaults to domain.DefaultProjectName.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithThemeMode sets the page theme: "light", "dark" or "system".
func WithThemeMode(mode string) Option {
	return func(g *Generator) {
		if mode != "" {
			g.theme = mode
		}
	}
}

// WithIndent sets the number of spaces per indentation level. Defaults to 4.
func WithIndent(spaces int) Option {
	return func(g *Generator) {
		if spaces > 0 {
			g.indent = strings.Repeat(" ", spaces)
		}
	}
}

// Generator holds rendering settings.
type Generator struct {
	title  string
	theme  string
	indent string
}

// New creates a generator with the given options applied.
func New(opts ...Option) *Generator {
	g := &Generator{
		title:  domain.DefaultProjectName,
		theme:  domain.ThemeLight,
		indent: "    ",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders root with the given options.
func Generate(root *domain.WidgetNode, opts ...Option) (string, error) {
	return New(opts...).Generate(root)
}

// GenerateProject renders the project tree using the project's name and theme.
// Explicit options take precedence.
func GenerateProject(p *domain.Project, opts ...Option) (string, error) {
	base := []Option{WithTitle(p.Name), WithThemeMode(p.Theme)}
	return New(append(base, opts...)...).Generate(p.Tree)
}
