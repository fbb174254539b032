package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/schema"
	"github.com/aretw0/wireframe/pkg/tree"
	"github.com/aretw0/wireframe/pkg/validator"
)

// Builder manages the tree construction.
type Builder struct {
	name  string
	theme string
	root  *NodeBuilder
	errs  []error
}

// New creates a new tree builder for a project called name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Theme sets the project theme ("light" or "dark").
func (b *Builder) Theme(theme string) *Builder {
	b.theme = theme
	return b
}

// Root sets the root widget. Calling it again replaces the tree.
func (b *Builder) Root(widgetType string) *NodeBuilder {
	b.root = &NodeBuilder{node: domain.NewNode(domain.RootNodeID, widgetType, nil), builder: b}
	return b.root
}

// Build assembles the project and checks it against the widget registry.
// Every problem found while building is reported, not just the first.
func (b *Builder) Build() (*domain.Project, error) {
	if b.root == nil {
		return nil, errors.New("dsl: no root widget")
	}
	root := b.root.node.Clone()
	tree.Relink(root)

	errs := append([]error(nil), b.errs...)
	if err := tree.Check(root); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, validator.Errors(validator.ValidateAll(root))...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to build %q: %w", b.name, errors.Join(errs...))
	}

	p := domain.NewProject(b.name, root)
	if b.theme != "" {
		p.Theme = b.theme
	}
	return p, nil
}

func (b *Builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

// defaultSlot is the slot children of widgetType go to when none is named.
func defaultSlot(widgetType string) string {
	slot, err := schema.DefaultSlot(widgetType)
	if err != nil || slot == "" {
		return "content"
	}
	return slot
}
