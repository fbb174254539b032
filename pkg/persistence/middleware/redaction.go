package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/ports"
	"github.com/aretw0/wireframe/pkg/tree"
)

// Mask replaces redacted values.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.ProjectStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware masks prop values whose keys match any of the
// patterns, and the value of password TextFields, before the project reaches
// the store. Nested maps inside prop values are masked too.
func NewRedactionMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.ProjectStore) ports.ProjectStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}
}

func (m *redactionMiddleware) Save(ctx context.Context, id string, project *domain.Project) error {
	// The caller keeps editing its copy.
	cloned := project.Clone()
	tree.Walk(cloned.Tree, func(n *domain.WidgetNode) bool {
		maskMap(n.Props, m.patterns)
		if n.Type == "TextField" && n.Props["password"] == true {
			if _, ok := n.Props["value"]; ok {
				n.Props["value"] = Mask
			}
		}
		return true
	})
	return m.next.Save(ctx, id, cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.Project, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func maskMap(m map[string]any, patterns []*regexp.Regexp) {
	for k, v := range m {
		for _, p := range patterns {
			if p.MatchString(k) {
				m[k] = Mask
				break
			}
		}
		if sub, ok := v.(map[string]any); ok && m[k] != Mask {
			maskMap(sub, patterns)
		}
	}
}
