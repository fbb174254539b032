// Package validator checks widget trees against the schema registry.
package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/schema"
)

// ErrInvalidTree is matched by every ValidationError.
var ErrInvalidTree = errors.New("invalid tree")

// ValidationError reports the first schema violation found at a node.
type ValidationError struct {
	NodeID string
	Reason string
	Err    error // underlying cause, if any
}

func (e *ValidationError) Error() string {
	if e.NodeID == "" {
		return e.Reason
	}
	return fmt.Sprintf("node %q: %s", e.NodeID, e.Reason)
}

// Is allows errors.Is(err, ErrInvalidTree).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTree
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("found %d errors:\n- %s", len(e.Errors), strings.Join(msgs, "\n- "))
}

// Is allows errors.Is(err, ErrInvalidTree).
func (e *AggregateError) Is(target error) bool {
	return target == ErrInvalidTree && len(e.Errors) > 0
}

// Errors returns all failures if err is an AggregateError, the error itself if it
// is a single ValidationError, and nil otherwise.
func Errors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return []error{single}
	}
	return nil
}

// Option configures validation.
type Option func(*config)

type config struct {
	strict bool
}

// Strict additionally checks every property value against its declared kind.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// ValidateTree walks the tree in pre-order and returns the first violation,
// or nil when the tree conforms to the registry. It never mutates the tree.
func ValidateTree(root *domain.WidgetNode, opts ...Option) error {
	var first error
	walk(root, newConfig(opts), func(err error) bool {
		first = err
		return false
	})
	return first
}

// ValidateAll is like ValidateTree but keeps going after a violation and
// returns every failure as an *AggregateError.
func ValidateAll(root *domain.WidgetNode, opts ...Option) error {
	var errs []error
	walk(root, newConfig(opts), func(err error) bool {
		errs = append(errs, err)
		return true
	})
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: errs}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// walk reports violations to emit until it returns false.
func walk(root *domain.WidgetNode, cfg *config, emit func(error) bool) {
	if root == nil {
		emit(&ValidationError{Reason: "tree has no root"})
		return
	}
	var visit func(n *domain.WidgetNode) bool
	visit = func(n *domain.WidgetNode) bool {
		fail := func(format string, args ...any) bool {
			return emit(&ValidationError{NodeID: n.ID, Reason: fmt.Sprintf(format, args...)})
		}

		spec, err := schema.Lookup(n.Type)
		if err != nil {
			// Without a spec neither props nor children can be checked.
			return emit(&ValidationError{NodeID: n.ID, Reason: fmt.Sprintf("unknown widget type %q", n.Type), Err: err})
		}

		if !checkProps(n, spec, cfg, emit) {
			return false
		}

		if len(spec.Slots) == 0 && len(n.Children) > 0 {
			if !fail("%s does not accept children", n.Type) {
				return false
			}
		} else if !checkSlots(n, spec, fail) {
			return false
		}

		for _, c := range n.Children {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	visit(root)
}

func checkProps(n *domain.WidgetNode, spec *schema.WidgetSpec, cfg *config, emit func(error) bool) bool {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := n.Props[key]
		p, ok := spec.Prop(key)
		if !ok {
			if !emit(&ValidationError{NodeID: n.ID, Reason: fmt.Sprintf("unknown property %q on %s", key, n.Type)}) {
				return false
			}
			continue
		}
		if p.Kind == schema.KindEnum && value != nil && !isOption(p.Options, value) {
			if !emit(&ValidationError{NodeID: n.ID, Reason: fmt.Sprintf("invalid value %v for %s.%s", value, n.Type, key)}) {
				return false
			}
			continue
		}
		if cfg.strict {
			if err := p.Kind.Check(value); err != nil {
				vErr := &schema.ValueError{Key: key, Reason: err.Error(), Value: value}
				if !emit(&ValidationError{NodeID: n.ID, Reason: fmt.Sprintf("invalid value for %s.%s: %v", n.Type, key, err), Err: vErr}) {
					return false
				}
			}
		}
	}
	return true
}

func checkSlots(n *domain.WidgetNode, spec *schema.WidgetSpec, fail func(string, ...any) bool) bool {
	counts := make(map[string]int, len(spec.Slots))
	for _, c := range n.Children {
		slot := c.Slot
		if slot == "" {
			if len(spec.Slots) != 1 {
				if !fail("child %q has no slot and %s declares %d slots", c.ID, n.Type, len(spec.Slots)) {
					return false
				}
				continue
			}
			slot = spec.Slots[0].Name
		}
		if _, ok := spec.Slot(slot); !ok {
			if !fail("child %q assigned to slot %q which is not declared on %s", c.ID, slot, n.Type) {
				return false
			}
			continue
		}
		counts[slot]++
	}
	for _, s := range spec.Slots {
		if s.Max != schema.Unbounded && counts[s.Name] > s.Max {
			if !fail("%s.%s allows %d child, found %d", n.Type, s.Name, s.Max, counts[s.Name]) {
				return false
			}
		}
	}
	return true
}

func isOption(options []string, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
