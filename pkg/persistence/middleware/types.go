// Package middleware decorates a ports.ProjectStore with validation, metrics,
// redaction and encryption.
package middleware

import "github.com/aretw0/wireframe/pkg/ports"

// Middleware allows wrapping a ProjectStore to add behavior.
type Middleware func(ports.ProjectStore) ports.ProjectStore

// Chain composes middlewares so that the first one is the outermost: on Save
// it sees the project first, on Load it sees the result last.
// Validation must sit outside encryption, which replaces the tree with an
// envelope.
func Chain(mws ...Middleware) Middleware {
	return func(next ports.ProjectStore) ports.ProjectStore {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
