package executor

import (
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// Middleware wraps a field resolver with another, given the resolver
// it decorates -- the Go shape of `middleware.py`'s `MiddlewareManager`:
// there it partial-applies each middleware over the previous one to
// build a single chained callable; here a Middleware is that same
// reduction step, expressed as a plain function value instead of a
// class/attribute lookup.
type Middleware func(next typesystem.FieldResolveFn) typesystem.FieldResolveFn

// Chain composes middlewares around resolver, outermost first, so
// middlewares[0] is the first to see the call and the last to see its
// result -- matching `middleware_chain`'s reduce order (each
// middleware wraps the one before it, starting from the bare
// resolver).
func Chain(resolver typesystem.FieldResolveFn, middlewares ...Middleware) typesystem.FieldResolveFn {
	wrapped := resolver
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}
