package graphql

import "github.com/wundergraph/graphql-core-engine/internal/introspection"

// IntrospectionQueryOptions toggles which optional pieces
// GetIntrospectionQuery includes (§4.9, grounded on the original's
// introspection_query.py options).
type IntrospectionQueryOptions = introspection.Options

// DefaultIntrospectionQueryOptions is every optional field switched on,
// the shape tools like GraphiQL request.
func DefaultIntrospectionQueryOptions() IntrospectionQueryOptions {
	return introspection.DefaultOptions()
}

// GetIntrospectionQuery renders the canonical introspection query
// document for the given options (§6 "get_introspection_query", §4.9
// supplemented feature).
func GetIntrospectionQuery(opts IntrospectionQueryOptions) string {
	return introspection.BuildQuery(opts)
}
