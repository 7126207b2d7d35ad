package typesystem

import (
	"context"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
)

// ResolveInfo is the read-only `info` argument passed to every field
// resolver (§4.7 step 4): path, the field nodes contributing to this
// field's group, the field's return/parent type, the schema, the
// document and its fragments, root/context values, coerced variables
// and the selected operation. It is confined to one execution task and
// never mutated by the executor after construction (§5 Shared state).
type ResolveInfo struct {
	FieldName      string
	Path           []gqlerrors.PathSegment
	FieldNodes     []int // refs into Document.Fields, the merged field group
	ReturnType     *Type
	ParentType     *Object
	Schema         *Schema
	Document       *ast.Document
	Fragments      map[string]int
	RootValue      interface{}
	ContextValue   context.Context
	VariableValues map[string]interface{}
	Operation      int // ref into Document.OperationDefinitions
}

// FieldResolveFn resolves one field's value given the parent source
// value, its coerced arguments, and info. It may return a pending
// executor.Awaitable instead of an immediate value (§4.7 step 4, §5, §9
// "Dual sync/async resolvers"); the executor checks each result for an
// Awaitable and awaits it, or under ExecuteSync reports it as a field
// error.
type FieldResolveFn func(ctx context.Context, source interface{}, args map[string]interface{}, info ResolveInfo) (interface{}, error)

// DefaultFieldResolver implements the fallback resolver (§4.7 step 4):
// look up a same-named method, struct field, or map key on source.
func DefaultFieldResolver(ctx context.Context, source interface{}, args map[string]interface{}, info ResolveInfo) (interface{}, error) {
	return defaultResolve(source, info.FieldName)
}
