// Package executor implements query execution (C8): walking a validated
// document against a Schema and a root value to produce a Result,
// following the field-collection / field-execution / value-completion
// algorithm of §4.7, with `@defer`/`@stream` handled by handing work off
// to an internal/incremental.Graph as execution proceeds.
package executor

import (
	"context"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/incremental"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
	"github.com/wundergraph/graphql-core-engine/internal/xlog"
	"go.uber.org/zap"
)

// Result is one complete (or initial, for incremental delivery) GraphQL
// response (§6 External Interfaces).
type Result struct {
	Data       map[string]interface{} `json:"data"`
	Errors     gqlerrors.List         `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Params is every input execute() takes (§4.7 entry signature). Schema
// and Document are required; everything else has a documented default.
type Params struct {
	Schema         *typesystem.Schema
	Document       *ast.Document
	RootValue      interface{}
	VariableValues map[string]interface{}
	OperationName  string
	FieldResolver  typesystem.FieldResolveFn
	TypeResolver   typesystem.ResolveTypeFn
	Middleware     []Middleware
	Logger         xlog.Logger // defaults to xlog.Noop
}

// Execute runs Params.Document against Params.Schema (§4.7 steps 1-6).
// When the operation uses `@defer`/`@stream`, the returned channel
// yields each subsequent incremental.Payload as it becomes ready and is
// closed once the graph has nothing left pending; for an operation that
// never uses incremental delivery the channel is nil. Execute never
// blocks waiting for subsequent payloads itself -- the initial Result is
// always returned as soon as its own root fields settle.
func Execute(ctx context.Context, params Params) (*Result, <-chan incremental.Payload) {
	return execute(ctx, params, false)
}

// ExecuteSync runs Execute and discards any subsequent incremental
// payloads, for callers that only want the initial Result (§4.7 "Result
// | Task<Result>" collapsed to its synchronous half). Per §5
// "execute_sync raises an error if any resolver returns a future", a
// resolver returning an Awaitable under ExecuteSync is reported as a
// field error instead of being awaited, enforcing "sync if possible".
func ExecuteSync(ctx context.Context, params Params) *Result {
	result, _ := execute(ctx, params, true)
	return result
}

func execute(ctx context.Context, params Params, syncOnly bool) (*Result, <-chan incremental.Payload) {
	logger := params.Logger
	if logger == nil {
		logger = xlog.Noop
	}

	ec, errs := buildExecutionContext(
		params.Schema, params.Document, params.RootValue, params.VariableValues,
		params.OperationName, wrapResolver(params.FieldResolver, params.Middleware), params.TypeResolver,
	)
	if errs != nil {
		logger.Debug("execution context build failed", zap.Int("errors", len(errs)))
		return &Result{Errors: errs}, nil
	}
	ec.Logger = logger
	ec.SyncOnly = syncOnly

	op := ec.Document.OperationDefinitions[ec.Operation]
	rootType, rootErr := rootObjectType(ec.Schema, op.OperationType)
	if rootErr != nil {
		return &Result{Errors: gqlerrors.List{rootErr}}, nil
	}
	logger.Debug("executing operation", zap.String("name", op.Name), zap.String("type", op.OperationType.String()))

	groups, deferredSels := collectFields(ec, rootType.Name, op.SelectionSet, map[string]bool{})
	serial := op.OperationType == ast.OperationTypeMutation
	// A NonNull violation anywhere in the root selection set nulls the
	// entire "data" object (§4.7 step 5); the error that caused it was
	// already recorded on ec.Errors by whichever completeValue/resolver
	// call produced errNullBubble, so the returned error itself is
	// discarded here -- only the nulling-out of data matters.
	data, _ := executeFields(ctx, ec, rootType, ec.RootValue, nil, groups, serial)
	processDeferredSelections(ctx, ec, rootType, ec.RootValue, nil, deferredSels)

	result := &Result{Data: data, Errors: ec.Errors}
	if len(ec.Errors) > 0 {
		logger.Warn("operation completed with errors", zap.Int("count", len(ec.Errors)))
	}

	if ec.Graph == nil {
		return result, nil
	}
	return result, streamPayloads(ec.Graph)
}

// streamPayloads drains an incremental.Graph's subsequent payloads onto
// a channel until HasNext reports false, per §4.8's emission loop.
// Pending records settle asynchronously (resolvers/stream sources
// complete on their own goroutines and call graph.AddDeferredFragment /
// graph.AddStreamItems as they do), so this loop polls rather than
// blocking on a single wakeup source.
func streamPayloads(graph *incremental.Graph) <-chan incremental.Payload {
	out := make(chan incremental.Payload)
	go func() {
		defer close(out)
		for graph.HasNext() {
			payload := incremental.BuildPayload(graph)
			if len(payload.Incremental) == 0 && payload.HasNext {
				continue
			}
			out <- payload
			if !payload.HasNext {
				return
			}
		}
	}()
	return out
}

// wrapResolver applies the middleware chain (§4.9 Middleware) around
// the configured/default field resolver once, so every field lookup
// during this execution reuses the same wrapped function instead of
// rebuilding the chain per field.
func wrapResolver(resolver typesystem.FieldResolveFn, middleware []Middleware) typesystem.FieldResolveFn {
	if resolver == nil {
		resolver = typesystem.DefaultFieldResolver
	}
	if len(middleware) == 0 {
		return resolver
	}
	return Chain(resolver, middleware...)
}
