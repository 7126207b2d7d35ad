package graphql

import (
	"context"

	"github.com/wundergraph/graphql-core-engine/internal/executor"
	"github.com/wundergraph/graphql-core-engine/internal/incremental"
)

// Result is one GraphQL response (§6 "Result shape").
type Result = executor.Result

// ExecuteParams is every input Execute/ExecuteSync/Subscribe take (§4.7
// entry signature).
type ExecuteParams = executor.Params

// Middleware wraps the default field resolver, applied right-to-left
// (§9 "Middleware chain", §4.9 supplemented feature).
type Middleware = executor.Middleware

// SourceEventStream is what a subscription root field's Subscribe hook
// returns (§4.7 step 7).
type SourceEventStream = executor.SourceEventStream

var NewSourceEventStream = executor.NewSourceEventStream

// Awaitable is what a field resolver returns in place of an immediate
// value to signal pending async work (§4.7 step 4, §9 "Dual sync/async
// resolvers").
type Awaitable = executor.Awaitable

// NewAwaitable returns an Awaitable a resolver can return instead of
// blocking; fn runs on its own goroutine the first time it is awaited.
var NewAwaitable = executor.NewAwaitable

// Execute runs params.Document against params.Schema (§4.7). The
// returned channel carries subsequent `@defer`/`@stream` payloads, and
// is nil when the operation never uses incremental delivery (§4.8, §6
// "Incremental payloads").
func Execute(ctx context.Context, params ExecuteParams) (*Result, <-chan incremental.Payload) {
	return executor.Execute(ctx, params)
}

// ExecuteSync runs Execute and discards any subsequent incremental
// payloads (§5 "A synchronous variant (execute_sync)", §6 "execute_sync").
func ExecuteSync(ctx context.Context, params ExecuteParams) *Result {
	return executor.ExecuteSync(ctx, params)
}

// Subscribe resolves a subscription operation's root field to a
// SourceEventStream and re-runs execution once per event it yields (§4.7
// step 7, §6 "subscribe").
func Subscribe(ctx context.Context, params ExecuteParams) (<-chan *Result, error) {
	return executor.Subscribe(ctx, params)
}
