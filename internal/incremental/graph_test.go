package incremental_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/incremental"
)

func TestGraphDeferredFragmentBecomesPendingThenCompletes(t *testing.T) {
	g := incremental.NewGraph()
	fragment := incremental.NewDeferredFragmentRecord([]gqlerrors.PathSegment{gqlerrors.StringSegment("human")}, "", nil)

	g.AddDeferredFragment(fragment, &incremental.DeferredGroupedFieldSetResult{
		Path:                    fragment.Path,
		Data:                    map[string]interface{}{"name": "Luke"},
		DeferredFragmentRecords: []*incremental.DeferredFragmentRecord{fragment},
	})

	pending := g.GetNewPending()
	require.Len(t, pending, 1)
	assert.NotEmpty(t, fragment.ID)
	assert.True(t, g.HasNext())

	reconciled := g.CompleteDeferredFragment(fragment)
	require.Len(t, reconciled, 1)
	assert.Equal(t, "Luke", reconciled[0].Data["name"])
	assert.False(t, g.HasNext())
}

func TestGraphStreamItemsPendingUntilTerminated(t *testing.T) {
	g := incremental.NewGraph()
	stream := incremental.NewStreamItemsRecord([]gqlerrors.PathSegment{gqlerrors.StringSegment("friends")}, "")

	g.AddStreamItems(stream, &incremental.StreamItemsResult{Record: stream, Items: []interface{}{"Leia"}})
	pending := g.GetNewPending()
	require.Len(t, pending, 1)
	assert.NotEmpty(t, stream.ID)
	assert.True(t, g.HasNext())

	payload := incremental.BuildPayload(g)
	require.Len(t, payload.Incremental, 1)
	assert.Equal(t, []interface{}{"Leia"}, payload.Incremental[0].Items)

	g.AddStreamItems(stream, &incremental.StreamItemsResult{Record: stream, Terminated: true})
	final := incremental.BuildPayload(g)
	assert.Empty(t, final.Incremental)
	assert.False(t, final.HasNext)
}

func TestBuildPayloadSkipsUnreconciledDeferredFragment(t *testing.T) {
	g := incremental.NewGraph()
	fragment := incremental.NewDeferredFragmentRecord(nil, "", nil)
	fragment.ExpectedReconcilableResults = 2 // two co-located deferred selections

	g.AddDeferredFragment(fragment, &incremental.DeferredGroupedFieldSetResult{
		DeferredFragmentRecords: []*incremental.DeferredFragmentRecord{fragment},
	})
	g.GetNewPending()

	payload := incremental.BuildPayload(g)
	assert.Empty(t, payload.Incremental, "fragment is not ready until both expected results arrive")
	assert.True(t, payload.HasNext)
}
