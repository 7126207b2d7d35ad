package graphql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/graphql"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/incremental"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// scenarioSchema builds the small Query/Mutation graph the scenario
// tests below all share: a scalar greeting, a list-of-non-null Int
// field for list-error behavior, and two mutation fields for serial
// ordering checks, one of which answers through an Awaitable.
func scenarioSchema(t *testing.T, order *[]string) *typesystem.Schema {
	t.Helper()

	nonNullInt := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.Int})
	nonNullString := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})

	box := typesystem.NewObjectThunk("Box", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "label", Type: nonNullString})
		return fm
	}, nil, nil)

	query := typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "greeting", Type: nonNullString})
		fm.Add(&typesystem.Field{Name: "xs", Type: typesystem.ListOf(nonNullInt)})
		fm.Add(&typesystem.Field{Name: "box", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: box}})
		fm.Add(&typesystem.Field{Name: "letters", Type: typesystem.ListOf(nonNullString)})
		return fm
	}, nil, nil)

	mutation := typesystem.NewObjectThunk("Mutation", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{
			Name: "syncStep", Type: nonNullString,
			Resolve: func(_ context.Context, src interface{}, _ map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
				*order = append(*order, "sync")
				return src.(map[string]interface{})["syncStep"], nil
			},
		})
		fm.Add(&typesystem.Field{
			Name: "asyncStep", Type: nonNullString,
			Resolve: func(_ context.Context, src interface{}, _ map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
				return graphql.NewAwaitable(func() (interface{}, error) {
					*order = append(*order, "async")
					return src.(map[string]interface{})["asyncStep"], nil
				}), nil
			},
		})
		return fm
	}, nil, nil)

	schema, err := typesystem.NewSchema(typesystem.SchemaConfig{
		Query:    query,
		Mutation: mutation,
		Types:    []*typesystem.Type{{Kind: typesystem.KindObject, Object: box}},
	})
	require.NoError(t, err)
	return schema
}

// S1: a basic query resolves every selected field.
func TestScenarioS1BasicQuery(t *testing.T) {
	schema := scenarioSchema(t, &[]string{})
	doc, report := graphql.Parse(source.New(`{ greeting box { label } }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result := graphql.ExecuteSync(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"greeting": "hello",
			"box":      map[string]interface{}{"label": "crate"},
		},
	})

	require.Empty(t, result.Errors)
	assert.Equal(t, "hello", result.Data["greeting"])
	assert.Equal(t, "crate", result.Data["box"].(map[string]interface{})["label"])
}

// S2: @skip/@include directives are honored, in line with the
// universal invariant that a skipped/excluded field is absent from the
// response map entirely rather than present with a null value.
func TestScenarioS2IncludeSkip(t *testing.T) {
	schema := scenarioSchema(t, &[]string{})
	doc, report := graphql.Parse(source.New(`query($on: Boolean!) {
		greeting @include(if: $on)
		box @skip(if: true) { label }
	}`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result := graphql.ExecuteSync(context.Background(), graphql.ExecuteParams{
		Schema:         schema,
		Document:       doc,
		VariableValues: map[string]interface{}{"on": false},
		RootValue:      map[string]interface{}{"greeting": "hello"},
	})

	require.Empty(t, result.Errors)
	_, hasGreeting := result.Data["greeting"]
	_, hasBox := result.Data["box"]
	assert.False(t, hasGreeting, "@include(if: false) must omit the field")
	assert.False(t, hasBox, "@skip(if: true) must omit the field")
}

// S3: a list of non-null Int where one backing element is a Go error
// value nulls the whole list at the nearest nullable ancestor and
// reports one located error at the failing item's index -- this
// exercises the completeValue error-item branch directly.
func TestScenarioS3ListOfNonNullWithError(t *testing.T) {
	schema := scenarioSchema(t, &[]string{})
	doc, report := graphql.Parse(source.New(`{ xs }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result := graphql.ExecuteSync(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"xs": []interface{}{1, errors.New("bad"), 2},
		},
	})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad", result.Errors[0].Message)
	assert.Equal(t, []gqlerrors.PathSegment{
		gqlerrors.StringSegment("xs"),
		gqlerrors.IndexSegment(1),
	}, result.Errors[0].Path)
	assert.Nil(t, result.Data["xs"], "a non-null item error nulls the whole list at the nearest nullable ancestor")
}

// S4: mutation root fields resolve strictly in document order, one at
// a time, whether the resolver answers synchronously or via an
// Awaitable -- the engine must await each before starting the next.
// Uses Execute (not ExecuteSync), since a resolver answering via
// Awaitable is exactly what ExecuteSync is documented to reject.
func TestScenarioS4SerialMutationsSyncAndAsync(t *testing.T) {
	var order []string
	schema := scenarioSchema(t, &order)
	doc, report := graphql.Parse(source.New(`mutation {
		a: asyncStep
		b: syncStep
		c: asyncStep
	}`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result, ch := graphql.Execute(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"syncStep":  "S",
			"asyncStep": "A",
		},
	})
	assert.Nil(t, ch, "this document uses neither @defer nor @stream")

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"async", "sync", "async"}, order,
		"mutation root fields resolve serially in document order regardless of sync/async resolver")
	assert.Equal(t, "A", result.Data["a"])
	assert.Equal(t, "S", result.Data["b"])
	assert.Equal(t, "A", result.Data["c"])
}

// ExecuteSync must raise an error rather than silently await a pending
// value, enforcing "sync if possible" (§5).
func TestExecuteSyncRejectsAwaitableResolver(t *testing.T) {
	var order []string
	schema := scenarioSchema(t, &order)
	doc, report := graphql.Parse(source.New(`mutation { asyncStep }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result := graphql.ExecuteSync(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"asyncStep": "A",
		},
	})

	require.Len(t, result.Errors, 1)
	assert.Nil(t, result.Data["asyncStep"])
	assert.Empty(t, order, "the async resolver's goroutine body must never run under ExecuteSync")
}

// Regression: a NonNull violation on one field must null the entire
// enclosing object, not just that field's own response key, leaving
// sibling fields (even ones that resolved successfully) out of the
// response too -- the cross-field-boundary case completeValue's own
// recursion can't catch on its own, since "a" and "b" are two separate
// executeFieldGroup calls joined back together by executeFields.
func TestNonNullViolationNullsEnclosingObject(t *testing.T) {
	nonNullString := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})
	nullableString := &typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String}

	query := typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "a", Type: nonNullString})
		fm.Add(&typesystem.Field{Name: "b", Type: nullableString})
		return fm
	}, nil, nil)
	schema, err := typesystem.NewSchema(typesystem.SchemaConfig{Query: query})
	require.NoError(t, err)

	doc, report := graphql.Parse(source.New(`{ a b }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result := graphql.ExecuteSync(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"a": nil,
			"b": "present",
		},
	})

	require.Len(t, result.Errors, 1)
	assert.Nil(t, result.Data, "a's NonNull violation must null the whole root object, not just key \"a\"")
}

// S5: @defer delivers the initial response without the deferred
// fragment's fields, then exactly one subsequent payload carrying them
// -- processDeferredSelections fully queues the deferred result onto
// the Graph synchronously before Execute returns, so there is no
// pacing gap for this case the way there is for @stream (see the C9
// divergence note in DESIGN.md).
func TestScenarioS5DeferDeliversOneSubsequentPayload(t *testing.T) {
	schema := scenarioSchema(t, &[]string{})
	doc, report := graphql.Parse(source.New(`{
		greeting
		... @defer(label: "slow") {
			box { label }
		}
	}`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result, ch := graphql.Execute(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"greeting": "hello",
			"box":      map[string]interface{}{"label": "crate"},
		},
	})

	require.Empty(t, result.Errors)
	assert.Equal(t, "hello", result.Data["greeting"])
	_, deferredPresent := result.Data["box"]
	assert.False(t, deferredPresent, "a deferred fragment's fields are absent from the initial response")
	require.NotNil(t, ch, "a document using @defer must return a non-nil incremental channel")

	var payloads []incremental.Payload
	for p := range drain(t, ch) {
		payloads = append(payloads, p)
	}

	require.Len(t, payloads, 1, "@defer delivers exactly one subsequent payload for a single label")
	require.Len(t, payloads[0].Incremental, 1)
	item := payloads[0].Incremental[0]
	assert.Equal(t, "slow", item.Label)
	assert.Equal(t, "crate", item.Data["box"].(map[string]interface{})["label"])
	assert.False(t, payloads[0].HasNext)
}

// S6: @stream(initialCount: 1) delivers the first item inline and
// streams the rest. As documented in DESIGN.md's C9 divergence note,
// this implementation completes every remaining item synchronously
// before Execute returns, so the engine collapses the remaining items
// into a single combined subsequent payload rather than one payload
// per item; this test asserts that actually-implemented behavior.
func TestScenarioS6StreamCombinesRemainingItemsIntoOnePayload(t *testing.T) {
	schema := scenarioSchema(t, &[]string{})
	doc, report := graphql.Parse(source.New(`{ letters @stream(initialCount: 1) }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result, ch := graphql.Execute(context.Background(), graphql.ExecuteParams{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"letters": []interface{}{"apple", "banana", "coconut"},
		},
	})

	require.Empty(t, result.Errors)
	assert.Equal(t, []interface{}{"apple"}, result.Data["letters"])
	require.NotNil(t, ch)

	var payloads []incremental.Payload
	for p := range drain(t, ch) {
		payloads = append(payloads, p)
	}

	require.Len(t, payloads, 1, "both remaining stream items arrive queued before streamPayloads ever polls, so they collapse into one payload")
	assert.Equal(t, []interface{}{"banana", "coconut"}, payloads[0].Incremental[0].Items)
	assert.False(t, payloads[0].HasNext)
}

// Universal invariant: printing a parsed document and re-parsing the
// printed text yields an AST that prints identically again (parse ->
// print -> parse is idempotent on its own output).
func TestInvariantParsePrintRoundTrips(t *testing.T) {
	const query = `query Greet($name: String!) { greeting(name: $name) box { label } }`
	doc, report := graphql.Parse(source.New(query))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	printed := graphql.PrintAST(doc)

	reparsed, report2 := graphql.Parse(source.New(printed))
	require.False(t, report2.HasErrors(), "%v", report2.ExternalErrors)

	assert.Equal(t, printed, graphql.PrintAST(reparsed))
}

// Universal invariant: a resolver's synchronous value and its
// equivalent wrapped in an Awaitable produce identical response data.
func TestInvariantSyncAndAsyncResolversAreEquivalent(t *testing.T) {
	nonNullString := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})

	buildSchema := func(async bool) *typesystem.Schema {
		query := typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
			fm := typesystem.NewFieldMap()
			resolve := func(_ context.Context, src interface{}, _ map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
				v := src.(map[string]interface{})["value"]
				if !async {
					return v, nil
				}
				return graphql.NewAwaitable(func() (interface{}, error) { return v, nil }), nil
			}
			fm.Add(&typesystem.Field{Name: "value", Type: nonNullString, Resolve: resolve})
			return fm
		}, nil, nil)
		schema, err := typesystem.NewSchema(typesystem.SchemaConfig{Query: query})
		require.NoError(t, err)
		return schema
	}

	doc, report := graphql.Parse(source.New(`{ value }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	syncResult := graphql.ExecuteSync(context.Background(), graphql.ExecuteParams{
		Schema: buildSchema(false), Document: doc,
		RootValue: map[string]interface{}{"value": "x"},
	})
	asyncResult, _ := graphql.Execute(context.Background(), graphql.ExecuteParams{
		Schema: buildSchema(true), Document: doc,
		RootValue: map[string]interface{}{"value": "x"},
	})

	require.Empty(t, syncResult.Errors)
	require.Empty(t, asyncResult.Errors)
	assert.Equal(t, syncResult.Data, asyncResult.Data)
}

// drain reads every payload off ch until it closes, failing the test
// if that takes longer than a few seconds (a hung channel means the
// incremental graph never reached HasNext() == false).
func drain(t *testing.T, ch <-chan incremental.Payload) <-chan incremental.Payload {
	t.Helper()
	out := make(chan incremental.Payload)
	go func() {
		defer close(out)
		deadline := time.After(5 * time.Second)
		for {
			select {
			case p, ok := <-ch:
				if !ok {
					return
				}
				out <- p
			case <-deadline:
				t.Error("timed out waiting for incremental payload channel to close")
				return
			}
		}
	}()
	return out
}
