package executor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/executor"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// testSchema builds a small Query/Mutation schema backed entirely by
// map[string]interface{} source values so DefaultFieldResolver can
// resolve every field without custom resolvers, except where a test
// needs one explicitly (friends, order tracking).
func testSchema(t *testing.T) (*typesystem.Schema, *[]string) {
	t.Helper()

	stringType := &typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String}
	nonNullString := typesystem.NonNullOf(stringType)

	human := typesystem.NewObjectThunk("Human", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "name", Type: nonNullString})
		fm.Add(&typesystem.Field{Name: "friends", Type: typesystem.ListOf(stringType)})
		return fm
	}, nil, nil)

	query := typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "hello", Type: nonNullString})
		fm.Add(&typesystem.Field{Name: "human", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: human}})
		fm.Add(&typesystem.Field{Name: "missingName", Type: nonNullString})
		return fm
	}, nil, nil)

	var order []string
	recordOrder := func(name string) typesystem.FieldResolveFn {
		return func(_ context.Context, source interface{}, _ map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
			order = append(order, name)
			return source.(map[string]interface{})[name], nil
		}
	}
	mutation := typesystem.NewObjectThunk("Mutation", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "first", Type: nonNullString, Resolve: recordOrder("first")})
		fm.Add(&typesystem.Field{Name: "second", Type: nonNullString, Resolve: recordOrder("second")})
		return fm
	}, nil, nil)

	schema, err := typesystem.NewSchema(typesystem.SchemaConfig{
		Query:    query,
		Mutation: mutation,
		Types:    []*typesystem.Type{{Kind: typesystem.KindObject, Object: human}},
	})
	require.NoError(t, err)
	return schema, &order
}

func parse(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(source.New(body))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)
	return doc
}

func TestExecuteSyncResolvesScalarAndObjectFields(t *testing.T) {
	schema, _ := testSchema(t)
	doc := parse(t, `{ hello human { name friends } }`)

	result := executor.ExecuteSync(context.Background(), executor.Params{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"hello": "world",
			"human": map[string]interface{}{
				"name":    "Luke",
				"friends": []interface{}{"Leia", "Han"},
			},
		},
	})

	require.Empty(t, result.Errors)
	assert.Equal(t, "world", result.Data["hello"])
	human := result.Data["human"].(map[string]interface{})
	assert.Equal(t, "Luke", human["name"])
	assert.Equal(t, []interface{}{"Leia", "Han"}, human["friends"])
}

func TestExecuteSyncNullsNonNullViolationAtNearestAncestor(t *testing.T) {
	schema, _ := testSchema(t)
	doc := parse(t, `{ human { name } missingName }`)

	result := executor.ExecuteSync(context.Background(), executor.Params{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"human":       map[string]interface{}{"name": "Luke"},
			"missingName": nil,
		},
	})

	require.Len(t, result.Errors, 1)
	assert.Nil(t, result.Data["missingName"])
	assert.Nil(t, result.Data, "a root field's nearest nullable ancestor is data itself, so human is nulled with it")
}

func TestExecuteSyncRunsMutationFieldsSerially(t *testing.T) {
	schema, order := testSchema(t)
	doc := parse(t, `mutation { second: second first: first }`)

	result := executor.ExecuteSync(context.Background(), executor.Params{
		Schema:   schema,
		Document: doc,
		RootValue: map[string]interface{}{
			"first":  "1",
			"second": "2",
		},
		OperationName: "",
	})

	require.Empty(t, result.Errors)
	assert.Equal(t, []string{"second", "first"}, *order, "mutation root fields resolve in document order, one at a time")
}

func TestExecuteSyncAppliesSkipDirective(t *testing.T) {
	schema, _ := testSchema(t)
	doc := parse(t, `query($skip: Boolean!) { hello @skip(if: $skip) }`)

	result := executor.ExecuteSync(context.Background(), executor.Params{
		Schema:         schema,
		Document:       doc,
		VariableValues: map[string]interface{}{"skip": true},
		RootValue:      map[string]interface{}{"hello": "world"},
	})

	require.Empty(t, result.Errors)
	_, present := result.Data["hello"]
	assert.False(t, present)
}
