package introspection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/executor"
	"github.com/wundergraph/graphql-core-engine/internal/introspection"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

func buildTestSchema(t *testing.T) *typesystem.Schema {
	t.Helper()
	nonNullString := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})

	query := typesystem.NewObjectThunk("Query", "The query root.", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "hello", Type: nonNullString})
		return fm
	}, nil, nil)

	schema, err := introspection.BuildSchema(typesystem.SchemaConfig{Query: query})
	require.NoError(t, err)
	return schema
}

func TestBuildSchemaGraftsSchemaAndTypeFields(t *testing.T) {
	schema := buildTestSchema(t)

	queryFields := schema.Query.Fields()
	_, hasSchema := queryFields.Lookup("__schema")
	_, hasType := queryFields.Lookup("__type")
	_, hasHello := queryFields.Lookup("hello")
	assert.True(t, hasSchema)
	assert.True(t, hasType)
	assert.True(t, hasHello, "grafting must not drop the original Query's own fields")

	_, ok := schema.LookupType("__Schema")
	assert.True(t, ok)
	_, ok = schema.LookupType("__Type")
	assert.True(t, ok)
}

func TestIntrospectionQueryResolvesSchemaAndType(t *testing.T) {
	schema := buildTestSchema(t)
	doc, report := astparser.ParseExecutableDocument(source.New(`
		{
			__schema {
				queryType { name }
				types { name }
			}
			__type(name: "Query") {
				kind
				name
				fields {
					name
				}
			}
		}
	`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	result := executor.ExecuteSync(context.Background(), executor.Params{
		Schema:    schema,
		Document:  doc,
		RootValue: map[string]interface{}{},
	})
	require.Empty(t, result.Errors)

	schemaData := result.Data["__schema"].(map[string]interface{})
	queryType := schemaData["queryType"].(map[string]interface{})
	assert.Equal(t, "Query", queryType["name"])

	names := map[string]bool{}
	for _, raw := range schemaData["types"].([]interface{}) {
		names[raw.(map[string]interface{})["name"].(string)] = true
	}
	assert.True(t, names["Query"])
	assert.True(t, names["__Schema"])
	assert.True(t, names["String"])

	typeData := result.Data["__type"].(map[string]interface{})
	assert.Equal(t, "OBJECT", typeData["kind"])
	assert.Equal(t, "Query", typeData["name"])
	fieldNames := map[string]bool{}
	for _, raw := range typeData["fields"].([]interface{}) {
		fieldNames[raw.(map[string]interface{})["name"].(string)] = true
	}
	assert.True(t, fieldNames["hello"])
	assert.True(t, fieldNames["__schema"], "the query root type's own field map carries the grafted meta-fields, matching graphql-js")
}

func TestIntrospectionQueryConstantIncludesFullTypeFragment(t *testing.T) {
	assert.Contains(t, introspection.Query, "fragment FullType on __Type")
	assert.Contains(t, introspection.Query, "isOneOf")

	minimal := introspection.BuildQuery(introspection.Options{})
	assert.NotContains(t, minimal, "isRepeatable")
	assert.NotContains(t, minimal, "specifiedByURL")
}
