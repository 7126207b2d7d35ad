package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/graphql"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// TestValidationCacheReusesResultForSameSourceAndSchema proves
// ValidationCache actually memoizes instead of just computing and
// discarding a hash: it mutates an already-cached document in a way
// that would flip a fresh Validate's outcome, then shows ValidateCached
// still returns the original cached result for the same source text.
func TestValidationCacheReusesResultForSameSourceAndSchema(t *testing.T) {
	nonNullString := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})
	query := typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "greeting", Type: nonNullString})
		return fm
	}, nil, nil)
	schema, err := typesystem.NewSchema(typesystem.SchemaConfig{Query: query})
	require.NoError(t, err)

	doc, report := graphql.Parse(source.New(`{ greeting }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	cache, err := graphql.NewValidationCache(8)
	require.NoError(t, err)

	first := cache.ValidateCached(schema, doc)
	require.Empty(t, first, "a valid operation against this schema has no validation errors")

	// Corrupt the already-parsed document to reference a field that
	// doesn't exist on Query. A fresh Validate call would now report
	// it, but doc.Input (the cache key) hasn't changed.
	doc.Fields[0].Name = "doesNotExist"

	second := cache.ValidateCached(schema, doc)
	assert.Empty(t, second, "ValidateCached must return the cached result instead of re-validating the mutated document")

	fresh := graphql.Validate(schema, doc)
	assert.NotEmpty(t, fresh, "sanity check: validating the mutated document directly does report the broken field")
}

// Two different schemas must not share a cache entry for the same
// source text, even though both keys hash the same operation body.
func TestValidationCacheKeysIncludeSchemaSignature(t *testing.T) {
	nonNullString := typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})

	schemaWithGreeting, err := typesystem.NewSchema(typesystem.SchemaConfig{
		Query: typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
			fm := typesystem.NewFieldMap()
			fm.Add(&typesystem.Field{Name: "greeting", Type: nonNullString})
			return fm
		}, nil, nil),
	})
	require.NoError(t, err)

	schemaWithoutGreeting, err := typesystem.NewSchema(typesystem.SchemaConfig{
		Query: typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
			fm := typesystem.NewFieldMap()
			fm.Add(&typesystem.Field{Name: "farewell", Type: nonNullString})
			return fm
		}, nil, nil),
	})
	require.NoError(t, err)

	doc, report := graphql.Parse(source.New(`{ greeting }`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	cache, err := graphql.NewValidationCache(8)
	require.NoError(t, err)

	assert.Empty(t, cache.ValidateCached(schemaWithGreeting, doc))
	assert.NotEmpty(t, cache.ValidateCached(schemaWithoutGreeting, doc),
		"a schema without the field must not reuse the other schema's cached result")
}
