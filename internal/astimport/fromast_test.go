package astimport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/astimport"
	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

func buildConfig(t *testing.T, sdl string) typesystem.SchemaConfig {
	t.Helper()
	doc, report := astparser.ParseTypeSystemDocument(source.New(sdl))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)
	cfg, err := astimport.BuildSchemaConfig(doc)
	require.NoError(t, err)
	return cfg
}

func TestBuildSchemaConfigDefaultRootTypes(t *testing.T) {
	cfg := buildConfig(t, `
		type Query {
			hello: String!
			human: Human
		}

		type Human {
			name: String!
			bestFriend: Human
		}
	`)

	require.NotNil(t, cfg.Query)
	assert.Equal(t, "Query", cfg.Query.Name)

	schema, err := typesystem.NewSchema(cfg)
	require.NoError(t, err)

	helloField, ok := schema.Query.Fields().Lookup("hello")
	require.True(t, ok)
	assert.True(t, helloField.Type.IsNonNull())
	assert.Equal(t, "String", helloField.Type.OfType.Named())

	human, ok := schema.LookupType("Human")
	require.True(t, ok)
	bestFriend, ok := human.Object.Fields().Lookup("bestFriend")
	require.True(t, ok)
	assert.Same(t, human.Object, bestFriend.Type.Object, "self-referential field must resolve to the same Object instance")
}

func TestBuildSchemaConfigExplicitSchemaBlock(t *testing.T) {
	cfg := buildConfig(t, `
		schema {
			query: RootQuery
			mutation: RootMutation
		}

		type RootQuery {
			ping: String!
		}

		type RootMutation {
			noop: Boolean!
		}
	`)

	require.NotNil(t, cfg.Query)
	require.NotNil(t, cfg.Mutation)
	assert.Equal(t, "RootQuery", cfg.Query.Name)
	assert.Equal(t, "RootMutation", cfg.Mutation.Name)
}

func TestBuildSchemaConfigInterfacesUnionsEnumsAndInputs(t *testing.T) {
	cfg := buildConfig(t, `
		interface Node {
			id: ID!
		}

		type Droid implements Node {
			id: ID!
			primaryFunction: String
		}

		type Human implements Node {
			id: ID!
			homePlanet: String
		}

		union SearchResult = Droid | Human

		enum Episode {
			NEWHOPE
			EMPIRE
			JEDI
		}

		input ListFilter {
			episode: Episode
			limit: Int = 10
		}

		type Query {
			node(id: ID!): Node
			search: [SearchResult!]
			heroes(filter: ListFilter): [Human!]!
		}
	`)

	schema, err := typesystem.NewSchema(cfg)
	require.NoError(t, err)

	nodeType, ok := schema.LookupType("Node")
	require.True(t, ok)
	droidType, ok := schema.LookupType("Droid")
	require.True(t, ok)
	assert.True(t, schema.IsPossibleType(nodeType, droidType.Object))

	searchType, ok := schema.LookupType("SearchResult")
	require.True(t, ok)
	possible := schema.PossibleTypes(searchType)
	assert.Len(t, possible, 2)

	episodeType, ok := schema.LookupType("Episode")
	require.True(t, ok)
	_, ok = episodeType.Enum.ValueByName("JEDI")
	assert.True(t, ok)

	filterType, ok := schema.LookupType("ListFilter")
	require.True(t, ok)
	limitField, ok := filterType.InputObject.Fields().Lookup("limit")
	require.True(t, ok)
	assert.Equal(t, int64(10), limitField.Default.Value)
}

func TestBuildSchemaConfigDeprecatedAndSpecifiedBy(t *testing.T) {
	cfg := buildConfig(t, `
		scalar DateTime @specifiedBy(url: "https://example.com/datetime")

		type Query {
			legacyField: String @deprecated(reason: "use newField instead")
			newField: String
		}
	`)

	schema, err := typesystem.NewSchema(cfg)
	require.NoError(t, err)

	dt, ok := schema.LookupType("DateTime")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/datetime", dt.Scalar.SpecifiedByURL)

	legacy, ok := schema.Query.Fields().Lookup("legacyField")
	require.True(t, ok)
	assert.True(t, legacy.Deprecation.IsDeprecated)
	assert.Equal(t, "use newField instead", legacy.Deprecation.Reason)
}

func TestBuildSchemaConfigDirectiveDefinitionAndTypeExtension(t *testing.T) {
	cfg := buildConfig(t, `
		directive @cacheControl(maxAge: Int!) repeatable on FIELD_DEFINITION | OBJECT

		type Query {
			hello: String!
		}

		extend type Query {
			goodbye: String!
		}
	`)

	var cacheControl *typesystem.Directive
	for _, d := range cfg.Directives {
		if d.Name == "cacheControl" {
			cacheControl = d
		}
	}
	require.NotNil(t, cacheControl, "custom directive definitions must be carried into SchemaConfig.Directives")
	assert.True(t, cacheControl.IsRepeatable)

	schema, err := typesystem.NewSchema(cfg)
	require.NoError(t, err)
	_, hasHello := schema.Query.Fields().Lookup("hello")
	_, hasGoodbye := schema.Query.Fields().Lookup("goodbye")
	assert.True(t, hasHello)
	assert.True(t, hasGoodbye, "extend type must merge fields into the base definition")
}
