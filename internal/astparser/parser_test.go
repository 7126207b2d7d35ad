package astparser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/source"
)

func mustParseExecutable(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(source.New(body))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)
	return doc
}

func TestParseAnonymousQuery(t *testing.T) {
	doc := mustParseExecutable(t, `{ hero { name } }`)
	require.Len(t, doc.OperationDefinitions, 1)
	op := doc.OperationDefinitions[0]
	assert.Equal(t, ast.OperationTypeQuery, op.OperationType)
	assert.Equal(t, "", op.Name)

	ss := doc.SelectionSets[op.SelectionSet]
	require.Len(t, ss.Selections, 1)
	hero := doc.Fields[ss.Selections[0].Ref]
	assert.Equal(t, "hero", hero.Name)
	assert.True(t, hero.HasSelectionSet)
}

func TestParseNamedOperationWithVariablesAndDirectives(t *testing.T) {
	doc := mustParseExecutable(t, `
		query HeroName($ep: Episode = JEDI) {
			hero(episode: $ep) @include(if: true) {
				name
				... on Droid { primaryFunction }
				...FriendsFragment
			}
		}
		fragment FriendsFragment on Character {
			friends { name }
		}
	`)
	require.Len(t, doc.OperationDefinitions, 1)
	op := doc.OperationDefinitions[0]
	assert.Equal(t, "HeroName", op.Name)
	require.Len(t, op.VariableDefinitions, 1)
	vd := doc.VariableDefinitions[op.VariableDefinitions[0]]
	assert.Equal(t, "ep", vd.VariableName)
	assert.True(t, vd.HasDefaultValue)
	assert.Equal(t, ast.ValueKindEnum, doc.Values[vd.DefaultValue].Kind)
	assert.Equal(t, "JEDI", doc.Values[vd.DefaultValue].Raw)

	ss := doc.SelectionSets[op.SelectionSet]
	require.Len(t, ss.Selections, 1)
	hero := doc.Fields[ss.Selections[0].Ref]
	assert.Equal(t, "hero", hero.Name)
	require.Len(t, hero.Arguments, 1)
	arg := doc.Arguments[hero.Arguments[0]]
	assert.Equal(t, "episode", arg.Name)
	assert.Equal(t, ast.ValueKindVariable, doc.Values[arg.Value].Kind)
	require.Len(t, hero.Directives, 1)
	assert.Equal(t, "include", doc.Directives[hero.Directives[0]].Name)

	heroSel := doc.SelectionSets[hero.SelectionSet]
	require.Len(t, heroSel.Selections, 3)
	assert.Equal(t, ast.NodeKindField, heroSel.Selections[0].Kind)
	assert.Equal(t, ast.NodeKindInlineFragment, heroSel.Selections[1].Kind)
	assert.Equal(t, ast.NodeKindFragmentSpread, heroSel.Selections[2].Kind)

	require.Len(t, doc.FragmentDefinitions, 1)
	assert.Equal(t, "FriendsFragment", doc.FragmentDefinitions[0].Name)
	assert.Equal(t, "Character", doc.FragmentDefinitions[0].TypeCondition)
}

func TestParseAliasAndListObjectValues(t *testing.T) {
	doc := mustParseExecutable(t, `{
		heroes: search(filter: {names: ["Luke", "Leia"], active: true, count: null}) { name }
	}`)
	op := doc.OperationDefinitions[0]
	ss := doc.SelectionSets[op.SelectionSet]
	f := doc.Fields[ss.Selections[0].Ref]
	assert.Equal(t, "heroes", f.ResponseKey())
	assert.Equal(t, "search", f.Name)

	arg := doc.Arguments[f.Arguments[0]]
	obj := doc.Values[arg.Value]
	require.Equal(t, ast.ValueKindObject, obj.Kind)
	require.Len(t, obj.ObjectFields, 3)

	namesField := doc.ObjectFields[obj.ObjectFields[0]]
	assert.Equal(t, "names", namesField.Name)
	namesVal := doc.Values[namesField.Value]
	require.Equal(t, ast.ValueKindList, namesVal.Kind)
	require.Len(t, namesVal.ListValues, 2)
	assert.Equal(t, "Luke", doc.Values[namesVal.ListValues[0]].Raw)

	activeField := doc.ObjectFields[obj.ObjectFields[1]]
	assert.True(t, doc.Values[activeField.Value].Boolean)

	countField := doc.ObjectFields[obj.ObjectFields[2]]
	assert.Equal(t, ast.ValueKindNull, doc.Values[countField.Value].Kind)
}

func TestParseSyntaxError(t *testing.T) {
	_, report := astparser.ParseExecutableDocument(source.New(`{ hero { `))
	assert.True(t, report.HasErrors())
}

func TestParseFragmentNamedOnIsRejected(t *testing.T) {
	_, report := astparser.ParseExecutableDocument(source.New(`fragment on on Character { name }`))
	assert.True(t, report.HasErrors())
}

func TestParseTypeSystemDocument(t *testing.T) {
	doc, report := astparser.ParseTypeSystemDocument(source.New(`
		"""The root query type."""
		type Query {
			hero(episode: Episode): Character
		}

		interface Character {
			name: String!
		}

		enum Episode { NEWHOPE JEDI }

		union SearchResult = Character

		input HeroFilter {
			name: String = "any"
		}

		directive @confidential(reason: String = "none") on FIELD_DEFINITION
	`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)

	require.Len(t, doc.ObjectTypeDefinitions, 1)
	q := doc.ObjectTypeDefinitions[0]
	assert.Equal(t, "Query", q.Name)
	assert.True(t, q.Description.HasDescription)
	assert.True(t, q.Description.Block)
	require.Len(t, q.FieldsRefs, 1)
	heroField := doc.FieldDefinitions[q.FieldsRefs[0]]
	assert.Equal(t, "hero", heroField.Name)
	require.Len(t, heroField.ArgumentsRefs, 1)

	require.Len(t, doc.InterfaceTypeDefinitions, 1)
	require.Len(t, doc.EnumTypeDefinitions, 1)
	require.Len(t, doc.UnionTypeDefinitions, 1)
	require.Len(t, doc.InputObjectTypeDefinitions, 1)
	require.Len(t, doc.DirectiveDefinitions, 1)
	dd := doc.DirectiveDefinitions[0]
	assert.Equal(t, "confidential", dd.Name)
	assert.Equal(t, []ast.DirectiveLocation{ast.LocationFieldDefinition}, dd.Locations)
}

func TestParseSchemaDefinitionAndExtension(t *testing.T) {
	doc, report := astparser.ParseTypeSystemDocument(source.New(`
		schema { query: Query }
		extend type Query { extra: String }
	`))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)
	require.Len(t, doc.SchemaDefinitions, 1)
	require.Len(t, doc.RootOperationTypeDefs, 1)
	assert.Equal(t, "Query", doc.RootOperationTypeDefs[0].NamedType)

	require.Len(t, doc.ObjectTypeDefinitions, 1)
	assert.True(t, doc.ObjectTypeDefinitions[0].IsExtension)
}
