package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astparser"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
	"github.com/wundergraph/graphql-core-engine/internal/validator"
)

// testSchema builds a small schema shared by every test: a Character
// interface, a Human object implementing it, a query root with a
// nullable and a required argument, and a mutation root -- enough
// surface to exercise every rule without per-test schema boilerplate.
func testSchema(t *testing.T) *typesystem.Schema {
	t.Helper()

	episodeEnum := typesystem.NewEnum("Episode", "", []*typesystem.EnumValue{
		{Name: "NEWHOPE"},
		{Name: "EMPIRE"},
		{Name: "JEDI"},
	})

	character := typesystem.NewInterfaceThunk("Character", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "id", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.ID})})
		fm.Add(&typesystem.Field{Name: "name", Type: &typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String}})
		return fm
	}, nil, nil)

	var human *typesystem.Object
	human = typesystem.NewObjectThunk("Human", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "id", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.ID})})
		fm.Add(&typesystem.Field{Name: "name", Type: &typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String}})
		fm.Add(&typesystem.Field{Name: "homePlanet", Type: &typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String}})
		return fm
	}, func() []*typesystem.Interface { return []*typesystem.Interface{character} }, nil)

	heroArgs := typesystem.NewArgumentMap()
	heroArgs.Add(&typesystem.Argument{Name: "episode", Type: &typesystem.Type{Kind: typesystem.KindEnum, Enum: episodeEnum}})

	createArgs := typesystem.NewArgumentMap()
	createArgs.Add(&typesystem.Argument{Name: "name", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindScalar, Scalar: typesystem.String})})

	query := typesystem.NewObjectThunk("Query", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "hero", Type: &typesystem.Type{Kind: typesystem.KindInterface, Interface: character}, Args: heroArgs})
		fm.Add(&typesystem.Field{Name: "human", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: human}})
		return fm
	}, nil, nil)

	mutation := typesystem.NewObjectThunk("Mutation", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "createHuman", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: human}, Args: createArgs})
		return fm
	}, nil, nil)

	subscription := typesystem.NewObjectThunk("Subscription", "", func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		fm.Add(&typesystem.Field{Name: "humanCreated", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: human}})
		return fm
	}, nil, nil)

	schema, err := typesystem.NewSchema(typesystem.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
		Types:        []*typesystem.Type{{Kind: typesystem.KindObject, Object: human}},
	})
	require.NoError(t, err)
	return schema
}

func parse(t *testing.T, body string) *ast.Document {
	t.Helper()
	doc, report := astparser.ParseExecutableDocument(source.New(body))
	require.False(t, report.HasErrors(), "%v", report.ExternalErrors)
	return doc
}

func TestValidateAcceptsWellFormedQuery(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		query HeroForEpisode($ep: Episode) {
			hero(episode: $ep) {
				id
				name
				... on Human { homePlanet }
				...NameFragment
			}
		}
		fragment NameFragment on Character { name }
	`)
	errs := validator.Validate(schema, doc)
	assert.Empty(t, errs, "%v", errs)
}

func TestValidateRejectsUnknownField(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero { nickname } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `Cannot query field "nickname"`)
}

func TestValidateAllowsIntrospectionMetaFields(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero { __typename name } }`)
	errs := validator.Validate(schema, doc)
	assert.Empty(t, errs, "%v", errs)
}

func TestValidateRejectsDuplicateOperationNames(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		query Same { hero { name } }
		query Same { human { name } }
	`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `one operation named "Same"`)
}

func TestValidateRejectsAnonymousAlongsideNamed(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		{ hero { name } }
		query Named { human { name } }
	`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "must be the only defined operation")
}

func TestValidateRejectsMultiFieldSubscription(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		subscription { humanCreated { name } __typename }
	`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "must select only one top level field")
}

func TestValidateRejectsUnknownFragment(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero { ...Missing } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `Unknown fragment "Missing"`)
}

func TestValidateRejectsUnusedFragment(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		{ hero { name } }
		fragment Unused on Character { name }
	`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `Fragment "Unused" is never used`)
}

func TestValidateRejectsFragmentCycle(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		{ hero { ...A } }
		fragment A on Character { name ...B }
		fragment B on Character { name ...A }
	`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "within itself")
}

func TestValidateRejectsFragmentOnScalarType(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `
		{ hero { ...Bad } }
		fragment Bad on String { name }
	`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "non composite type")
}

func TestValidateRejectsUnknownDirective(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero @bogus { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `Unknown directive "@bogus"`)
}

func TestValidateRejectsDirectiveAtWrongLocation(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `query @skip(if: true) { hero { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "may not be used on")
}

func TestValidateRejectsUnknownArgument(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero(weapon: "lightsaber") { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `Unknown argument "weapon"`)
}

func TestValidateRejectsMissingRequiredArgument(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `mutation { createHuman { id } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `argument "name"`)
	assert.Contains(t, errs.Error(), "is required")
}

func TestValidateRejectsDuplicateArgumentName(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero(episode: JEDI, episode: NEWHOPE) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `one argument named "episode"`)
}

func TestValidateRejectsWrongLiteralType(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero(episode: 1) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "Expected value of type")
}

func TestValidateRejectsUnknownEnumValue(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero(episode: ENDOR) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `does not exist in "Episode" enum`)
}

func TestValidateRejectsUndeclaredVariable(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero(episode: $missing) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `Variable "$missing" is not defined`)
}

func TestValidateRejectsDuplicateVariableName(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `query ($ep: Episode, $ep: Episode) { hero(episode: $ep) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), `one variable named "$ep"`)
}

func TestValidateRejectsNonInputVariableType(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `query ($h: Human) { hero { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "cannot be non-input type")
}

func TestValidateRejectsIncompatibleVariableUsage(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `query ($name: String!) { hero(episode: $name) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "used in position expecting type")
}

func TestValidateRejectsConflictingSameKeyFields(t *testing.T) {
	schema := testSchema(t)
	doc := parse(t, `{ hero(episode: JEDI) { name } hero: hero(episode: NEWHOPE) { name } }`)
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "conflict")
}

func TestValidateRejectsNonExecutableRootNode(t *testing.T) {
	schema := testSchema(t)
	doc, report := astparser.ParseExecutableDocument(source.New(`{ hero { name } }`))
	require.False(t, report.HasErrors())
	// Synthesize a non-executable root node the parser itself would
	// never produce, exercising the defensive re-check documented on
	// checkExecutableDefinitions.
	doc.RootNodes = append(doc.RootNodes, ast.Node{Kind: ast.NodeKindScalarTypeDefinition})
	errs := validator.Validate(schema, doc)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs.Error(), "is not executable")
}
