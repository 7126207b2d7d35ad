package ast

// DirectiveLocation is one of the locations a directive definition may
// declare (§6's directive table; full enum per the October 2021 spec).
type DirectiveLocation string

const (
	LocationQuery                  DirectiveLocation = "QUERY"
	LocationMutation                DirectiveLocation = "MUTATION"
	LocationSubscription            DirectiveLocation = "SUBSCRIPTION"
	LocationField                    DirectiveLocation = "FIELD"
	LocationFragmentDefinition       DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread           DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment           DirectiveLocation = "INLINE_FRAGMENT"
	LocationVariableDefinition       DirectiveLocation = "VARIABLE_DEFINITION"
	LocationSchema                   DirectiveLocation = "SCHEMA"
	LocationScalar                   DirectiveLocation = "SCALAR"
	LocationObject                   DirectiveLocation = "OBJECT"
	LocationFieldDefinition          DirectiveLocation = "FIELD_DEFINITION"
	LocationArgumentDefinition       DirectiveLocation = "ARGUMENT_DEFINITION"
	LocationInterface                DirectiveLocation = "INTERFACE"
	LocationUnion                    DirectiveLocation = "UNION"
	LocationEnum                     DirectiveLocation = "ENUM"
	LocationEnumValue                DirectiveLocation = "ENUM_VALUE"
	LocationInputObject              DirectiveLocation = "INPUT_OBJECT"
	LocationInputFieldDefinition     DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// Description is a doc-string that immediately precedes a
// schema-definition node (§4.2); Block records whether it was written
// as a block string (affects re-printing only).
type Description struct {
	HasDescription bool
	Content        string
	Block          bool
}

// SchemaDefinition is the (at most one) `schema { query: Q ... }`
// block; RootOperationTypeDefinitionRefs index RootOperationTypeDefs.
type SchemaDefinition struct {
	Description                    Description
	RootOperationTypeDefinitionRefs []int
	Directives                      []int
	IsExtension                     bool
	Position                        Position
}

// AddRootOperationTypeDefinitionRefs appends refs to the one
// SchemaDefinition (there is at most one per document), matching the
// teacher's method of the same name used while grafting root types.
func (s *SchemaDefinition) AddRootOperationTypeDefinitionRefs(refs ...int) {
	s.RootOperationTypeDefinitionRefs = append(s.RootOperationTypeDefinitionRefs, refs...)
}

// RootOperationTypeDefinition is `query: Query` inside a schema block.
type RootOperationTypeDefinition struct {
	OperationType      OperationType
	NamedTypeRef       int // ref into Document.ObjectTypeDefinitions's name, held as string instead
	NamedType          string
	Position           Position
}

// ScalarTypeDefinition is `scalar Name @dir`.
type ScalarTypeDefinition struct {
	Description Description
	Name        string
	Directives  []int
	IsExtension bool
	Position    Position
}

// ObjectTypeDefinition is `type Name implements I & J @dir { fields }`.
type ObjectTypeDefinition struct {
	Description         Description
	Name                string
	ImplementsInterfaces []string
	Directives           []int
	HasFieldDefinitions  bool
	FieldsRefs           []int // refs into Document.FieldDefinitions
	IsExtension          bool
	Position             Position
}

func (o *ObjectTypeDefinition) AddFieldRefs(refs ...int) {
	o.FieldsRefs = append(o.FieldsRefs, refs...)
	o.HasFieldDefinitions = true
}

// FieldDefinition is `name(args): Type @dir`.
type FieldDefinition struct {
	Description   Description
	Name          string
	ArgumentsRefs []int // refs into Document.InputValueDefinitions
	Type          int   // ref into Document.Types
	Directives    []int
	Position      Position
}

// InputValueDefinition is an argument definition or an input-object
// field definition: `name: Type = default @dir`.
type InputValueDefinition struct {
	Description     Description
	Name            string
	Type            int
	HasDefaultValue bool
	DefaultValue    int
	Directives      []int
	Position        Position
}

// InterfaceTypeDefinition is `interface Name implements I @dir { fields }`.
type InterfaceTypeDefinition struct {
	Description          Description
	Name                 string
	ImplementsInterfaces []string
	Directives           []int
	FieldsRefs           []int
	IsExtension          bool
	Position             Position
}

// UnionTypeDefinition is `union Name = A | B`.
type UnionTypeDefinition struct {
	Description Description
	Name        string
	Directives  []int
	MemberTypes []string
	IsExtension bool
	Position    Position
}

// EnumTypeDefinition is `enum Name @dir { VALUES }`.
type EnumTypeDefinition struct {
	Description Description
	Name        string
	Directives  []int
	ValuesRefs  []int // refs into Document.EnumValueDefinitions
	IsExtension bool
	Position    Position
}

// EnumValueDefinition is one enum member, `VALUE @dir`.
type EnumValueDefinition struct {
	Description Description
	Value       string
	Directives  []int
	Position    Position
}

// InputObjectTypeDefinition is `input Name @dir { fields }`.
type InputObjectTypeDefinition struct {
	Description Description
	Name        string
	Directives  []int
	FieldsRefs  []int
	IsExtension bool
	Position    Position
}

// DirectiveDefinition is `directive @name(args) on LOCATIONS` (with
// optional `repeatable`, §4.2/§6).
type DirectiveDefinition struct {
	Description   Description
	Name          string
	ArgumentsRefs []int
	Repeatable    bool
	Locations     []DirectiveLocation
	Position      Position
}

// --- append helpers, registering into RootNodes when the node is
// itself a top-level SDL definition ---

func (d *Document) HasSchemaDefinition() bool { return len(d.SchemaDefinitions) > 0 }

func (d *Document) SchemaDefinitionRef() int { return 0 }

func (d *Document) AddSchemaDefinitionRootNode(v SchemaDefinition) int {
	d.SchemaDefinitions = append(d.SchemaDefinitions, v)
	ref := len(d.SchemaDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindSchemaDefinition, Ref: ref})
	return ref
}

func (d *Document) CreateRootOperationTypeDefinition(op OperationType, objectTypeDefRef int) int {
	name := d.ObjectTypeDefinitions[objectTypeDefRef].Name
	d.RootOperationTypeDefs = append(d.RootOperationTypeDefs, RootOperationTypeDefinition{
		OperationType: op,
		NamedTypeRef:  objectTypeDefRef,
		NamedType:     name,
	})
	return len(d.RootOperationTypeDefs) - 1
}

func (d *Document) AddScalarTypeDefinitionRootNode(v ScalarTypeDefinition) int {
	d.ScalarTypeDefinitions = append(d.ScalarTypeDefinitions, v)
	ref := len(d.ScalarTypeDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindScalarTypeDefinition, Ref: ref})
	return ref
}

func (d *Document) AddObjectTypeDefinitionRootNode(v ObjectTypeDefinition) int {
	d.ObjectTypeDefinitions = append(d.ObjectTypeDefinitions, v)
	ref := len(d.ObjectTypeDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindObjectTypeDefinition, Ref: ref})
	return ref
}

// ImportObjectTypeDefinition creates (and registers as a root node) a
// bare object type, used when the schema grammar omits an explicit
// `type Query { ... }` and one must be synthesized (mirrors the
// teacher's asttransform.handleSchema calling this when !hasQueryNode).
func (d *Document) ImportObjectTypeDefinition(name, description string, fieldRefs []int, directives []int) int {
	return d.AddObjectTypeDefinitionRootNode(ObjectTypeDefinition{
		Name:                name,
		Description:         Description{HasDescription: description != "", Content: description},
		FieldsRefs:          fieldRefs,
		HasFieldDefinitions: len(fieldRefs) > 0,
		Directives:          directives,
	})
}

func (d *Document) AddFieldDefinition(v FieldDefinition) int {
	d.FieldDefinitions = append(d.FieldDefinitions, v)
	return len(d.FieldDefinitions) - 1
}

func (d *Document) AddInputValueDefinition(v InputValueDefinition) int {
	d.InputValueDefinitions = append(d.InputValueDefinitions, v)
	return len(d.InputValueDefinitions) - 1
}

func (d *Document) AddInterfaceTypeDefinitionRootNode(v InterfaceTypeDefinition) int {
	d.InterfaceTypeDefinitions = append(d.InterfaceTypeDefinitions, v)
	ref := len(d.InterfaceTypeDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindInterfaceTypeDefinition, Ref: ref})
	return ref
}

func (d *Document) AddUnionTypeDefinitionRootNode(v UnionTypeDefinition) int {
	d.UnionTypeDefinitions = append(d.UnionTypeDefinitions, v)
	ref := len(d.UnionTypeDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindUnionTypeDefinition, Ref: ref})
	return ref
}

func (d *Document) AddEnumTypeDefinitionRootNode(v EnumTypeDefinition) int {
	d.EnumTypeDefinitions = append(d.EnumTypeDefinitions, v)
	ref := len(d.EnumTypeDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindEnumTypeDefinition, Ref: ref})
	return ref
}

func (d *Document) AddEnumValueDefinition(v EnumValueDefinition) int {
	d.EnumValueDefinitions = append(d.EnumValueDefinitions, v)
	return len(d.EnumValueDefinitions) - 1
}

func (d *Document) AddInputObjectTypeDefinitionRootNode(v InputObjectTypeDefinition) int {
	d.InputObjectTypeDefinitions = append(d.InputObjectTypeDefinitions, v)
	ref := len(d.InputObjectTypeDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindInputObjectTypeDefinition, Ref: ref})
	return ref
}

func (d *Document) AddDirectiveDefinitionRootNode(v DirectiveDefinition) int {
	d.DirectiveDefinitions = append(d.DirectiveDefinitions, v)
	ref := len(d.DirectiveDefinitions) - 1
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindDirectiveDefinition, Ref: ref})
	return ref
}

// ObjectTypeDefinitionNameBytes mirrors the teacher's byte-slice
// accessor name (used by asttransform) while returning our plain string
// storage.
func (d *Document) ObjectTypeDefinitionNameBytes(ref int) []byte {
	return []byte(d.ObjectTypeDefinitions[ref].Name)
}

// ObjectTypeDefinitionHasField reports whether an object type already
// declares a field with the given name, used before grafting
// introspection fields so grafting is idempotent.
func (d *Document) ObjectTypeDefinitionHasField(ref int, name []byte) bool {
	for _, fref := range d.ObjectTypeDefinitions[ref].FieldsRefs {
		if d.FieldDefinitions[fref].Name == string(name) {
			return true
		}
	}
	return false
}

const (
	DefaultQueryTypeName        = "Query"
	DefaultMutationTypeName     = "Mutation"
	DefaultSubscriptionTypeName = "Subscription"
)
