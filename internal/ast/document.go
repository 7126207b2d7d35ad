// Package ast defines the closed set of GraphQL AST node variants and
// the Document that owns them (C4). Following the teacher's index/arena
// style (github.com/wundergraph/graphql-go-tools/v2/pkg/ast, as seen
// through asttransform.MergeDefinitionWithBaseSchema and
// pkg/document.OperationDefinition), nodes are not a pointer tree: each
// node kind lives in its own slice on Document and nodes reference each
// other by small integer Ref into those slices. This makes the whole
// AST one contiguous allocation per kind, cheap to copy by value, and
// naturally supports the visitor's Path/ancestors bookkeeping (a Ref is
// stable even after sibling nodes are appended).
package ast

// NodeKind identifies which Document slice a Ref indexes into.
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindDocument
	NodeKindOperationDefinition
	NodeKindFragmentDefinition
	NodeKindVariableDefinition
	NodeKindSelectionSet
	NodeKindField
	NodeKindArgument
	NodeKindDirective
	NodeKindFragmentSpread
	NodeKindInlineFragment
	NodeKindValue
	NodeKindObjectField
	NodeKindType
	NodeKindSchemaDefinition
	NodeKindRootOperationTypeDefinition
	NodeKindScalarTypeDefinition
	NodeKindObjectTypeDefinition
	NodeKindFieldDefinition
	NodeKindInputValueDefinition
	NodeKindInterfaceTypeDefinition
	NodeKindUnionTypeDefinition
	NodeKindEnumTypeDefinition
	NodeKindEnumValueDefinition
	NodeKindInputObjectTypeDefinition
	NodeKindDirectiveDefinition
)

// Node is a (kind, ref) pair used wherever the AST needs a
// heterogeneous child list (a document's root nodes, a selection set's
// selections in source order).
type Node struct {
	Kind NodeKind
	Ref  int
}

// Position is a byte-offset span plus derived line/column, attached to
// (almost) every node unless the parser runs with NoLocation.
type Position struct {
	HasPosition bool
	Start       int
	End         int
	Line        int
	Column      int
}

// Document owns every node of one parsed GraphQL document: either an
// executable document (operations + fragments) or a type-system
// document (schema-definition language). Both grammars share this one
// arena type, matching the teacher's single ast.Document serving both
// astparser entry points.
type Document struct {
	SourceName string
	Input      string // raw source text, kept for printing/diagnostics

	RootNodes []Node

	OperationDefinitions  []OperationDefinition
	FragmentDefinitions   []FragmentDefinition
	VariableDefinitions   []VariableDefinition
	SelectionSets         []SelectionSet
	Fields                []Field
	Arguments             []Argument
	Directives            []Directive
	FragmentSpreads       []FragmentSpread
	InlineFragments       []InlineFragment
	Values                []Value
	ObjectFields          []ObjectField
	Types                 []Type
	SchemaDefinitions     []SchemaDefinition
	RootOperationTypeDefs []RootOperationTypeDefinition

	ScalarTypeDefinitions      []ScalarTypeDefinition
	ObjectTypeDefinitions      []ObjectTypeDefinition
	FieldDefinitions           []FieldDefinition
	InputValueDefinitions      []InputValueDefinition
	InterfaceTypeDefinitions   []InterfaceTypeDefinition
	UnionTypeDefinitions       []UnionTypeDefinition
	EnumTypeDefinitions        []EnumTypeDefinition
	EnumValueDefinitions       []EnumValueDefinition
	InputObjectTypeDefinitions []InputObjectTypeDefinition
	DirectiveDefinitions       []DirectiveDefinition
}

// NewDocument returns an empty Document ready for the parser to fill.
func NewDocument(sourceName, input string) *Document {
	return &Document{SourceName: sourceName, Input: input}
}

// IsExecutableDocument reports whether this document is an executable
// document (operations/fragments) or a type-system document, used by
// callers choosing which public Parse entry point ran.
func (d *Document) IsExecutableDocument() bool {
	for _, n := range d.RootNodes {
		if n.Kind == NodeKindOperationDefinition || n.Kind == NodeKindFragmentDefinition {
			return true
		}
	}
	return false
}

// --- append helpers used by the parser and by schema-transform code ---

func (d *Document) putOperationDefinition(v OperationDefinition) int {
	d.OperationDefinitions = append(d.OperationDefinitions, v)
	return len(d.OperationDefinitions) - 1
}

func (d *Document) putFragmentDefinition(v FragmentDefinition) int {
	d.FragmentDefinitions = append(d.FragmentDefinitions, v)
	return len(d.FragmentDefinitions) - 1
}

func (d *Document) putVariableDefinition(v VariableDefinition) int {
	d.VariableDefinitions = append(d.VariableDefinitions, v)
	return len(d.VariableDefinitions) - 1
}

func (d *Document) putSelectionSet(v SelectionSet) int {
	d.SelectionSets = append(d.SelectionSets, v)
	return len(d.SelectionSets) - 1
}

func (d *Document) putField(v Field) int {
	d.Fields = append(d.Fields, v)
	return len(d.Fields) - 1
}

func (d *Document) putArgument(v Argument) int {
	d.Arguments = append(d.Arguments, v)
	return len(d.Arguments) - 1
}

func (d *Document) putDirective(v Directive) int {
	d.Directives = append(d.Directives, v)
	return len(d.Directives) - 1
}

func (d *Document) putFragmentSpread(v FragmentSpread) int {
	d.FragmentSpreads = append(d.FragmentSpreads, v)
	return len(d.FragmentSpreads) - 1
}

func (d *Document) putInlineFragment(v InlineFragment) int {
	d.InlineFragments = append(d.InlineFragments, v)
	return len(d.InlineFragments) - 1
}

func (d *Document) putValue(v Value) int {
	d.Values = append(d.Values, v)
	return len(d.Values) - 1
}

func (d *Document) putObjectField(v ObjectField) int {
	d.ObjectFields = append(d.ObjectFields, v)
	return len(d.ObjectFields) - 1
}

func (d *Document) putType(v Type) int {
	d.Types = append(d.Types, v)
	return len(d.Types) - 1
}

// FragmentByName finds a fragment definition by name, as the executor
// needs when expanding a FragmentSpread; O(n) is acceptable since
// callers (validator, executor) index this once per document via
// FragmentMap.
func (d *Document) FragmentByName(name string) (int, bool) {
	for i := range d.FragmentDefinitions {
		if d.FragmentDefinitions[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// FragmentMap builds a name->ref index once, for repeated lookups
// during execution (§3 ExecutionContext holds "fragments-by-name").
func (d *Document) FragmentMap() map[string]int {
	m := make(map[string]int, len(d.FragmentDefinitions))
	for i := range d.FragmentDefinitions {
		m[d.FragmentDefinitions[i].Name] = i
	}
	return m
}
