package ast

// OperationType distinguishes query/mutation/subscription (§3, §4.2).
type OperationType int

const (
	OperationTypeQuery OperationType = iota
	OperationTypeMutation
	OperationTypeSubscription
)

func (o OperationType) String() string {
	switch o {
	case OperationTypeMutation:
		return "mutation"
	case OperationTypeSubscription:
		return "subscription"
	default:
		return "query"
	}
}

// OperationDefinition is `query Name($v: T) @dir { ... }`, or the
// anonymous shorthand `{ ... }` which parses to an unnamed
// OperationTypeQuery (§4.2).
type OperationDefinition struct {
	OperationType        OperationType
	Name                 string
	HasVariableDefinitions bool
	VariableDefinitions  []int // refs into Document.VariableDefinitions
	HasDirectives        bool
	Directives           []int // refs into Document.Directives
	SelectionSet         int   // ref into Document.SelectionSets
	Position             Position
}

// VariableDefinition is `$name: Type = default`.
type VariableDefinition struct {
	VariableName string
	Type         int // ref into Document.Types
	HasDefaultValue bool
	DefaultValue int // ref into Document.Values
	HasDirectives bool
	Directives   []int
	Position     Position
}

// SelectionSet is a brace-delimited list of selections; Selections
// preserves source order across the three selection kinds (GLOSSARY).
type SelectionSet struct {
	Selections []Node // Kind one of Field/FragmentSpread/InlineFragment
	Position   Position
}

// Field is `alias: name(args) @dir { selectionSet }`.
type Field struct {
	Alias           string
	HasAlias        bool
	Name            string
	Arguments       []int // refs into Document.Arguments
	Directives      []int
	HasSelectionSet bool
	SelectionSet    int // ref into Document.SelectionSets
	Position        Position
}

// ResponseKey is the alias if present, else the field name (GLOSSARY).
func (f Field) ResponseKey() string {
	if f.HasAlias {
		return f.Alias
	}
	return f.Name
}

// Argument is `name: value`, used both on fields/directives (executable
// documents) and on directive applications in SDL.
type Argument struct {
	Name     string
	Value    int // ref into Document.Values
	Position Position
}

// Directive is `@name(args)`.
type Directive struct {
	Name      string
	Arguments []int
	Position  Position
}

// FragmentSpread is `...Name @dir`.
type FragmentSpread struct {
	FragmentName string
	Directives   []int
	Position     Position
}

// InlineFragment is `... on Type @dir { selectionSet }` (TypeCondition
// may be absent).
type InlineFragment struct {
	HasTypeCondition bool
	TypeCondition    string
	Directives       []int
	SelectionSet     int
	Position         Position
}

// FragmentDefinition is `fragment Name on Type @dir { selectionSet }`.
// Name must not be "on" (§4.2); allow_legacy_fragment_variables (§9
// Open Question, not enabled by default) would additionally populate
// VariableDefinitions.
type FragmentDefinition struct {
	Name                string
	VariableDefinitions []int
	TypeCondition       string
	Directives          []int
	SelectionSet        int
	Position            Position
}

// --- append helpers ---

func (d *Document) AddOperationDefinition(v OperationDefinition) int {
	ref := d.putOperationDefinition(v)
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindOperationDefinition, Ref: ref})
	return ref
}

func (d *Document) AddFragmentDefinition(v FragmentDefinition) int {
	ref := d.putFragmentDefinition(v)
	d.RootNodes = append(d.RootNodes, Node{Kind: NodeKindFragmentDefinition, Ref: ref})
	return ref
}

func (d *Document) AddVariableDefinition(v VariableDefinition) int { return d.putVariableDefinition(v) }
func (d *Document) AddSelectionSet(v SelectionSet) int             { return d.putSelectionSet(v) }
func (d *Document) AddField(v Field) int                           { return d.putField(v) }
func (d *Document) AddArgument(v Argument) int                     { return d.putArgument(v) }
func (d *Document) AddDirective(v Directive) int                   { return d.putDirective(v) }
func (d *Document) AddFragmentSpread(v FragmentSpread) int         { return d.putFragmentSpread(v) }
func (d *Document) AddInlineFragment(v InlineFragment) int         { return d.putInlineFragment(v) }

// ArgumentByName looks up an argument node by name within a ref list,
// used by coercion (C6) and validation rules that need a named arg.
func (d *Document) ArgumentByName(args []int, name string) (Argument, bool) {
	for _, ref := range args {
		if d.Arguments[ref].Name == name {
			return d.Arguments[ref], true
		}
	}
	return Argument{}, false
}

// DirectiveByName looks up a directive application by name.
func (d *Document) DirectiveByName(directives []int, name string) (Directive, bool) {
	for _, ref := range directives {
		if d.Directives[ref].Name == name {
			return d.Directives[ref], true
		}
	}
	return Directive{}, false
}
