package ast

// TypeKind tags the Named/List/NonNull union (§3's TypeRef).
type TypeKind int

const (
	TypeKindNamed TypeKind = iota
	TypeKindList
	TypeKindNonNull
)

// Type is a type reference as written in source: `Named`, `[OfType]`,
// or `OfType!`. NonNull cannot wrap NonNull; the parser enforces this
// (§3 Invariants), so this struct does not need to.
type Type struct {
	Kind     TypeKind
	Name     string // set when Kind == TypeKindNamed
	OfType   int    // ref into Document.Types, set for List/NonNull
	Position Position
}

// AddType appends a type node and returns its ref.
func (d *Document) AddType(t Type) int { return d.putType(t) }

// AddNamedType is a convenience used by the introspection/schema
// grafting code (mirrors the teacher's AddNamedType helper).
func (d *Document) AddNamedType(name string) int {
	return d.AddType(Type{Kind: TypeKindNamed, Name: name})
}

// AddNonNullNamedType builds `name!` in one call.
func (d *Document) AddNonNullNamedType(name string) int {
	named := d.AddNamedType(name)
	return d.AddType(Type{Kind: TypeKindNonNull, OfType: named})
}

// TypeNameString returns the innermost named-type name, unwrapping any
// List/NonNull wrappers -- used wherever code needs "what named type is
// this field ultimately" without caring about nullability/list-ness.
func (d *Document) TypeNameString(ref int) string {
	t := d.Types[ref]
	for t.Kind != TypeKindNamed {
		t = d.Types[t.OfType]
	}
	return t.Name
}

// PrintType renders a Type ref back to SDL syntax (`[String!]!`), used
// by astprinter and by error messages that mention a field's type.
func (d *Document) PrintType(ref int) string {
	t := d.Types[ref]
	switch t.Kind {
	case TypeKindNamed:
		return t.Name
	case TypeKindList:
		return "[" + d.PrintType(t.OfType) + "]"
	case TypeKindNonNull:
		return d.PrintType(t.OfType) + "!"
	default:
		return ""
	}
}
