package typesystem

import "github.com/wundergraph/graphql-core-engine/internal/ast"

// Directive is a directive declaration: name, the locations it may
// appear at, its arguments, and whether it may appear more than once on
// one node (§3, §6).
type Directive struct {
	Name         string
	Description  string
	Locations    []ast.DirectiveLocation
	Args         ArgumentMap
	IsRepeatable bool
}

func boolArg(name, description string, def bool) *Argument {
	return &Argument{Name: name, Description: description, Type: NonNullOf(&Type{Kind: KindScalar, Scalar: Boolean}), Default: Default{HasValue: true, Value: def}}
}

func newArgs(args ...*Argument) ArgumentMap {
	m := NewArgumentMap()
	for _, a := range args {
		m.Add(a)
	}
	return m
}

// Built-in directives (§4.4, §6): @skip, @include, @deprecated,
// @specifiedBy, @defer, @stream, @oneOf.
var (
	Skip = &Directive{
		Name:      "skip",
		Locations: []ast.DirectiveLocation{ast.LocationField, ast.LocationFragmentSpread, ast.LocationInlineFragment},
		Args:      newArgs(&Argument{Name: "if", Type: NonNullOf(&Type{Kind: KindScalar, Scalar: Boolean})}),
	}
	Include = &Directive{
		Name:      "include",
		Locations: []ast.DirectiveLocation{ast.LocationField, ast.LocationFragmentSpread, ast.LocationInlineFragment},
		Args:      newArgs(&Argument{Name: "if", Type: NonNullOf(&Type{Kind: KindScalar, Scalar: Boolean})}),
	}
	Deprecated = &Directive{
		Name:      "deprecated",
		Locations: []ast.DirectiveLocation{ast.LocationFieldDefinition, ast.LocationEnumValue, ast.LocationArgumentDefinition, ast.LocationInputFieldDefinition},
		Args: newArgs(&Argument{
			Name: "reason", Type: &Type{Kind: KindScalar, Scalar: String},
			Default: Default{HasValue: true, Value: "No longer supported"},
		}),
	}
	SpecifiedBy = &Directive{
		Name:      "specifiedBy",
		Locations: []ast.DirectiveLocation{ast.LocationScalar},
		Args:      newArgs(&Argument{Name: "url", Type: NonNullOf(&Type{Kind: KindScalar, Scalar: String})}),
	}
	Defer = &Directive{
		Name:      "defer",
		Locations: []ast.DirectiveLocation{ast.LocationFragmentSpread, ast.LocationInlineFragment},
		Args: newArgs(
			boolArg("if", "Deferred when true.", true),
			&Argument{Name: "label", Type: &Type{Kind: KindScalar, Scalar: String}},
		),
	}
	Stream = &Directive{
		Name:      "stream",
		Locations: []ast.DirectiveLocation{ast.LocationField},
		Args: newArgs(
			boolArg("if", "Streamed when true.", true),
			&Argument{Name: "label", Type: &Type{Kind: KindScalar, Scalar: String}},
			&Argument{Name: "initialCount", Type: &Type{Kind: KindScalar, Scalar: Int}, Default: Default{HasValue: true, Value: 0}},
		),
	}
	OneOf = &Directive{
		Name:      "oneOf",
		Locations: []ast.DirectiveLocation{ast.LocationInputObject},
		Args:      NewArgumentMap(),
	}
)

// BuiltInDirectives lists the directives every schema carries (§4.4).
func BuiltInDirectives() []*Directive {
	return []*Directive{Skip, Include, Deprecated, SpecifiedBy, Defer, Stream, OneOf}
}
