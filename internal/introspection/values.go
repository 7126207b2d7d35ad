// Package introspection grafts the `__Schema`/`__Type`/... meta-types
// onto a built typesystem.Schema, the way the teacher's asttransform
// package merges a literal SDL "base schema" into every document before
// building the runtime type graph (§4.4, §9). Since schemas here are
// built programmatically rather than parsed from SDL text, the graft
// happens by wrapping the Query object with extra fields instead of by
// merging source text.
package introspection

import "github.com/wundergraph/graphql-core-engine/internal/typesystem"

// typeValue, fieldValue, ... wrap the typesystem entities so every
// introspection field's Resolve can type-assert its source to the one
// shape it knows how to read, mirroring how the executor treats every
// resolver's source value as opaque interface{}.
type typeValue struct{ t *typesystem.Type }

type fieldValue struct {
	f *typesystem.Field
}

type inputValueValue struct{ a *typesystem.Argument }

type enumValueValue struct{ v *typesystem.EnumValue }

type directiveValue struct{ d *typesystem.Directive }

type schemaValue struct{ schema *typesystem.Schema }

// wrapType converts a possibly-nil *typesystem.Type to the nil
// interface{} introspection fields are expected to return for absent
// values, or a typeValue otherwise.
func wrapType(t *typesystem.Type) interface{} {
	if t == nil {
		return nil
	}
	return typeValue{t: t}
}

func wrapObjectsAsTypes(objs []*typesystem.Object) []interface{} {
	out := make([]interface{}, 0, len(objs))
	for _, o := range objs {
		out = append(out, typeValue{t: &typesystem.Type{Kind: typesystem.KindObject, Object: o}})
	}
	return out
}

func wrapInterfacesAsTypes(ifaces []*typesystem.Interface) []interface{} {
	out := make([]interface{}, 0, len(ifaces))
	for _, i := range ifaces {
		out = append(out, typeValue{t: &typesystem.Type{Kind: typesystem.KindInterface, Interface: i}})
	}
	return out
}

// nonEmpty turns an empty Description string into a genuine null,
// matching a nullable String field that was simply never documented
// rather than documented as "".
func nonEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// includeDeprecatedArg reads the standard `includeDeprecated: Boolean =
// false` argument every filtered introspection list field declares.
func includeDeprecatedArg(args map[string]interface{}) bool {
	v, ok := args["includeDeprecated"]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}
