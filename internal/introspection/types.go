package introspection

import (
	"context"
	"sort"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

func scalarField(name string, scalar *typesystem.Scalar) *typesystem.Type {
	return &typesystem.Type{Kind: typesystem.KindScalar, Scalar: scalar}
}

var (
	stringType  = scalarField("String", typesystem.String)
	boolType    = scalarField("Boolean", typesystem.Boolean)
	nonNullStr  = typesystem.NonNullOf(stringType)
	nonNullBool = typesystem.NonNullOf(boolType)
)

func resolveField(fn func(ctx context.Context, source interface{}, args map[string]interface{}) (interface{}, error)) typesystem.FieldResolveFn {
	return func(ctx context.Context, source interface{}, args map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
		return fn(ctx, source, args)
	}
}

// TypeKindEnum backs __TypeKind (§3, §4.4): its values are the same
// typesystem.TypeKind constants a *typesystem.Type already carries, so
// the "kind" field below can hand its Kind straight to
// Enum.ValueBySerialized without any translation table.
var TypeKindEnum = typesystem.NewEnum("__TypeKind", "An enum describing what kind of type a given `__Type` is.", []*typesystem.EnumValue{
	{Name: "SCALAR", Description: "Indicates this type is a scalar.", Value: typesystem.KindScalar},
	{Name: "OBJECT", Description: "Indicates this type is an object. `fields` and `interfaces` are valid fields.", Value: typesystem.KindObject},
	{Name: "INTERFACE", Description: "Indicates this type is an interface. `fields`, `interfaces`, and `possibleTypes` are valid fields.", Value: typesystem.KindInterface},
	{Name: "UNION", Description: "Indicates this type is a union. `possibleTypes` is a valid field.", Value: typesystem.KindUnion},
	{Name: "ENUM", Description: "Indicates this type is an enum. `enumValues` is a valid field.", Value: typesystem.KindEnum},
	{Name: "INPUT_OBJECT", Description: "Indicates this type is an input object. `inputFields` is a valid field.", Value: typesystem.KindInputObject},
	{Name: "LIST", Description: "Indicates this type is a list. `ofType` is a valid field.", Value: typesystem.KindList},
	{Name: "NON_NULL", Description: "Indicates this type is a non-null. `ofType` is a valid field.", Value: typesystem.KindNonNull},
})

// DirectiveLocationEnum backs __DirectiveLocation; its values reuse
// ast.DirectiveLocation's string constants directly, which already hold
// the exact SCREAMING_SNAKE_CASE names the GraphQL spec defines.
var DirectiveLocationEnum = typesystem.NewEnum("__DirectiveLocation", "A Directive can be adjacent to many parts of the GraphQL language, a __DirectiveLocation describes one such possible adjacency.", []*typesystem.EnumValue{
	{Name: "QUERY", Description: "Location adjacent to a query operation.", Value: ast.LocationQuery},
	{Name: "MUTATION", Description: "Location adjacent to a mutation operation.", Value: ast.LocationMutation},
	{Name: "SUBSCRIPTION", Description: "Location adjacent to a subscription operation.", Value: ast.LocationSubscription},
	{Name: "FIELD", Description: "Location adjacent to a field.", Value: ast.LocationField},
	{Name: "FRAGMENT_DEFINITION", Description: "Location adjacent to a fragment definition.", Value: ast.LocationFragmentDefinition},
	{Name: "FRAGMENT_SPREAD", Description: "Location adjacent to a fragment spread.", Value: ast.LocationFragmentSpread},
	{Name: "INLINE_FRAGMENT", Description: "Location adjacent to an inline fragment.", Value: ast.LocationInlineFragment},
	{Name: "VARIABLE_DEFINITION", Description: "Location adjacent to a variable definition.", Value: ast.LocationVariableDefinition},
	{Name: "SCHEMA", Description: "Location adjacent to a schema definition.", Value: ast.LocationSchema},
	{Name: "SCALAR", Description: "Location adjacent to a scalar definition.", Value: ast.LocationScalar},
	{Name: "OBJECT", Description: "Location adjacent to an object type definition.", Value: ast.LocationObject},
	{Name: "FIELD_DEFINITION", Description: "Location adjacent to a field definition.", Value: ast.LocationFieldDefinition},
	{Name: "ARGUMENT_DEFINITION", Description: "Location adjacent to an argument definition.", Value: ast.LocationArgumentDefinition},
	{Name: "INTERFACE", Description: "Location adjacent to an interface definition.", Value: ast.LocationInterface},
	{Name: "UNION", Description: "Location adjacent to a union definition.", Value: ast.LocationUnion},
	{Name: "ENUM", Description: "Location adjacent to an enum definition.", Value: ast.LocationEnum},
	{Name: "ENUM_VALUE", Description: "Location adjacent to an enum value definition.", Value: ast.LocationEnumValue},
	{Name: "INPUT_OBJECT", Description: "Location adjacent to an input object type definition.", Value: ast.LocationInputObject},
	{Name: "INPUT_FIELD_DEFINITION", Description: "Location adjacent to an input object field definition.", Value: ast.LocationInputFieldDefinition},
})

// InputValueObject backs __InputValue: the shared shape of a field
// argument or an input-object field (typesystem.Argument doubles as
// both, §3).
var InputValueObject = typesystem.NewObjectThunk("__InputValue", "Arguments provided to Fields or Directives and the input fields of an InputObject are represented as Input Values which describe their type and optionally a default value.", func() typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	fm.Add(&typesystem.Field{Name: "name", Type: nonNullStr, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(inputValueValue).a.Name, nil
	})})
	fm.Add(&typesystem.Field{Name: "description", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return nonEmpty(source.(inputValueValue).a.Description), nil
	})})
	fm.Add(&typesystem.Field{Name: "type", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return wrapType(source.(inputValueValue).a.Type), nil
	})})
	fm.Add(&typesystem.Field{Name: "defaultValue", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return printDefault(source.(inputValueValue).a.Default), nil
	})})
	fm.Add(&typesystem.Field{Name: "isDeprecated", Type: nonNullBool, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(inputValueValue).a.Deprecation.IsDeprecated, nil
	})})
	fm.Add(&typesystem.Field{Name: "deprecationReason", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		dep := source.(inputValueValue).a.Deprecation
		if !dep.IsDeprecated {
			return nil, nil
		}
		return dep.Reason, nil
	})})
	return fm
}, nil, nil)

// EnumValueObject backs __EnumValue.
var EnumValueObject = typesystem.NewObjectThunk("__EnumValue", "One possible value for a given Enum. Enum values are unique values, not a placeholder for a string or numeric value. However an Enum value is returned in a JSON response as a string.", func() typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	fm.Add(&typesystem.Field{Name: "name", Type: nonNullStr, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(enumValueValue).v.Name, nil
	})})
	fm.Add(&typesystem.Field{Name: "description", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return nonEmpty(source.(enumValueValue).v.Description), nil
	})})
	fm.Add(&typesystem.Field{Name: "isDeprecated", Type: nonNullBool, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(enumValueValue).v.Deprecation.IsDeprecated, nil
	})})
	fm.Add(&typesystem.Field{Name: "deprecationReason", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		dep := source.(enumValueValue).v.Deprecation
		if !dep.IsDeprecated {
			return nil, nil
		}
		return dep.Reason, nil
	})})
	return fm
}, nil, nil)

// FieldObject backs __Field.
var FieldObject = typesystem.NewObjectThunk("__Field", "Object and Interface types are described by a list of Fields, each of which has a name, potentially a list of arguments, and a return type.", func() typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	fm.Add(&typesystem.Field{Name: "name", Type: nonNullStr, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(fieldValue).f.Name, nil
	})})
	fm.Add(&typesystem.Field{Name: "description", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return nonEmpty(source.(fieldValue).f.Description), nil
	})})
	includeDeprecated := &typesystem.Argument{Name: "includeDeprecated", Type: boolType, Default: typesystem.Default{HasValue: true, Value: false}}
	argsArgs := typesystem.NewArgumentMap()
	argsArgs.Add(includeDeprecated)
	fm.Add(&typesystem.Field{
		Name: "args",
		Type: typesystem.NonNullOf(typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: InputValueObject}))),
		Args: argsArgs,
		Resolve: resolveField(func(_ context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return wrapArgs(source.(fieldValue).f.Args, includeDeprecatedArg(args)), nil
		}),
	})
	fm.Add(&typesystem.Field{Name: "type", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return wrapType(source.(fieldValue).f.Type), nil
	})})
	fm.Add(&typesystem.Field{Name: "isDeprecated", Type: nonNullBool, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(fieldValue).f.Deprecation.IsDeprecated, nil
	})})
	fm.Add(&typesystem.Field{Name: "deprecationReason", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		dep := source.(fieldValue).f.Deprecation
		if !dep.IsDeprecated {
			return nil, nil
		}
		return dep.Reason, nil
	})})
	return fm
}, nil, nil)

// DirectiveObject backs __Directive.
var DirectiveObject = typesystem.NewObjectThunk("__Directive", "A Directive provides a way to describe alternate runtime execution and type validation behavior in a GraphQL document.", func() typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	fm.Add(&typesystem.Field{Name: "name", Type: nonNullStr, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(directiveValue).d.Name, nil
	})})
	fm.Add(&typesystem.Field{Name: "description", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return nonEmpty(source.(directiveValue).d.Description), nil
	})})
	fm.Add(&typesystem.Field{Name: "locations", Type: typesystem.NonNullOf(typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindEnum, Enum: DirectiveLocationEnum}))), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		locs := source.(directiveValue).d.Locations
		out := make([]interface{}, 0, len(locs))
		for _, l := range locs {
			out = append(out, l)
		}
		return out, nil
	})})
	includeDeprecated := &typesystem.Argument{Name: "includeDeprecated", Type: boolType, Default: typesystem.Default{HasValue: true, Value: false}}
	argsArgs := typesystem.NewArgumentMap()
	argsArgs.Add(includeDeprecated)
	fm.Add(&typesystem.Field{
		Name: "args",
		Type: typesystem.NonNullOf(typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: InputValueObject}))),
		Args: argsArgs,
		Resolve: resolveField(func(_ context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			return wrapArgs(source.(directiveValue).d.Args, includeDeprecatedArg(args)), nil
		}),
	})
	fm.Add(&typesystem.Field{Name: "isRepeatable", Type: nonNullBool, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(directiveValue).d.IsRepeatable, nil
	})})
	return fm
}, nil, nil)

// TypeObject backs __Type, the one introspection type whose shape
// depends on the Kind of the type it wraps (§3, §4.4).
var TypeObject = typesystem.NewObjectThunk("__Type", "The fundamental unit of any GraphQL Schema is the type. There are many kinds of types in GraphQL as represented by the `__TypeKind` enum.", func() typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	fm.Add(&typesystem.Field{Name: "kind", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindEnum, Enum: TypeKindEnum}), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return source.(typeValue).t.Kind, nil
	})})
	fm.Add(&typesystem.Field{Name: "name", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		t := source.(typeValue).t
		if t.IsList() || t.IsNonNull() {
			return nil, nil
		}
		return t.Named(), nil
	})})
	fm.Add(&typesystem.Field{Name: "description", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return nonEmpty(typeDescription(source.(typeValue).t)), nil
	})})
	fm.Add(&typesystem.Field{Name: "specifiedByURL", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		t := source.(typeValue).t
		if t.Kind != typesystem.KindScalar {
			return nil, nil
		}
		return t.Scalar.SpecifiedByURL, nil
	})})

	includeDeprecated := &typesystem.Argument{Name: "includeDeprecated", Type: boolType, Default: typesystem.Default{HasValue: true, Value: false}}
	fieldsArgs := typesystem.NewArgumentMap()
	fieldsArgs.Add(includeDeprecated)
	fm.Add(&typesystem.Field{
		Name: "fields",
		Type: typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: FieldObject})),
		Args: fieldsArgs,
		Resolve: resolveField(func(_ context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			t := source.(typeValue).t
			var fm2 typesystem.FieldMap
			switch t.Kind {
			case typesystem.KindObject:
				fm2 = t.Object.Fields()
			case typesystem.KindInterface:
				fm2 = t.Interface.Fields()
			default:
				return nil, nil
			}
			return wrapFields(fm2, includeDeprecatedArg(args)), nil
		}),
	})

	fm.Add(&typesystem.Field{Name: "interfaces", Type: typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject})), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		t := source.(typeValue).t
		switch t.Kind {
		case typesystem.KindObject:
			return wrapInterfacesAsTypes(t.Object.Interfaces()), nil
		case typesystem.KindInterface:
			return wrapInterfacesAsTypes(t.Interface.Interfaces()), nil
		default:
			return nil, nil
		}
	})})

	fm.Add(&typesystem.Field{Name: "possibleTypes", Type: typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject})), Resolve: func(_ context.Context, source interface{}, _ map[string]interface{}, info typesystem.ResolveInfo) (interface{}, error) {
		t := source.(typeValue).t
		if !t.IsAbstract() || info.Schema == nil {
			return nil, nil
		}
		return wrapObjectsAsTypes(info.Schema.PossibleTypes(t)), nil
	}})

	enumArgs := typesystem.NewArgumentMap()
	enumArgs.Add(includeDeprecated)
	fm.Add(&typesystem.Field{
		Name: "enumValues",
		Type: typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: EnumValueObject})),
		Args: enumArgs,
		Resolve: resolveField(func(_ context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			t := source.(typeValue).t
			if t.Kind != typesystem.KindEnum {
				return nil, nil
			}
			return wrapEnumValues(t.Enum.Values(), includeDeprecatedArg(args)), nil
		}),
	})

	inputArgs := typesystem.NewArgumentMap()
	inputArgs.Add(includeDeprecated)
	fm.Add(&typesystem.Field{
		Name: "inputFields",
		Type: typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: InputValueObject})),
		Args: inputArgs,
		Resolve: resolveField(func(_ context.Context, source interface{}, args map[string]interface{}) (interface{}, error) {
			t := source.(typeValue).t
			if t.Kind != typesystem.KindInputObject {
				return nil, nil
			}
			return wrapArgs(t.InputObject.Fields(), includeDeprecatedArg(args)), nil
		}),
	})

	fm.Add(&typesystem.Field{Name: "ofType", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		t := source.(typeValue).t
		if t.Kind != typesystem.KindList && t.Kind != typesystem.KindNonNull {
			return nil, nil
		}
		return wrapType(t.OfType), nil
	})})

	fm.Add(&typesystem.Field{Name: "isOneOf", Type: nonNullBool, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		t := source.(typeValue).t
		return t.Kind == typesystem.KindInputObject && t.InputObject.IsOneOf, nil
	})})

	return fm
}, nil, nil)

// SchemaObject backs __Schema, the entry point of every introspection
// query (§6 GetIntrospectionQuery).
var SchemaObject = typesystem.NewObjectThunk("__Schema", "A GraphQL Schema defines the capabilities of a GraphQL server. It exposes all available types and directives on the server, as well as the entry points for query, mutation, and subscription operations.", func() typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	fm.Add(&typesystem.Field{Name: "description", Type: stringType, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		return nonEmpty(source.(schemaValue).schema.Description), nil
	})})
	fm.Add(&typesystem.Field{Name: "types", Type: typesystem.NonNullOf(typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}))), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		schema := source.(schemaValue).schema
		names := make([]string, 0, len(schema.TypeMap))
		for name := range schema.TypeMap {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]interface{}, 0, len(names))
		for _, name := range names {
			out = append(out, typeValue{t: schema.TypeMap[name]})
		}
		return out, nil
	})})
	fm.Add(&typesystem.Field{Name: "queryType", Type: typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		schema := source.(schemaValue).schema
		return wrapType(&typesystem.Type{Kind: typesystem.KindObject, Object: schema.Query}), nil
	})})
	fm.Add(&typesystem.Field{Name: "mutationType", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		schema := source.(schemaValue).schema
		if schema.Mutation == nil {
			return nil, nil
		}
		return wrapType(&typesystem.Type{Kind: typesystem.KindObject, Object: schema.Mutation}), nil
	})})
	fm.Add(&typesystem.Field{Name: "subscriptionType", Type: &typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject}, Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		schema := source.(schemaValue).schema
		if schema.Subscription == nil {
			return nil, nil
		}
		return wrapType(&typesystem.Type{Kind: typesystem.KindObject, Object: schema.Subscription}), nil
	})})
	fm.Add(&typesystem.Field{Name: "directives", Type: typesystem.NonNullOf(typesystem.ListOf(typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: DirectiveObject}))), Resolve: resolveField(func(_ context.Context, source interface{}, _ map[string]interface{}) (interface{}, error) {
		schema := source.(schemaValue).schema
		out := make([]interface{}, 0, len(schema.Directives))
		for _, d := range schema.Directives {
			out = append(out, directiveValue{d: d})
		}
		return out, nil
	})})
	return fm
}, nil, nil)

func wrapFields(fm typesystem.FieldMap, includeDeprecated bool) []interface{} {
	out := make([]interface{}, 0, fm.Len())
	for _, name := range fm.Names {
		f, _ := fm.Lookup(name)
		if f.Deprecation.IsDeprecated && !includeDeprecated {
			continue
		}
		out = append(out, fieldValue{f: f})
	}
	return out
}

func wrapArgs(args typesystem.ArgumentMap, includeDeprecated bool) []interface{} {
	out := make([]interface{}, 0, len(args.Names))
	for _, name := range args.Names {
		a, _ := args.Lookup(name)
		if a.Deprecation.IsDeprecated && !includeDeprecated {
			continue
		}
		out = append(out, inputValueValue{a: a})
	}
	return out
}

func wrapEnumValues(values []*typesystem.EnumValue, includeDeprecated bool) []interface{} {
	out := make([]interface{}, 0, len(values))
	for _, v := range values {
		if v.Deprecation.IsDeprecated && !includeDeprecated {
			continue
		}
		out = append(out, enumValueValue{v: v})
	}
	return out
}

func typeDescription(t *typesystem.Type) string {
	switch t.Kind {
	case typesystem.KindScalar:
		return t.Scalar.Description
	case typesystem.KindObject:
		return t.Object.Description
	case typesystem.KindInterface:
		return t.Interface.Description
	case typesystem.KindUnion:
		return t.Union.Description
	case typesystem.KindEnum:
		return t.Enum.Description
	case typesystem.KindInputObject:
		return t.InputObject.Description
	default:
		return ""
	}
}
