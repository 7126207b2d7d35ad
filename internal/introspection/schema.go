package introspection

import (
	"context"
	"fmt"

	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// schemaBox lets the `__schema`/`__type` resolvers close over the
// *typesystem.Schema they belong to, even though that Schema does not
// exist yet while its own Query type (which carries those resolvers) is
// still being assembled. BuildSchema fills the box immediately after
// typesystem.NewSchema returns, before the schema is handed to any
// caller, so by the time a resolver actually runs the box is always
// populated.
type schemaBox struct {
	schema *typesystem.Schema
}

// BuildSchema wraps typesystem.NewSchema, grafting `__schema` and
// `__type(name:)` onto the Query type the way the teacher's
// asttransform.MergeDefinitionWithBaseSchema merges a literal "base
// schema" SDL document into every parsed schema before it is built
// (§4.4). Here the graft happens at the Go type-graph level: Query is
// rebuilt as a thunked Object whose field map is the original Query's
// fields plus the two introspection entry points, instead of as merged
// SDL text.
func BuildSchema(cfg typesystem.SchemaConfig) (*typesystem.Schema, error) {
	if cfg.Query == nil {
		return nil, fmt.Errorf("introspection: schema must define a Query type")
	}

	box := &schemaBox{}
	originalQuery := cfg.Query

	cfg.Query = typesystem.NewObjectThunk(originalQuery.Name, originalQuery.Description, func() typesystem.FieldMap {
		fm := typesystem.NewFieldMap()
		for _, name := range originalQuery.Fields().Names {
			f, _ := originalQuery.Fields().Lookup(name)
			fm.Add(f)
		}
		if _, exists := fm.Lookup("__schema"); !exists {
			fm.Add(schemaField(box))
		}
		if _, exists := fm.Lookup("__type"); !exists {
			fm.Add(typeField(box))
		}
		return fm
	}, func() []*typesystem.Interface { return originalQuery.Interfaces() }, originalQuery.IsTypeOf)

	cfg.Types = append(cfg.Types,
		&typesystem.Type{Kind: typesystem.KindObject, Object: SchemaObject},
		&typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject},
		&typesystem.Type{Kind: typesystem.KindObject, Object: FieldObject},
		&typesystem.Type{Kind: typesystem.KindObject, Object: InputValueObject},
		&typesystem.Type{Kind: typesystem.KindObject, Object: EnumValueObject},
		&typesystem.Type{Kind: typesystem.KindObject, Object: DirectiveObject},
		&typesystem.Type{Kind: typesystem.KindEnum, Enum: TypeKindEnum},
		&typesystem.Type{Kind: typesystem.KindEnum, Enum: DirectiveLocationEnum},
	)

	schema, err := typesystem.NewSchema(cfg)
	if err != nil {
		return nil, err
	}
	box.schema = schema
	return schema, nil
}

func schemaField(box *schemaBox) *typesystem.Field {
	return &typesystem.Field{
		Name:        "__schema",
		Description: "Access the current type schema of this server.",
		Type:        typesystem.NonNullOf(&typesystem.Type{Kind: typesystem.KindObject, Object: SchemaObject}),
		Resolve: func(_ context.Context, _ interface{}, _ map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
			return schemaValue{schema: box.schema}, nil
		},
	}
}

func typeField(box *schemaBox) *typesystem.Field {
	nameArg := &typesystem.Argument{Name: "name", Type: typesystem.NonNullOf(stringType)}
	args := typesystem.NewArgumentMap()
	args.Add(nameArg)
	return &typesystem.Field{
		Name:        "__type",
		Description: "Request the type information of a single type.",
		Type:        &typesystem.Type{Kind: typesystem.KindObject, Object: TypeObject},
		Args:        args,
		Resolve: func(_ context.Context, _ interface{}, args map[string]interface{}, _ typesystem.ResolveInfo) (interface{}, error) {
			name, _ := args["name"].(string)
			t, ok := box.schema.LookupType(name)
			if !ok {
				return nil, nil
			}
			return wrapType(t), nil
		},
	}
}
