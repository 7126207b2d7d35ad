// Package astimport builds a runtime typesystem.Schema out of a parsed
// type-system ast.Document, the programmatic-schema equivalent of the
// teacher's asttransform package (which instead merges SDL source text
// for its one fixed "base schema"). Here the document can declare an
// arbitrary type graph, so references between types are resolved
// lazily against a shared name table, the same thunk trick
// typesystem.NewObjectThunk already uses to let two Go object literals
// refer to each other regardless of declaration order.
package astimport

import (
	"fmt"
	"strconv"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// BuildSchemaConfig walks every type-system definition in doc and
// returns the SchemaConfig that reproduces it as a runtime type graph.
// Callers that don't need introspection grafted in can pass the result
// straight to typesystem.NewSchema; graphql.BuildSchema instead hands
// it to introspection.BuildSchema.
func BuildSchemaConfig(doc *ast.Document) (typesystem.SchemaConfig, error) {
	b := &builder{doc: doc, types: map[string]*typesystem.Type{}}
	return b.build()
}

type builder struct {
	doc   *ast.Document
	types map[string]*typesystem.Type

	scalars      map[string][]int
	objects      map[string][]int
	interfaces   map[string][]int
	unions       map[string][]int
	enums        map[string][]int
	inputObjects map[string][]int
	order        []typeName // declaration order, first occurrence wins
}

type typeName struct {
	kind string // "scalar", "object", "interface", "union", "enum", "input"
	name string
}

// seedBuiltInScalars makes the five always-available scalar names
// resolvable by field/argument type references even though SDL never
// declares a `scalar Int` line for them. They are looked up here only;
// NewSchema grafts the actual BuiltInScalars() onto the final schema's
// TypeMap on its own, so these are not added to cfg.Types.
func (b *builder) seedBuiltInScalars() {
	for _, s := range typesystem.BuiltInScalars() {
		b.types[s.Name] = &typesystem.Type{Kind: typesystem.KindScalar, Scalar: s}
	}
}

func (b *builder) build() (typesystem.SchemaConfig, error) {
	var cfg typesystem.SchemaConfig
	b.seedBuiltInScalars()

	b.scalars = map[string][]int{}
	b.objects = map[string][]int{}
	b.interfaces = map[string][]int{}
	b.unions = map[string][]int{}
	b.enums = map[string][]int{}
	b.inputObjects = map[string][]int{}

	var schemaDef *ast.SchemaDefinition
	var directiveDefRefs []int

	for _, root := range b.doc.RootNodes {
		switch root.Kind {
		case ast.NodeKindSchemaDefinition:
			sd := b.doc.SchemaDefinitions[root.Ref]
			schemaDef = &sd
		case ast.NodeKindScalarTypeDefinition:
			b.record(&b.scalars, "scalar", b.doc.ScalarTypeDefinitions[root.Ref].Name, root.Ref)
		case ast.NodeKindObjectTypeDefinition:
			b.record(&b.objects, "object", b.doc.ObjectTypeDefinitions[root.Ref].Name, root.Ref)
		case ast.NodeKindInterfaceTypeDefinition:
			b.record(&b.interfaces, "interface", b.doc.InterfaceTypeDefinitions[root.Ref].Name, root.Ref)
		case ast.NodeKindUnionTypeDefinition:
			b.record(&b.unions, "union", b.doc.UnionTypeDefinitions[root.Ref].Name, root.Ref)
		case ast.NodeKindEnumTypeDefinition:
			b.record(&b.enums, "enum", b.doc.EnumTypeDefinitions[root.Ref].Name, root.Ref)
		case ast.NodeKindInputObjectTypeDefinition:
			b.record(&b.inputObjects, "input", b.doc.InputObjectTypeDefinitions[root.Ref].Name, root.Ref)
		case ast.NodeKindDirectiveDefinition:
			directiveDefRefs = append(directiveDefRefs, root.Ref)
		}
	}

	// Scalars and enums have no forward-referencing fields, so build
	// them eagerly first; everything else is built as a thunk that
	// resolves names against b.types, which is fully populated by the
	// time any thunk actually runs (the first run is NewSchema's
	// reachability walk, which only happens after this function
	// returns).
	for _, name := range b.namesOf("scalar") {
		t := b.buildScalar(name, b.scalars[name])
		b.types[name] = &typesystem.Type{Kind: typesystem.KindScalar, Scalar: t}
	}
	for _, name := range b.namesOf("enum") {
		e := b.buildEnum(name, b.enums[name])
		b.types[name] = &typesystem.Type{Kind: typesystem.KindEnum, Enum: e}
	}
	for _, name := range b.namesOf("interface") {
		i := b.buildInterface(name, b.interfaces[name])
		b.types[name] = &typesystem.Type{Kind: typesystem.KindInterface, Interface: i}
	}
	for _, name := range b.namesOf("object") {
		o := b.buildObject(name, b.objects[name])
		b.types[name] = &typesystem.Type{Kind: typesystem.KindObject, Object: o}
	}
	for _, name := range b.namesOf("union") {
		u := b.buildUnion(name, b.unions[name])
		b.types[name] = &typesystem.Type{Kind: typesystem.KindUnion, Union: u}
	}
	for _, name := range b.namesOf("input") {
		io := b.buildInputObject(name, b.inputObjects[name])
		b.types[name] = &typesystem.Type{Kind: typesystem.KindInputObject, InputObject: io}
	}

	for _, ref := range directiveDefRefs {
		cfg.Directives = append(cfg.Directives, b.buildDirective(b.doc.DirectiveDefinitions[ref]))
	}

	for _, tn := range b.order {
		if t, ok := b.types[tn.name]; ok {
			cfg.Types = append(cfg.Types, t)
		}
	}

	query, mutation, subscription, description, err := b.resolveRoots(schemaDef)
	if err != nil {
		return cfg, err
	}
	cfg.Query, cfg.Mutation, cfg.Subscription, cfg.Description = query, mutation, subscription, description

	return cfg, nil
}

func (b *builder) record(m *map[string][]int, kind, name string, ref int) {
	if _, exists := (*m)[name]; !exists {
		b.order = append(b.order, typeName{kind: kind, name: name})
	}
	(*m)[name] = append((*m)[name], ref)
}

func (b *builder) namesOf(kind string) []string {
	var out []string
	for _, tn := range b.order {
		if tn.kind == kind {
			out = append(out, tn.name)
		}
	}
	return out
}

// resolveRoots picks Query/Mutation/Subscription either from an
// explicit `schema { ... }` block or, absent one, by the conventional
// type names (§4.2's "default root operation type names").
func (b *builder) resolveRoots(sd *ast.SchemaDefinition) (query, mutation, subscription *typesystem.Object, description string, err error) {
	if sd != nil {
		description = describe(sd.Description)
		for _, ref := range sd.RootOperationTypeDefinitionRefs {
			rootDef := b.doc.RootOperationTypeDefs[ref]
			obj, ok := b.objectByName(rootDef.NamedType)
			if !ok {
				return nil, nil, nil, "", fmt.Errorf("astimport: schema root type %q is not defined", rootDef.NamedType)
			}
			switch rootDef.OperationType {
			case ast.OperationTypeQuery:
				query = obj
			case ast.OperationTypeMutation:
				mutation = obj
			case ast.OperationTypeSubscription:
				subscription = obj
			}
		}
		return query, mutation, subscription, description, nil
	}

	query, _ = b.objectByName(ast.DefaultQueryTypeName)
	mutation, _ = b.objectByName(ast.DefaultMutationTypeName)
	subscription, _ = b.objectByName(ast.DefaultSubscriptionTypeName)
	return query, mutation, subscription, "", nil
}

func (b *builder) objectByName(name string) (*typesystem.Object, bool) {
	t, ok := b.types[name]
	if !ok || t.Kind != typesystem.KindObject {
		return nil, false
	}
	return t.Object, true
}

func describe(d ast.Description) string {
	if !d.HasDescription {
		return ""
	}
	return d.Content
}

// resolveType converts an ast.Type reference (Named/List/NonNull) into
// the matching *typesystem.Type by name lookup against b.types.
func (b *builder) resolveType(ref int) (*typesystem.Type, error) {
	t := b.doc.Types[ref]
	switch t.Kind {
	case ast.TypeKindNonNull:
		inner, err := b.resolveType(t.OfType)
		if err != nil {
			return nil, err
		}
		return typesystem.NonNullOf(inner), nil
	case ast.TypeKindList:
		inner, err := b.resolveType(t.OfType)
		if err != nil {
			return nil, err
		}
		return typesystem.ListOf(inner), nil
	default:
		named, ok := b.types[t.Name]
		if !ok {
			return nil, fmt.Errorf("astimport: undefined type %q", t.Name)
		}
		return named, nil
	}
}

func (b *builder) buildScalar(name string, refs []int) *typesystem.Scalar {
	def := b.doc.ScalarTypeDefinitions[refs[0]]
	s := &typesystem.Scalar{Name: name, Description: describe(def.Description)}
	if dir, ok := b.doc.DirectiveByName(def.Directives, "specifiedBy"); ok {
		if arg, ok := b.doc.ArgumentByName(dir.Arguments, "url"); ok {
			if url, ok := constValueToGo(b.doc, arg.Value).(string); ok {
				s.SpecifiedByURL = url
			}
		}
	}
	// Custom scalars declared in SDL carry no executable
	// (de)serialization logic of their own; a host embedding this
	// engine supplies Serialize/ParseValue/ParseLiteral by replacing
	// the Scalar after BuildSchemaConfig returns, the same way
	// graphql-js requires `buildASTSchema(doc, {assumeValid: true})`
	// callers to patch in resolvers afterward.
	s.Serialize = func(v interface{}) (interface{}, error) { return v, nil }
	s.ParseValue = func(v interface{}) (interface{}, error) { return v, nil }
	s.ParseLiteral = func(v interface{}, _ map[string]interface{}) (interface{}, error) { return v, nil }
	return s
}

func (b *builder) buildEnum(name string, refs []int) *typesystem.Enum {
	def := b.doc.EnumTypeDefinitions[refs[0]]
	var values []*typesystem.EnumValue
	for _, ref := range refs {
		for _, vref := range b.doc.EnumTypeDefinitions[ref].ValuesRefs {
			vd := b.doc.EnumValueDefinitions[vref]
			values = append(values, &typesystem.EnumValue{
				Name:        vd.Value,
				Description: describe(vd.Description),
				Deprecation: b.deprecation(vd.Directives),
			})
		}
	}
	return typesystem.NewEnum(name, describe(def.Description), values)
}

func (b *builder) buildInterface(name string, refs []int) *typesystem.Interface {
	def := b.doc.InterfaceTypeDefinitions[refs[0]]
	return typesystem.NewInterfaceThunk(name, describe(def.Description),
		func() typesystem.FieldMap { return b.buildFieldMapFromInterfaceRefs(refs) },
		func() []*typesystem.Interface { return b.buildImplementsFromInterfaceRefs(refs) },
		nil,
	)
}

func (b *builder) buildObject(name string, refs []int) *typesystem.Object {
	def := b.doc.ObjectTypeDefinitions[refs[0]]
	return typesystem.NewObjectThunk(name, describe(def.Description),
		func() typesystem.FieldMap { return b.buildFieldMapFromObjectRefs(refs) },
		func() []*typesystem.Interface { return b.buildImplementsFromObjectRefs(refs) },
		nil,
	)
}

func (b *builder) buildUnion(name string, refs []int) *typesystem.Union {
	def := b.doc.UnionTypeDefinitions[refs[0]]
	return typesystem.NewUnionThunk(name, describe(def.Description), func() []*typesystem.Object {
		var members []*typesystem.Object
		for _, ref := range refs {
			for _, memberName := range b.doc.UnionTypeDefinitions[ref].MemberTypes {
				if obj, ok := b.objectByName(memberName); ok {
					members = append(members, obj)
				}
			}
		}
		return members
	}, nil)
}

func (b *builder) buildInputObject(name string, refs []int) *typesystem.InputObject {
	def := b.doc.InputObjectTypeDefinitions[refs[0]]
	isOneOf := false
	for _, ref := range refs {
		if _, ok := b.doc.DirectiveByName(b.doc.InputObjectTypeDefinitions[ref].Directives, "oneOf"); ok {
			isOneOf = true
		}
	}
	return typesystem.NewInputObjectThunk(name, describe(def.Description), func() typesystem.InputFieldMap {
		fm := typesystem.NewInputFieldMap()
		for _, ref := range refs {
			for _, fref := range b.doc.InputObjectTypeDefinitions[ref].FieldsRefs {
				fm.Add(b.buildInputValue(b.doc.InputValueDefinitions[fref]))
			}
		}
		return fm
	}, isOneOf)
}

func (b *builder) buildFieldMapFromObjectRefs(refs []int) typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	for _, ref := range refs {
		for _, fref := range b.doc.ObjectTypeDefinitions[ref].FieldsRefs {
			fm.Add(b.mustBuildField(b.doc.FieldDefinitions[fref]))
		}
	}
	return fm
}

func (b *builder) buildFieldMapFromInterfaceRefs(refs []int) typesystem.FieldMap {
	fm := typesystem.NewFieldMap()
	for _, ref := range refs {
		for _, fref := range b.doc.InterfaceTypeDefinitions[ref].FieldsRefs {
			fm.Add(b.mustBuildField(b.doc.FieldDefinitions[fref]))
		}
	}
	return fm
}

// mustBuildField panics on an undefined field type. A FieldsThunk (used
// here because SDL fields may reference types declared later in the
// document) has no error return to report through, the same bind
// BuildASTSchema's own buildFieldMap hits: "FieldThunks do not return
// errors, so panic here". The thunk is first forced by NewSchema's
// reachability walk; graphql.BuildSchema recovers the panic and returns
// it as its error.
func (b *builder) mustBuildField(def ast.FieldDefinition) *typesystem.Field {
	f, err := b.buildField(def)
	if err != nil {
		panic(err)
	}
	return f
}

func (b *builder) buildImplementsFromObjectRefs(refs []int) []*typesystem.Interface {
	var out []*typesystem.Interface
	for _, ref := range refs {
		for _, ifaceName := range b.doc.ObjectTypeDefinitions[ref].ImplementsInterfaces {
			if t, ok := b.types[ifaceName]; ok && t.Kind == typesystem.KindInterface {
				out = append(out, t.Interface)
			}
		}
	}
	return out
}

func (b *builder) buildImplementsFromInterfaceRefs(refs []int) []*typesystem.Interface {
	var out []*typesystem.Interface
	for _, ref := range refs {
		for _, ifaceName := range b.doc.InterfaceTypeDefinitions[ref].ImplementsInterfaces {
			if t, ok := b.types[ifaceName]; ok && t.Kind == typesystem.KindInterface {
				out = append(out, t.Interface)
			}
		}
	}
	return out
}

func (b *builder) buildField(def ast.FieldDefinition) (*typesystem.Field, error) {
	ft, err := b.resolveType(def.Type)
	if err != nil {
		return nil, err
	}
	args := typesystem.NewArgumentMap()
	for _, aref := range def.ArgumentsRefs {
		args.Add(b.buildInputValue(b.doc.InputValueDefinitions[aref]))
	}
	return &typesystem.Field{
		Name:        def.Name,
		Description: describe(def.Description),
		Type:        ft,
		Args:        args,
		Deprecation: b.deprecation(def.Directives),
	}, nil
}

// buildInputValue builds an Argument/InputField (the two share one type,
// typesystem.InputField = Argument): an argument definition and an
// input-object field definition are the same grammar production.
func (b *builder) buildInputValue(def ast.InputValueDefinition) *typesystem.Argument {
	t, err := b.resolveType(def.Type)
	if err != nil {
		// Same bind as mustBuildField: this also runs inside field
		// thunks, so a dangling type reference panics, and
		// graphql.BuildSchema returns it as its error.
		panic(err)
	}
	a := &typesystem.Argument{
		Name:        def.Name,
		Description: describe(def.Description),
		Type:        t,
		Deprecation: b.deprecation(def.Directives),
	}
	if def.HasDefaultValue {
		a.Default = typesystem.Default{HasValue: true, Value: constValueToGo(b.doc, def.DefaultValue)}
	}
	return a
}

func (b *builder) deprecation(directives []int) typesystem.Deprecation {
	dir, ok := b.doc.DirectiveByName(directives, "deprecated")
	if !ok {
		return typesystem.Deprecation{}
	}
	reason := "No longer supported"
	if arg, ok := b.doc.ArgumentByName(dir.Arguments, "reason"); ok {
		if s, ok := constValueToGo(b.doc, arg.Value).(string); ok {
			reason = s
		}
	}
	return typesystem.Deprecation{IsDeprecated: true, Reason: reason}
}

func (b *builder) buildDirective(def ast.DirectiveDefinition) *typesystem.Directive {
	args := typesystem.NewArgumentMap()
	for _, aref := range def.ArgumentsRefs {
		args.Add(b.buildInputValue(b.doc.InputValueDefinitions[aref]))
	}
	return &typesystem.Directive{
		Name:         def.Name,
		Description:  describe(def.Description),
		Locations:    def.Locations,
		Args:         args,
		IsRepeatable: def.Repeatable,
	}
}

// constValueToGo converts a const AST value (one known to contain no
// variable reference, as every default value and directive argument in
// SDL must) into a plain Go value. This mirrors internal/coerce's
// helper of the same name; it is reimplemented here rather than
// imported because coerce depends on typesystem and importing it back
// from astimport (which typesystem itself doesn't depend on, so it
// could) would still be a needless layering inversion for a dozen
// lines of literal conversion.
func constValueToGo(doc *ast.Document, ref int) interface{} {
	v := doc.Values[ref]
	switch v.Kind {
	case ast.ValueKindNull:
		return nil
	case ast.ValueKindBoolean:
		return v.Boolean
	case ast.ValueKindInt:
		n, _ := strconv.ParseInt(v.Raw, 10, 64)
		return n
	case ast.ValueKindFloat:
		f, _ := strconv.ParseFloat(v.Raw, 64)
		return f
	case ast.ValueKindString, ast.ValueKindEnum:
		return v.Raw
	case ast.ValueKindList:
		out := make([]interface{}, len(v.ListValues))
		for i, item := range v.ListValues {
			out[i] = constValueToGo(doc, item)
		}
		return out
	case ast.ValueKindObject:
		out := make(map[string]interface{}, len(v.ObjectFields))
		for _, fref := range v.ObjectFields {
			f := doc.ObjectFields[fref]
			out[f.Name] = constValueToGo(doc, f.Value)
		}
		return out
	default:
		return nil
	}
}
