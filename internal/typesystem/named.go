package typesystem

// Deprecation is attached to a Field, Argument, InputField or
// EnumValue that carries `@deprecated(reason: "...")` (§3).
type Deprecation struct {
	IsDeprecated bool
	Reason       string
}

// Default distinguishes an absent default from an explicit null
// default (§3's "default distinguishes absent from explicit null").
type Default struct {
	HasValue bool
	Value    interface{}
}

// Field is one resolvable field of an Object or Interface: its type,
// declared arguments, and optional resolve/subscribe hooks.
type Field struct {
	Name        string
	Description string
	Type        *Type
	Args        ArgumentMap
	Deprecation Deprecation

	// Resolve/Subscribe are filled in by the host when building an
	// executable schema; nil means "use the default resolver" (§4.7).
	Resolve   FieldResolveFn
	Subscribe FieldResolveFn
}

// FieldMap is an ordered-by-insertion field set; Go map iteration order
// is not source order, so FieldMap also tracks Names to let printers
// and introspection walk fields in declaration order.
type FieldMap struct {
	byName map[string]*Field
	Names  []string
}

func NewFieldMap() FieldMap { return FieldMap{byName: map[string]*Field{}} }

func (m *FieldMap) Add(f *Field) {
	if m.byName == nil {
		m.byName = map[string]*Field{}
	}
	if _, exists := m.byName[f.Name]; !exists {
		m.Names = append(m.Names, f.Name)
	}
	m.byName[f.Name] = f
}

func (m FieldMap) Lookup(name string) (*Field, bool) {
	f, ok := m.byName[name]
	return f, ok
}

func (m FieldMap) Len() int { return len(m.Names) }

// Argument is a field/directive argument declaration (§3).
type Argument struct {
	Name        string
	Description string
	Type        *Type
	Default     Default
	Deprecation Deprecation
}

type ArgumentMap struct {
	byName map[string]*Argument
	Names  []string
}

func NewArgumentMap() ArgumentMap { return ArgumentMap{byName: map[string]*Argument{}} }

func (m *ArgumentMap) Add(a *Argument) {
	if m.byName == nil {
		m.byName = map[string]*Argument{}
	}
	if _, exists := m.byName[a.Name]; !exists {
		m.Names = append(m.Names, a.Name)
	}
	m.byName[a.Name] = a
}

func (m ArgumentMap) Lookup(name string) (*Argument, bool) {
	a, ok := m.byName[name]
	return a, ok
}

// InputField is an InputObject field declaration; same shape as
// Argument (§3 groups them: "Argument / InputField = {name, type,
// default?, deprecation?}").
type InputField = Argument

type InputFieldMap = ArgumentMap

func NewInputFieldMap() InputFieldMap { return NewArgumentMap() }

// ScalarSerializeFn converts an internal Go value to a JSON-safe
// response value; ParseValueFn/ParseLiteralFn perform the reverse
// coercion from a variable/literal (§4.5, §4.4).
type ScalarSerializeFn func(value interface{}) (interface{}, error)
type ScalarParseValueFn func(value interface{}) (interface{}, error)
type ScalarParseLiteralFn func(value interface{}, variables map[string]interface{}) (interface{}, error)

// Scalar is a leaf type with custom (de)serialization (§3, §4.4).
type Scalar struct {
	Name           string
	Description    string
	Serialize      ScalarSerializeFn
	ParseValue     ScalarParseValueFn
	ParseLiteral   ScalarParseLiteralFn
	SpecifiedByURL string
}

// IsTypeOfFn lets an Object claim ownership of a runtime value when
// resolving an abstract type (§4.7 step 5, Composite completion).
type IsTypeOfFn func(value interface{}, info ResolveInfo) bool

// Object is a concrete output type (§3).
type Object struct {
	Name        string
	Description string
	fields      *thunkBox
	interfaces  *interfacesThunkBox
	IsTypeOf    IsTypeOfFn
}

// NewObject builds an Object from an eager field map; interfaces may be
// nil for a type implementing none.
func NewObject(name, description string, fields FieldMap, interfaces []*Interface, isTypeOf IsTypeOfFn) *Object {
	return &Object{Name: name, Description: description, fields: newEagerFields(fields), interfaces: newEagerInterfaces(interfaces), IsTypeOf: isTypeOf}
}

// NewObjectThunk builds an Object whose fields (and/or interfaces) are
// resolved lazily, breaking A<->B reference cycles (§4.4, §9).
func NewObjectThunk(name, description string, fields FieldsThunk, interfaces func() []*Interface, isTypeOf IsTypeOfFn) *Object {
	return &Object{Name: name, Description: description, fields: newLazyFields(fields), interfaces: newLazyInterfaces(interfaces), IsTypeOf: isTypeOf}
}

func (o *Object) Fields() FieldMap          { return o.fields.get() }
func (o *Object) Interfaces() []*Interface  { return o.interfaces.get() }

// ResolveTypeFn picks the concrete Object for an abstract (Interface or
// Union) value at resolution time (§4.7 step 5).
type ResolveTypeFn func(value interface{}, info ResolveInfo) (*Object, error)

// Interface is an abstract output type with a shared field set (§3).
type Interface struct {
	Name        string
	Description string
	fields      *thunkBox
	interfaces  *interfacesThunkBox
	ResolveType ResolveTypeFn
}

func NewInterface(name, description string, fields FieldMap, interfaces []*Interface, resolveType ResolveTypeFn) *Interface {
	return &Interface{Name: name, Description: description, fields: newEagerFields(fields), interfaces: newEagerInterfaces(interfaces), ResolveType: resolveType}
}

func NewInterfaceThunk(name, description string, fields FieldsThunk, interfaces func() []*Interface, resolveType ResolveTypeFn) *Interface {
	return &Interface{Name: name, Description: description, fields: newLazyFields(fields), interfaces: newLazyInterfaces(interfaces), ResolveType: resolveType}
}

func (i *Interface) Fields() FieldMap         { return i.fields.get() }
func (i *Interface) Interfaces() []*Interface { return i.interfaces.get() }

// Union is an abstract output type whose members are Objects (§3).
type Union struct {
	Name        string
	Description string
	membersFn   func() []*Object
	members     []*Object
	resolved    bool
	ResolveType ResolveTypeFn
}

func NewUnion(name, description string, members []*Object, resolveType ResolveTypeFn) *Union {
	return &Union{Name: name, Description: description, members: members, resolved: true, ResolveType: resolveType}
}

func NewUnionThunk(name, description string, members func() []*Object, resolveType ResolveTypeFn) *Union {
	return &Union{Name: name, Description: description, membersFn: members, ResolveType: resolveType}
}

func (u *Union) Members() []*Object {
	if !u.resolved {
		if u.membersFn != nil {
			u.members = u.membersFn()
		}
		u.resolved = true
	}
	return u.members
}

// EnumValue is one member of an Enum (§3).
type EnumValue struct {
	Name        string
	Description string
	Value       interface{} // internal value; defaults to Name if nil
	Deprecation Deprecation
}

// Enum is a closed set of named values (§3).
type Enum struct {
	Name        string
	Description string
	values      []*EnumValue
	byName      map[string]*EnumValue
}

func NewEnum(name, description string, values []*EnumValue) *Enum {
	e := &Enum{Name: name, Description: description, byName: map[string]*EnumValue{}}
	for _, v := range values {
		if v.Value == nil {
			v.Value = v.Name
		}
		e.values = append(e.values, v)
		e.byName[v.Name] = v
	}
	return e
}

func (e *Enum) Values() []*EnumValue { return e.values }

func (e *Enum) ValueByName(name string) (*EnumValue, bool) {
	v, ok := e.byName[name]
	return v, ok
}

// ValueBySerialized finds the EnumValue whose internal Value equals v,
// for serializing a resolver's raw return value (§4.7 step 5 Leaf
// completion for enums).
func (e *Enum) ValueBySerialized(v interface{}) (*EnumValue, bool) {
	for _, ev := range e.values {
		if ev.Value == v {
			return ev, true
		}
	}
	return nil, false
}

// InputObject is an input-only composite type; IsOneOf marks an
// `@oneOf` input requiring exactly one non-null field set (§4.4, §4.5).
type InputObject struct {
	Name        string
	Description string
	fields      *inputThunkBox
	IsOneOf     bool
}

func NewInputObject(name, description string, fields InputFieldMap, isOneOf bool) *InputObject {
	return &InputObject{Name: name, Description: description, fields: newEagerInputFields(fields), IsOneOf: isOneOf}
}

func NewInputObjectThunk(name, description string, fields func() InputFieldMap, isOneOf bool) *InputObject {
	return &InputObject{Name: name, Description: description, fields: newLazyInputFields(fields), IsOneOf: isOneOf}
}

func (o *InputObject) Fields() InputFieldMap { return o.fields.get() }
