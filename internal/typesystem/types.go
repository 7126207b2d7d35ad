// Package typesystem implements the GraphQL type system graph (C5):
// named types, list/non-null wrappers, directives, and the Schema that
// indexes them. Cyclic type graphs (object A referencing object B which
// references A) are built the way the teacher's schema layer and
// graphql-js itself do it: a field map may be supplied eagerly or as a
// thunk, resolved once on first access and cached from then on (§4.4,
// §9 "Cyclic type graphs").
package typesystem

import "fmt"

// TypeKind distinguishes the six named-type variants plus the two
// wrapper kinds (§3).
type TypeKind int

const (
	KindScalar TypeKind = iota
	KindObject
	KindInterface
	KindUnion
	KindEnum
	KindInputObject
	KindList
	KindNonNull
)

func (k TypeKind) String() string {
	switch k {
	case KindScalar:
		return "SCALAR"
	case KindObject:
		return "OBJECT"
	case KindInterface:
		return "INTERFACE"
	case KindUnion:
		return "UNION"
	case KindEnum:
		return "ENUM"
	case KindInputObject:
		return "INPUT_OBJECT"
	case KindList:
		return "LIST"
	case KindNonNull:
		return "NON_NULL"
	default:
		return "UNKNOWN"
	}
}

// Type is every type reference in the schema graph: a named type or a
// List/NonNull wrapper around another Type. Only one of the Named*
// fields is populated, matching TypeKind.
type Type struct {
	Kind TypeKind

	Scalar      *Scalar
	Object      *Object
	Interface   *Interface
	Union       *Union
	Enum        *Enum
	InputObject *InputObject

	// OfType is set for KindList/KindNonNull.
	OfType *Type
}

// Named returns the name of the named type at the core of t, after
// unwrapping any List/NonNull wrappers.
func (t *Type) Named() string {
	switch t.Kind {
	case KindList, KindNonNull:
		return t.OfType.Named()
	default:
		return t.name()
	}
}

func (t *Type) name() string {
	switch t.Kind {
	case KindScalar:
		return t.Scalar.Name
	case KindObject:
		return t.Object.Name
	case KindInterface:
		return t.Interface.Name
	case KindUnion:
		return t.Union.Name
	case KindEnum:
		return t.Enum.Name
	case KindInputObject:
		return t.InputObject.Name
	default:
		return ""
	}
}

// String renders a Type the way SDL would: `[String!]!`.
func (t *Type) String() string {
	switch t.Kind {
	case KindList:
		return "[" + t.OfType.String() + "]"
	case KindNonNull:
		return t.OfType.String() + "!"
	default:
		return t.name()
	}
}

// IsNonNull/IsList are convenience predicates used throughout coercion
// and execution.
func (t *Type) IsNonNull() bool { return t.Kind == KindNonNull }
func (t *Type) IsList() bool    { return t.Kind == KindList }

// NonNullOf/ListOf build wrapper types.
func NonNullOf(of *Type) *Type {
	if of.Kind == KindNonNull {
		panic("typesystem: NonNull cannot wrap NonNull")
	}
	return &Type{Kind: KindNonNull, OfType: of}
}

func ListOf(of *Type) *Type { return &Type{Kind: KindList, OfType: of} }

// IsOutputType / IsInputType implement the structural-validation checks
// §4.4 requires of validate_schema.
func (t *Type) IsOutputType() bool {
	switch t.Kind {
	case KindList, KindNonNull:
		return t.OfType.IsOutputType()
	case KindScalar, KindObject, KindInterface, KindUnion, KindEnum:
		return true
	default:
		return false
	}
}

func (t *Type) IsInputType() bool {
	switch t.Kind {
	case KindList, KindNonNull:
		return t.OfType.IsInputType()
	case KindScalar, KindEnum, KindInputObject:
		return true
	default:
		return false
	}
}

func (t *Type) IsComposite() bool {
	switch t.Kind {
	case KindObject, KindInterface, KindUnion:
		return true
	default:
		return false
	}
}

func (t *Type) IsAbstract() bool {
	return t.Kind == KindInterface || t.Kind == KindUnion
}

func (t *Type) IsLeaf() bool {
	return t.Kind == KindScalar || t.Kind == KindEnum
}

// --- thunk plumbing shared by Object/Interface/InputObject field maps ---

// FieldsThunk produces a field map lazily; used to break reference
// cycles at construction time (§4.4, §9).
type FieldsThunk func() FieldMap

// thunkBox materialises a FieldsThunk exactly once and caches the
// result, whether the caller supplied an eager map or a thunk.
type thunkBox struct {
	resolved bool
	fields   FieldMap
	thunk    FieldsThunk
}

func newEagerFields(f FieldMap) *thunkBox { return &thunkBox{resolved: true, fields: f} }
func newLazyFields(t FieldsThunk) *thunkBox {
	return &thunkBox{thunk: t}
}

func (b *thunkBox) get() FieldMap {
	if !b.resolved {
		if b.thunk != nil {
			b.fields = b.thunk()
		}
		b.resolved = true
	}
	return b.fields
}

// inputThunkBox is the InputObject analogue of thunkBox.
type inputThunkBox struct {
	resolved bool
	fields   InputFieldMap
	thunk    func() InputFieldMap
}

func newEagerInputFields(f InputFieldMap) *inputThunkBox {
	return &inputThunkBox{resolved: true, fields: f}
}
func newLazyInputFields(t func() InputFieldMap) *inputThunkBox {
	return &inputThunkBox{thunk: t}
}

func (b *inputThunkBox) get() InputFieldMap {
	if !b.resolved {
		if b.thunk != nil {
			b.fields = b.thunk()
		}
		b.resolved = true
	}
	return b.fields
}

// interfacesThunkBox breaks object<->interface cycles the same way.
type interfacesThunkBox struct {
	resolved   bool
	interfaces []*Interface
	thunk      func() []*Interface
}

func newEagerInterfaces(v []*Interface) *interfacesThunkBox {
	return &interfacesThunkBox{resolved: true, interfaces: v}
}
func newLazyInterfaces(t func() []*Interface) *interfacesThunkBox {
	return &interfacesThunkBox{thunk: t}
}
func (b *interfacesThunkBox) get() []*Interface {
	if !b.resolved {
		if b.thunk != nil {
			b.interfaces = b.thunk()
		}
		b.resolved = true
	}
	return b.interfaces
}

func invalidNameError(kind, name string) error {
	return fmt.Errorf("typesystem: invalid %s name %q", kind, name)
}
