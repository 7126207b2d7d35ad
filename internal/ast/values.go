package ast

// ValueKind tags the union stored in Value.
type ValueKind int

const (
	ValueKindVariable ValueKind = iota
	ValueKindInt
	ValueKindFloat
	ValueKindString
	ValueKindBoolean
	ValueKindNull
	ValueKindEnum
	ValueKindList
	ValueKindObject
)

// Value is every GraphQL value literal as one tagged union: Int, Float,
// String (with Block marking a """block string"""), Boolean, Null,
// Enum, List, Object and Variable, per §3's value-node closed set.
type Value struct {
	Kind     ValueKind
	Position Position

	Raw     string // Int/Float/String/Enum/Variable name text
	Block   bool   // String was written as a block string
	Boolean bool

	ListValues   []int // refs into Document.Values
	ObjectFields []int // refs into Document.ObjectFields
}

// ObjectField is one `name: value` pair inside an Object value literal.
type ObjectField struct {
	Name     string
	Value    int // ref into Document.Values
	Position Position
}

// AddValue appends a value node and returns its ref.
func (d *Document) AddValue(v Value) int { return d.putValue(v) }

// AddObjectField appends an object-field node and returns its ref.
func (d *Document) AddObjectField(f ObjectField) int { return d.putObjectField(f) }

// ValueIsConstant reports whether a value contains no Variable
// reference anywhere in its (possibly nested) structure, the rule the
// parser enforces for "constant value contexts" (§4.2).
func (d *Document) ValueIsConstant(ref int) bool {
	v := d.Values[ref]
	switch v.Kind {
	case ValueKindVariable:
		return false
	case ValueKindList:
		for _, item := range v.ListValues {
			if !d.ValueIsConstant(item) {
				return false
			}
		}
		return true
	case ValueKindObject:
		for _, fref := range v.ObjectFields {
			if !d.ValueIsConstant(d.ObjectFields[fref].Value) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
