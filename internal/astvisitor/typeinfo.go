package astvisitor

import "github.com/wundergraph/graphql-core-engine/internal/typesystem"

// TypeInfo tracks the schema-side context at the walker's current
// position: the enclosing composite type and, while inside a field
// selection, that field's declaration. graphql-js composes this as a
// separate TypeInfoVisitor wrapping the rule visitor; here it is folded
// directly into Walker (EnclosingTypeDefinition is read straight off
// the walker, matching the one concrete usage the corpus shows:
// v.walker.EnclosingTypeDefinition.NameString(v.definition) in
// engine/plan/datasource_filter_visitor.go), which avoids the
// decorator-composition machinery for no loss of capability here.
type TypeInfo struct {
	typeStack  []*typesystem.Type
	fieldStack []*typesystem.Field
}

func (t *TypeInfo) pushType(typ *typesystem.Type) { t.typeStack = append(t.typeStack, typ) }

func (t *TypeInfo) popType() {
	if len(t.typeStack) == 0 {
		return
	}
	t.typeStack = t.typeStack[:len(t.typeStack)-1]
}

func (t *TypeInfo) pushField(f *typesystem.Field) { t.fieldStack = append(t.fieldStack, f) }

func (t *TypeInfo) popField() {
	if len(t.fieldStack) == 0 {
		return
	}
	t.fieldStack = t.fieldStack[:len(t.fieldStack)-1]
}

// EnclosingType is the nearest named/composite type on the stack, i.e.
// the type a selection set's fields are being selected against.
func (t *TypeInfo) EnclosingType() *typesystem.Type {
	if len(t.typeStack) == 0 {
		return nil
	}
	return t.typeStack[len(t.typeStack)-1]
}

// EnclosingField is the FieldDefinition of the field currently being
// walked, nil outside of a field (e.g. while walking an operation's
// root selection set before entering its first field).
func (t *TypeInfo) EnclosingField() *typesystem.Field {
	if len(t.fieldStack) == 0 {
		return nil
	}
	return t.fieldStack[len(t.fieldStack)-1]
}

// ParentType is the type one level up the stack from EnclosingType --
// while an EnterField callback runs, Walker has already pushed the
// field's own return type, so a rule that needs "what type was this
// field selected from" (fields-on-correct-type) reads this instead of
// EnclosingType.
func (t *TypeInfo) ParentType() *typesystem.Type {
	if len(t.typeStack) < 2 {
		return nil
	}
	return t.typeStack[len(t.typeStack)-2]
}
