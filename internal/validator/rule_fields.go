package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// metaFieldNames are selectable on any composite type without a
// matching FieldDefinition (§4.4 introspection, §4.6 exempts them from
// fields-on-correct-type).
var metaFieldNames = map[string]bool{
	"__typename": true,
	"__schema":   true,
	"__type":     true,
}

// fieldsOnCorrectTypeRule: every selected field name must exist on its
// enclosing type, or be one of the reserved introspection meta-fields
// (§4.6).
type fieldsOnCorrectTypeRule struct {
	walker *astvisitor.Walker
	report *operationreport.Report
}

func newFieldsOnCorrectTypeRule(w *astvisitor.Walker, report *operationreport.Report) *fieldsOnCorrectTypeRule {
	return &fieldsOnCorrectTypeRule{walker: w, report: report}
}

func (r *fieldsOnCorrectTypeRule) EnterField(ref int) {
	f := r.walker.Operation.Fields[ref]
	if metaFieldNames[f.Name] {
		return
	}
	enclosing := r.walker.ParentType()
	if enclosing == nil {
		return // no schema type context (e.g. root type missing); other rules report that.
	}
	fm, ok := fieldsOfType(enclosing)
	if !ok {
		r.report.AddExternalError(ruleError(f.Position, "Cannot query field %q on type %q.", f.Name, enclosing.Named()))
		return
	}
	if _, ok := fm.Lookup(f.Name); !ok {
		r.report.AddExternalError(ruleError(f.Position, "Cannot query field %q on type %q.", f.Name, enclosing.Named()))
	}
}

func fieldsOfType(t *typesystem.Type) (typesystem.FieldMap, bool) {
	switch t.Kind {
	case typesystem.KindObject:
		return t.Object.Fields(), true
	case typesystem.KindInterface:
		return t.Interface.Fields(), true
	default:
		return typesystem.FieldMap{}, false
	}
}

// checkFragmentDefinitionsOnCompositeTypes: a named fragment's type
// condition must name an object, interface or union type (§4.6). Run as
// a plain scan over every fragment definition, not through the Walker,
// since Walk only reaches a fragment's body via a spread and a fragment
// that is never spread still needs its condition checked.
func checkFragmentDefinitionsOnCompositeTypes(schema *typesystem.Schema, doc *ast.Document, report *operationreport.Report) {
	for i := range doc.FragmentDefinitions {
		fd := doc.FragmentDefinitions[i]
		checkFragmentCondition(schema, fd.TypeCondition, fd.Position, fd.Name, report)
	}
}

// fragmentsOnCompositeTypesRule: an inline fragment's type condition
// must name an object, interface or union type (§4.6).
type fragmentsOnCompositeTypesRule struct {
	walker *astvisitor.Walker
	schema *typesystem.Schema
	report *operationreport.Report
}

func newFragmentsOnCompositeTypesRule(w *astvisitor.Walker, schema *typesystem.Schema, report *operationreport.Report) *fragmentsOnCompositeTypesRule {
	return &fragmentsOnCompositeTypesRule{walker: w, schema: schema, report: report}
}

func (r *fragmentsOnCompositeTypesRule) EnterInlineFragment(ref int) {
	fr := r.walker.Operation.InlineFragments[ref]
	if !fr.HasTypeCondition {
		return
	}
	checkFragmentCondition(r.schema, fr.TypeCondition, fr.Position, "", r.report)
}

func checkFragmentCondition(schema *typesystem.Schema, typeName string, pos ast.Position, fragName string, report *operationreport.Report) {
	t, ok := schema.LookupType(typeName)
	if !ok {
		return // known-types concern, not this rule's
	}
	if t.IsComposite() {
		return
	}
	if fragName != "" {
		report.AddExternalError(ruleError(pos, "Fragment %q cannot condition on non composite type %q.", fragName, typeName))
	} else {
		report.AddExternalError(ruleError(pos, "Fragment cannot condition on non composite type %q.", typeName))
	}
}
