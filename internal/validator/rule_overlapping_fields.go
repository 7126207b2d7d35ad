package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
)

// overlappingFieldsCanBeMergedRule: within one selection set, two
// selections with the same response key (alias or name) must refer to
// the same underlying field with identical arguments, so their result
// shapes can merge unambiguously (§4.6). This is a simplified,
// single-selection-set approximation of the full spec algorithm (which
// additionally merges same-key fields reached through different
// fragments/types at the same response position) -- it catches the
// common conflicting-alias and conflicting-argument cases without the
// full cross-fragment same-type reasoning.
type overlappingFieldsCanBeMergedRule struct {
	walker *astvisitor.Walker
	report *operationreport.Report
}

func newOverlappingFieldsCanBeMergedRule(w *astvisitor.Walker, report *operationreport.Report) *overlappingFieldsCanBeMergedRule {
	return &overlappingFieldsCanBeMergedRule{walker: w, report: report}
}

func (r *overlappingFieldsCanBeMergedRule) EnterSelectionSet(ref int) {
	doc := r.walker.Operation
	ss := doc.SelectionSets[ref]

	type seenField struct {
		name string
		args []int
	}
	seen := map[string]seenField{}

	for _, sel := range ss.Selections {
		if sel.Kind != ast.NodeKindField {
			continue
		}
		f := doc.Fields[sel.Ref]
		key := f.ResponseKey()
		prev, ok := seen[key]
		if !ok {
			seen[key] = seenField{name: f.Name, args: f.Arguments}
			continue
		}
		if prev.name != f.Name {
			r.report.AddExternalError(ruleError(f.Position, "Fields %q conflict because %q and %q are different fields.", key, prev.name, f.Name))
			continue
		}
		if !sameArguments(doc, prev.args, f.Arguments) {
			r.report.AddExternalError(ruleError(f.Position, "Fields %q conflict because they have differing arguments.", key))
		}
	}
}

func sameArguments(doc *ast.Document, a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	byName := map[string]int{}
	for _, ref := range a {
		byName[doc.Arguments[ref].Name] = ref
	}
	for _, ref := range b {
		other, ok := byName[doc.Arguments[ref].Name]
		if !ok {
			return false
		}
		if !sameLiteral(doc, doc.Arguments[ref].Value, doc.Arguments[other].Value) {
			return false
		}
	}
	return true
}

func sameLiteral(doc *ast.Document, x, y int) bool {
	vx, vy := doc.Values[x], doc.Values[y]
	if vx.Kind != vy.Kind {
		return false
	}
	switch vx.Kind {
	case ast.ValueKindVariable, ast.ValueKindInt, ast.ValueKindFloat, ast.ValueKindString, ast.ValueKindEnum:
		return vx.Raw == vy.Raw
	case ast.ValueKindBoolean:
		return vx.Boolean == vy.Boolean
	case ast.ValueKindNull:
		return true
	case ast.ValueKindList:
		if len(vx.ListValues) != len(vy.ListValues) {
			return false
		}
		for i := range vx.ListValues {
			if !sameLiteral(doc, vx.ListValues[i], vy.ListValues[i]) {
				return false
			}
		}
		return true
	case ast.ValueKindObject:
		if len(vx.ObjectFields) != len(vy.ObjectFields) {
			return false
		}
		xf := map[string]int{}
		for _, fref := range vx.ObjectFields {
			xf[doc.ObjectFields[fref].Name] = doc.ObjectFields[fref].Value
		}
		for _, fref := range vy.ObjectFields {
			of := doc.ObjectFields[fref]
			xv, ok := xf[of.Name]
			if !ok || !sameLiteral(doc, xv, of.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
