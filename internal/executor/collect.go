package executor

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// fieldGroup is every selection contributing to one response key,
// merged across fields/inline-fragments/fragment-spreads that target
// the same key (§4.7 step 3).
type fieldGroup struct {
	responseKey string
	fieldRefs   []int
}

// deferredSelection is a selection set recorded separately instead of
// merged into the enclosing group, because it (or its enclosing inline
// fragment/fragment spread) carries `@defer` (§4.7 step 3).
type deferredSelection struct {
	label        string
	selectionSet int
}

// collectFields walks one selection set applying `@skip`/`@include`
// and expanding fragment spreads/inline fragments in place, grouping
// fields by response key in first-occurrence order so the result
// object is assembled in source order regardless of completion order
// (§4.7 step 3, §5 "sibling query fields appear in result in source
// order"). runtimeType narrows which type condition is relevant: a
// fragment conditioned on a type the runtime object does not satisfy
// contributes nothing.
func collectFields(ec *ExecutionContext, runtimeTypeName string, ssRef int, visitedFragments map[string]bool) ([]*fieldGroup, []deferredSelection) {
	doc := ec.Document
	var order []string
	groups := map[string]*fieldGroup{}
	var deferred []deferredSelection

	var walk func(ssRef int, visited map[string]bool)
	walk = func(ssRef int, visited map[string]bool) {
		ss := doc.SelectionSets[ssRef]
		for _, sel := range ss.Selections {
			switch sel.Kind {
			case ast.NodeKindField:
				f := doc.Fields[sel.Ref]
				if !shouldIncludeSelection(ec, f.Directives) {
					continue
				}
				key := f.ResponseKey()
				g, ok := groups[key]
				if !ok {
					g = &fieldGroup{responseKey: key}
					groups[key] = g
					order = append(order, key)
				}
				g.fieldRefs = append(g.fieldRefs, sel.Ref)

			case ast.NodeKindInlineFragment:
				fr := doc.InlineFragments[sel.Ref]
				if !shouldIncludeSelection(ec, fr.Directives) {
					continue
				}
				if fr.HasTypeCondition && !typeConditionMatches(ec, runtimeTypeName, fr.TypeCondition) {
					continue
				}
				if label, ok := deferLabel(ec, fr.Directives); ok {
					deferred = append(deferred, deferredSelection{label: label, selectionSet: fr.SelectionSet})
					continue
				}
				walk(fr.SelectionSet, visited)

			case ast.NodeKindFragmentSpread:
				spread := doc.FragmentSpreads[sel.Ref]
				if !shouldIncludeSelection(ec, spread.Directives) {
					continue
				}
				fragRef, ok := ec.Fragments[spread.FragmentName]
				if !ok || visited[spread.FragmentName] {
					continue
				}
				fd := doc.FragmentDefinitions[fragRef]
				if !typeConditionMatches(ec, runtimeTypeName, fd.TypeCondition) {
					continue
				}
				if label, ok := deferLabel(ec, spread.Directives); ok {
					deferred = append(deferred, deferredSelection{label: label, selectionSet: fd.SelectionSet})
					continue
				}
				visited[spread.FragmentName] = true
				walk(fd.SelectionSet, visited)
				delete(visited, spread.FragmentName)
			}
		}
	}
	walk(ssRef, visitedFragments)

	out := make([]*fieldGroup, 0, len(order))
	for _, key := range order {
		out = append(out, groups[key])
	}
	return out, deferred
}

// shouldIncludeSelection applies `@skip(if:)`/`@include(if:)` (§4.7
// step 3): skip wins if both are present and both conditions fire,
// matching the GraphQL spec's evaluation order.
func shouldIncludeSelection(ec *ExecutionContext, directiveRefs []int) bool {
	doc := ec.Document
	for _, ref := range directiveRefs {
		d := doc.Directives[ref]
		if d.Name != "skip" {
			continue
		}
		if boolArgValue(ec, d.Arguments, "if", false) {
			return false
		}
	}
	for _, ref := range directiveRefs {
		d := doc.Directives[ref]
		if d.Name != "include" {
			continue
		}
		if !boolArgValue(ec, d.Arguments, "if", true) {
			return false
		}
	}
	return true
}

// deferLabel reports whether `@defer` applies (its `if` argument is
// true or absent) and, if so, the label to record the resulting
// DeferredFragment under.
func deferLabel(ec *ExecutionContext, directiveRefs []int) (string, bool) {
	doc := ec.Document
	for _, ref := range directiveRefs {
		d := doc.Directives[ref]
		if d.Name != "defer" {
			continue
		}
		if !boolArgValue(ec, d.Arguments, "if", true) {
			return "", false
		}
		label := ""
		if a, ok := doc.ArgumentByName(d.Arguments, "label"); ok {
			if v := doc.Values[a.Value]; v.Kind == ast.ValueKindString {
				label = v.Raw
			}
		}
		return label, true
	}
	return "", false
}

// boolArgValue reads a literal or variable-referenced boolean argument
// off a directive application, falling back to def when the argument
// is absent -- directive `if` arguments are always boolean per the
// built-in directive declarations (§4.4).
func boolArgValue(ec *ExecutionContext, argRefs []int, name string, def bool) bool {
	doc := ec.Document
	a, ok := doc.ArgumentByName(argRefs, name)
	if !ok {
		return def
	}
	v := doc.Values[a.Value]
	if v.Kind == ast.ValueKindVariable {
		if val, ok := ec.VariableValues[v.Raw]; ok {
			if b, ok := val.(bool); ok {
				return b
			}
		}
		return def
	}
	return v.Boolean
}

// typeConditionMatches reports whether a fragment's type condition
// admits a value of runtimeTypeName: the condition names the runtime
// type itself, an interface it implements, or a union it belongs to.
func typeConditionMatches(ec *ExecutionContext, runtimeTypeName, condition string) bool {
	if condition == "" || condition == runtimeTypeName {
		return true
	}
	conditionType, ok := ec.Schema.LookupType(condition)
	if !ok {
		return false
	}
	runtimeType, ok := ec.Schema.LookupType(runtimeTypeName)
	if !ok || runtimeType.Kind != typesystem.KindObject {
		return false
	}
	return ec.Schema.IsPossibleType(conditionType, runtimeType.Object)
}

func errorLocations(doc *ast.Document, pos ast.Position) []gqlerrors.Location {
	if !pos.HasPosition {
		return nil
	}
	return []gqlerrors.Location{{Line: pos.Line, Column: pos.Column}}
}
