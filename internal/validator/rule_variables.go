package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// checkUniqueVariableNames: an operation must not redeclare `$name`
// (§4.6).
func checkUniqueVariableNames(doc *ast.Document, report *operationreport.Report) {
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition {
			continue
		}
		op := doc.OperationDefinitions[root.Ref]
		seen := map[string]bool{}
		for _, vdRef := range op.VariableDefinitions {
			vd := doc.VariableDefinitions[vdRef]
			if seen[vd.VariableName] {
				report.AddExternalError(ruleError(vd.Position, `There can be only one variable named "$%s".`, vd.VariableName))
				continue
			}
			seen[vd.VariableName] = true
		}
	}
}

// checkVariablesAreInputTypes: a variable's declared type must be an
// input type -- scalar, enum or input object, optionally wrapped in
// List/NonNull (§4.6).
func checkVariablesAreInputTypes(schema *typesystem.Schema, doc *ast.Document, report *operationreport.Report) {
	for i := range doc.VariableDefinitions {
		vd := doc.VariableDefinitions[i]
		typ := astTypeOf(schema, doc, vd.Type)
		if typ == nil {
			report.AddExternalError(ruleError(vd.Position, "Unknown type %q for variable %q.", doc.PrintType(vd.Type), vd.VariableName))
			continue
		}
		if !typ.IsInputType() {
			report.AddExternalError(ruleError(vd.Position, `Variable "$%s" cannot be non-input type %q.`, vd.VariableName, doc.PrintType(vd.Type)))
		}
	}
}

// checkNoUndefinedVariables: every `$variable` referenced anywhere in
// an operation's selection set (including fragments it transitively
// spreads) must be declared by that operation (§4.6).
func checkNoUndefinedVariables(doc *ast.Document, report *operationreport.Report) {
	fragMap := doc.FragmentMap()
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition {
			continue
		}
		op := doc.OperationDefinitions[root.Ref]
		declared := map[string]bool{}
		for _, vdRef := range op.VariableDefinitions {
			declared[doc.VariableDefinitions[vdRef].VariableName] = true
		}
		used := map[string]ast.Position{}
		collectUsedVariables(doc, op.SelectionSet, fragMap, used, map[string]bool{})
		for name, pos := range used {
			if !declared[name] {
				opName := op.Name
				if opName == "" {
					opName = "<anonymous>"
				}
				report.AddExternalError(ruleError(pos, `Variable "$%s" is not defined by operation %q.`, name, opName))
			}
		}
	}
}

func collectUsedVariables(doc *ast.Document, ssRef int, fragMap map[string]int, used map[string]ast.Position, visiting map[string]bool) {
	ss := doc.SelectionSets[ssRef]
	for _, sel := range ss.Selections {
		switch sel.Kind {
		case ast.NodeKindField:
			f := doc.Fields[sel.Ref]
			for _, argRef := range f.Arguments {
				collectValueVariables(doc, doc.Arguments[argRef].Value, used)
			}
			for _, dirRef := range f.Directives {
				for _, argRef := range doc.Directives[dirRef].Arguments {
					collectValueVariables(doc, doc.Arguments[argRef].Value, used)
				}
			}
			if f.HasSelectionSet {
				collectUsedVariables(doc, f.SelectionSet, fragMap, used, visiting)
			}
		case ast.NodeKindInlineFragment:
			fr := doc.InlineFragments[sel.Ref]
			for _, dirRef := range fr.Directives {
				for _, argRef := range doc.Directives[dirRef].Arguments {
					collectValueVariables(doc, doc.Arguments[argRef].Value, used)
				}
			}
			collectUsedVariables(doc, fr.SelectionSet, fragMap, used, visiting)
		case ast.NodeKindFragmentSpread:
			spread := doc.FragmentSpreads[sel.Ref]
			for _, dirRef := range spread.Directives {
				for _, argRef := range doc.Directives[dirRef].Arguments {
					collectValueVariables(doc, doc.Arguments[argRef].Value, used)
				}
			}
			if visiting[spread.FragmentName] {
				continue
			}
			if fragRef, ok := fragMap[spread.FragmentName]; ok {
				visiting[spread.FragmentName] = true
				collectUsedVariables(doc, doc.FragmentDefinitions[fragRef].SelectionSet, fragMap, used, visiting)
				delete(visiting, spread.FragmentName)
			}
		}
	}
}

func collectValueVariables(doc *ast.Document, ref int, used map[string]ast.Position) {
	v := doc.Values[ref]
	switch v.Kind {
	case ast.ValueKindVariable:
		if _, ok := used[v.Raw]; !ok {
			used[v.Raw] = v.Position
		}
	case ast.ValueKindList:
		for _, item := range v.ListValues {
			collectValueVariables(doc, item, used)
		}
	case ast.ValueKindObject:
		for _, fref := range v.ObjectFields {
			collectValueVariables(doc, doc.ObjectFields[fref].Value, used)
		}
	}
}

// variablesInAllowedPositionRule: a `$variable` used as an argument's
// value must have a declared type usable at that argument's position
// -- the variable's type must be the same or a strictly more
// restrictive (non-null) version of the argument's type, and if the
// argument itself has no default and is NonNull, the variable must
// also be NonNull unless it carries a compatible default (§4.6).
type variablesInAllowedPositionRule struct {
	walker *astvisitor.Walker
	schema *typesystem.Schema
	report *operationreport.Report

	// varTypes/varHasDefault hold the variable declarations of the
	// operation being walked, reset on each EnterOperationDefinition,
	// since a Walk visits every OperationDefinition in turn but
	// EnterArgument doesn't otherwise know which one it's under.
	varTypes map[string]*typesystem.Type
	varHasDefault map[string]bool
}

func newVariablesInAllowedPositionRule(w *astvisitor.Walker, schema *typesystem.Schema, report *operationreport.Report) *variablesInAllowedPositionRule {
	return &variablesInAllowedPositionRule{walker: w, schema: schema, report: report}
}

func (r *variablesInAllowedPositionRule) EnterOperationDefinition(ref int) {
	op := r.walker.Operation.OperationDefinitions[ref]
	r.varTypes = map[string]*typesystem.Type{}
	r.varHasDefault = map[string]bool{}
	for _, vdRef := range op.VariableDefinitions {
		vd := r.walker.Operation.VariableDefinitions[vdRef]
		r.varTypes[vd.VariableName] = astTypeOf(r.schema, r.walker.Operation, vd.Type)
		r.varHasDefault[vd.VariableName] = vd.HasDefaultValue
	}
}

func (r *variablesInAllowedPositionRule) EnterArgument(ref int) {
	a := r.walker.Operation.Arguments[ref]
	v := r.walker.Operation.Values[a.Value]
	if v.Kind != ast.ValueKindVariable {
		return
	}
	argDef := r.lookupArgDef(a.Name)
	if argDef == nil {
		return // known-argument-names's concern
	}
	varType, declared := r.varTypes[v.Raw]
	if !declared || varType == nil {
		return // no-undefined-variables's or unknown-type's concern
	}
	if !variableTypeUsableAt(varType, argDef.Type, r.varHasDefault[v.Raw] || argDef.Default.HasValue) {
		r.report.AddExternalError(ruleError(v.Position, `Variable "$%s" of type %q used in position expecting type %q.`, v.Raw, varType, argDef.Type))
	}
}

func (r *variablesInAllowedPositionRule) lookupArgDef(name string) *typesystem.Argument {
	if def := r.walker.EnclosingField(); def != nil {
		if a, ok := def.Args.Lookup(name); ok {
			return a
		}
	}
	return nil
}

// variableTypeUsableAt implements graphql-js's `isTypeSubTypeOf` used
// for this rule: varType must match locationType, or be non-null where
// locationType is nullable, recursively through List wrappers; a
// nullable variable may still be used where locationType is NonNull if
// either side carries a default value.
func variableTypeUsableAt(varType, locationType *typesystem.Type, hasDefault bool) bool {
	if locationType.Kind == typesystem.KindNonNull {
		if varType.Kind != typesystem.KindNonNull {
			if !hasDefault {
				return false
			}
			return variableTypeUsableAt(varType, locationType.OfType, false)
		}
		return variableTypeUsableAt(varType.OfType, locationType.OfType, false)
	}
	if varType.Kind == typesystem.KindNonNull {
		return variableTypeUsableAt(varType.OfType, locationType, false)
	}
	if locationType.Kind == typesystem.KindList {
		if varType.Kind != typesystem.KindList {
			return false
		}
		return variableTypeUsableAt(varType.OfType, locationType.OfType, false)
	}
	if varType.Kind == typesystem.KindList {
		return false
	}
	return varType.Named() == locationType.Named()
}
