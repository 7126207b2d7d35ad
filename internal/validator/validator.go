// Package validator implements query validation (C7): a fixed set of
// rules run over one executable document against a schema in a single
// pass. Rules that need type-aware traversal (knowing the enclosing
// type or argument at each point) register as Walker visitors via
// astvisitor.ParallelVisitor; rules that are plain document-structure
// scans (uniqueness checks, fragment-graph checks) run directly over
// the ast.Document once, no traversal needed. Validation is pure -- it
// never resolves data -- and produces the full error list rather than
// stopping at the first one (§4.6).
package validator

import (
	"fmt"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// Validate runs every rule against doc and returns the accumulated
// error list; an empty (nil) list means the document is valid.
func Validate(schema *typesystem.Schema, doc *ast.Document) gqlerrors.List {
	report := &operationreport.Report{}

	// Plain document scans: no schema/type information needed.
	checkExecutableDefinitions(doc, report)
	checkUniqueOperationNames(doc, report)
	checkLoneAnonymousOperation(doc, report)
	checkUniqueFragmentNames(doc, report)
	checkKnownFragmentNames(doc, report)
	checkNoUnusedFragments(doc, report)
	checkNoFragmentCycles(doc, report)
	checkUniqueVariableNames(doc, report)
	checkUniqueArgumentNames(doc, report)
	checkUniqueInputFieldNames(doc, report)
	checkNoUndefinedVariables(doc, report)

	// Schema-aware checks that don't need a type-tracking walk.
	checkVariablesAreInputTypes(schema, doc, report)
	checkFragmentDefinitionsOnCompositeTypes(schema, doc, report)

	// Type-aware rules, run together as one Walker pass.
	walker := astvisitor.NewWalker()
	rules := []interface{}{
		newSingleFieldSubscriptionsRule(walker, report),
		newFieldsOnCorrectTypeRule(walker, report),
		newFragmentsOnCompositeTypesRule(walker, schema, report),
		newKnownDirectivesRule(walker, schema, report),
		newKnownArgumentNamesRule(walker, report),
		newProvidedRequiredArgumentsRule(walker, report),
		newValuesOfCorrectTypeRule(walker, schema, report),
		newVariablesInAllowedPositionRule(walker, schema, report),
		newOverlappingFieldsCanBeMergedRule(walker, report),
	}
	for _, r := range rules {
		astvisitor.NewParallelVisitor(walker, r)
	}
	walker.Walk(doc, schema, report)

	return gqlerrors.List(report.ExternalErrors)
}

// --- shared helpers ---

func locationsFor(pos ast.Position) []gqlerrors.Location {
	if !pos.HasPosition {
		return nil
	}
	return []gqlerrors.Location{{Line: pos.Line, Column: pos.Column}}
}

func ruleError(pos ast.Position, format string, args ...interface{}) *gqlerrors.Error {
	return gqlerrors.New(fmt.Sprintf(format, args...)).WithLocations(locationsFor(pos)...)
}

// astTypeOf resolves an ast.Type ref against the schema, preserving
// List/NonNull wrapper nesting -- the same resolution internal/coerce
// does for variable declarations, needed again here since validation
// rules (variables-are-input-types, variables-in-allowed-position) run
// independently of coercion.
func astTypeOf(schema *typesystem.Schema, doc *ast.Document, ref int) *typesystem.Type {
	t := doc.Types[ref]
	switch t.Kind {
	case ast.TypeKindNonNull:
		inner := astTypeOf(schema, doc, t.OfType)
		if inner == nil {
			return nil
		}
		return typesystem.NonNullOf(inner)
	case ast.TypeKindList:
		inner := astTypeOf(schema, doc, t.OfType)
		if inner == nil {
			return nil
		}
		return typesystem.ListOf(inner)
	default:
		named, ok := schema.LookupType(t.Name)
		if !ok {
			return nil
		}
		return named
	}
}
