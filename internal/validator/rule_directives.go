package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/typesystem"
)

// knownDirectivesRule: every `@name` application must be declared by
// the schema and used at a location that directive permits (§4.6).
// Repeated non-repeatable directives on the same node are left to a
// future rule -- it needs per-node (not per-directive-list) identity
// that the walker does not currently expose to EnterDirective.
type knownDirectivesRule struct {
	walker *astvisitor.Walker
	schema *typesystem.Schema
	report *operationreport.Report

	// locStack tracks which executable DirectiveLocation encloses the
	// directive currently being visited; Walker fires EnterDirective
	// from three call sites (field, inline fragment, fragment spread)
	// and does not otherwise expose which one to the visitor.
	locStack []ast.DirectiveLocation
}

func newKnownDirectivesRule(w *astvisitor.Walker, schema *typesystem.Schema, report *operationreport.Report) *knownDirectivesRule {
	return &knownDirectivesRule{walker: w, schema: schema, report: report}
}

func (r *knownDirectivesRule) EnterField(ref int)   { r.locStack = append(r.locStack, ast.LocationField) }
func (r *knownDirectivesRule) LeaveField(ref int)   { r.locStack = r.locStack[:len(r.locStack)-1] }
func (r *knownDirectivesRule) EnterInlineFragment(ref int) {
	r.locStack = append(r.locStack, ast.LocationInlineFragment)
}
func (r *knownDirectivesRule) LeaveInlineFragment(ref int) { r.locStack = r.locStack[:len(r.locStack)-1] }
func (r *knownDirectivesRule) EnterFragmentSpread(ref int) {
	r.locStack = append(r.locStack, ast.LocationFragmentSpread)
}
func (r *knownDirectivesRule) LeaveFragmentSpread(ref int) { r.locStack = r.locStack[:len(r.locStack)-1] }

// EnterOperationDefinition checks the operation's own directives, which
// the walker does not pass to EnterDirective.
func (r *knownDirectivesRule) EnterOperationDefinition(ref int) {
	op := r.walker.Operation.OperationDefinitions[ref]
	loc := ast.LocationQuery
	switch op.OperationType {
	case ast.OperationTypeMutation:
		loc = ast.LocationMutation
	case ast.OperationTypeSubscription:
		loc = ast.LocationSubscription
	}
	r.locStack = append(r.locStack, loc)
	for _, dirRef := range op.Directives {
		r.EnterDirective(dirRef)
	}
	r.locStack = r.locStack[:len(r.locStack)-1]
}

func (r *knownDirectivesRule) EnterDirective(ref int) {
	d := r.walker.Operation.Directives[ref]
	def, ok := r.schema.DirectiveByName(d.Name)
	if !ok {
		r.report.AddExternalError(ruleError(ast.Position{}, `Unknown directive "@%s".`, d.Name))
		return
	}

	loc := r.currentLocation()
	if !directiveAllowedAt(def, loc) {
		r.report.AddExternalError(ruleError(ast.Position{}, `Directive "@%s" may not be used on %s.`, d.Name, loc))
	}
}

func (r *knownDirectivesRule) currentLocation() ast.DirectiveLocation {
	if len(r.locStack) == 0 {
		return ast.LocationField
	}
	return r.locStack[len(r.locStack)-1]
}

func directiveAllowedAt(def *typesystem.Directive, loc ast.DirectiveLocation) bool {
	for _, l := range def.Locations {
		if l == loc {
			return true
		}
		// A directive declared for FRAGMENT_SPREAD is also accepted on
		// an inline fragment; the reverse does not hold.
		if loc == ast.LocationInlineFragment && l == ast.LocationFragmentSpread {
			return true
		}
	}
	return false
}
