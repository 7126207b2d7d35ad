package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
)

// checkExecutableDefinitions: every root node of an executable document
// must be an operation or fragment definition. astparser.ParseExecutableDocument
// already only parses the executable grammar, but a Document can in
// principle be assembled by other means (schema-grafting helpers,
// hand-built test fixtures), so validation re-checks the invariant
// rather than trusting the parser alone.
func checkExecutableDefinitions(doc *ast.Document, report *operationreport.Report) {
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition && root.Kind != ast.NodeKindFragmentDefinition {
			report.AddExternalError(ruleError(ast.Position{}, "The %s definition is not executable.", nodeKindName(root.Kind)))
		}
	}
}

func nodeKindName(k ast.NodeKind) string {
	switch k {
	case ast.NodeKindSchemaDefinition:
		return "schema"
	case ast.NodeKindScalarTypeDefinition:
		return "scalar type"
	case ast.NodeKindObjectTypeDefinition:
		return "object type"
	case ast.NodeKindInterfaceTypeDefinition:
		return "interface type"
	case ast.NodeKindUnionTypeDefinition:
		return "union type"
	case ast.NodeKindEnumTypeDefinition:
		return "enum type"
	case ast.NodeKindInputObjectTypeDefinition:
		return "input object type"
	case ast.NodeKindDirectiveDefinition:
		return "directive"
	default:
		return "non-executable"
	}
}

// checkUniqueOperationNames: two operations in the same document must
// not share a (non-empty) name (§4.6).
func checkUniqueOperationNames(doc *ast.Document, report *operationreport.Report) {
	seen := map[string]bool{}
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition {
			continue
		}
		op := doc.OperationDefinitions[root.Ref]
		if op.Name == "" {
			continue
		}
		if seen[op.Name] {
			report.AddExternalError(ruleError(op.Position, "There can be only one operation named %q.", op.Name))
			continue
		}
		seen[op.Name] = true
	}
}

// checkLoneAnonymousOperation: a document with an anonymous operation
// must contain no other operations (§4.6).
func checkLoneAnonymousOperation(doc *ast.Document, report *operationreport.Report) {
	total := 0
	var anonymous []ast.Position
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition {
			continue
		}
		total++
		op := doc.OperationDefinitions[root.Ref]
		if op.Name == "" {
			anonymous = append(anonymous, op.Position)
		}
	}
	if len(anonymous) > 0 && total > 1 {
		for _, pos := range anonymous {
			report.AddExternalError(ruleError(pos, "This anonymous operation must be the only defined operation."))
		}
	}
}

// singleFieldSubscriptionsRule: a subscription operation's selection
// set must group down to exactly one response field (§4.6); `@skip`/
// `@include` reduce the field group but are not evaluated statically,
// so this rule counts top-level selections rather than collected
// fields, matching graphql-js's static (pre-execution) check.
type singleFieldSubscriptionsRule struct {
	walker *astvisitor.Walker
	report *operationreport.Report
}

func newSingleFieldSubscriptionsRule(w *astvisitor.Walker, report *operationreport.Report) *singleFieldSubscriptionsRule {
	return &singleFieldSubscriptionsRule{walker: w, report: report}
}

func (r *singleFieldSubscriptionsRule) EnterOperationDefinition(ref int) {
	op := r.walker.Operation.OperationDefinitions[ref]
	if op.OperationType != ast.OperationTypeSubscription {
		return
	}
	ss := r.walker.Operation.SelectionSets[op.SelectionSet]
	if len(ss.Selections) != 1 {
		name := op.Name
		if name == "" {
			name = "<anonymous>"
		}
		r.report.AddExternalError(ruleError(op.Position, "Subscription %q must select only one top level field.", name))
	}
}
