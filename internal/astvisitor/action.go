// Package astvisitor implements the AST walker (C4): a generic,
// editable depth-first visit() matching graphql-js's enter/leave
// protocol, and a schema-aware Walker used by query validation (C7)
// that tracks TypeInfo and lets many rule-visitors register interest in
// specific node kinds -- grounded directly on the teacher's
// astvisitor.Walker / RegisterEnterFieldVisitor pattern observed in
// engine/plan/datasource_filter_visitor.go.
package astvisitor

import "github.com/wundergraph/graphql-core-engine/internal/ast"

// ActionKind is the tagged union of what an enter/leave callback can
// ask the walker to do next (§4.3's "Return-value protocol").
type ActionKind int

const (
	ActionContinue ActionKind = iota
	ActionSkip
	ActionBreak
	ActionRemove
	ActionReplace
)

// Action is returned by every visitor callback. Use the package-level
// Continue/Skip/Break/Remove helpers, or Replace(node) to substitute a
// node. Remove and Replace are written back only at a child-list
// position: a SelectionSet's Selections, or doc.RootNodes under
// VisitDocument; elsewhere the edited node is not stored in its parent.
type Action struct {
	Kind ActionKind
	Node ast.Node // populated when Kind == ActionReplace
}

var (
	Continue = Action{Kind: ActionContinue}
	Skip     = Action{Kind: ActionSkip}
	Break    = Action{Kind: ActionBreak}
	Remove   = Action{Kind: ActionRemove}
)

// Replace builds an ActionReplace carrying the replacement node.
func Replace(node ast.Node) Action { return Action{Kind: ActionReplace, Node: node} }
