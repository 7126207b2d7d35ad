package graphql

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/astprinter"
	"github.com/wundergraph/graphql-core-engine/internal/astvisitor"
)

// PrintAST re-prints doc back to GraphQL source text (§6 "print_ast").
func PrintAST(doc *ast.Document) string {
	return astprinter.Print(doc)
}

// PrintNode re-prints a single node of doc.
func PrintNode(doc *ast.Document, node ast.Node) string {
	return astprinter.PrintNode(doc, node)
}

// Visit walks root (typically the document's own Node, see
// ast.Document.RootNodes) with the supplied VisitorActions (§6 "visit",
// §4.3).
func Visit(doc *ast.Document, root ast.Node, actions astvisitor.VisitorActions, keyMap astvisitor.KeyMap) ast.Node {
	return astvisitor.Visit(doc, root, actions, keyMap)
}

// VisitorActions, KeyMap, VisitFn and Action are re-exported so callers
// writing a visitor never need to import internal/astvisitor directly.
type (
	VisitorActions = astvisitor.VisitorActions
	KeyMap         = astvisitor.KeyMap
	VisitFn        = astvisitor.VisitFn
	Action         = astvisitor.Action
)

var Replace = astvisitor.Replace
