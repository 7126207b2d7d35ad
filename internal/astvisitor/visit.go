package astvisitor

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
)

// VisitFn is one enter or leave callback. node/key/parent/path/ancestors
// match §4.3's signature exactly: key is the field name or list index
// node occupies within parent, path is the full chain of keys from the
// root, ancestors is the full chain of nodes from the root (not
// including node itself).
type VisitFn func(doc *ast.Document, node ast.Node, key gqlerrors.PathSegment, parent ast.Node, path []gqlerrors.PathSegment, ancestors []ast.Node) Action

// VisitorActions is the callback set passed to Visit. EnterKind/LeaveKind
// override the generic Enter/Leave fallback for a specific node kind --
// the Go analogue of graphql-js's `enter_<Kind>` dynamic dispatch.
type VisitorActions struct {
	Enter VisitFn
	Leave VisitFn

	EnterKind map[ast.NodeKind]VisitFn
	LeaveKind map[ast.NodeKind]VisitFn
}

func (v VisitorActions) enterFor(kind ast.NodeKind) VisitFn {
	if v.EnterKind != nil {
		if fn, ok := v.EnterKind[kind]; ok {
			return fn
		}
	}
	return v.Enter
}

func (v VisitorActions) leaveFor(kind ast.NodeKind) VisitFn {
	if v.LeaveKind != nil {
		if fn, ok := v.LeaveKind[kind]; ok {
			return fn
		}
	}
	return v.Leave
}

// KeyMap overrides, per node kind, which named child slots are
// descended into (§4.3's visitor_key_map); unlisted kinds always use
// their default children. The only key name consulted is
// "selectionSet", on OperationDefinition, FragmentDefinition, Field and
// InlineFragment: listing one of those kinds without it skips its
// selection set. The order of the listed keys has no effect.
type KeyMap map[ast.NodeKind][]string

// visitor implements one traversal: tracks the ancestor chain and path,
// and the single "broken" flag that stops the whole walk once any
// callback returns Break.
type visitor struct {
	doc       *ast.Document
	actions   VisitorActions
	keyMap    KeyMap
	ancestors []ast.Node
	path      []gqlerrors.PathSegment
	broken    bool
}

// Visit performs one depth-first walk of root (typically {Kind:
// NodeKindDocument} conceptually -- in practice callers pass each of
// doc.RootNodes, or a single node such as one OperationDefinition) per
// §4.3. It returns the final (possibly edited) root node; if no Remove
// /Replace fired the returned node equals the input.
func Visit(doc *ast.Document, root ast.Node, actions VisitorActions, keyMap KeyMap) ast.Node {
	v := &visitor{doc: doc, actions: actions, keyMap: keyMap}
	result, _ := v.visitNode(root, gqlerrors.StringSegment(""), ast.Node{})
	return result
}

// VisitDocument walks every root node of doc in source order, the
// top-level entry parse/print/validate use.
func VisitDocument(doc *ast.Document, actions VisitorActions, keyMap KeyMap) {
	v := &visitor{doc: doc, actions: actions, keyMap: keyMap}
	for i, root := range doc.RootNodes {
		if v.broken {
			return
		}
		result, removed := v.visitNode(root, gqlerrors.IndexSegment(i), ast.Node{})
		if removed {
			continue
		}
		doc.RootNodes[i] = result
	}
}

// visitNode returns (possibly replaced node, removed?).
func (v *visitor) visitNode(node ast.Node, key gqlerrors.PathSegment, parent ast.Node) (ast.Node, bool) {
	if v.broken {
		return node, false
	}

	if enter := v.actions.enterFor(node.Kind); enter != nil {
		action := enter(v.doc, node, key, parent, v.path, v.ancestors)
		switch action.Kind {
		case ActionBreak:
			v.broken = true
			return node, false
		case ActionSkip:
			return node, false
		case ActionRemove:
			return node, true
		case ActionReplace:
			node = action.Node
		}
	}

	v.ancestors = append(v.ancestors, node)
	v.path = append(v.path, key)
	v.visitChildren(node)
	v.path = v.path[:len(v.path)-1]
	v.ancestors = v.ancestors[:len(v.ancestors)-1]

	if v.broken {
		return node, false
	}

	if leave := v.actions.leaveFor(node.Kind); leave != nil {
		action := leave(v.doc, node, key, parent, v.path, v.ancestors)
		switch action.Kind {
		case ActionBreak:
			v.broken = true
		case ActionRemove:
			return node, true
		case ActionReplace:
			node = action.Node
		}
	}
	return node, false
}

// visitChildren dispatches to the per-kind default child order, unless
// keyMap overrides it for this kind.
func (v *visitor) visitChildren(node ast.Node) {
	switch node.Kind {
	case ast.NodeKindOperationDefinition:
		v.visitOperationDefinition(node.Ref)
	case ast.NodeKindFragmentDefinition:
		v.visitFragmentDefinition(node.Ref)
	case ast.NodeKindSelectionSet:
		v.visitSelectionSet(node.Ref)
	case ast.NodeKindField:
		v.visitField(node.Ref)
	case ast.NodeKindFragmentSpread:
		v.visitFragmentSpread(node.Ref)
	case ast.NodeKindInlineFragment:
		v.visitInlineFragment(node.Ref)
	case ast.NodeKindArgument:
		// leaf w.r.t. this walker's scope: value literals are not
		// separately dispatched (validators inspect Argument.Value
		// directly via the Document rather than via enter/leave).
	case ast.NodeKindDirective:
	}
}

func (v *visitor) visitSelectionSet(ref int) {
	ss := &v.doc.SelectionSets[ref]
	i := 0
	for i < len(ss.Selections) {
		sel := ss.Selections[i]
		result, removed := v.visitNode(sel, gqlerrors.IndexSegment(i), ast.Node{Kind: ast.NodeKindSelectionSet, Ref: ref})
		if v.broken {
			return
		}
		if removed {
			ss.Selections = append(ss.Selections[:i], ss.Selections[i+1:]...)
			continue
		}
		ss.Selections[i] = result
		i++
	}
}

func (v *visitor) visitField(ref int) {
	f := v.doc.Fields[ref]
	if v.keyIncluded(ast.NodeKindField, "selectionSet") && f.HasSelectionSet {
		v.visitNode(ast.Node{Kind: ast.NodeKindSelectionSet, Ref: f.SelectionSet}, gqlerrors.StringSegment("selectionSet"), ast.Node{Kind: ast.NodeKindField, Ref: ref})
	}
}

func (v *visitor) visitFragmentSpread(ref int) {
	_ = ref // fragment spreads have no structural children beyond directives/name
}

func (v *visitor) visitInlineFragment(ref int) {
	fr := v.doc.InlineFragments[ref]
	if v.keyIncluded(ast.NodeKindInlineFragment, "selectionSet") {
		v.visitNode(ast.Node{Kind: ast.NodeKindSelectionSet, Ref: fr.SelectionSet}, gqlerrors.StringSegment("selectionSet"), ast.Node{Kind: ast.NodeKindInlineFragment, Ref: ref})
	}
}

func (v *visitor) visitOperationDefinition(ref int) {
	op := v.doc.OperationDefinitions[ref]
	if v.keyIncluded(ast.NodeKindOperationDefinition, "selectionSet") {
		v.visitNode(ast.Node{Kind: ast.NodeKindSelectionSet, Ref: op.SelectionSet}, gqlerrors.StringSegment("selectionSet"), ast.Node{Kind: ast.NodeKindOperationDefinition, Ref: ref})
	}
}

func (v *visitor) visitFragmentDefinition(ref int) {
	fd := v.doc.FragmentDefinitions[ref]
	if v.keyIncluded(ast.NodeKindFragmentDefinition, "selectionSet") {
		v.visitNode(ast.Node{Kind: ast.NodeKindSelectionSet, Ref: fd.SelectionSet}, gqlerrors.StringSegment("selectionSet"), ast.Node{Kind: ast.NodeKindFragmentDefinition, Ref: ref})
	}
}

func (v *visitor) keyIncluded(kind ast.NodeKind, key string) bool {
	if v.keyMap == nil {
		return true
	}
	keys, overridden := v.keyMap[kind]
	if !overridden {
		return true
	}
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
