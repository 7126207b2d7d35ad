package graphql

import "github.com/wundergraph/graphql-core-engine/internal/ast"

// SeparateOperations splits a multi-operation document into one
// single-operation document per operation, each carrying only the
// fragment definitions that operation transitively spreads (§4.9
// supplemented feature, grounded on graphql-js/graphql-core's
// `separate_operations` utility). An anonymous operation is keyed by
// the empty string, matching the original's convention.
//
// Every returned *ast.Document shares the same underlying node slices
// as doc (the arena layout makes this free): only RootNodes differs,
// listing just the one operation plus its required fragments.
func SeparateOperations(doc *ast.Document) map[string]*ast.Document {
	fragmentDeps := map[string]map[string]bool{}
	for i, frag := range doc.FragmentDefinitions {
		deps := map[string]bool{}
		collectFragmentSpreads(doc, frag.SelectionSet, deps)
		fragmentDeps[doc.FragmentDefinitions[i].Name] = deps
	}

	out := map[string]*ast.Document{}
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindOperationDefinition {
			continue
		}
		op := doc.OperationDefinitions[root.Ref]

		direct := map[string]bool{}
		collectFragmentSpreads(doc, op.SelectionSet, direct)
		required := closeFragmentSpreads(direct, fragmentDeps)

		separated := *doc
		rootNodes := []ast.Node{root}
		for i, frag := range doc.FragmentDefinitions {
			if required[frag.Name] {
				rootNodes = append(rootNodes, ast.Node{Kind: ast.NodeKindFragmentDefinition, Ref: i})
			}
		}
		separated.RootNodes = rootNodes

		out[op.Name] = &separated
	}
	return out
}

// collectFragmentSpreads gathers the names of every fragment directly
// spread within a selection set, descending into fields' and inline
// fragments' own selection sets but not into a spread fragment's body
// (that closure is computed separately by closeFragmentSpreads).
func collectFragmentSpreads(doc *ast.Document, selectionSetRef int, out map[string]bool) {
	ss := doc.SelectionSets[selectionSetRef]
	for _, sel := range ss.Selections {
		switch sel.Kind {
		case ast.NodeKindField:
			f := doc.Fields[sel.Ref]
			if f.HasSelectionSet {
				collectFragmentSpreads(doc, f.SelectionSet, out)
			}
		case ast.NodeKindFragmentSpread:
			out[doc.FragmentSpreads[sel.Ref].FragmentName] = true
		case ast.NodeKindInlineFragment:
			collectFragmentSpreads(doc, doc.InlineFragments[sel.Ref].SelectionSet, out)
		}
	}
}

// closeFragmentSpreads computes the transitive closure of direct under
// deps (each fragment's own directly-spread fragment names).
func closeFragmentSpreads(direct map[string]bool, deps map[string]map[string]bool) map[string]bool {
	closure := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if closure[name] {
			return
		}
		closure[name] = true
		for dep := range deps[name] {
			visit(dep)
		}
	}
	for name := range direct {
		visit(name)
	}
	return closure
}
