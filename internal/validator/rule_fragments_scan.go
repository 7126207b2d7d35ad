package validator

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
)

// checkUniqueFragmentNames: two fragment definitions must not share a
// name (§4.6).
func checkUniqueFragmentNames(doc *ast.Document, report *operationreport.Report) {
	seen := map[string]bool{}
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindFragmentDefinition {
			continue
		}
		fd := doc.FragmentDefinitions[root.Ref]
		if seen[fd.Name] {
			report.AddExternalError(ruleError(fd.Position, "There can be only one fragment named %q.", fd.Name))
			continue
		}
		seen[fd.Name] = true
	}
}

// checkKnownFragmentNames: every `...Spread` must name a fragment
// defined somewhere in the document (§4.6).
func checkKnownFragmentNames(doc *ast.Document, report *operationreport.Report) {
	defined := map[string]bool{}
	for _, root := range doc.RootNodes {
		if root.Kind == ast.NodeKindFragmentDefinition {
			defined[doc.FragmentDefinitions[root.Ref].Name] = true
		}
	}
	for i := range doc.FragmentSpreads {
		spread := doc.FragmentSpreads[i]
		if !defined[spread.FragmentName] {
			report.AddExternalError(ruleError(spread.Position, "Unknown fragment %q.", spread.FragmentName))
		}
	}
}

// checkNoUnusedFragments: every fragment definition must be spread,
// directly or transitively, from at least one operation (§4.6).
func checkNoUnusedFragments(doc *ast.Document, report *operationreport.Report) {
	spreadNames := map[string]bool{}
	for _, op := range doc.OperationDefinitions {
		collectSpreadNames(doc, op.SelectionSet, spreadNames, map[string]bool{})
	}

	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindFragmentDefinition {
			continue
		}
		fd := doc.FragmentDefinitions[root.Ref]
		if !spreadNames[fd.Name] {
			report.AddExternalError(ruleError(fd.Position, "Fragment %q is never used.", fd.Name))
		}
	}
}

func collectSpreadNames(doc *ast.Document, ssRef int, out map[string]bool, visiting map[string]bool) {
	ss := doc.SelectionSets[ssRef]
	for _, sel := range ss.Selections {
		switch sel.Kind {
		case ast.NodeKindField:
			f := doc.Fields[sel.Ref]
			if f.HasSelectionSet {
				collectSpreadNames(doc, f.SelectionSet, out, visiting)
			}
		case ast.NodeKindInlineFragment:
			collectSpreadNames(doc, doc.InlineFragments[sel.Ref].SelectionSet, out, visiting)
		case ast.NodeKindFragmentSpread:
			name := doc.FragmentSpreads[sel.Ref].FragmentName
			if out[name] || visiting[name] {
				continue
			}
			out[name] = true
			if fragRef, ok := doc.FragmentByName(name); ok {
				visiting[name] = true
				collectSpreadNames(doc, doc.FragmentDefinitions[fragRef].SelectionSet, out, visiting)
				delete(visiting, name)
			}
		}
	}
}

// checkNoFragmentCycles: a fragment must not transitively spread
// itself (§4.6); a cycle would otherwise make field-collection (C8)
// loop forever.
func checkNoFragmentCycles(doc *ast.Document, report *operationreport.Report) {
	for _, root := range doc.RootNodes {
		if root.Kind != ast.NodeKindFragmentDefinition {
			continue
		}
		fd := doc.FragmentDefinitions[root.Ref]
		path := map[string]bool{fd.Name: true}
		if cyclesThrough(doc, fd.SelectionSet, fd.Name, path) {
			report.AddExternalError(ruleError(fd.Position, "Cannot spread fragment %q within itself.", fd.Name))
		}
	}
}

func cyclesThrough(doc *ast.Document, ssRef int, target string, path map[string]bool) bool {
	ss := doc.SelectionSets[ssRef]
	for _, sel := range ss.Selections {
		switch sel.Kind {
		case ast.NodeKindField:
			f := doc.Fields[sel.Ref]
			if f.HasSelectionSet && cyclesThrough(doc, f.SelectionSet, target, path) {
				return true
			}
		case ast.NodeKindInlineFragment:
			if cyclesThrough(doc, doc.InlineFragments[sel.Ref].SelectionSet, target, path) {
				return true
			}
		case ast.NodeKindFragmentSpread:
			name := doc.FragmentSpreads[sel.Ref].FragmentName
			if name == target {
				return true
			}
			if path[name] {
				continue // a different cycle, reported when that fragment is the root under test
			}
			if fragRef, ok := doc.FragmentByName(name); ok {
				path[name] = true
				found := cyclesThrough(doc, doc.FragmentDefinitions[fragRef].SelectionSet, target, path)
				delete(path, name)
				if found {
					return true
				}
			}
		}
	}
	return false
}
