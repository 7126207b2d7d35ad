// Package astprinter renders an ast.Document back to GraphQL source
// text (C5's companion: print_ast), used both by tooling (normalizing
// a query for logging/caching) and by the parse->print->parse
// idempotence property every corpus parser is expected to satisfy.
package astprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/lexer"
)

// Print renders every root node of doc, each separated by a blank line,
// matching graphql-js's print() top-level join behavior.
func Print(doc *ast.Document) string {
	p := &printer{doc: doc}
	var parts []string
	for _, root := range doc.RootNodes {
		parts = append(parts, p.printRoot(root))
	}
	return strings.Join(parts, "\n\n")
}

// PrintNode renders a single node (and its children), e.g. for an error
// message that quotes back one field or fragment.
func PrintNode(doc *ast.Document, node ast.Node) string {
	p := &printer{doc: doc}
	return p.printRoot(node)
}

type printer struct {
	doc *ast.Document
}

func (p *printer) printRoot(n ast.Node) string {
	switch n.Kind {
	case ast.NodeKindOperationDefinition:
		return p.printOperationDefinition(n.Ref)
	case ast.NodeKindFragmentDefinition:
		return p.printFragmentDefinition(n.Ref)
	case ast.NodeKindSchemaDefinition:
		return p.printSchemaDefinition(n.Ref)
	case ast.NodeKindScalarTypeDefinition:
		return p.printScalarTypeDefinition(n.Ref)
	case ast.NodeKindObjectTypeDefinition:
		return p.printObjectTypeDefinition(n.Ref)
	case ast.NodeKindInterfaceTypeDefinition:
		return p.printInterfaceTypeDefinition(n.Ref)
	case ast.NodeKindUnionTypeDefinition:
		return p.printUnionTypeDefinition(n.Ref)
	case ast.NodeKindEnumTypeDefinition:
		return p.printEnumTypeDefinition(n.Ref)
	case ast.NodeKindInputObjectTypeDefinition:
		return p.printInputObjectTypeDefinition(n.Ref)
	case ast.NodeKindDirectiveDefinition:
		return p.printDirectiveDefinition(n.Ref)
	default:
		return ""
	}
}

func (p *printer) printOperationDefinition(ref int) string {
	op := p.doc.OperationDefinitions[ref]

	// The shorthand form (`{ ... }`) is only used for an unnamed query
	// with no variables and no directives, matching graphql-js's print.
	if op.OperationType == ast.OperationTypeQuery && op.Name == "" && !op.HasVariableDefinitions && !op.HasDirectives {
		return p.printSelectionSet(op.SelectionSet)
	}

	var b strings.Builder
	b.WriteString(op.OperationType.String())
	if op.Name != "" {
		b.WriteByte(' ')
		b.WriteString(op.Name)
	}
	if op.HasVariableDefinitions {
		b.WriteByte('(')
		for i, ref := range op.VariableDefinitions {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.printVariableDefinition(ref))
		}
		b.WriteByte(')')
	}
	b.WriteString(p.printDirectives(op.Directives))
	b.WriteByte(' ')
	b.WriteString(p.printSelectionSet(op.SelectionSet))
	return b.String()
}

func (p *printer) printVariableDefinition(ref int) string {
	vd := p.doc.VariableDefinitions[ref]
	s := fmt.Sprintf("$%s: %s", vd.VariableName, p.doc.PrintType(vd.Type))
	if vd.HasDefaultValue {
		s += " = " + p.printValue(vd.DefaultValue)
	}
	return s + p.printDirectives(vd.Directives)
}

func (p *printer) printDirectives(refs []int) string {
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, ref := range refs {
		b.WriteByte(' ')
		b.WriteString(p.printDirective(ref))
	}
	return b.String()
}

func (p *printer) printDirective(ref int) string {
	d := p.doc.Directives[ref]
	return "@" + d.Name + p.printArguments(d.Arguments)
}

func (p *printer) printArguments(refs []int) string {
	if len(refs) == 0 {
		return ""
	}
	parts := make([]string, len(refs))
	for i, ref := range refs {
		a := p.doc.Arguments[ref]
		parts[i] = a.Name + ": " + p.printValue(a.Value)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *printer) printSelectionSet(ref int) string {
	ss := p.doc.SelectionSets[ref]
	if len(ss.Selections) == 0 {
		return "{}"
	}
	parts := make([]string, len(ss.Selections))
	for i, sel := range ss.Selections {
		parts[i] = p.printSelection(sel)
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (p *printer) printSelection(n ast.Node) string {
	switch n.Kind {
	case ast.NodeKindField:
		return p.printField(n.Ref)
	case ast.NodeKindFragmentSpread:
		return p.printFragmentSpread(n.Ref)
	case ast.NodeKindInlineFragment:
		return p.printInlineFragment(n.Ref)
	default:
		return ""
	}
}

func (p *printer) printField(ref int) string {
	f := p.doc.Fields[ref]
	var b strings.Builder
	if f.HasAlias {
		b.WriteString(f.Alias)
		b.WriteString(": ")
	}
	b.WriteString(f.Name)
	b.WriteString(p.printArguments(f.Arguments))
	b.WriteString(p.printDirectives(f.Directives))
	if f.HasSelectionSet {
		b.WriteByte(' ')
		b.WriteString(p.printSelectionSet(f.SelectionSet))
	}
	return b.String()
}

func (p *printer) printFragmentSpread(ref int) string {
	fs := p.doc.FragmentSpreads[ref]
	return "..." + fs.FragmentName + p.printDirectives(fs.Directives)
}

func (p *printer) printInlineFragment(ref int) string {
	fr := p.doc.InlineFragments[ref]
	s := "..."
	if fr.HasTypeCondition {
		s += " on " + fr.TypeCondition
	}
	s += p.printDirectives(fr.Directives)
	return s + " " + p.printSelectionSet(fr.SelectionSet)
}

func (p *printer) printFragmentDefinition(ref int) string {
	fd := p.doc.FragmentDefinitions[ref]
	s := "fragment " + fd.Name + " on " + fd.TypeCondition + p.printDirectives(fd.Directives)
	return s + " " + p.printSelectionSet(fd.SelectionSet)
}

func (p *printer) printValue(ref int) string {
	v := p.doc.Values[ref]
	switch v.Kind {
	case ast.ValueKindVariable:
		return "$" + v.Raw
	case ast.ValueKindInt, ast.ValueKindFloat, ast.ValueKindEnum:
		return v.Raw
	case ast.ValueKindString:
		if v.Block {
			return lexer.PrintBlockString(v.Raw, false)
		}
		return strconv.Quote(v.Raw)
	case ast.ValueKindBoolean:
		if v.Boolean {
			return "true"
		}
		return "false"
	case ast.ValueKindNull:
		return "null"
	case ast.ValueKindList:
		parts := make([]string, len(v.ListValues))
		for i, item := range v.ListValues {
			parts[i] = p.printValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ast.ValueKindObject:
		parts := make([]string, len(v.ObjectFields))
		for i, fref := range v.ObjectFields {
			f := p.doc.ObjectFields[fref]
			parts[i] = f.Name + ": " + p.printValue(f.Value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}
