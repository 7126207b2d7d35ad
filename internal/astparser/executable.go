package astparser

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/token"
)

// parseExecutableDefinition parses one OperationDefinition or
// FragmentDefinition and registers it as a RootNode (§4.2).
func parseExecutableDefinition(p *parser) {
	switch {
	case p.at(token.BRACE_L):
		p.parseOperationDefinition(true)
	case p.atKeyword("query"):
		p.parseOperationDefinition(false)
	case p.atKeyword("mutation"):
		p.parseOperationDefinition(false)
	case p.atKeyword("subscription"):
		p.parseOperationDefinition(false)
	case p.atKeyword("fragment"):
		p.parseFragmentDefinition()
	default:
		p.fail("Unexpected %s.", p.tok.Desc())
	}
}

func (p *parser) parseOperationDefinition(shorthand bool) {
	start := p.tok
	opType := ast.OperationTypeQuery
	name := ""

	if !shorthand {
		switch {
		case p.skipKeyword("query"):
			opType = ast.OperationTypeQuery
		case p.skipKeyword("mutation"):
			opType = ast.OperationTypeMutation
		case p.skipKeyword("subscription"):
			opType = ast.OperationTypeSubscription
		}
		if p.at(token.NAME) {
			name = p.parseName()
		}
	}

	var varDefs []int
	if !shorthand && p.at(token.PAREN_L) {
		varDefs = p.parseVariableDefinitions()
	}
	directives := p.parseDirectives(false)
	ss := p.parseSelectionSet()

	p.doc.AddOperationDefinition(ast.OperationDefinition{
		OperationType:          opType,
		Name:                   name,
		HasVariableDefinitions: len(varDefs) > 0,
		VariableDefinitions:    varDefs,
		HasDirectives:          len(directives) > 0,
		Directives:             directives,
		SelectionSet:           ss,
		Position:               p.position(start),
	})
}

func (p *parser) parseVariableDefinitions() []int {
	p.expect(token.PAREN_L)
	var refs []int
	for p.err == nil && !p.at(token.PAREN_R) {
		refs = append(refs, p.parseVariableDefinition())
	}
	p.expect(token.PAREN_R)
	return refs
}

func (p *parser) parseVariableDefinition() int {
	start := p.tok
	p.expect(token.DOLLAR)
	name := p.parseName()
	p.expect(token.COLON)
	typeRef := p.parseType()

	hasDefault := false
	var defaultRef int
	if p.skip(token.EQUALS) {
		hasDefault = true
		defaultRef = p.parseValue(true)
	}
	directives := p.parseDirectives(true)

	return p.doc.AddVariableDefinition(ast.VariableDefinition{
		VariableName:    name,
		Type:            typeRef,
		HasDefaultValue: hasDefault,
		DefaultValue:    defaultRef,
		HasDirectives:   len(directives) > 0,
		Directives:      directives,
		Position:        p.position(start),
	})
}

func (p *parser) parseDirectives(constOnly bool) []int {
	var refs []int
	for p.err == nil && p.at(token.AT) {
		refs = append(refs, p.parseDirective(constOnly))
	}
	return refs
}

func (p *parser) parseDirective(constOnly bool) int {
	start := p.tok
	p.expect(token.AT)
	name := p.parseName()
	args := p.parseArguments(constOnly)
	return p.doc.AddDirective(ast.Directive{Name: name, Arguments: args, Position: p.position(start)})
}

func (p *parser) parseArguments(constOnly bool) []int {
	if !p.at(token.PAREN_L) {
		return nil
	}
	p.expect(token.PAREN_L)
	var refs []int
	for p.err == nil && !p.at(token.PAREN_R) {
		refs = append(refs, p.parseArgument(constOnly))
	}
	p.expect(token.PAREN_R)
	return refs
}

func (p *parser) parseArgument(constOnly bool) int {
	start := p.tok
	name := p.parseName()
	p.expect(token.COLON)
	val := p.parseValue(constOnly)
	return p.doc.AddArgument(ast.Argument{Name: name, Value: val, Position: p.position(start)})
}

func (p *parser) parseSelectionSet() int {
	start := p.tok
	p.expect(token.BRACE_L)
	var selections []ast.Node
	for p.err == nil && !p.at(token.BRACE_R) {
		selections = append(selections, p.parseSelection())
	}
	p.expect(token.BRACE_R)
	return p.doc.AddSelectionSet(ast.SelectionSet{Selections: selections, Position: p.position(start)})
}

func (p *parser) parseSelection() ast.Node {
	if p.at(token.SPREAD) {
		return p.parseFragmentSpreadOrInlineFragment()
	}
	return ast.Node{Kind: ast.NodeKindField, Ref: p.parseField()}
}

func (p *parser) parseField() int {
	start := p.tok
	first := p.parseName()

	alias := ""
	hasAlias := false
	name := first
	if p.skip(token.COLON) {
		hasAlias = true
		alias = first
		name = p.parseName()
	}

	args := p.parseArguments(false)
	directives := p.parseDirectives(false)

	hasSelSet := false
	selRef := 0
	if p.at(token.BRACE_L) {
		hasSelSet = true
		selRef = p.parseSelectionSet()
	}

	return p.doc.AddField(ast.Field{
		Alias:           alias,
		HasAlias:        hasAlias,
		Name:            name,
		Arguments:       args,
		Directives:      directives,
		HasSelectionSet: hasSelSet,
		SelectionSet:    selRef,
		Position:        p.position(start),
	})
}

func (p *parser) parseFragmentSpreadOrInlineFragment() ast.Node {
	start := p.tok
	p.expect(token.SPREAD)

	// `... on Type` or a bare `...` introduces an inline fragment;
	// `...Name` (Name not literally "on") is a fragment spread (§4.2).
	if p.atKeyword("on") || !p.at(token.NAME) {
		hasCond := false
		cond := ""
		if p.skipKeyword("on") {
			hasCond = true
			cond = p.parseName()
		}
		directives := p.parseDirectives(false)
		ss := p.parseSelectionSet()
		ref := p.doc.AddInlineFragment(ast.InlineFragment{
			HasTypeCondition: hasCond,
			TypeCondition:    cond,
			Directives:       directives,
			SelectionSet:     ss,
			Position:         p.position(start),
		})
		return ast.Node{Kind: ast.NodeKindInlineFragment, Ref: ref}
	}

	name := p.parseName()
	directives := p.parseDirectives(false)
	ref := p.doc.AddFragmentSpread(ast.FragmentSpread{FragmentName: name, Directives: directives, Position: p.position(start)})
	return ast.Node{Kind: ast.NodeKindFragmentSpread, Ref: ref}
}

func (p *parser) parseFragmentDefinition() {
	start := p.tok
	p.expectKeyword("fragment")
	name := p.parseName()
	if name == "on" {
		p.fail(`Unexpected Name "on".`)
		return
	}

	var varDefs []int
	if p.opts.AllowLegacyFragmentVariables && p.at(token.PAREN_L) {
		varDefs = p.parseVariableDefinitions()
	}

	p.expectKeyword("on")
	cond := p.parseName()
	directives := p.parseDirectives(false)
	ss := p.parseSelectionSet()

	p.doc.AddFragmentDefinition(ast.FragmentDefinition{
		Name:                name,
		VariableDefinitions: varDefs,
		TypeCondition:       cond,
		Directives:          directives,
		SelectionSet:        ss,
		Position:            p.position(start),
	})
}
