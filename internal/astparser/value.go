package astparser

import (
	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/token"
)

// parseValue parses one value literal; constOnly rejects a bare
// Variable, the distinction the spec's grammar makes between `Value`
// (used in argument/field literals, where variables are allowed) and
// `ConstValue` (used in default values and directive arguments on a
// type-system definition, where they are not) per §4.2.
func (p *parser) parseValue(constOnly bool) int {
	start := p.tok

	switch {
	case p.at(token.DOLLAR):
		if constOnly {
			p.fail("Unexpected %s.", p.tok.Desc())
			return 0
		}
		p.advance()
		name := p.parseName()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindVariable, Raw: name, Position: p.position(start)})

	case p.at(token.BRACKET_L):
		p.advance()
		var items []int
		for p.err == nil && !p.at(token.BRACKET_R) {
			items = append(items, p.parseValue(constOnly))
		}
		p.expect(token.BRACKET_R)
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindList, ListValues: items, Position: p.position(start)})

	case p.at(token.BRACE_L):
		p.advance()
		var fields []int
		for p.err == nil && !p.at(token.BRACE_R) {
			fname := p.parseName()
			p.expect(token.COLON)
			fval := p.parseValue(constOnly)
			fields = append(fields, p.doc.AddObjectField(ast.ObjectField{Name: fname, Value: fval, Position: p.position(start)}))
		}
		p.expect(token.BRACE_R)
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindObject, ObjectFields: fields, Position: p.position(start)})

	case p.at(token.INT):
		tok := p.tok
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindInt, Raw: tok.Value, Position: p.position(start)})

	case p.at(token.FLOAT):
		tok := p.tok
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindFloat, Raw: tok.Value, Position: p.position(start)})

	case p.at(token.STRING), p.at(token.BLOCK_STRING):
		tok := p.tok
		block := tok.Kind == token.BLOCK_STRING
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindString, Raw: tok.Value, Block: block, Position: p.position(start)})

	case p.atKeyword("true"):
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindBoolean, Boolean: true, Position: p.position(start)})

	case p.atKeyword("false"):
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindBoolean, Boolean: false, Position: p.position(start)})

	case p.atKeyword("null"):
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindNull, Position: p.position(start)})

	case p.at(token.NAME):
		tok := p.tok
		p.advance()
		return p.doc.AddValue(ast.Value{Kind: ast.ValueKindEnum, Raw: tok.Value, Position: p.position(start)})
	}

	p.fail("Unexpected %s.", p.tok.Desc())
	return 0
}

// parseType parses a type reference: `Named`, `[OfType]`, `OfType!`
// (§4.2's Type grammar).
func (p *parser) parseType() int {
	start := p.tok
	var ref int
	if p.skip(token.BRACKET_L) {
		inner := p.parseType()
		p.expect(token.BRACKET_R)
		ref = p.doc.AddType(ast.Type{Kind: ast.TypeKindList, OfType: inner, Position: p.position(start)})
	} else {
		name := p.parseName()
		ref = p.doc.AddType(ast.Type{Kind: ast.TypeKindNamed, Name: name, Position: p.position(start)})
	}
	if p.skip(token.BANG) {
		ref = p.doc.AddType(ast.Type{Kind: ast.TypeKindNonNull, OfType: ref, Position: p.position(start)})
	}
	return ref
}

// --- public single-value/type entry points (C11: graphql.ParseValue /
// graphql.ParseType / graphql.ParseConstValue) ---

// ParseValue parses one standalone value literal (variables allowed),
// e.g. for a transport layer decoding a raw argument string.
func ParseValue(src *source.Source, opts ...Option) (*ast.Document, int, error) {
	return parseStandaloneValue(src, opts, false)
}

// ParseConstValue parses one standalone constant value literal
// (variables rejected).
func ParseConstValue(src *source.Source, opts ...Option) (*ast.Document, int, error) {
	return parseStandaloneValue(src, opts, true)
}

func parseStandaloneValue(src *source.Source, opts []Option, constOnly bool) (*ast.Document, int, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	p := newParser(src, o)
	if p.err != nil {
		return p.doc, 0, p.err
	}
	p.expect(token.SOF)
	ref := p.parseValue(constOnly)
	p.expect(token.EOF)
	return p.doc, ref, p.err
}

// ParseType parses one standalone type reference, e.g. `[String!]!`.
func ParseType(src *source.Source, opts ...Option) (*ast.Document, int, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	p := newParser(src, o)
	if p.err != nil {
		return p.doc, 0, p.err
	}
	p.expect(token.SOF)
	ref := p.parseType()
	p.expect(token.EOF)
	return p.doc, ref, p.err
}
