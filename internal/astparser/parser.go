// Package astparser implements the recursive-descent parser (C5):
// building an ast.Document from a token stream for both the executable
// grammar (operations/fragments) and the type-system (SDL) grammar,
// following the direct-method recursive-descent shape of
// sprucehealth-graphql's language/parser package rather than a
// generated table-driven parser.
package astparser

import (
	"fmt"

	"github.com/wundergraph/graphql-core-engine/internal/ast"
	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/lexer"
	"github.com/wundergraph/graphql-core-engine/internal/operationreport"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/token"
)

// Options configures one parse call (§9 Open Question: no_location and
// allow_legacy_fragment_variables, both off by default).
type Options struct {
	NoLocation                  bool
	AllowLegacyFragmentVariables bool
}

type Option func(*Options)

// WithNoLocation skips computing line/column for every node, used by
// hosts that only need the shape of a document and want to skip the
// bookkeeping cost.
func WithNoLocation() Option { return func(o *Options) { o.NoLocation = true } }

// WithLegacyFragmentVariables allows `fragment F($x: Int) on T { ... }`,
// a legacy extension some older clients still emit (§9 Open Question,
// decided: supported only when explicitly requested).
func WithLegacyFragmentVariables() Option {
	return func(o *Options) { o.AllowLegacyFragmentVariables = true }
}

// parser holds the mutable state of one parse pass: the lexer, the
// current lookahead token, and the document being built.
type parser struct {
	lex  *lexer.Lexer
	src  *source.Source
	opts Options
	doc  *ast.Document
	tok  *token.Token

	err error
}

func newParser(src *source.Source, opts Options) *parser {
	p := &parser{lex: lexer.New(src), src: src, opts: opts, doc: ast.NewDocument(src.Name, src.Body)}
	p.advance()
	return p
}

// advance skips COMMENT tokens (grammar-insignificant) and stops
// advancing once a parse error has been recorded, so callers can keep
// calling helper methods without individually checking p.err after
// every token.
func (p *parser) advance() {
	if p.err != nil {
		return
	}
	for {
		tok, err := p.lex.Advance()
		if err != nil {
			p.err = err
			return
		}
		if tok.Kind == token.COMMENT {
			continue
		}
		p.tok = tok
		return
	}
}

func (p *parser) fail(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	p.err = gqlerrors.SyntaxError(p.src, p.tok.Start, fmt.Sprintf(format, args...))
}

func (p *parser) at(kind token.Kind) bool { return p.err == nil && p.tok.Kind == kind }

// atKeyword reports whether the lookahead is a NAME token spelling word
// exactly (GraphQL keywords are not reserved words lexically).
func (p *parser) atKeyword(word string) bool {
	return p.err == nil && p.tok.Kind == token.NAME && p.tok.Value == word
}

func (p *parser) expect(kind token.Kind) *token.Token {
	if p.err != nil {
		return p.tok
	}
	if p.tok.Kind != kind {
		p.fail("Expected %s, found %s.", kind.String(), p.tok.Desc())
		return p.tok
	}
	tok := p.tok
	p.advance()
	return tok
}

func (p *parser) expectKeyword(word string) {
	if p.err != nil {
		return
	}
	if !p.atKeyword(word) {
		p.fail("Expected %q, found %s.", word, p.tok.Desc())
		return
	}
	p.advance()
}

// skip consumes kind if present and reports whether it did, the
// sprucehealth-style `skip`/`peek` helper used for optional grammar
// pieces (optional `!`, optional trailing comma-less punctuation).
func (p *parser) skip(kind token.Kind) bool {
	if p.err != nil || p.tok.Kind != kind {
		return false
	}
	p.advance()
	return true
}

func (p *parser) skipKeyword(word string) bool {
	if p.err != nil || !p.atKeyword(word) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) parseName() string {
	tok := p.expect(token.NAME)
	return tok.Value
}

func (p *parser) position(start *token.Token) ast.Position {
	if p.opts.NoLocation {
		return ast.Position{}
	}
	end := start
	if p.lex.LastToken() != nil && p.lex.LastToken().Prev != nil {
		end = p.lex.LastToken().Prev
	}
	return ast.Position{HasPosition: true, Start: start.Start, End: end.End, Line: start.Line, Column: start.Column}
}

// --- description attachment (§4.2: a STRING/BLOCK_STRING immediately
// preceding a type-system definition becomes its doc comment) ---

func (p *parser) parseDescription() ast.Description {
	if p.err != nil || (p.tok.Kind != token.STRING && p.tok.Kind != token.BLOCK_STRING) {
		return ast.Description{}
	}
	tok := p.tok
	p.advance()
	return ast.Description{HasDescription: true, Content: tok.Value, Block: tok.Kind == token.BLOCK_STRING}
}

// --- public entry points ---

// ParseExecutableDocument parses an operations+fragments document
// (§4.2's executable grammar).
func ParseExecutableDocument(src *source.Source, opts ...Option) (*ast.Document, operationreport.Report) {
	return parseDocument(src, opts, parseExecutableDefinition)
}

// ParseTypeSystemDocument parses an SDL document (type/schema
// definitions and extensions, §4.2's type-system grammar).
func ParseTypeSystemDocument(src *source.Source, opts ...Option) (*ast.Document, operationreport.Report) {
	return parseDocument(src, opts, parseTypeSystemDefinition)
}

// ParseDocument parses either grammar, dispatching per top-level
// keyword, for callers that don't know in advance whether they were
// handed a client query document or a schema SDL document.
func ParseDocument(src *source.Source, opts ...Option) (*ast.Document, operationreport.Report) {
	return parseDocument(src, opts, parseAnyDefinition)
}

func parseDocument(src *source.Source, opts []Option, parseOne func(*parser)) (*ast.Document, operationreport.Report) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	p := newParser(src, o)

	var report operationreport.Report
	if p.err != nil {
		report.AddExternalError(toGQLError(p.err))
		return p.doc, report
	}

	p.expect(token.SOF)
	for p.err == nil && p.tok.Kind != token.EOF {
		parseOne(p)
	}
	if p.err != nil {
		report.AddExternalError(toGQLError(p.err))
	}
	return p.doc, report
}

func toGQLError(err error) *gqlerrors.Error {
	if ge, ok := err.(*gqlerrors.Error); ok {
		return ge
	}
	return gqlerrors.New(err.Error())
}

func parseAnyDefinition(p *parser) {
	if p.atKeyword("query") || p.atKeyword("mutation") || p.atKeyword("subscription") ||
		p.at(token.BRACE_L) || p.atKeyword("fragment") {
		parseExecutableDefinition(p)
		return
	}
	parseTypeSystemDefinition(p)
}
