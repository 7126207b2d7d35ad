package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/graphql-core-engine/internal/lexer"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/token"
)

func lexAll(t *testing.T, body string) []*token.Token {
	t.Helper()
	l := lexer.New(source.New(body))
	var toks []*token.Token
	for {
		tok, err := l.Advance()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func TestLexerPunctuatorsAndName(t *testing.T) {
	toks := lexAll(t, "{ a(b: $c) }")
	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.BRACE_L, token.NAME, token.PAREN_L, token.NAME, token.COLON,
		token.DOLLAR, token.NAME, token.PAREN_R, token.BRACE_R, token.EOF,
	}, kinds)
}

func TestLexerIntAndFloat(t *testing.T) {
	toks := lexAll(t, "1 -2 3.14 1e10 1.5e-3")
	var vals []string
	var kinds []token.Kind
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		vals = append(vals, tk.Value)
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []string{"1", "-2", "3.14", "1e10", "1.5e-3"}, vals)
	assert.Equal(t, []token.Kind{token.INT, token.INT, token.FLOAT, token.FLOAT, token.FLOAT}, kinds)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nbA\t\""`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "a\nbA\t\"", toks[0].Value)
}

func TestLexerUnterminatedStringIsSyntaxError(t *testing.T) {
	l := lexer.New(source.New(`"abc`))
	_, err := l.Advance()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string")
}

func TestLexerBlockStringDedent(t *testing.T) {
	toks := lexAll(t, "\"\"\"\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.\n  \"\"\"")
	require.Len(t, toks, 2)
	assert.Equal(t, token.BLOCK_STRING, toks[0].Kind)
	assert.Equal(t, "Hello,\n  World!\n\nYours,\n  GraphQL.", toks[0].Value)
}

func TestLexerSkipsCommasAndWhitespace(t *testing.T) {
	toks := lexAll(t, "a,  ,\nb")
	require.Len(t, toks, 3)
	assert.Equal(t, "a", toks[0].Value)
	assert.Equal(t, "b", toks[1].Value)
}

func TestLexerRejectsLeadingZeroDigit(t *testing.T) {
	l := lexer.New(source.New("01"))
	_, err := l.Advance()
	require.Error(t, err)
}
