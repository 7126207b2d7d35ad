// Package lexer turns GraphQL source text into a token stream (C2).
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wundergraph/graphql-core-engine/internal/gqlerrors"
	"github.com/wundergraph/graphql-core-engine/internal/source"
	"github.com/wundergraph/graphql-core-engine/internal/token"
)

// Lexer produces tokens one at a time from a Source, skipping ignored
// characters (BOM, whitespace, commas) while linking comment tokens
// into the stream's Prev/Next chain so tooling can still see them.
type Lexer struct {
	Source *source.Source

	body string
	pos  int

	lastToken *token.Token
}

// New builds a Lexer positioned before the first token; the caller
// must call Advance to obtain the synthetic SOF token, then repeatedly
// to consume real tokens through EOF.
func New(src *source.Source) *Lexer {
	sof := &token.Token{Kind: token.SOF, Line: 1, Column: 1}
	return &Lexer{Source: src, body: src.Body, lastToken: sof}
}

// LastToken returns the most recently produced token (including the
// initial SOF sentinel).
func (l *Lexer) LastToken() *token.Token { return l.lastToken }

// Advance scans forward from the current position and returns the next
// non-ignored token, linking it after LastToken. Comment tokens are
// returned like any other token kind; callers that only want the
// grammar-significant stream should skip token.COMMENT themselves.
func (l *Lexer) Advance() (*token.Token, error) {
	tok, err := l.readToken(l.pos)
	if err != nil {
		return nil, err
	}
	tok.Prev = l.lastToken
	l.lastToken.Next = tok
	l.lastToken = tok
	l.pos = tok.End
	return tok, nil
}

func (l *Lexer) errf(pos int, format string, args ...interface{}) error {
	return gqlerrors.SyntaxError(l.Source, pos, fmt.Sprintf(format, args...))
}

func (l *Lexer) readToken(from int) (*token.Token, error) {
	body := l.body
	pos := l.skipIgnored(from)

	if pos >= len(body) {
		return l.make(token.EOF, pos, pos, ""), nil
	}

	c := body[pos]
	switch c {
	case '!':
		return l.make(token.BANG, pos, pos+1, ""), nil
	case '$':
		return l.make(token.DOLLAR, pos, pos+1, ""), nil
	case '&':
		return l.make(token.AMP, pos, pos+1, ""), nil
	case '(':
		return l.make(token.PAREN_L, pos, pos+1, ""), nil
	case ')':
		return l.make(token.PAREN_R, pos, pos+1, ""), nil
	case '.':
		if pos+3 <= len(body) && body[pos:pos+3] == "..." {
			return l.make(token.SPREAD, pos, pos+3, ""), nil
		}
		return nil, l.errf(pos, "Unexpected character: \".\".")
	case ':':
		return l.make(token.COLON, pos, pos+1, ""), nil
	case '=':
		return l.make(token.EQUALS, pos, pos+1, ""), nil
	case '@':
		return l.make(token.AT, pos, pos+1, ""), nil
	case '[':
		return l.make(token.BRACKET_L, pos, pos+1, ""), nil
	case ']':
		return l.make(token.BRACKET_R, pos, pos+1, ""), nil
	case '{':
		return l.make(token.BRACE_L, pos, pos+1, ""), nil
	case '|':
		return l.make(token.PIPE, pos, pos+1, ""), nil
	case '}':
		return l.make(token.BRACE_R, pos, pos+1, ""), nil
	case '#':
		return l.readComment(pos)
	case '"':
		if pos+3 <= len(body) && body[pos:pos+3] == `"""` {
			return l.readBlockString(pos)
		}
		return l.readString(pos)
	}

	if c == '-' || isDigit(c) {
		return l.readNumber(pos)
	}
	if isNameStart(c) {
		return l.readName(pos)
	}

	r, _ := utf8.DecodeRuneInString(body[pos:])
	return nil, l.errf(pos, "Unexpected character: %q.", string(r))
}

func (l *Lexer) skipIgnored(from int) int {
	body := l.body
	pos := from
	for pos < len(body) {
		switch body[pos] {
		case ' ', '\t', ',':
			pos++
		case '\n':
			pos++
		case '\r':
			pos++
			if pos < len(body) && body[pos] == '\n' {
				pos++
			}
		default:
			if strings.HasPrefix(body[pos:], "\ufeff") {
				pos += len("\ufeff")
				continue
			}
			return pos
		}
	}
	return pos
}

func (l *Lexer) make(kind token.Kind, start, end int, value string) *token.Token {
	loc := source.LocationFromOffset(l.Source, start)
	return &token.Token{Kind: kind, Start: start, End: end, Line: loc.Line, Column: loc.Column, Value: value}
}

func (l *Lexer) readComment(start int) (*token.Token, error) {
	body := l.body
	pos := start + 1
	for pos < len(body) && body[pos] != '\n' && body[pos] != '\r' {
		pos++
	}
	tok := l.make(token.COMMENT, start, pos, strings.TrimSpace(body[start+1:pos]))
	return tok, nil
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isNameStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
func isNameCont(c byte) bool { return isNameStart(c) || isDigit(c) }

func (l *Lexer) readName(start int) (*token.Token, error) {
	body := l.body
	pos := start + 1
	for pos < len(body) && isNameCont(body[pos]) {
		pos++
	}
	return l.make(token.NAME, start, pos, body[start:pos]), nil
}

func (l *Lexer) readNumber(start int) (*token.Token, error) {
	body := l.body
	pos := start
	isFloat := false
	if body[pos] == '-' {
		pos++
	}
	if pos >= len(body) || !isDigit(body[pos]) {
		return nil, l.errf(pos, "Invalid number, expected digit but got: %s.", charAt(body, pos))
	}
	if body[pos] == '0' {
		pos++
		if pos < len(body) && isDigit(body[pos]) {
			return nil, l.errf(pos, "Invalid number, unexpected digit after 0: %s.", charAt(body, pos))
		}
	} else {
		for pos < len(body) && isDigit(body[pos]) {
			pos++
		}
	}
	if pos < len(body) && body[pos] == '.' {
		isFloat = true
		pos++
		if pos >= len(body) || !isDigit(body[pos]) {
			return nil, l.errf(pos, "Invalid number, expected digit but got: %s.", charAt(body, pos))
		}
		for pos < len(body) && isDigit(body[pos]) {
			pos++
		}
	}
	if pos < len(body) && (body[pos] == 'e' || body[pos] == 'E') {
		isFloat = true
		pos++
		if pos < len(body) && (body[pos] == '+' || body[pos] == '-') {
			pos++
		}
		if pos >= len(body) || !isDigit(body[pos]) {
			return nil, l.errf(pos, "Invalid number, expected digit but got: %s.", charAt(body, pos))
		}
		for pos < len(body) && isDigit(body[pos]) {
			pos++
		}
	}
	if pos < len(body) && (isNameStart(body[pos]) || body[pos] == '.') {
		return nil, l.errf(pos, "Invalid number, expected digit but got: %s.", charAt(body, pos))
	}
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return l.make(kind, start, pos, body[start:pos]), nil
}

func charAt(body string, pos int) string {
	if pos >= len(body) {
		return "<EOF>"
	}
	r, _ := utf8.DecodeRuneInString(body[pos:])
	return strconv.QuoteRune(r)
}

func (l *Lexer) readString(start int) (*token.Token, error) {
	body := l.body
	pos := start + 1
	var b strings.Builder
	for pos < len(body) {
		c := body[pos]
		if c == '"' {
			return l.make(token.STRING, start, pos+1, b.String()), nil
		}
		if c == '\n' || c == '\r' {
			return nil, l.errf(pos, "Unterminated string.")
		}
		if c < 0x20 && c != '\t' {
			return nil, l.errf(pos, "Invalid character within String: %s.", charAt(body, pos))
		}
		if c == '\\' {
			pos++
			if pos >= len(body) {
				return nil, l.errf(pos, "Unterminated string.")
			}
			esc := body[pos]
			switch esc {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case '/':
				b.WriteByte('/')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				r, n, err := readUnicodeEscape(body, pos+1)
				if err != nil {
					return nil, l.errf(pos-1, "%s", err.Error())
				}
				b.WriteRune(r)
				pos += n
			default:
				return nil, l.errf(pos, "Invalid character escape sequence: \"\\%c\".", esc)
			}
			pos++
			continue
		}
		r, size := utf8.DecodeRuneInString(body[pos:])
		b.WriteRune(r)
		pos += size
	}
	return nil, l.errf(pos, "Unterminated string.")
}

// readUnicodeEscape decodes \uXXXX (and, for surrogate pairs, a
// following \uXXXX) starting at pos (just after the "u"). Returns the
// rune and the number of bytes consumed from pos.
func readUnicodeEscape(body string, pos int) (rune, int, error) {
	hi, n, err := hex4(body, pos)
	if err != nil {
		return 0, 0, err
	}
	if hi >= 0xD800 && hi <= 0xDBFF {
		if pos+n+2 <= len(body) && body[pos+n] == '\\' && body[pos+n+1] == 'u' {
			lo, n2, err := hex4(body, pos+n+2)
			if err == nil && lo >= 0xDC00 && lo <= 0xDFFF {
				r := ((hi - 0xD800) << 10) + (lo - 0xDC00) + 0x10000
				return rune(r), n + 2 + n2, nil
			}
		}
		return 0, 0, errInvalidEscape("Invalid Unicode escape sequence: surrogate pair expected.")
	}
	return rune(hi), n, nil
}

type errInvalidEscape string

func (e errInvalidEscape) Error() string { return string(e) }

func hex4(body string, pos int) (int, int, error) {
	if pos+4 > len(body) {
		return 0, 0, errInvalidEscape("Invalid Unicode escape sequence.")
	}
	v, err := strconv.ParseInt(body[pos:pos+4], 16, 32)
	if err != nil {
		return 0, 0, errInvalidEscape("Invalid Unicode escape sequence: \\u" + body[pos:pos+4] + ".")
	}
	return int(v), 4, nil
}

func (l *Lexer) readBlockString(start int) (*token.Token, error) {
	body := l.body
	pos := start + 3
	var raw strings.Builder
	for {
		if pos+3 <= len(body) && body[pos:pos+3] == `"""` {
			tok := l.make(token.BLOCK_STRING, start, pos+3, DedentBlockString(raw.String()))
			tok.Block = true
			return tok, nil
		}
		if pos >= len(body) {
			return nil, l.errf(pos, "Unterminated string.")
		}
		if pos+4 <= len(body) && body[pos:pos+4] == `\"""` {
			raw.WriteString(`"""`)
			pos += 4
			continue
		}
		c := body[pos]
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			return nil, l.errf(pos, "Invalid character within String: %s.", charAt(body, pos))
		}
		r, size := utf8.DecodeRuneInString(body[pos:])
		raw.WriteRune(r)
		pos += size
	}
}
