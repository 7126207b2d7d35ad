// Package source wraps GraphQL input text and computes line/column
// positions from byte offsets, the way the teacher's document package
// wraps raw operation text before lexing.
package source

import "strings"

// Source is a named chunk of GraphQL text plus the offsets used to
// translate a parsed document back to its place in a larger file.
type Source struct {
	Body         string
	Name         string
	LineOffset   int
	ColumnOffset int
}

// Option configures a Source at construction time.
type Option func(*Source)

// WithName overrides the default "GraphQL request" source name, used in
// error messages and caret diagnostics.
func WithName(name string) Option {
	return func(s *Source) { s.Name = name }
}

// WithLocationOffset shifts line/column numbers reported for this source,
// for GraphQL embedded inside a larger document (e.g. a markdown fence).
func WithLocationOffset(line, column int) Option {
	return func(s *Source) {
		s.LineOffset = line
		s.ColumnOffset = column
	}
}

// New builds a Source from body text.
func New(body string, opts ...Option) *Source {
	s := &Source{Body: body, Name: "GraphQL request", LineOffset: 1, ColumnOffset: 1}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is a human-readable line/column position within a Source.
type Location struct {
	Line   int
	Column int
}

// LocationFromOffset computes the 1-based line/column for a byte offset
// into s.Body, honoring any LineOffset/ColumnOffset shift.
func LocationFromOffset(s *Source, offset int) Location {
	line := 1
	lastLineStart := 0
	body := s.Body
	if offset > len(body) {
		offset = len(body)
	}
	for i := 0; i < offset; i++ {
		if body[i] == '\n' {
			line++
			lastLineStart = i + 1
		}
	}
	column := offset - lastLineStart + 1

	loc := Location{Line: line, Column: column}
	if line == 1 {
		loc.Column += s.ColumnOffset - 1
	}
	loc.Line += s.LineOffset - 1
	return loc
}

// Range is a byte-offset span, [Start, End), inside a Source.
type Range struct {
	Start int
	End   int
}

// PrintCaret renders a multi-line diagnostic pointing at offset, in the
// style GraphQL tooling uses for syntax errors: surrounding lines of
// context plus a caret under the exact column.
func PrintCaret(s *Source, offset int) string {
	loc := LocationFromOffset(s, offset)
	lines := strings.Split(s.Body, "\n")
	lineIdx := loc.Line - s.LineOffset
	if lineIdx < 0 || lineIdx >= len(lines) {
		return ""
	}
	var b strings.Builder
	if lineIdx > 0 {
		b.WriteString(lines[lineIdx-1])
		b.WriteByte('\n')
	}
	b.WriteString(lines[lineIdx])
	b.WriteByte('\n')
	col := loc.Column
	if lineIdx == 0 {
		col -= s.ColumnOffset - 1
	}
	if col < 1 {
		col = 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteByte('^')
	return b.String()
}
