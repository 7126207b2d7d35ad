package lexer

import "strings"

// DedentBlockString implements the block-string dedent algorithm the
// lexer applies to every block string (§4.1, §9); no other package
// calls it: split on line terminators, compute the common leading whitespace of
// every line after the first, strip it, drop leading/trailing blank
// lines, and rejoin with "\n".
func DedentBlockString(raw string) string {
	lines := splitLines(raw)

	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue // a blank (or all-whitespace) line does not count
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}

	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && isBlank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && isBlank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func leadingWhitespace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}

func isBlank(s string) bool {
	return leadingWhitespace(s) == len(s)
}

// PrintBlockString renders value as a """triple-quoted""" block
// string, choosing the minimal escaping needed so that re-lexing the
// output reproduces value (§8 property 8). Leading and trailing blank
// lines, and indentation shared by every line after the first, are
// removed by the dedent a re-lex applies, so values that have them do
// not come back unchanged. Unless minimize is set, a value containing a
// newline or longer than 70 bytes gets its own opening and closing
// lines; a value ending in a quote or backslash always gets a newline
// before the closing quotes.
func PrintBlockString(value string, minimize bool) string {
	escaped := strings.ReplaceAll(value, `"""`, `\"""`)

	isSingleLine := !strings.Contains(value, "\n")
	hasLeadingSpace := len(value) > 0 && (value[0] == ' ' || value[0] == '\t')
	hasTrailingQuote := strings.HasSuffix(value, `"`)
	hasTrailingSlash := strings.HasSuffix(value, `\`)
	printAsMultipleLines := !minimize && (!isSingleLine || len(value) > 70)

	var b strings.Builder
	b.WriteString(`"""`)
	if printAsMultipleLines && !strings.HasPrefix(escaped, "\n") && !(isSingleLine && hasLeadingSpace) {
		b.WriteByte('\n')
	}
	b.WriteString(escaped)
	if printAsMultipleLines || hasTrailingQuote || hasTrailingSlash {
		b.WriteByte('\n')
	}
	b.WriteString(`"""`)
	return b.String()
}
