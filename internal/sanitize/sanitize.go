// Package sanitize prepares free text for storage in a spreadsheet cell.
package sanitize

import (
	"strings"
	"unicode"
)

// LineBreak replaces every newline in cleaned text. It is the only non-ASCII
// rune that Clean leaves in its output.
const LineBreak = " ⏎ "

const marker = '⏎'

// Clean drops non-ASCII runes, turns newlines into LineBreak, removes carriage
// returns, trims surrounding whitespace and truncates the result to at most
// limit runes. Clean(Clean(s, n), n) == Clean(s, n).
func Clean(text string, limit int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteString(LineBreak)
		case r == '\r':
		case r == marker:
			// keep markers from an earlier pass
			b.WriteRune(r)
		case r > unicode.MaxASCII:
		default:
			b.WriteRune(r)
		}
	}
	out := strings.TrimSpace(b.String())
	return truncate(out, limit)
}

func truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	n := 0
	for i := range s {
		if n == limit {
			return strings.TrimRightFunc(s[:i], unicode.IsSpace)
		}
		n++
	}
	return s
}
