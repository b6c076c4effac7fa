package sanitize

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"
)

func TestClean(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"plain", "hello there", 100, "hello there"},
		{"emoji", "Heyy 😏 what you up to 👀", 100, "Heyy  what you up to"},
		{"newlines", "Fan: hi\nChatter: hey", 100, "Fan: hi ⏎ Chatter: hey"},
		{"crlf", "a\r\nb", 100, "a ⏎ b"},
		{"trailing newline", "done\n", 100, "done ⏎"},
		{"truncate", "abcdefgh", 4, "abcd"},
		{"truncate trims", "abc defg", 4, "abc"},
		{"smart quotes", "you’re", 100, "youre"},
		{"zero limit", "abc", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.in, tc.limit); got != tc.want {
				t.Fatalf("Clean(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Heyy 😏 just came across your page… not gonna lie\nyou’re looking dangerous 👀",
		"line one\r\nline two\n\nline three\n",
		"  padded  \n",
		strings.Repeat("ab\n", 50),
	}
	for _, in := range inputs {
		for _, limit := range []int{0, 3, 7, 20, 10000} {
			once := Clean(in, limit)
			twice := Clean(once, limit)
			if once != twice {
				t.Fatalf("not idempotent for %q limit %d: %q vs %q", in, limit, once, twice)
			}
		}
	}
}

func TestCleanOutputProperties(t *testing.T) {
	in := "Fan: hi 😏\r\nChatter: that’s $20\nFan: too much"
	out := Clean(in, 20000)
	for _, r := range out {
		if r > unicode.MaxASCII && r != marker {
			t.Fatalf("non-ascii rune %q in %q", r, out)
		}
	}
	if strings.ContainsAny(out, "\r\n") {
		t.Fatalf("line breaks left in %q", out)
	}
	if strings.Count(out, LineBreak) != 2 {
		t.Fatalf("want 2 line break markers in %q", out)
	}
	if n := utf8.RuneCountInString(Clean(strings.Repeat("x", 30000), 20000)); n != 20000 {
		t.Fatalf("want 20000 runes, got %d", n)
	}
}
