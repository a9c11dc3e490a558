package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeRoff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "just words here", "just words here"},
		{"backslash", `a\b`, `a\[rs]b`},
		{"leading period", ".TH oops", `\&.TH oops`},
		{"leading apostrophe", "'quoted", `\&'quoted`},
		{"inner period", "a.b", "a.b"},
		{"multi line", "one\n.two\n'three\nfour", "one\n\\&.two\n\\&'three\nfour"},
		{"trailing newline kept", "a\nb\n", "a\nb\n"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeRoff(tt.input))
		})
	}
}

func TestEscapeRoff_IdentityOnSafeText(t *testing.T) {
	inputs := []string{
		"Returns the absolute value.",
		"x := abs(-5)\nsay(\"$x\")\n",
		"spaces   and\ttabs",
		"",
	}
	for _, input := range inputs {
		assert.Equal(t, input, EscapeRoff(input))
	}
}

func TestEscapeRoffSpaces(t *testing.T) {
	assert.Equal(t, `abs\ :\ func(x:\ Int\ ->\ Int)`, EscapeRoffSpaces("abs : func(x: Int -> Int)"))

	// not idempotent: the escape itself gets escaped again
	once := EscapeRoffSpaces("a b")
	twice := EscapeRoffSpaces(once)
	assert.NotEqual(t, once, twice)
	assert.Equal(t, `a\[rs]\ b`, twice)
}

func TestInlineToRoff(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"code span", "use `abs` here", `use \fBabs\fR here`},
		{"two spans", "`a` and `b`", `\fBa\fR and \fBb\fR`},
		{"newlines collapse", "one\ntwo\nthree", "one two three"},
		{"unpaired backtick", "a ` b", "a ` b"},
		{"empty span", "``", `\fB\fR`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InlineToRoff(tt.input))
		})
	}
}

func TestRoffCell(t *testing.T) {
	assert.Equal(t, `\&.hidden value`, roffCell(".hidden\tvalue"))
	assert.Equal(t, `the \fBx\fR value`, roffCell("the `x`\nvalue"))
	assert.Equal(t, `a\[rs]n`, roffCell(`a\n`))
}
