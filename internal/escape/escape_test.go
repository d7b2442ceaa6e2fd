package escape

import (
	"regexp"
	"testing"
)

func TestLiteral(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a.b", `a\.b`},
		{"1+1=2", `1\+1=2`},
		{"(x|y)", `\(x\|y\)`},
		{"[a-z]", `\[a\-z\]`},
		{"{3}", `\{3\}`},
		{"^$", `\^\$`},
		{`\d`, `\\d`},
		{"a b", `a\ b`},
		{"#&~", `\#\&\~`},
		{"tab\there", `tab\there`},
		{"line\n", `line\n`},
		{"\x01", `\x01`},
		{"\x7f", `\x7F`},
		{"héllo", "héllo"},
		{"日本", "日本"},
	}

	for _, tt := range tests {
		got := Literal(tt.input)
		if got != tt.want {
			t.Errorf("Literal(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLiteralMatchesItself(t *testing.T) {
	inputs := []string{
		`.+*?()|[]{}^$`,
		`C:\Program Files\app.exe`,
		"price: $5.00 (approx.)",
		"a-b&&c~~d||e--f",
		"tabs\tand\nnewlines\r\f\v",
		"# not a comment",
		"ünïcödé ✓",
	}

	for _, input := range inputs {
		re, err := regexp.Compile("^" + Literal(input) + "$")
		if err != nil {
			t.Fatalf("Literal(%q) does not compile: %v", input, err)
		}
		if !re.MatchString(input) {
			t.Errorf("Literal(%q) = %q does not match its input", input, Literal(input))
		}
	}
}

func TestRune(t *testing.T) {
	tests := []struct {
		input rune
		want  string
	}{
		{'a', "a"},
		{'-', `\-`},
		{']', `\]`},
		{'^', `\^`},
		{0, `\x00`},
		{'é', "é"},
	}

	for _, tt := range tests {
		if got := Rune(tt.input); got != tt.want {
			t.Errorf("Rune(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsSpecial(t *testing.T) {
	for _, c := range []byte(`\.+*?()|[]{}^$#&~-`) {
		if !IsSpecial(c) {
			t.Errorf("IsSpecial(%q) = false, want true", c)
		}
	}
	for _, c := range []byte("az09_@/") {
		if IsSpecial(c) {
			t.Errorf("IsSpecial(%q) = true, want false", c)
		}
	}
}
