package regkit

import (
	"testing"

	"github.com/dlclark/regexp2"

	"github.com/KromDaniel/regkit/pkg/engine/backtrack"
	"github.com/KromDaniel/regkit/pkg/engine/re2"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
		want  string
	}{
		{"empty", nil, ""},
		{"plain text", []Node{Text("abc"), Text("def")}, "abcdef"},
		{"escaped text", []Node{Text("a.b*c")}, `a\.b\*c`},
		{"component verbatim", []Node{Digit, Text("-"), Raw(`\d{2}`)}, `\d\-\d{2}`},
		{"nil is skipped", []Node{Text("a"), nil, Text("b")}, "ab"},
		{"nested", []Node{One(Text("x"), One(Text("y")))}, "(?:x(?:y))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.nodes...); got != tt.want {
				t.Errorf("Parse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDoesNotDoubleEscape(t *testing.T) {
	inner := New(Text("1+1"))
	outer := New(inner, Text("=2"))
	if got, want := outer.Pattern(), `1\+1=2`; got != want {
		t.Errorf("Pattern() = %q, want %q", got, want)
	}
}

func TestEscapingRoundTrip(t *testing.T) {
	inputs := []string{
		`.+*?()|[]{}^$\`,
		"a-b&&c||d~~e--f",
		"#comment and spaces",
		"tab\tnewline\nend",
		`C:\Program Files\(x86)`,
		"price: $5.00 (approx.)",
		"ünïcödé [ok]",
	}
	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			r := New(Text(s))

			for _, m := range []struct {
				name    string
				matches func(text string) ([]string, error)
			}{
				{"regexp2", func(text string) ([]string, error) {
					return findAll(r, backtrack.New(regexp2.RE2), text)
				}},
				{"re2", func(text string) ([]string, error) {
					return findAll(r, re2.New(re2.Options{}), text)
				}},
			} {
				got, err := m.matches(s)
				if err != nil {
					t.Fatalf("%s: %v", m.name, err)
				}
				if len(got) != 1 || got[0] != s {
					t.Errorf("%s: matches of %q = %q, want exactly the input", m.name, r.Pattern(), got)
				}
			}
		})
	}
}

func TestRawIsNotEscaped(t *testing.T) {
	r := New(Raw(`\d+`))
	got, err := findAll(r, re2.New(re2.Options{}), "a 12 b 345")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "12" || got[1] != "345" {
		t.Errorf("matches = %q", got)
	}
}

func TestUnsupportedNodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a foreign Node implementation")
		}
	}()
	Parse(foreignNode{})
}

type foreignNode struct{}

func (foreignNode) isNode() {}
