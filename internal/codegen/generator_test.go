package codegen

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var datePattern = Pattern{
	Name:     "Date",
	Text:     `(?<month>\d{1,2})/(?<day>\d{1,2})/(\d{4})`,
	Captures: []string{"month", "day", ""},
	Doc:      "It matches US dates.",
}

func TestParseTarget(t *testing.T) {
	for _, name := range []string{"none", "regexp", "regexp2", "re2", "coregex"} {
		target, err := ParseTarget(name)
		if err != nil || string(target) != name {
			t.Errorf("ParseTarget(%q) = %q, %v", name, target, err)
		}
	}
	if _, err := ParseTarget("pcre"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("ParseTarget(pcre) error = %v, want ErrUnknownTarget", err)
	}
	if TargetNone.Engine() != nil {
		t.Error("TargetNone has an engine")
	}
	if got := TargetRE2.Engine().Name(); got != "re2" {
		t.Errorf("TargetRE2.Engine().Name() = %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{"valid", Config{Package: "p", Target: TargetNone, Patterns: []Pattern{datePattern}}, ""},
		{"bad package", Config{Package: "my-pkg", Target: TargetNone, Patterns: []Pattern{datePattern}}, "package"},
		{"bad target", Config{Package: "p", Target: "perl", Patterns: []Pattern{datePattern}}, "unknown target"},
		{"no patterns", Config{Package: "p", Target: TargetNone}, "no patterns"},
		{"unexported", Config{Package: "p", Target: TargetNone, Patterns: []Pattern{{Name: "date", Text: "x"}}}, "exported"},
		{"duplicate", Config{Package: "p", Target: TargetNone, Patterns: []Pattern{datePattern, datePattern}}, "declared twice"},
		{"collision", Config{Package: "p", Target: TargetNone, Patterns: []Pattern{
			{Name: "A", Text: "a"},
			{Name: "APattern", Text: "b"},
		}}, "declared twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestRenderTargets(t *testing.T) {
	tests := []struct {
		target   Target
		contains []string
		absent   []string
	}{
		{TargetNone, []string{"const DatePattern ="}, []string{"var Date", "import"}},
		{TargetRegexp, []string{`"regexp"`, "var Date = regexp.MustCompile(DatePattern)"}, nil},
		{TargetRegexp2, []string{`"github.com/dlclark/regexp2"`, "regexp2.MustCompile(DatePattern, regexp2.RE2)"}, nil},
		{TargetRE2, []string{`"github.com/wasilibs/go-re2"`, "re2.MustCompile(DatePattern)"}, nil},
		{TargetCoregex, []string{`"github.com/coregx/coregex"`, "coregex.MustCompile(DatePattern)"}, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			var buf bytes.Buffer
			g := New(Config{Package: "dates", Target: tt.target, Patterns: []Pattern{datePattern}})
			if err := g.Render(&buf); err != nil {
				t.Fatal(err)
			}
			src := buf.String()
			common := []string{
				"// Code generated by regkit. DO NOT EDIT.",
				"package dates",
				"// DatePattern is the text of the Date pattern. It matches US dates.",
				`DateGroupMonth = "month"`,
				`DateGroupDay   = "day"`,
			}
			for _, want := range append(common, tt.contains...) {
				if !strings.Contains(src, want) {
					t.Errorf("generated source lacks %q:\n%s", want, src)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(src, unwanted) {
					t.Errorf("generated source contains %q:\n%s", unwanted, src)
				}
			}
			if _, err := parser.ParseFile(token.NewFileSet(), "dates.go", src, 0); err != nil {
				t.Errorf("generated source does not parse: %v", err)
			}
		})
	}
}

func TestRenderRejectsPatternTheTargetCannotCompile(t *testing.T) {
	lookahead := Pattern{Name: "Price", Text: `\d+(?=€)`}
	var buf bytes.Buffer
	if err := New(Config{Package: "p", Target: TargetRE2, Patterns: []Pattern{lookahead}}).Render(&buf); err == nil {
		t.Error("re2 target accepted a lookahead")
	}
	buf.Reset()
	if err := New(Config{Package: "p", Target: TargetRegexp2, Patterns: []Pattern{lookahead}}).Render(&buf); err != nil {
		t.Errorf("regexp2 target rejected a lookahead: %v", err)
	}
}

func TestGenerateWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "patterns.go")
	var log bytes.Buffer
	g := New(Config{
		Package:    "patterns",
		OutputFile: out,
		Target:     TargetRegexp,
		Patterns:   []Pattern{datePattern, {Name: "Word", Text: `\w+`}},
		Verbose:    true,
	})
	g.Logger().SetOutput(&log)
	if err := g.Generate(); err != nil {
		t.Fatal(err)
	}

	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	f, err := parser.ParseFile(token.NewFileSet(), out, src, parser.ParseComments)
	if err != nil {
		t.Fatalf("generated file does not parse: %v", err)
	}
	if f.Name.Name != "patterns" {
		t.Errorf("package = %q", f.Name.Name)
	}
	if !strings.Contains(string(src), "var Word = regexp.MustCompile(WordPattern)") {
		t.Errorf("missing Word declaration:\n%s", src)
	}

	for _, want := range []string{"[regkit] Date: Pattern: " + datePattern.Text, "[regkit] Date: Compiled with regexp: 3 groups",
		"[regkit] Word: Captures: 0", "[regkit] Wrote " + out} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log lacks %q:\n%s", want, log.String())
		}
	}
}

func TestGenerateRequiresOutputFile(t *testing.T) {
	g := New(Config{Package: "p", Target: TargetNone, Patterns: []Pattern{datePattern}})
	if err := g.Generate(); err == nil {
		t.Error("expected error without output file")
	}
}
