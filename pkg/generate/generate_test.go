package generate

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/KromDaniel/regkit/internal/codegen"
	"github.com/KromDaniel/regkit/pkg/regkit"
)

func emailRegex() *regkit.Regex {
	word := regkit.OneOrMore(regkit.Word)
	return regkit.New(
		regkit.MustCaptureAs("user", regkit.ZeroOrMore(word, regkit.Text(".")), word),
		regkit.Text("@"),
		regkit.MustCaptureAs("domain", word, regkit.OneOrMore(regkit.Text("."), word)),
	)
}

func TestOptionsValidate(t *testing.T) {
	valid := Options{
		Patterns:   []Pattern{{Name: "Email", Regex: emailRegex()}},
		OutputFile: "email.go",
		Package:    "email",
	}
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr string
	}{
		{"valid", func(*Options) {}, ""},
		{"no patterns", func(o *Options) { o.Patterns = nil }, "patterns cannot be empty"},
		{"no name", func(o *Options) { o.Patterns = []Pattern{{Regex: emailRegex()}} }, "name cannot be empty"},
		{"nil regex", func(o *Options) { o.Patterns = []Pattern{{Name: "Email"}} }, "regex cannot be nil"},
		{"no output", func(o *Options) { o.OutputFile = "" }, "output file cannot be empty"},
		{"no package", func(o *Options) { o.Package = "" }, "package cannot be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)
			err := opts.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "email.go")
	err := Generate(Options{
		Patterns:   []Pattern{{Name: "Email", Regex: emailRegex(), Doc: "It matches simple addresses."}},
		OutputFile: out,
		Package:    "email",
		Target:     TargetRE2,
	})
	if err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"package email",
		"const EmailPattern = " + strconv.Quote(emailRegex().Pattern()),
		`EmailGroupUser   = "user"`,
		`EmailGroupDomain = "domain"`,
		"var Email = re2.MustCompile(EmailPattern)",
	} {
		if !strings.Contains(string(src), want) {
			t.Errorf("generated file lacks %q:\n%s", want, src)
		}
	}
}

func TestGenerateDefaultsToTextOnly(t *testing.T) {
	out := filepath.Join(t.TempDir(), "email.go")
	opts := Options{
		Patterns:   []Pattern{{Name: "Email", Regex: emailRegex()}},
		OutputFile: out,
		Package:    "email",
	}
	if err := Generate(opts); err != nil {
		t.Fatal(err)
	}
	src, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(src), "var Email") {
		t.Errorf("text-only output declares a variable:\n%s", src)
	}
}

func TestGenerateErrors(t *testing.T) {
	if err := Generate(Options{}); err == nil || !strings.HasPrefix(err.Error(), "invalid options:") {
		t.Errorf("Generate(Options{}) error = %v", err)
	}

	err := Generate(Options{
		Patterns:   []Pattern{{Name: "Email", Regex: emailRegex()}},
		OutputFile: filepath.Join(t.TempDir(), "x.go"),
		Package:    "email",
		Target:     "pcre",
	})
	if !errors.Is(err, codegen.ErrUnknownTarget) {
		t.Errorf("Generate() error = %v, want ErrUnknownTarget", err)
	}
}

func TestAnalyzeRejectionReasons(t *testing.T) {
	nested := Analyze(regkit.New(regkit.MustClassLiteral("[a-z]").Union(regkit.Digit)))
	for _, target := range []Target{TargetRegexp, TargetRegexp2, TargetRE2, TargetCoregex} {
		if !strings.Contains(nested.Rejected[target], regkit.ErrNestedSets.Error()) {
			t.Errorf("Rejected[%s] = %q, want the nested set error", target, nested.Rejected[target])
		}
	}

	order := Analyze(regkit.New(regkit.MustCaptureAs("a", regkit.Text("x")), regkit.Capture(regkit.Text("y")), regkit.ReferenceIndex(2)))
	if !strings.Contains(order.Rejected[TargetRegexp2], regkit.ErrReferenceOrder.Error()) {
		t.Errorf("Rejected[regexp2] = %q, want the reference order error", order.Rejected[TargetRegexp2])
	}
}

func TestGenerateRejectsSetOperators(t *testing.T) {
	err := Generate(Options{
		Patterns:   []Pattern{{Name: "Ident", Regex: regkit.New(regkit.Word.Subtracting(regkit.Digit))}},
		OutputFile: filepath.Join(t.TempDir(), "ident.go"),
		Package:    "ident",
		Target:     TargetRegexp2,
	})
	if !errors.Is(err, regkit.ErrNestedSets) {
		t.Errorf("Generate() error = %v, want ErrNestedSets", err)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		r         *regkit.Regex
		supported []Target
		refErr    bool
	}{
		{"email", emailRegex(), []Target{TargetCoregex, TargetRE2, TargetRegexp, TargetRegexp2}, false},
		{"lookahead", regkit.New(regkit.Digit, regkit.Lookahead(regkit.Text("px"))), []Target{TargetRegexp2}, false},
		{"backreference", regkit.New(regkit.MustCaptureAs("q", regkit.AnyOf(`'"`)), regkit.Reference("q")), []Target{TargetRegexp2}, false},
		{"dangling reference", regkit.New(regkit.ReferenceIndex(1), regkit.Capture(regkit.Digit)), nil, true},
		{"reference inside its group", regkit.New(regkit.Capture(regkit.Text("a"), regkit.ReferenceIndex(1))), nil, true},
		{"set operators", regkit.New(regkit.Union(regkit.MustClassLiteral("[a-z]"), regkit.Digit).Inverted()), []Target{}, false},
		{"flattened set operators", regkit.New(regkit.Union(regkit.MustClassLiteral("[a-z]"), regkit.Digit).Inverted().Flat()),
			[]Target{TargetCoregex, TargetRE2, TargetRegexp, TargetRegexp2}, false},
		{"numbered reference after named group", regkit.New(regkit.MustCaptureAs("a", regkit.Text("x")), regkit.Capture(regkit.Text("y")), regkit.ReferenceIndex(2)),
			[]Target{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.r)
			if tt.supported != nil {
				if diff := cmp.Diff(tt.supported, got.Supported, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("Supported mismatch (-want +got):\n%s", diff)
				}
				if len(got.Rejected)+len(got.Supported) != 4 {
					t.Errorf("Rejected = %v", got.Rejected)
				}
			}
			if (got.ReferenceError != "") != tt.refErr {
				t.Errorf("ReferenceError = %q, want error %v", got.ReferenceError, tt.refErr)
			}
			if got.Pattern != tt.r.Pattern() {
				t.Errorf("Pattern = %q", got.Pattern)
			}
		})
	}
}
