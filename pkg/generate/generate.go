// Package generate writes Go source files declaring patterns assembled with
// regkit, so the assembly happens once at build time.
package generate

import (
	"fmt"

	"github.com/KromDaniel/regkit/internal/codegen"
	"github.com/KromDaniel/regkit/pkg/regkit"
)

// Target selects the engine the generated declarations compile with.
type Target = codegen.Target

// Supported targets.
const (
	TargetNone    = codegen.TargetNone
	TargetRegexp  = codegen.TargetRegexp
	TargetRegexp2 = codegen.TargetRegexp2
	TargetRE2     = codegen.TargetRE2
	TargetCoregex = codegen.TargetCoregex
)

// ParseTarget returns the target called name ("none", "regexp", "regexp2",
// "re2" or "coregex").
func ParseTarget(name string) (Target, error) {
	return codegen.ParseTarget(name)
}

// Pattern is a named pattern to declare.
type Pattern struct {
	// Name is the exported Go name of the declaration (e.g., "Email"
	// declares EmailPattern and, unless the target is none, Email).
	Name string

	// Regex is the assembled pattern.
	Regex *regkit.Regex

	// Doc is appended to the comment of the pattern constant.
	Doc string
}

// Options configures code generation.
type Options struct {
	// Patterns are declared in order.
	Patterns []Pattern

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Target is the engine the generated variables are compiled with.
	// Default: TargetNone, which declares the pattern text only.
	Target Target

	// Verbose logs each generation step to stderr.
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if len(o.Patterns) == 0 {
		return fmt.Errorf("patterns cannot be empty")
	}
	for i, p := range o.Patterns {
		if p.Name == "" {
			return fmt.Errorf("pattern %d: name cannot be empty", i)
		}
		if p.Regex == nil {
			return fmt.Errorf("pattern %s: regex cannot be nil", p.Name)
		}
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Generate writes the declarations to opts.OutputFile. Each pattern is
// compiled with the target engine first; a pattern the engine rejects fails
// the generation, including the checks of (*regkit.Regex).Compile for set
// operators and numbered references.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	cfg := config(opts)
	if e := cfg.Target.Engine(); e != nil {
		for _, p := range opts.Patterns {
			if _, err := p.Regex.Compile(e); err != nil {
				return fmt.Errorf("failed to generate code: pattern %s: %w", p.Name, err)
			}
		}
	}
	g := codegen.New(cfg)
	if err := g.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}

func config(opts Options) codegen.Config {
	target := opts.Target
	if target == "" {
		target = TargetNone
	}
	patterns := make([]codegen.Pattern, len(opts.Patterns))
	for i, p := range opts.Patterns {
		patterns[i] = codegen.Pattern{
			Name:     p.Name,
			Text:     p.Regex.Pattern(),
			Captures: p.Regex.Captures(),
			Doc:      p.Doc,
		}
	}
	return codegen.Config{
		Package:    opts.Package,
		OutputFile: opts.OutputFile,
		Target:     target,
		Patterns:   patterns,
		Verbose:    opts.Verbose,
	}
}
