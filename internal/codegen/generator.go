// Package codegen emits Go source files declaring assembled patterns.
package codegen

import (
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"io"
	"os"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/dlclark/regexp2"

	"github.com/KromDaniel/regkit/pkg/engine"
	"github.com/KromDaniel/regkit/pkg/engine/backtrack"
	"github.com/KromDaniel/regkit/pkg/engine/coregex"
	"github.com/KromDaniel/regkit/pkg/engine/re2"
	"github.com/KromDaniel/regkit/pkg/engine/std"
)

// Target selects the engine the generated code compiles patterns with.
type Target string

// Supported targets.
const (
	TargetNone    Target = "none"
	TargetRegexp  Target = "regexp"
	TargetRegexp2 Target = "regexp2"
	TargetRE2     Target = "re2"
	TargetCoregex Target = "coregex"
)

// ErrUnknownTarget is returned for target names ParseTarget does not know.
var ErrUnknownTarget = errors.New("unknown target")

var targets = []Target{TargetNone, TargetRegexp, TargetRegexp2, TargetRE2, TargetCoregex}

// ParseTarget returns the target called name.
func ParseTarget(name string) (Target, error) {
	for _, t := range targets {
		if string(t) == name {
			return t, nil
		}
	}
	names := make([]string, len(targets))
	for i, t := range targets {
		names[i] = string(t)
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownTarget, name, strings.Join(names, ", "))
}

// Engine returns the engine adapter matching t, or nil for TargetNone.
func (t Target) Engine() engine.Engine {
	switch t {
	case TargetRegexp:
		return std.New()
	case TargetRegexp2:
		return backtrack.New(regexp2.RE2)
	case TargetRE2:
		return re2.New(re2.Options{})
	case TargetCoregex:
		return coregex.New()
	}
	return nil
}

// Pattern is one pattern to declare.
type Pattern struct {
	// Name is the exported Go name of the pattern.
	Name string
	// Text is the assembled pattern text.
	Text string
	// Captures lists the capturing groups in textual order, "" for
	// unnamed groups.
	Captures []string
	// Doc is an optional description added to the declaration comments.
	Doc string
}

// Config holds the configuration for code generation.
type Config struct {
	Package    string
	OutputFile string
	Target     Target
	Patterns   []Pattern
	Verbose    bool // Enable verbose logging of generation steps
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("invalid package name %q", c.Package)
	}
	if _, err := ParseTarget(string(c.Target)); err != nil {
		return err
	}
	if len(c.Patterns) == 0 {
		return fmt.Errorf("no patterns to generate")
	}
	seen := make(map[string]bool)
	for _, p := range c.Patterns {
		if !token.IsIdentifier(p.Name) || !token.IsExported(p.Name) {
			return fmt.Errorf("pattern name %q is not an exported Go identifier", p.Name)
		}
		for _, name := range declaredNames(p) {
			if seen[name] {
				return fmt.Errorf("pattern %s: %s is declared twice", p.Name, name)
			}
			seen[name] = true
		}
	}
	return nil
}

// declaredNames lists the identifiers emitted for p.
func declaredNames(p Pattern) []string {
	names := []string{PatternConst(p.Name), p.Name}
	for _, g := range groupNames(p.Captures) {
		names = append(names, GroupConst(p.Name, g))
	}
	return names
}

// groupNames returns the distinct named groups in textual order.
func groupNames(captures []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range captures {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Generator emits a Go file declaring patterns.
type Generator struct {
	config Config
	file   *jen.File
	logger *Logger
}

// New creates a new generator instance.
func New(config Config) *Generator {
	return &Generator{
		config: config,
		file:   jen.NewFile(config.Package),
		logger: NewLogger(config.Verbose),
	}
}

// Logger returns the generator's logger.
func (g *Generator) Logger() *Logger {
	return g.logger
}

// Render writes the generated source to w.
func (g *Generator) Render(w io.Writer) error {
	if err := g.build(); err != nil {
		return err
	}
	return g.file.Render(w)
}

// Generate writes the generated source to the configured output file.
func (g *Generator) Generate() error {
	if g.config.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if err := g.build(); err != nil {
		return err
	}
	if err := g.file.Save(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := formatFile(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to format file: %w", err)
	}
	g.logger.Log("Wrote %s", g.config.OutputFile)
	return nil
}

func (g *Generator) build() error {
	if err := g.config.Validate(); err != nil {
		return err
	}
	g.file = jen.NewFile(g.config.Package)
	g.file.HeaderComment("Code generated by regkit. DO NOT EDIT.")
	g.file.ImportName("github.com/dlclark/regexp2", "regexp2")
	g.file.ImportName("github.com/wasilibs/go-re2", "re2")
	g.file.ImportName("github.com/coregx/coregex", "coregex")

	e := g.config.Target.Engine()
	for _, p := range g.config.Patterns {
		log := g.logger.Scope(p.Name)
		log.Log("Pattern: %s", p.Text)
		log.Log("Captures: %d", len(p.Captures))
		if e != nil {
			m, err := engine.Compile(e, p.Text, p.Captures)
			if err != nil {
				return fmt.Errorf("pattern %s does not compile with %s: %w", p.Name, e.Name(), err)
			}
			log.Log("Compiled with %s: %d groups", e.Name(), m.NumSubexp())
		}
		g.declare(p)
	}
	return nil
}

func (g *Generator) declare(p Pattern) {
	constName := PatternConst(p.Name)
	doc := fmt.Sprintf("%s is the text of the %s pattern.", constName, p.Name)
	if p.Doc != "" {
		doc += " " + p.Doc
	}
	g.file.Comment(doc)
	g.file.Const().Id(constName).Op("=").Lit(p.Text)
	g.file.Line()

	if groups := groupNames(p.Captures); len(groups) > 0 {
		defs := make([]jen.Code, len(groups))
		for i, name := range groups {
			defs[i] = jen.Id(GroupConst(p.Name, name)).Op("=").Lit(name)
		}
		g.file.Comment(fmt.Sprintf("Named groups of %s.", p.Name))
		g.file.Const().Defs(defs...)
		g.file.Line()
	}

	var compiled *jen.Statement
	switch g.config.Target {
	case TargetRegexp:
		compiled = jen.Qual("regexp", "MustCompile").Call(jen.Id(constName))
	case TargetRegexp2:
		compiled = jen.Qual("github.com/dlclark/regexp2", "MustCompile").Call(
			jen.Id(constName),
			jen.Qual("github.com/dlclark/regexp2", "RE2"),
		)
	case TargetRE2:
		compiled = jen.Qual("github.com/wasilibs/go-re2", "MustCompile").Call(jen.Id(constName))
	case TargetCoregex:
		compiled = jen.Qual("github.com/coregx/coregex", "MustCompile").Call(jen.Id(constName))
	default:
		return
	}
	g.file.Comment(fmt.Sprintf("%s is %s compiled with %s.", p.Name, constName, g.config.Target))
	g.file.Var().Id(p.Name).Op("=").Add(compiled)
	g.file.Line()
}

// formatFile runs gofmt on the file at path.
func formatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	formatted, err := format.Source(src)
	if err != nil {
		return err
	}

	return os.WriteFile(path, formatted, 0644)
}
