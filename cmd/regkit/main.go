package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/KromDaniel/regkit/internal/codegen"
	"github.com/KromDaniel/regkit/internal/recipe"
	"github.com/KromDaniel/regkit/pkg/engine"
	"github.com/KromDaniel/regkit/pkg/generate"
	"github.com/KromDaniel/regkit/pkg/regkit"
	"github.com/KromDaniel/regkit/stream"
)

const (
	appVersion = "1.0.0"
	appName    = "regkit"
)

// arrayFlags collects a flag given several times.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	recipe   string
	engine   string
	out      string
	pkg      string
	pattern  string
	replace  string
	replaced bool // -replace was given, possibly empty
	print    bool
	inputs   arrayFlags
	verbose  bool
	version  bool
	maxLine  int
	readSize int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.recipe, "recipe", "", "Path to the JSON recipe defining the patterns (required)")
	fs.StringVar(&o.engine, "engine", "", "Engine: none, regexp, regexp2, re2, coregex (default: the recipe's engine, else regexp2)")
	fs.StringVar(&o.out, "out", "", "Write a Go file declaring the patterns to this path")
	fs.StringVar(&o.pkg, "package", "", "Package name of the generated file (default: the recipe's package, else patterns)")
	fs.StringVar(&o.pattern, "pattern", "", "Pattern used with -input (default: the first pattern of the recipe)")
	fs.Func("replace", "With -input, print every line with matches replaced by this template ($1, ${name}, $$); an empty template deletes the matches", func(v string) error {
		o.replace, o.replaced = v, true
		return nil
	})
	fs.BoolVar(&o.print, "print", false, "Print each assembled pattern, its groups and the engines that accept it")
	fs.Var(&o.inputs, "input", "File to search line by line, - for stdin (can be repeated)")
	fs.BoolVar(&o.verbose, "v", false, "Verbose output")
	fs.BoolVar(&o.version, "version", false, "Print version information")
	fs.IntVar(&o.maxLine, "max-line", 0, "Longest accepted input line in bytes (default 1MB)")
	fs.IntVar(&o.readSize, "buffer", 0, "Initial read buffer size in bytes (default 64KB)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -recipe FILE [OPTIONS]\n\n", appName)
		fmt.Fprintln(stderr, "Assembles the patterns of a recipe, generates Go declarations for them and searches input with them.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Examples:")
		fmt.Fprintf(stderr, "  %s -recipe ledger.json -print\n", appName)
		fmt.Fprintf(stderr, "  %s -recipe ledger.json -engine re2 -package ledger -out ledger/patterns.go\n", appName)
		fmt.Fprintf(stderr, "  %s -recipe ledger.json -pattern Entry -input jan.txt -input feb.txt\n", appName)
		fmt.Fprintf(stderr, "  %s -recipe dates.json -input - -replace '$3-$1-$2' < in.txt\n", appName)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Fprintf(stdout, "%s version %s\n", appName, appVersion)
		return nil
	}
	if o.recipe == "" {
		return fmt.Errorf("-recipe flag is required")
	}
	if !o.print && o.out == "" && len(o.inputs) == 0 {
		return fmt.Errorf("nothing to do: use -print, -out or -input")
	}

	logger := codegen.NewLogger(o.verbose)
	logger.SetOutput(stderr)

	file, err := recipe.Load(o.recipe)
	if err != nil {
		return err
	}
	patterns, err := file.Patterns()
	if err != nil {
		return err
	}
	logger.Log("Loaded %d patterns from %s", len(patterns), o.recipe)

	target, err := resolveTarget(o.engine, file.Engine)
	if err != nil {
		return err
	}

	if o.print {
		printPatterns(stdout, patterns)
	}

	if o.out != "" {
		pkg := firstNonEmpty(o.pkg, file.Package, "patterns")
		log := logger.Scope("generate")
		log.Log("Target: %s, package: %s", target, pkg)
		err := generate.Generate(generate.Options{
			Patterns:   patterns,
			OutputFile: o.out,
			Package:    pkg,
			Target:     target,
			Verbose:    o.verbose,
		})
		if err != nil {
			return err
		}
		log.Log("Wrote %s", o.out)
	}

	if len(o.inputs) > 0 {
		return search(ctx, o, patterns, target, stdin, stdout, logger)
	}
	return nil
}

// resolveTarget picks the engine from the flag, then the recipe, then
// regexp2.
func resolveTarget(flagValue, recipeValue string) (generate.Target, error) {
	return generate.ParseTarget(firstNonEmpty(flagValue, recipeValue, string(generate.TargetRegexp2)))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func printPatterns(w io.Writer, patterns []generate.Pattern) {
	for _, p := range patterns {
		result := generate.Analyze(p.Regex)
		fmt.Fprintf(w, "%s\t%s\n", p.Name, result.Pattern)
		for i, name := range result.Captures {
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(w, "  group %d: %s\n", i+1, name)
		}
		supported := make([]string, len(result.Supported))
		for i, t := range result.Supported {
			supported[i] = string(t)
		}
		fmt.Fprintf(w, "  engines: %s\n", strings.Join(supported, ", "))
		if result.ReferenceError != "" {
			fmt.Fprintf(w, "  warning: %s\n", result.ReferenceError)
		}
	}
}

func search(ctx context.Context, o *options, patterns []generate.Pattern, target generate.Target, stdin io.Reader, stdout io.Writer, logger *codegen.Logger) error {
	r, err := selectPattern(patterns, o.pattern)
	if err != nil {
		return err
	}
	e := target.Engine()
	if e == nil {
		return fmt.Errorf("-input needs an engine, got %q", target)
	}
	m, err := r.Compile(e)
	if err != nil {
		return fmt.Errorf("compile with %s: %w", e.Name(), err)
	}
	cfg := stream.Config{BufferSize: o.readSize, MaxLineLength: o.maxLine}

	for _, path := range o.inputs {
		log := logger.Scope(path)
		n, err := searchInput(ctx, path, m, o, cfg, stdin, stdout)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if o.replaced {
			log.Log("%d lines changed", n)
		} else {
			log.Log("%d matching lines", n)
		}
	}
	return nil
}

func selectPattern(patterns []generate.Pattern, name string) (*regkit.Regex, error) {
	if name == "" {
		return patterns[0].Regex, nil
	}
	for _, p := range patterns {
		if p.Name == name {
			return p.Regex, nil
		}
	}
	return nil, fmt.Errorf("recipe has no pattern %q", name)
}

func searchInput(ctx context.Context, path string, m *engine.Matcher, o *options, cfg stream.Config, stdin io.Reader, stdout io.Writer) (int, error) {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		in = f
	}
	if o.replaced {
		return stream.Replace(ctx, in, stdout, m, o.replace, cfg)
	}
	return stream.Filter(ctx, in, stdout, m, cfg)
}
