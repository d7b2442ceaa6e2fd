// Package re2 runs patterns on github.com/wasilibs/go-re2, the RE2 library
// compiled to WebAssembly. RE2 guarantees linear-time matching and rejects
// lookaround, backreferences, atomic groups and possessive quantifiers.
package re2

import (
	"errors"

	re2 "github.com/wasilibs/go-re2"
	"github.com/wasilibs/go-re2/experimental"

	"github.com/KromDaniel/regkit/pkg/engine"
)

// Options selects RE2 compilation modes.
type Options struct {
	// POSIX restricts syntax to POSIX ERE and uses leftmost-longest
	// semantics.
	POSIX bool
	// Longest uses leftmost-longest instead of leftmost-first matching.
	Longest bool
	// Latin1 matches bytes as Latin-1 characters instead of UTF-8.
	Latin1 bool
}

// Validate reports unsupported combinations.
func (o Options) Validate() error {
	if o.Latin1 && (o.POSIX || o.Longest) {
		return errors.New("re2: Latin1 cannot be combined with POSIX or Longest")
	}
	return nil
}

// Engine compiles patterns with RE2.
type Engine struct {
	opts Options
}

// New returns an RE2 engine.
func New(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "re2" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern string) (engine.Backend, error) {
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}
	var (
		re  *re2.Regexp
		err error
	)
	switch {
	case e.opts.Latin1:
		re, err = experimental.CompileLatin1(pattern)
	case e.opts.POSIX:
		re, err = re2.CompilePOSIX(pattern)
	default:
		re, err = re2.Compile(pattern)
	}
	if err != nil {
		return nil, err
	}
	if e.opts.Longest {
		re.Longest()
	}
	return backend{re}, nil
}

type backend struct {
	re *re2.Regexp
}

func (b backend) FindAll(text string, n int) ([][]int, error) {
	return b.re.FindAllStringSubmatchIndex(text, n), nil
}

func (b backend) SubexpNames() []string {
	return b.re.SubexpNames()
}
