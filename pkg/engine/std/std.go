// Package std runs patterns on the standard library regexp package.
package std

import (
	"regexp"

	"github.com/KromDaniel/regkit/pkg/engine"
)

// Engine compiles patterns with regexp.
type Engine struct {
	longest bool
}

// New returns a leftmost-first engine.
func New() *Engine { return &Engine{} }

// NewLongest returns an engine using leftmost-longest matching.
func NewLongest() *Engine { return &Engine{longest: true} }

// Name implements engine.Engine.
func (e *Engine) Name() string { return "regexp" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern string) (engine.Backend, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if e.longest {
		re.Longest()
	}
	return backend{re}, nil
}

type backend struct {
	re *regexp.Regexp
}

func (b backend) FindAll(text string, n int) ([][]int, error) {
	return b.re.FindAllStringSubmatchIndex(text, n), nil
}

func (b backend) SubexpNames() []string {
	return b.re.SubexpNames()
}
