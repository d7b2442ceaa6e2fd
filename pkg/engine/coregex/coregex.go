// Package coregex runs patterns on github.com/coregx/coregex, a multi-engine
// implementation of Go regexp syntax with SIMD prefilters.
package coregex

import (
	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"

	"github.com/KromDaniel/regkit/pkg/engine"
)

// Engine compiles patterns with coregex.
type Engine struct {
	config meta.Config
}

// New returns an engine using coregex.DefaultConfig.
func New() *Engine {
	return &Engine{config: coregex.DefaultConfig()}
}

// NewWithConfig returns an engine using config for every compilation.
func NewWithConfig(config meta.Config) *Engine {
	return &Engine{config: config}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "coregex" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern string) (engine.Backend, error) {
	re, err := coregex.CompileWithConfig(pattern, e.config)
	if err != nil {
		return nil, err
	}
	return backend{re}, nil
}

type backend struct {
	re *coregex.Regex
}

func (b backend) FindAll(text string, n int) ([][]int, error) {
	return b.re.FindAllStringSubmatchIndex(text, n), nil
}

func (b backend) SubexpNames() []string {
	return b.re.SubexpNames()
}
