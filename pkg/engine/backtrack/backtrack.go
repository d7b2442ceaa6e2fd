// Package backtrack runs patterns on github.com/dlclark/regexp2, a
// backtracking engine with .NET syntax. It supports lookaround,
// backreferences and atomic groups.
package backtrack

import (
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/KromDaniel/regkit/pkg/engine"
)

// Engine compiles patterns with regexp2.
type Engine struct {
	options regexp2.RegexOptions
	timeout time.Duration
}

// New returns an engine passing options (regexp2.IgnoreCase,
// regexp2.Multiline, ...) to every compilation.
func New(options regexp2.RegexOptions) *Engine {
	return &Engine{options: options}
}

// WithTimeout returns a copy of e that aborts a single match after d.
// A timeout is reported as an error from the search methods.
func (e *Engine) WithTimeout(d time.Duration) *Engine {
	c := *e
	c.timeout = d
	return &c
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return "regexp2" }

// Compile implements engine.Engine.
func (e *Engine) Compile(pattern string) (engine.Backend, error) {
	re, err := regexp2.Compile(pattern, e.options)
	if err != nil {
		return nil, err
	}
	if e.timeout > 0 {
		re.MatchTimeout = e.timeout
	}
	return &backend{re: re, numbers: re.GetGroupNumbers()}, nil
}

type backend struct {
	re      *regexp2.Regexp
	numbers []int
}

// SubexpNames reports unnamed groups as "": regexp2 names them after their
// number.
func (b *backend) SubexpNames() []string {
	names := make([]string, len(b.numbers))
	for i, num := range b.numbers {
		name := b.re.GroupNameFromNumber(num)
		if i == 0 || name == strconv.Itoa(num) {
			continue
		}
		names[i] = name
	}
	return names
}

func (b *backend) FindAll(text string, n int) ([][]int, error) {
	m, err := b.re.FindStringMatch(text)
	if err != nil {
		return nil, err
	}
	var (
		out     [][]int
		offsets []int
	)
	if !isASCII(text) {
		offsets = byteOffsets(text)
	}
	for m != nil {
		out = append(out, b.locate(m, offsets))
		if n >= 0 && len(out) >= n {
			break
		}
		if m, err = b.re.FindNextMatch(m); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// locate converts the rune offsets regexp2 reports into byte offsets.
func (b *backend) locate(m *regexp2.Match, offsets []int) []int {
	loc := make([]int, 0, 2*len(b.numbers))
	for i, num := range b.numbers {
		start, end := m.Index, m.Index+m.Length
		if i > 0 {
			g := m.GroupByNumber(num)
			if g == nil || len(g.Captures) == 0 {
				loc = append(loc, -1, -1)
				continue
			}
			start, end = g.Index, g.Index+g.Length
		}
		if offsets != nil {
			start, end = offsets[start], offsets[end]
		}
		loc = append(loc, start, end)
	}
	return loc
}

// byteOffsets maps rune index i of text to its byte offset. The extra last
// entry is len(text). Invalid bytes count as one rune each, as they do in
// regexp2's own []rune conversion.
func byteOffsets(text string) []int {
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
