package regkit

import (
	"fmt"
	"strings"

	"github.com/KromDaniel/regkit/pkg/engine"
)

// ChoiceOf matches the first alternative that succeeds. Each node is one
// alternative; the alternation is wrapped in a non-capturing group.
func ChoiceOf(alternatives ...Node) Expr {
	parts := make([]string, len(alternatives))
	var lay layout
	for i, alt := range alternatives {
		var l layout
		parts[i], l = parse([]Node{alt})
		lay = lay.concat(l)
	}
	return Expr{fragment: "(?:" + strings.Join(parts, "|") + ")", lay: lay}
}

// Regex is the root of a pattern. It is a Component itself, so a Regex can
// be nested in another one.
type Regex struct {
	Expr
}

// New assembles nodes into a pattern.
func New(nodes ...Node) *Regex {
	body, lay := parse(nodes)
	return &Regex{Expr: Expr{fragment: body, lay: lay}}
}

// Pattern returns the assembled pattern text.
func (r *Regex) Pattern() string {
	return r.fragment
}

// Captures returns the capturing groups in left-to-right order. Unnamed
// groups are reported as "". Groups inside Raw fragments are not included.
func (r *Regex) Captures() []string {
	out := make([]string, len(r.lay.captures))
	copy(out, r.lay.captures)
	return out
}

// CheckReferences reports the first backreference that does not refer to
// a capturing group closed before it. Engines report dangling references
// only when the pattern is compiled or matched; this performs the check on
// the component tree instead.
func (r *Regex) CheckReferences() error {
	closed := make([]bool, len(r.lay.captures))
	for _, ev := range r.lay.events {
		if ev >= 0 {
			closed[ev] = true
			continue
		}
		ref := r.lay.references[-ev-1]
		if ref.name == "" {
			if ref.index < 1 || ref.index > len(closed) {
				return fmt.Errorf("%w: \\k<%d> with %d groups", ErrUnknownReference, ref.index, len(closed))
			}
			if !closed[ref.index-1] {
				return fmt.Errorf("%w: \\k<%d> is not preceded by the end of group %d", ErrUnknownReference, ref.index, ref.index)
			}
			continue
		}
		found := false
		for i, name := range r.lay.captures {
			if closed[i] && name == ref.name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: \\k<%s> has no preceding group with that name", ErrUnknownReference, ref.name)
		}
	}
	return nil
}

// Compile hands the pattern text to e unchanged. Errors from the engine are
// returned as is.
//
// Compile fails with ErrNestedSets when the pattern holds a class built with
// set operators and e does not implement engine.NestedSets; render such
// classes with Flat instead. It fails with ErrReferenceOrder when a
// ReferenceIndex would point at another group because e numbers unnamed
// groups before named ones.
func (r *Regex) Compile(e engine.Engine) (*engine.Matcher, error) {
	if r.lay.nested && !engine.SupportsNestedSets(e) {
		return nil, fmt.Errorf("%w: %s reads nested classes and set operators as literal characters; use Flat on the class",
			ErrNestedSets, e.Name())
	}
	m, err := engine.Compile(e, r.fragment, r.lay.captures)
	if err != nil {
		return nil, err
	}
	for _, ref := range r.lay.references {
		if ref.name != "" || ref.index > m.NumSubexp() {
			continue
		}
		if g := m.EngineGroup(ref.index); g != ref.index {
			return nil, fmt.Errorf("%w: %s resolves \\k<%d> to group %d; refer to a named group instead",
				ErrReferenceOrder, e.Name(), ref.index, g)
		}
	}
	return m, nil
}

// MustCompile is like Compile but panics on error.
func (r *Regex) MustCompile(e engine.Engine) *engine.Matcher {
	m, err := r.Compile(e)
	if err != nil {
		panic("regkit: Compile(`" + r.fragment + "`): " + err.Error())
	}
	return m
}
