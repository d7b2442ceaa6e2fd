package regkit

import (
	"fmt"
	"strconv"
)

// Greed selects how a quantifier consumes input.
type Greed int

const (
	// Greedy takes as many repetitions as possible and gives them back on
	// backtrack.
	Greedy Greed = iota
	// Possessive takes as many repetitions as possible and never gives
	// them back.
	Possessive
	// Reluctant takes as few repetitions as possible and extends on
	// backtrack.
	Reluctant
)

// Aliases used by other regex libraries.
const (
	Eager   = Greedy
	Minimal = Reluctant
)

func (g Greed) suffix() string {
	switch g {
	case Possessive:
		return "+"
	case Reluctant:
		return "?"
	default:
		return ""
	}
}

// String returns the name of the mode.
func (g Greed) String() string {
	switch g {
	case Greedy:
		return "greedy"
	case Possessive:
		return "possessive"
	case Reluctant:
		return "reluctant"
	default:
		return "Greed(" + strconv.Itoa(int(g)) + ")"
	}
}

// Quantifier is a repeated sub-expression. The body is always wrapped in a
// non-capturing group before the operator is applied.
type Quantifier struct {
	Expr
	body  string
	op    string
	greed Greed
}

func newQuantifier(nodes []Node, op string, g Greed) Quantifier {
	body, lay := parse(nodes)
	q := Quantifier{body: body, op: op, greed: g}
	q.Expr = Expr{fragment: q.render(), lay: lay}
	return q
}

func (q Quantifier) render() string {
	return "(?:" + q.body + ")" + q.op + q.greed.suffix()
}

// Greed returns the mode of q.
func (q Quantifier) Greed() Greed { return q.greed }

// WithGreed returns a copy of q using mode g.
func (q Quantifier) WithGreed(g Greed) Quantifier {
	q.greed = g
	q.fragment = q.render()
	return q
}

// Greedy returns a greedy copy of q.
func (q Quantifier) Greedy() Quantifier { return q.WithGreed(Greedy) }

// Possessive returns a possessive copy of q.
func (q Quantifier) Possessive() Quantifier { return q.WithGreed(Possessive) }

// Reluctant returns a reluctant copy of q.
func (q Quantifier) Reluctant() Quantifier { return q.WithGreed(Reluctant) }

// One matches nodes exactly once. It only groups.
func One(nodes ...Node) Expr {
	return wrap("(?:", nodes, ")")
}

// Optionally matches nodes zero or one time.
func Optionally(nodes ...Node) Quantifier {
	return newQuantifier(nodes, "?", Greedy)
}

// ZeroOrMore matches nodes any number of times.
func ZeroOrMore(nodes ...Node) Quantifier {
	return newQuantifier(nodes, "*", Greedy)
}

// OneOrMore matches nodes at least once.
func OneOrMore(nodes ...Node) Quantifier {
	return newQuantifier(nodes, "+", Greedy)
}

// Repetition configures Repeat. Zero means "not supplied": set Count alone
// for an exact count, or Minimum and/or Maximum for a range.
type Repetition struct {
	Count   int
	Minimum int
	Maximum int
}

// Validate checks that the repetition is either an exact count or a range.
func (r Repetition) Validate() error {
	if r.Count < 0 || r.Minimum < 0 || r.Maximum < 0 {
		return fmt.Errorf("%w: repeat bounds must not be negative (count=%d minimum=%d maximum=%d)",
			ErrInvalidConfiguration, r.Count, r.Minimum, r.Maximum)
	}
	if r.Count != 0 && (r.Minimum != 0 || r.Maximum != 0) {
		return fmt.Errorf("%w: must specify either count or minimum and/or maximum, not both", ErrInvalidConfiguration)
	}
	if r.Count == 0 && r.Minimum == 0 && r.Maximum == 0 {
		return fmt.Errorf("%w: must specify either count or minimum and/or maximum", ErrInvalidConfiguration)
	}
	if r.Maximum != 0 && r.Minimum > r.Maximum {
		return fmt.Errorf("%w: repeat minimum %d exceeds maximum %d", ErrInvalidConfiguration, r.Minimum, r.Maximum)
	}
	return nil
}

func (r Repetition) operator() string {
	switch {
	case r.Count != 0:
		return "{" + strconv.Itoa(r.Count) + "}"
	case r.Maximum == 0:
		return "{" + strconv.Itoa(r.Minimum) + ",}"
	default:
		// An omitted minimum is written as 0: "{,n}" is a literal in RE2
		// and .NET.
		return "{" + strconv.Itoa(r.Minimum) + "," + strconv.Itoa(r.Maximum) + "}"
	}
}

// Repeat matches nodes an exact number of times or within a range.
func Repeat(r Repetition, nodes ...Node) (Quantifier, error) {
	if err := r.Validate(); err != nil {
		return Quantifier{}, err
	}
	return newQuantifier(nodes, r.operator(), Greedy), nil
}

// MustRepeat is like Repeat but panics on error.
func MustRepeat(r Repetition, nodes ...Node) Quantifier {
	q, err := Repeat(r, nodes...)
	if err != nil {
		panic(err)
	}
	return q
}
