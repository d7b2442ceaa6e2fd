package regkit

import (
	"strings"

	"github.com/KromDaniel/regkit/internal/escape"
)

// Node is one item of a sequence: either Text or a Component.
// The set of implementations is closed.
type Node interface {
	isNode()
}

// Text is raw literal text. It is always escaped, so every character
// matches itself.
type Text string

func (Text) isNode() {}

// Component is a structured piece of pattern syntax with its fragment
// already rendered.
type Component interface {
	Node
	// Fragment returns the rendered pattern text. A fragment is a
	// self-contained unit that can be embedded anywhere.
	Fragment() string
	layout() layout
}

// layout records the capturing groups and backreferences of a fragment in
// textual order.
type layout struct {
	captures   []string // "" for unnamed groups, ordered by opening parenthesis
	references []reference
	// events interleaves group closings and references in textual order.
	// A non-negative value indexes captures, -(i+1) indexes references.
	events []int
	// nested is set when the fragment holds a bracket expression with
	// nested classes or set operators.
	nested bool
}

type reference struct {
	name  string
	index int
}

func (l layout) concat(o layout) layout {
	nested := l.nested || o.nested
	if len(o.events) == 0 {
		l.nested = nested
		return l
	}
	if len(l.events) == 0 {
		o.nested = nested
		return o
	}
	out := layout{
		captures:   make([]string, 0, len(l.captures)+len(o.captures)),
		references: make([]reference, 0, len(l.references)+len(o.references)),
		events:     make([]int, 0, len(l.events)+len(o.events)),
		nested:     nested,
	}
	out.captures = append(out.captures, l.captures...)
	out.references = append(out.references, l.references...)
	out.events = append(out.events, l.events...)
	for _, e := range o.events {
		if e >= 0 {
			out.events = append(out.events, e+len(l.captures))
		} else {
			out.events = append(out.events, e-len(l.references))
		}
	}
	out.captures = append(out.captures, o.captures...)
	out.references = append(out.references, o.references...)
	return out
}

// withCapture returns l enclosed in a capturing group named name. The group
// is numbered before the groups of l and closes after them.
func (l layout) withCapture(name string) layout {
	out := layout{
		captures:   append([]string{name}, l.captures...),
		references: l.references,
		events:     make([]int, 0, len(l.events)+1),
		nested:     l.nested,
	}
	for _, e := range l.events {
		if e >= 0 {
			e++
		}
		out.events = append(out.events, e)
	}
	out.events = append(out.events, 0)
	return out
}

// Expr is a rendered component. Quantifiers, groups, assertions, flag
// wrappers and predefined atoms are all Expr values.
type Expr struct {
	fragment string
	lay      layout
}

func (Expr) isNode() {}

// Fragment implements Component.
func (e Expr) Fragment() string { return e.fragment }

func (e Expr) layout() layout { return e.lay }

// String returns the fragment.
func (e Expr) String() string { return e.fragment }

// Raw returns a component whose fragment is pattern, unescaped. The
// capturing groups inside pattern are not tracked.
func Raw(pattern string) Expr {
	return Expr{fragment: pattern}
}

// Parse renders a sequence: Text items are escaped, Component items
// contribute their fragment unchanged. Order is kept and no separator is
// inserted.
func Parse(nodes ...Node) string {
	s, _ := parse(nodes)
	return s
}

func parse(nodes []Node) (string, layout) {
	var (
		b   strings.Builder
		lay layout
	)
	for _, n := range nodes {
		switch n := n.(type) {
		case Text:
			b.WriteString(escape.Literal(string(n)))
		case Component:
			b.WriteString(n.Fragment())
			lay = lay.concat(n.layout())
		case nil:
			// A nil Node contributes nothing.
		default:
			panic("regkit: unsupported node type")
		}
	}
	return b.String(), lay
}

// wrap renders open + parse(nodes) + close.
func wrap(open string, nodes []Node, close string) Expr {
	body, lay := parse(nodes)
	return Expr{fragment: open + body + close, lay: lay}
}
