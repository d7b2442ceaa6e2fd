package regkit

import (
	"fmt"
	"regexp/syntax"
	"strings"
	"unicode"

	"github.com/KromDaniel/regkit/internal/charset"
	"github.com/KromDaniel/regkit/internal/escape"
)

// BracketExpression is a component that matches exactly one character out
// of a set. Every character class variant implements it, and the set
// operations below are defined once in terms of it.
type BracketExpression interface {
	Component
	// Contains reports whether r is a member of the class.
	Contains(r rune) bool
	complement() string
	runes() charset.Set
}

// Class is a character class. Its fragment is a bracket expression or a
// class shorthand, and it knows both its complement fragment and its exact
// membership.
type Class struct {
	fragment string
	inverse  string
	set      charset.Set
	// nested marks fragments using nested classes or set operators.
	nested bool
}

func (Class) isNode() {}

// Fragment implements Component.
func (c Class) Fragment() string { return c.fragment }

func (c Class) layout() layout { return layout{nested: c.nested} }

func (c Class) complement() string { return c.inverse }

func (c Class) runes() charset.Set { return c.set }

// String returns the fragment.
func (c Class) String() string { return c.fragment }

// Contains implements BracketExpression.
func (c Class) Contains(r rune) bool { return c.set.Contains(r) }

// Inverted returns the class matching every character c does not match.
func (c Class) Inverted() Class { return Inverted(c) }

// Union returns the class matching characters in c or o.
func (c Class) Union(o BracketExpression) Class { return Union(c, o) }

// Intersection returns the class matching characters in both c and o.
func (c Class) Intersection(o BracketExpression) Class { return Intersection(c, o) }

// Subtracting returns the class matching characters in c but not in o.
func (c Class) Subtracting(o BracketExpression) Class { return Subtracting(c, o) }

// SymmetricDifference returns the class matching characters in exactly
// one of c and o.
func (c Class) SymmetricDifference(o BracketExpression) Class { return SymmetricDifference(c, o) }

// Flat returns an equivalent class rendered as one plain bracket
// expression, with no nested classes, set operators, properties or POSIX
// names. Engines without nested set syntax (regexp, regexp2, RE2, coregex)
// accept it.
func (c Class) Flat() Class { return Flatten(c) }

// Inverted returns the logical complement of b. Inverting twice yields the
// original fragment.
func Inverted(b BracketExpression) Class {
	return Class{
		fragment: b.complement(),
		inverse:  b.Fragment(),
		set:      b.runes().Negate(),
		nested:   b.layout().nested,
	}
}

// Union joins a and b with the "||" set operator. Set operators are only
// understood by engines with nested set syntax; see Flat for the others.
func Union(a, b BracketExpression) Class {
	return combine(a, "||", b, a.runes().Union(b.runes()))
}

// Intersection joins a and b with the "&&" set operator.
func Intersection(a, b BracketExpression) Class {
	return combine(a, "&&", b, a.runes().Intersect(b.runes()))
}

// Subtracting joins a and b with the "--" set operator.
func Subtracting(a, b BracketExpression) Class {
	return combine(a, "--", b, a.runes().Subtract(b.runes()))
}

// SymmetricDifference joins a and b with the "~~" set operator.
func SymmetricDifference(a, b BracketExpression) Class {
	return combine(a, "~~", b, a.runes().SymmetricDifference(b.runes()))
}

// Flatten renders b as a single plain bracket expression.
func Flatten(b BracketExpression) Class {
	frag := b.runes().Bracket()
	return Class{fragment: frag, inverse: toggleNegation(frag), set: b.runes()}
}

func combine(a BracketExpression, op string, b BracketExpression, set charset.Set) Class {
	body := a.Fragment() + op + b.Fragment()
	return Class{
		fragment: "[" + body + "]",
		inverse:  "[^" + body + "]",
		set:      set,
		nested:   true,
	}
}

// toggleNegation adds or removes the leading "^" of a bracket expression.
func toggleNegation(bracket string) string {
	if strings.HasPrefix(bracket, "[^") {
		return "[" + bracket[2:]
	}
	return "[^" + bracket[1:]
}

// CharacterClass returns the union of members, rendered as one bracket
// expression "[m1||m2||...]". A single member is returned unchanged, and no
// members yield a class that matches nothing.
func CharacterClass(members ...BracketExpression) Class {
	switch len(members) {
	case 0:
		return Flatten(Class{set: charset.Empty})
	case 1:
		m := members[0]
		return Class{fragment: m.Fragment(), inverse: m.complement(), set: m.runes(), nested: m.layout().nested}
	}

	parts := make([]string, len(members))
	set := charset.Empty
	for i, m := range members {
		parts[i] = m.Fragment()
		set = set.Union(m.runes())
	}
	body := strings.Join(parts, "||")
	return Class{fragment: "[" + body + "]", inverse: "[^" + body + "]", set: set, nested: true}
}

// AnyOf returns a class matching any one of the characters in chars. Every
// character is escaped.
func AnyOf(chars string) Class {
	if chars == "" {
		return CharacterClass()
	}
	frag := "[" + escape.Literal(chars) + "]"
	return Class{fragment: frag, inverse: toggleNegation(frag), set: charset.FromString(chars)}
}

// ClassLiteral validates a pre-formed bracket expression such as "[A-Z]" or
// "[^\d_]" and returns it as a class. To match the characters "A", "-" and
// "Z" use AnyOf("A-Z") instead.
func ClassLiteral(literal string) (Class, error) {
	if len(literal) < 2 || literal[0] != '[' || literal[len(literal)-1] != ']' {
		return Class{}, fmt.Errorf("%w: class literal %q must be a bracket expression such as \"[A-Z]\"; use AnyOf to match the characters themselves",
			ErrInvalidConfiguration, literal)
	}
	re, err := syntax.Parse(literal, syntax.Perl)
	if err != nil {
		return Class{}, fmt.Errorf("%w: class literal %q: %v", ErrInvalidConfiguration, literal, err)
	}
	set, ok := setOf(re)
	if !ok {
		return Class{}, fmt.Errorf("%w: class literal %q is not a single character class", ErrInvalidConfiguration, literal)
	}
	return Class{fragment: literal, inverse: toggleNegation(literal), set: set}, nil
}

// MustClassLiteral is like ClassLiteral but panics on error.
func MustClassLiteral(literal string) Class {
	c, err := ClassLiteral(literal)
	if err != nil {
		panic(err)
	}
	return c
}

// setOf extracts the members of a parsed single-character expression.
func setOf(re *syntax.Regexp) (charset.Set, bool) {
	switch re.Op {
	case syntax.OpCharClass:
		return charset.FromPairs(re.Rune), true
	case syntax.OpLiteral:
		if len(re.Rune) != 1 {
			return nil, false
		}
		r := re.Rune[0]
		if re.Flags&syntax.FoldCase == 0 {
			return charset.FromPairs([]rune{r, r}), true
		}
		// [Aa] is parsed as a case-folded literal.
		pairs := []rune{r, r}
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			pairs = append(pairs, f, f)
		}
		return charset.FromPairs(pairs), true
	case syntax.OpAnyChar:
		return charset.Full, true
	case syntax.OpAnyCharNotNL:
		return charset.Full.Subtract(charset.FromString("\n")), true
	case syntax.OpNoMatch:
		return charset.Empty, true
	}
	return nil, false
}

// shorthand builds one of the predefined escapes such as \d.
func shorthand(fragment, inverse string) Class {
	re, err := syntax.Parse(fragment, syntax.Perl)
	if err != nil {
		panic(err)
	}
	set, ok := setOf(re)
	if !ok {
		panic("regkit: " + fragment + " is not a character class")
	}
	return Class{fragment: fragment, inverse: inverse, set: set}
}

// Property is a Unicode property class, \p{...}.
type Property struct {
	Class
	// Key is empty for the single-name form.
	Key   string
	Value string
}

// UnicodeProperty returns the class \p{name} for a general category
// ("L", "Lu"), a script ("Greek") or a binary property ("White_Space").
func UnicodeProperty(name string) (Property, error) {
	if name == "" {
		return Property{}, fmt.Errorf("%w: Unicode property requires a name or a key and value", ErrInvalidConfiguration)
	}
	set, ok := lookupProperty("", name)
	if !ok {
		return Property{}, fmt.Errorf("%w: unknown Unicode property %q", ErrInvalidConfiguration, name)
	}
	return newProperty("", name, set), nil
}

// UnicodePropertyOf returns the class \p{key=value}, for example
// UnicodePropertyOf("Script", "Greek").
func UnicodePropertyOf(key, value string) (Property, error) {
	if key == "" || value == "" {
		return Property{}, fmt.Errorf("%w: Unicode property requires both key and value, got key=%q value=%q",
			ErrInvalidConfiguration, key, value)
	}
	set, ok := lookupProperty(key, value)
	if !ok {
		return Property{}, fmt.Errorf("%w: unknown Unicode property %s=%s", ErrInvalidConfiguration, key, value)
	}
	return newProperty(key, value, set), nil
}

// MustUnicodeProperty is like UnicodeProperty but panics on error.
func MustUnicodeProperty(name string) Property {
	p, err := UnicodeProperty(name)
	if err != nil {
		panic(err)
	}
	return p
}

func newProperty(key, value string, set charset.Set) Property {
	body := value
	if key != "" {
		body = key + "=" + value
	}
	return Property{
		Class: Class{
			fragment: `\p{` + body + `}`,
			inverse:  `\P{` + body + `}`,
			set:      set,
		},
		Key:   key,
		Value: value,
	}
}

func lookupProperty(key, value string) (charset.Set, bool) {
	var tables []map[string]*unicode.RangeTable
	switch strings.ToLower(key) {
	case "":
		if value == "Any" {
			return charset.Full, true
		}
		tables = []map[string]*unicode.RangeTable{unicode.Categories, unicode.Scripts, unicode.Properties}
	case "general_category", "gc", "category":
		tables = []map[string]*unicode.RangeTable{unicode.Categories}
	case "script", "sc":
		tables = []map[string]*unicode.RangeTable{unicode.Scripts}
	default:
		return nil, false
	}
	for _, t := range tables {
		if rt, ok := t[value]; ok {
			return charset.FromTable(rt), true
		}
	}
	return nil, false
}

// Posix is a POSIX named class, [[:name:]].
type Posix struct {
	Class
	Name string
}

// PosixClass returns the class [[:name:]] for one of the POSIX class names
// (alnum, alpha, ascii, blank, cntrl, digit, graph, lower, print, punct,
// space, upper, word, xdigit).
func PosixClass(name string) (Posix, error) {
	if name == "" || strings.IndexFunc(name, func(r rune) bool { return r < 'a' || r > 'z' }) >= 0 {
		return Posix{}, fmt.Errorf("%w: invalid POSIX class name %q", ErrInvalidConfiguration, name)
	}
	frag := "[[:" + name + ":]]"
	re, err := syntax.Parse(frag, syntax.Perl)
	if err != nil {
		return Posix{}, fmt.Errorf("%w: unknown POSIX class %q", ErrInvalidConfiguration, name)
	}
	set, ok := setOf(re)
	if !ok {
		return Posix{}, fmt.Errorf("%w: unknown POSIX class %q", ErrInvalidConfiguration, name)
	}
	return Posix{
		Class: Class{fragment: frag, inverse: "[[:^" + name + ":]]", set: set},
		Name:  name,
	}, nil
}

// MustPosixClass is like PosixClass but panics on error.
func MustPosixClass(name string) Posix {
	p, err := PosixClass(name)
	if err != nil {
		panic(err)
	}
	return p
}

// NamedCharacter matches the character with the given Unicode name,
// \N{name}.
func NamedCharacter(name string) Expr {
	return Expr{fragment: `\N{` + name + `}`}
}
