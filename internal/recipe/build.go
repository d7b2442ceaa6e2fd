package recipe

import (
	"fmt"

	"github.com/KromDaniel/regkit/pkg/regkit"
)

var anchors = map[string]regkit.Expr{
	"start_of_string":   regkit.StartOfString,
	"end_of_string":     regkit.EndOfString,
	"start_of_input":    regkit.StartOfInput,
	"end_of_input":      regkit.EndOfInput,
	"word_boundary":     regkit.WordBoundary,
	"not_word_boundary": regkit.NotWordBoundary,
	"any":               regkit.Any,
	"grapheme":          regkit.Grapheme,
}

var shorthands = map[string]regkit.Class{
	"digit":          regkit.Digit,
	"not_digit":      regkit.NotDigit,
	"whitespace":     regkit.Whitespace,
	"not_whitespace": regkit.NotWhitespace,
	"word":           regkit.Word,
	"not_word":       regkit.NotWord,
}

var wrappers = map[string]func(...regkit.Node) regkit.Expr{
	"group":               regkit.One,
	"atomic":              regkit.Atomic,
	"lookahead":           regkit.Lookahead,
	"negative_lookahead":  regkit.NegativeLookahead,
	"lookbehind":          regkit.PositiveLookbehind,
	"negative_lookbehind": regkit.NegativeLookbehind,
	"choice":              regkit.ChoiceOf,
	"branch_reset":        regkit.BranchReset,
}

var quantifiers = map[string]func(...regkit.Node) regkit.Quantifier{
	"optional":     regkit.Optionally,
	"zero_or_more": regkit.ZeroOrMore,
	"one_or_more":  regkit.OneOrMore,
}

var setOperations = map[string]func(a, b regkit.BracketExpression) regkit.Class{
	"union":                regkit.Union,
	"intersection":         regkit.Intersection,
	"subtracting":          regkit.Subtracting,
	"symmetric_difference": regkit.SymmetricDifference,
}

func buildAll(nodes []Node, path string) ([]regkit.Node, error) {
	out := make([]regkit.Node, len(nodes))
	for i, n := range nodes {
		built, err := build(n, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out[i] = built
	}
	return out, nil
}

func build(n Node, path string) (regkit.Node, error) {
	if a, ok := anchors[n.Kind]; ok {
		return a, nil
	}
	if c, ok, err := buildClass(n, path); ok {
		return c, err
	}

	switch n.Kind {
	case "text":
		return regkit.Text(n.Text), nil
	case "raw":
		return regkit.Raw(n.Text), nil
	case "named_character":
		if n.Name == "" {
			return nil, invalid(path, "named_character requires a name")
		}
		return regkit.NamedCharacter(n.Name), nil
	case "reference":
		switch {
		case n.Name != "" && n.Index != 0:
			return nil, invalid(path, "reference takes a name or an index, not both")
		case n.Name != "":
			return regkit.Reference(n.Name), nil
		case n.Index > 0:
			return regkit.ReferenceIndex(n.Index), nil
		}
		return nil, invalid(path, "reference requires a name or a positive index")
	}

	children, err := buildAll(n.Nodes, path+".nodes")
	if err != nil {
		return nil, err
	}

	if group, ok := wrappers[n.Kind]; ok {
		return group(children...), nil
	}
	if quantify, ok := quantifiers[n.Kind]; ok {
		return withGreed(quantify(children...), n.Greed, path)
	}

	switch n.Kind {
	case "capture":
		if n.Name == "" {
			return regkit.Capture(children...), nil
		}
		c, err := regkit.CaptureAs(n.Name, children...)
		return c, wrap(path, err)
	case "repeat":
		q, err := regkit.Repeat(regkit.Repetition{Count: n.Count, Minimum: n.Min, Maximum: n.Max}, children...)
		if err != nil {
			return nil, wrap(path, err)
		}
		return withGreed(q, n.Greed, path)
	case "flags":
		if n.Flags == nil {
			return nil, invalid(path, "flags requires a flags record")
		}
		flags, err := n.Flags.build()
		if err != nil {
			return nil, wrap(path, err)
		}
		e, err := regkit.WithFlags(regkit.New(children...), flags)
		return e, wrap(path, err)
	case "global_flags":
		if n.Global == nil {
			return nil, invalid(path, "global_flags requires a global record")
		}
		e, err := regkit.WithGlobalFlags(regkit.New(children...), regkit.GlobalFlags(*n.Global))
		return e, wrap(path, err)
	case "":
		return nil, invalid(path, "missing kind")
	}
	return nil, invalid(path, fmt.Sprintf("unknown kind %q", n.Kind))
}

// buildClass builds the kinds that yield a character class. ok is false
// for every other kind.
func buildClass(n Node, path string) (regkit.BracketExpression, bool, error) {
	if s, found := shorthands[n.Kind]; found {
		return s, true, nil
	}
	switch n.Kind {
	case "any_of":
		return regkit.AnyOf(n.Chars), true, nil
	case "class_literal":
		c, err := regkit.ClassLiteral(n.Literal)
		return c, true, wrap(path, err)
	case "property":
		if n.Key != "" {
			p, err := regkit.UnicodePropertyOf(n.Key, n.Value)
			return p, true, wrap(path, err)
		}
		p, err := regkit.UnicodeProperty(n.Name)
		return p, true, wrap(path, err)
	case "posix":
		p, err := regkit.PosixClass(n.Name)
		return p, true, wrap(path, err)
	case "class", "inverted", "flatten":
	default:
		if _, found := setOperations[n.Kind]; !found {
			return nil, false, nil
		}
	}

	members := make([]regkit.BracketExpression, len(n.Nodes))
	for i, m := range n.Nodes {
		memberPath := fmt.Sprintf("%s.nodes[%d]", path, i)
		b, isClass, err := buildClass(m, memberPath)
		if !isClass {
			return nil, true, invalid(memberPath, fmt.Sprintf("%q is not a character class", m.Kind))
		}
		if err != nil {
			return nil, true, err
		}
		members[i] = b
	}

	switch n.Kind {
	case "class":
		return regkit.CharacterClass(members...), true, nil
	case "inverted", "flatten":
		if len(members) != 1 {
			return nil, true, invalid(path, fmt.Sprintf("%s takes exactly one member, got %d", n.Kind, len(members)))
		}
		if n.Kind == "inverted" {
			return regkit.Inverted(members[0]), true, nil
		}
		return regkit.Flatten(members[0]), true, nil
	}
	if len(members) < 2 {
		return nil, true, invalid(path, fmt.Sprintf("%s takes at least two members, got %d", n.Kind, len(members)))
	}
	op := setOperations[n.Kind]
	result := op(members[0], members[1])
	for _, m := range members[2:] {
		result = op(result, m)
	}
	return result, true, nil
}

func withGreed(q regkit.Quantifier, greed, path string) (regkit.Node, error) {
	switch greed {
	case "", "greedy", "eager":
		return q, nil
	case "possessive":
		return q.Possessive(), nil
	case "reluctant", "minimal":
		return q.Reluctant(), nil
	}
	return nil, invalid(path, fmt.Sprintf("unknown greed %q", greed))
}

func (f Flags) build() (regkit.Flags, error) {
	var out regkit.Flags
	for _, field := range []struct {
		name  string
		value string
		dst   *regkit.Switch
	}{
		{"ascii", f.ASCII, &out.ASCII},
		{"full_case", f.FullCase, &out.FullCase},
		{"ignore_case", f.IgnoreCase, &out.IgnoreCase},
		{"locale", f.Locale, &out.Locale},
		{"multiline", f.Multiline, &out.Multiline},
		{"dot_all", f.DotAll, &out.DotAll},
		{"unicode", f.Unicode, &out.Unicode},
		{"verbose", f.Verbose, &out.Verbose},
		{"word", f.Word, &out.Word},
	} {
		switch field.value {
		case "":
		case "on":
			*field.dst = regkit.Enable
		case "off":
			*field.dst = regkit.Disable
		default:
			return out, fmt.Errorf("%w: flag %s must be \"on\" or \"off\", got %q", ErrInvalidRecipe, field.name, field.value)
		}
	}
	return out, nil
}

func invalid(path, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidRecipe, path, msg)
}

func wrap(path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", path, err)
}
