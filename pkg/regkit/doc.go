// Package regkit builds regular expressions from typed components instead of
// hand-written pattern strings.
//
// Every component renders its own fragment when it is constructed. Raw
// strings are passed as Text and always match literally; components are
// embedded as they are. Composite fragments are wrapped in non-capturing
// groups, so a component can be nested anywhere without precedence
// surprises.
//
// Basic usage:
//
//	word := regkit.OneOrMore(regkit.Word)
//	email := regkit.New(
//	    regkit.Capture(regkit.ZeroOrMore(word, regkit.Text(".")), word),
//	    regkit.Text("@"),
//	    regkit.Capture(word, regkit.OneOrMore(regkit.Text("."), word)),
//	)
//
//	m := email.MustCompile(backtrack.New(regexp2.RE2))
//	match, _ := m.Search("my.name@example.com")
//	fmt.Println(match.Groups()) // [my.name example.com]
//
// Invalid option combinations (a Repeat with both a count and a bound,
// conflicting flags, malformed class literals) fail at construction with an
// error wrapping ErrInvalidConfiguration. Errors raised by the matching
// engine are returned unchanged by Compile.
//
// Classes built with set operators (Union, Intersection, Subtracting,
// SymmetricDifference, CharacterClass with several members) render nested
// bracket expressions that the bundled engines would read as literal
// characters. Compile refuses them with ErrNestedSets; the Flat form of the
// same class compiles everywhere. The membership model of Digit, Whitespace
// and Word is ASCII, which is what regexp2 implements under regexp2.RE2.
package regkit
