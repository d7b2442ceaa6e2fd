package codegen

import (
	"strings"
	"unicode"
)

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToLower(r)) + s[i+len(string(r)):]
	}
	return s
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}

// Identifier turns s into an exported Go identifier. Words separated by
// anything other than letters and digits are joined in CamelCase; an "X" is
// prepended when the result would not be exported. It returns "" when s has
// no letters or digits.
func Identifier(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(UpperFirst(w))
	}
	id := b.String()
	if id == "" {
		return ""
	}
	if r := []rune(id)[0]; !unicode.IsUpper(r) {
		id = "X" + id
	}
	return id
}

// PatternConst returns the name of the constant holding the text of the
// pattern called name.
func PatternConst(name string) string {
	return name + "Pattern"
}

// GroupConst returns the name of the constant holding the name of a
// capturing group of the pattern called name.
func GroupConst(name, group string) string {
	return name + "Group" + Identifier(group)
}
