// Package escape renders raw text as pattern syntax that matches itself literally.
package escape

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// special lists every ASCII character that has a meaning somewhere in the
// supported dialects, inside or outside a bracket expression. The set
// operators of nested classes (&&, ~~, ||, --) and the comment marker of
// verbose mode (#) are included.
const special = `\.+*?()|[]{}^$#&~-`

// Literal escapes s so that every character matches itself.
func Literal(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		writeRune(&b, r)
	}
	return b.String()
}

// Rune escapes a single rune. It is used when rendering ranges of a
// bracket expression, where lo and hi are written separately.
func Rune(r rune) string {
	var b strings.Builder
	writeRune(&b, r)
	return b.String()
}

func writeRune(b *strings.Builder, r rune) {
	switch r {
	case '\t':
		b.WriteString(`\t`)
		return
	case '\n':
		b.WriteString(`\n`)
		return
	case '\r':
		b.WriteString(`\r`)
		return
	case '\f':
		b.WriteString(`\f`)
		return
	case '\v':
		b.WriteString(`\v`)
		return
	case ' ':
		// Escaped so verbose mode keeps it.
		b.WriteString(`\ `)
		return
	}

	switch {
	case r < 0x20 || r == 0x7f:
		fmt.Fprintf(b, `\x%02X`, r)
	case r < utf8.RuneSelf && strings.IndexByte(special, byte(r)) >= 0:
		b.WriteByte('\\')
		b.WriteByte(byte(r))
	default:
		b.WriteRune(r)
	}
}

// IsSpecial reports whether c is escaped by Literal.
func IsSpecial(c byte) bool {
	return strings.IndexByte(special, c) >= 0
}
