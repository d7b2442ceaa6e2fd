// Package charset implements exact set algebra over runes.
//
// A Set uses the same representation as regexp/syntax character classes:
// a sorted slice of inclusive [lo, hi] pairs with no overlaps and no
// adjacent ranges.
package charset

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KromDaniel/regkit/internal/escape"
)

// Set is an immutable set of runes stored as lo/hi pairs.
type Set []rune

// Empty is the set with no members.
var Empty = Set{}

// Full contains every rune up to unicode.MaxRune.
var Full = Set{0, unicode.MaxRune}

// FromPairs normalizes a lo/hi pair slice (for example syntax.Regexp.Rune).
// The input is not modified.
func FromPairs(pairs []rune) Set {
	if len(pairs)%2 != 0 {
		panic("charset: odd number of runes in pair list")
	}
	type span struct{ lo, hi rune }
	spans := make([]span, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		lo, hi := pairs[i], pairs[i+1]
		if lo > hi {
			lo, hi = hi, lo
		}
		spans = append(spans, span{lo, hi})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].lo < spans[j].lo })

	out := make(Set, 0, len(pairs))
	for _, s := range spans {
		n := len(out)
		if n > 0 && s.lo <= out[n-1]+1 {
			if s.hi > out[n-1] {
				out[n-1] = s.hi
			}
			continue
		}
		out = append(out, s.lo, s.hi)
	}
	return out
}

// FromString returns the set of runes occurring in s.
func FromString(s string) Set {
	pairs := make([]rune, 0, 2*len(s))
	for _, r := range s {
		pairs = append(pairs, r, r)
	}
	return FromPairs(pairs)
}

// FromTable converts a unicode.RangeTable.
func FromTable(t *unicode.RangeTable) Set {
	var pairs []rune
	for _, r := range t.R16 {
		pairs = appendStrided(pairs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range t.R32 {
		pairs = appendStrided(pairs, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return FromPairs(pairs)
}

func appendStrided(pairs []rune, lo, hi, stride rune) []rune {
	if stride == 1 {
		return append(pairs, lo, hi)
	}
	for r := lo; r <= hi; r += stride {
		pairs = append(pairs, r, r)
	}
	return pairs
}

// Contains reports whether r is a member.
func (s Set) Contains(r rune) bool {
	n := len(s) / 2
	i := sort.Search(n, func(i int) bool { return s[2*i+1] >= r })
	return i < n && s[2*i] <= r
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Equal reports whether both sets have the same members.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

// Negate returns the complement with respect to Full.
func (s Set) Negate() Set {
	out := make(Set, 0, len(s)+2)
	next := rune(0)
	for i := 0; i < len(s); i += 2 {
		if s[i] > next {
			out = append(out, next, s[i]-1)
		}
		next = s[i+1] + 1
	}
	if next <= unicode.MaxRune {
		out = append(out, next, unicode.MaxRune)
	}
	return out
}

// Union returns s ∪ o.
func (s Set) Union(o Set) Set {
	pairs := make([]rune, 0, len(s)+len(o))
	pairs = append(pairs, s...)
	pairs = append(pairs, o...)
	return FromPairs(pairs)
}

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set {
	var out Set
	i, j := 0, 0
	for i < len(s) && j < len(o) {
		lo := max(s[i], o[j])
		hi := min(s[i+1], o[j+1])
		if lo <= hi {
			out = append(out, lo, hi)
		}
		if s[i+1] < o[j+1] {
			i += 2
		} else {
			j += 2
		}
	}
	if out == nil {
		return Empty
	}
	return out
}

// Subtract returns s \ o.
func (s Set) Subtract(o Set) Set {
	return s.Intersect(o.Negate())
}

// SymmetricDifference returns the runes in exactly one of s and o.
func (s Set) SymmetricDifference(o Set) Set {
	return s.Subtract(o).Union(o.Subtract(s))
}

// Bracket renders the set as a single bracket expression without set
// operators, e.g. "[0-9A-Z_a-z]". The empty set and the full set use
// forms that every supported engine accepts.
func (s Set) Bracket() string {
	switch {
	case len(s) == 0:
		return `[^\s\S]`
	case s.Equal(Full):
		return `[\s\S]`
	}

	var b strings.Builder
	for i := 0; i < len(s); i += 2 {
		lo, hi := encodable(s[i], s[i+1])
		if lo > hi {
			continue
		}
		b.WriteString(escape.Rune(lo))
		switch {
		case hi == lo:
		case hi == lo+1:
			b.WriteString(escape.Rune(hi))
		default:
			b.WriteByte('-')
			b.WriteString(escape.Rune(hi))
		}
	}
	if b.Len() == 0 {
		return `[^\s\S]`
	}
	return "[" + b.String() + "]"
}

// encodable narrows a range so that both ends can be written as UTF-8.
// Surrogates never occur in Go strings, so dropping them from the ends of a
// range does not change what the range matches.
func encodable(lo, hi rune) (rune, rune) {
	const surrogateMin, surrogateMax = 0xD800, 0xDFFF
	if lo >= surrogateMin && lo <= surrogateMax {
		lo = surrogateMax + 1
	}
	if hi >= surrogateMin && hi <= surrogateMax {
		hi = surrogateMin - 1
	}
	if !utf8.ValidRune(lo) || !utf8.ValidRune(hi) {
		return 1, 0
	}
	return lo, hi
}
