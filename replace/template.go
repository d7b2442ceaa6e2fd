// Package replace parses and expands replacement templates for substitution.
//
// Template syntax:
//   - $0 or ${0}: the whole match
//   - $1 .. $99 or ${1}, ${12}: a capturing group by position
//   - $name or ${name}: a capturing group by name
//   - $$: a literal dollar sign
//   - anything else, including a lone $, is literal text
package replace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownGroup indicates a template reference to a group the pattern
// does not have.
var ErrUnknownGroup = errors.New("unknown capture group")

// SegmentType indicates the type of segment in a replacement template.
type SegmentType int

const (
	// SegmentLiteral is literal text.
	SegmentLiteral SegmentType = iota
	// SegmentFullMatch is $0.
	SegmentFullMatch
	// SegmentCaptureIndex is a positional reference such as $1.
	SegmentCaptureIndex
	// SegmentCaptureName is a named reference such as ${year}.
	SegmentCaptureName
)

// Segment is one parsed piece of a template.
type Segment struct {
	Type         SegmentType
	Literal      string
	CaptureIndex int
	CaptureName  string
}

// Template is a parsed replacement template.
type Template struct {
	Original string
	Segments []Segment
}

// Captures gives access to the groups of one match. Group(0) is the whole
// match.
type Captures interface {
	Group(i int) (string, bool)
	Named(name string) (string, bool)
}

// Parse parses a replacement template.
func Parse(template string) (*Template, error) {
	t := &Template{Original: template, Segments: make([]Segment, 0)}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.Segments = append(t.Segments, Segment{Type: SegmentLiteral, Literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(template); {
		dollar := strings.IndexByte(template[i:], '$')
		if dollar < 0 {
			lit.WriteString(template[i:])
			break
		}
		lit.WriteString(template[i : i+dollar])
		i += dollar

		seg, n, err := parseReference(template[i:])
		if err != nil {
			return nil, fmt.Errorf("at position %d: %w", i, err)
		}
		if n == 0 {
			// "$$" or a "$" that does not start a reference.
			lit.WriteByte('$')
			if strings.HasPrefix(template[i:], "$$") {
				i += 2
			} else {
				i++
			}
			continue
		}
		flush()
		t.Segments = append(t.Segments, seg)
		i += n
	}
	flush()
	return t, nil
}

// parseReference parses a reference at s[0] == '$'. It returns n == 0 when
// the dollar is literal.
func parseReference(s string) (Segment, int, error) {
	if len(s) < 2 {
		return Segment{}, 0, nil
	}
	switch c := s[1]; {
	case c == '{':
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return Segment{}, 0, fmt.Errorf("unclosed ${")
		}
		seg, err := braced(s[2:end])
		return seg, end + 1, err
	case c >= '0' && c <= '9':
		n := 2
		if c != '0' && len(s) > 2 && s[2] >= '0' && s[2] <= '9' {
			n = 3
		}
		idx, _ := strconv.Atoi(s[1:n])
		return indexSegment(idx), n, nil
	default:
		r, _ := utf8.DecodeRuneInString(s[1:])
		if !isNameStart(r) {
			return Segment{}, 0, nil
		}
		end := 1
		for end < len(s) {
			r, size := utf8.DecodeRuneInString(s[end:])
			if !isNameContinue(r) {
				break
			}
			end += size
		}
		return Segment{Type: SegmentCaptureName, CaptureName: s[1:end]}, end, nil
	}
}

func braced(content string) (Segment, error) {
	switch {
	case content == "":
		return Segment{}, fmt.Errorf("empty ${}")
	case content[0] >= '0' && content[0] <= '9':
		idx, err := strconv.Atoi(content)
		if err != nil || idx < 0 {
			return Segment{}, fmt.Errorf("invalid capture reference ${%s}", content)
		}
		return indexSegment(idx), nil
	case !isIdentifier(content):
		return Segment{}, fmt.Errorf("invalid capture name ${%s}", content)
	}
	return Segment{Type: SegmentCaptureName, CaptureName: content}, nil
}

func indexSegment(idx int) Segment {
	if idx == 0 {
		return Segment{Type: SegmentFullMatch}
	}
	return Segment{Type: SegmentCaptureIndex, CaptureIndex: idx}
}

// Validate checks every reference against the groups of a pattern. names
// follows the SubexpNames convention: names[0] is the whole match and
// unnamed groups are "".
func (t *Template) Validate(names []string) error {
	for _, seg := range t.Segments {
		switch seg.Type {
		case SegmentCaptureIndex:
			if seg.CaptureIndex >= len(names) {
				return fmt.Errorf("%w: $%d (pattern has %d groups)", ErrUnknownGroup, seg.CaptureIndex, len(names)-1)
			}
		case SegmentCaptureName:
			found := false
			for _, n := range names[min(1, len(names)):] {
				if n == seg.CaptureName {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%w: ${%s}", ErrUnknownGroup, seg.CaptureName)
			}
		}
	}
	return nil
}

// Expand appends the template, with references replaced by the text of c,
// to dst. Groups that did not participate in the match expand to "".
func (t *Template) Expand(dst []byte, c Captures) []byte {
	for _, seg := range t.Segments {
		switch seg.Type {
		case SegmentLiteral:
			dst = append(dst, seg.Literal...)
		case SegmentFullMatch:
			s, _ := c.Group(0)
			dst = append(dst, s...)
		case SegmentCaptureIndex:
			s, _ := c.Group(seg.CaptureIndex)
			dst = append(dst, s...)
		case SegmentCaptureName:
			s, _ := c.Named(seg.CaptureName)
			dst = append(dst, s...)
		}
	}
	return dst
}

// String returns the original template text.
func (t *Template) String() string {
	return t.Original
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isNameStart(r) || i > 0 && !isNameContinue(r) {
			return false
		}
	}
	return s != ""
}
