package engine

import (
	"github.com/KromDaniel/regkit/replace"
)

// Substitute replaces up to count matches in text with the expansion of
// template; count <= 0 replaces every match. The template syntax is the one
// of package replace ($1, ${name}, $$), the same for every engine.
// References to groups the pattern does not have fail before any matching.
func (m *Matcher) Substitute(text, template string, count int) (string, error) {
	tmpl, err := replace.Parse(template)
	if err != nil {
		return "", err
	}
	if err := tmpl.Validate(m.names); err != nil {
		return "", err
	}

	n := count
	if n <= 0 {
		n = -1
	}
	matches, err := m.FindAll(text, n)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return text, nil
	}

	out := make([]byte, 0, len(text))
	last := 0
	for _, match := range matches {
		out = append(out, text[last:match.Start()]...)
		out = tmpl.Expand(out, match)
		last = match.End()
	}
	out = append(out, text[last:]...)
	return string(out), nil
}
