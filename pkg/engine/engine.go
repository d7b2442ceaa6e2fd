// Package engine defines the contract between assembled pattern text and the
// matching engines that execute it.
//
// An Engine turns pattern text into a Backend. Matcher wraps a Backend with
// a uniform search API and reports capturing groups in left-to-right order
// of the pattern text, whatever numbering the engine uses internally.
package engine

import "fmt"

// Engine compiles pattern text. Engine-specific options are fixed when the
// Engine value is constructed and passed through to the engine verbatim.
type Engine interface {
	// Name identifies the engine, e.g. "regexp2".
	Name() string
	// Compile compiles pattern. Syntax errors are the engine's own errors.
	Compile(pattern string) (Backend, error)
}

// NestedSets is implemented by engines whose bracket expressions accept
// nested classes and the set operators "||", "&&", "--" and "~~". None of
// the adapters in this module do.
type NestedSets interface {
	NestedSets() bool
}

// SupportsNestedSets reports whether e implements NestedSets and returns
// true from it.
func SupportsNestedSets(e Engine) bool {
	n, ok := e.(NestedSets)
	return ok && n.NestedSets()
}

// Backend is a pattern compiled by one engine.
type Backend interface {
	// FindAll returns up to n successive non-overlapping matches; n < 0
	// means all. Each match is a list of byte offset pairs in the engine's
	// group numbering, with -1 for groups that did not participate, as
	// returned by regexp.FindAllStringSubmatchIndex.
	FindAll(text string, n int) ([][]int, error)
	// SubexpNames returns the group names in the engine's numbering.
	// Index 0 is the whole match; unnamed groups are "".
	SubexpNames() []string
}

// Matcher is a compiled pattern.
type Matcher struct {
	pattern string
	engine  string
	backend Backend
	names   []string // textual order, names[0] == ""
	order   []int    // textual group i -> backend group order[i]
}

// Compile compiles pattern with e. captures lists the capturing groups of
// pattern in textual order ("" for unnamed); when it is nil or does not
// agree with the engine, the engine's own numbering is used.
func Compile(e Engine, pattern string, captures []string) (*Matcher, error) {
	backend, err := e.Compile(pattern)
	if err != nil {
		return nil, err
	}
	m := &Matcher{pattern: pattern, engine: e.Name(), backend: backend}
	m.names, m.order = textualOrder(backend.SubexpNames(), captures)
	return m, nil
}

// textualOrder maps groups in textual order to engine groups. Engines in
// the .NET family number unnamed groups before named ones; RE2 numbers them
// left to right. Both keep unnamed groups in textual order among
// themselves, so named groups are matched by name and unnamed groups by
// rank.
func textualOrder(engineNames, captures []string) ([]string, []int) {
	identity := func() ([]string, []int) {
		order := make([]int, len(engineNames))
		for i := range order {
			order[i] = i
		}
		return engineNames, order
	}
	if captures == nil || len(captures) != len(engineNames)-1 {
		return identity()
	}

	var unnamed []int
	byName := make(map[string]int)
	for i := 1; i < len(engineNames); i++ {
		if engineNames[i] == "" {
			unnamed = append(unnamed, i)
		} else if _, dup := byName[engineNames[i]]; !dup {
			byName[engineNames[i]] = i
		}
	}

	names := make([]string, 1, len(engineNames))
	order := make([]int, 1, len(engineNames))
	for _, name := range captures {
		if name == "" {
			if len(unnamed) == 0 {
				return identity()
			}
			order = append(order, unnamed[0])
			unnamed = unnamed[1:]
		} else {
			idx, ok := byName[name]
			if !ok {
				return identity()
			}
			order = append(order, idx)
		}
		names = append(names, name)
	}
	return names, order
}

// String returns the pattern text.
func (m *Matcher) String() string { return m.pattern }

// Engine returns the name of the engine that compiled the pattern.
func (m *Matcher) Engine() string { return m.engine }

// NumSubexp returns the number of capturing groups.
func (m *Matcher) NumSubexp() int { return len(m.names) - 1 }

// SubexpNames returns the group names in textual order. names[0] is the
// whole match and unnamed groups are "".
func (m *Matcher) SubexpNames() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// EngineGroup returns the number the engine gives to group i, or -1 when
// there is no such group. It differs from i for engines that number unnamed
// groups before named ones.
func (m *Matcher) EngineGroup(i int) int {
	if i < 0 || i >= len(m.order) {
		return -1
	}
	return m.order[i]
}

// SubexpIndex returns the position of the first group called name, or -1.
func (m *Matcher) SubexpIndex(name string) int {
	for i := 1; i < len(m.names); i++ {
		if m.names[i] == name {
			return i
		}
	}
	return -1
}

// Search returns the leftmost match in text, or nil when there is none.
func (m *Matcher) Search(text string) (*Match, error) {
	all, err := m.FindAll(text, 1)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

// Match returns the match starting at the beginning of text, or nil.
func (m *Matcher) Match(text string) (*Match, error) {
	found, err := m.Search(text)
	if err != nil || found == nil || found.Start() != 0 {
		return nil, err
	}
	return found, nil
}

// FindAll returns up to n successive non-overlapping matches; n < 0 means
// all.
func (m *Matcher) FindAll(text string, n int) ([]*Match, error) {
	if n == 0 {
		return nil, nil
	}
	raw, err := m.backend.FindAll(text, n)
	if err != nil {
		return nil, err
	}
	out := make([]*Match, 0, len(raw))
	for _, loc := range raw {
		out = append(out, m.newMatch(text, loc))
	}
	return out, nil
}

func (m *Matcher) newMatch(text string, loc []int) *Match {
	index := make([]int, 2*len(m.order))
	for i, g := range m.order {
		if 2*g+1 < len(loc) {
			index[2*i], index[2*i+1] = loc[2*g], loc[2*g+1]
		} else {
			index[2*i], index[2*i+1] = -1, -1
		}
	}
	return &Match{text: text, index: index, names: m.names}
}

// Match is one match of a pattern.
type Match struct {
	text  string
	index []int
	names []string
}

// Start returns the byte offset where the match begins.
func (m *Match) Start() int { return m.index[0] }

// End returns the byte offset just after the match.
func (m *Match) End() int { return m.index[1] }

// Text returns the matched text.
func (m *Match) Text() string { return m.text[m.index[0]:m.index[1]] }

// Span returns the byte offsets of group i, or -1, -1 when it did not
// participate or does not exist.
func (m *Match) Span(i int) (int, int) {
	if i < 0 || 2*i+1 >= len(m.index) {
		return -1, -1
	}
	return m.index[2*i], m.index[2*i+1]
}

// Group returns the text of group i; group 0 is the whole match. ok is
// false when the group did not participate in the match.
func (m *Match) Group(i int) (string, bool) {
	start, end := m.Span(i)
	if start < 0 {
		return "", false
	}
	return m.text[start:end], true
}

// Named returns the text of the first group called name.
func (m *Match) Named(name string) (string, bool) {
	for i := 1; i < len(m.names); i++ {
		if m.names[i] == name {
			return m.Group(i)
		}
	}
	return "", false
}

// Groups returns the text of every capturing group, "" for groups that did
// not participate.
func (m *Match) Groups() []string {
	out := make([]string, 0, len(m.names)-1)
	for i := 1; i < len(m.names); i++ {
		s, _ := m.Group(i)
		out = append(out, s)
	}
	return out
}

// GroupDict maps the names of named groups that participated in the match
// to their text.
func (m *Match) GroupDict() map[string]string {
	out := make(map[string]string)
	for i := 1; i < len(m.names); i++ {
		name := m.names[i]
		if name == "" {
			continue
		}
		if _, dup := out[name]; dup {
			continue
		}
		if s, ok := m.Group(i); ok {
			out[name] = s
		}
	}
	return out
}

// String formats the match for debugging.
func (m *Match) String() string {
	return fmt.Sprintf("%q@%d", m.Text(), m.Start())
}
