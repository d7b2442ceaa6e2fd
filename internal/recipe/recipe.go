// Package recipe reads pattern definitions written as JSON and assembles
// them into regkit components.
//
// A recipe lists named patterns, each a sequence of nodes:
//
//	{
//	  "package": "ledger",
//	  "engine": "regexp2",
//	  "patterns": [{
//	    "name": "Entry",
//	    "nodes": [
//	      {"kind": "capture", "name": "type", "nodes": [
//	        {"kind": "choice", "nodes": [{"kind": "text", "text": "CREDIT"}, {"kind": "text", "text": "DEBIT"}]}
//	      ]},
//	      {"kind": "one_or_more", "nodes": [{"kind": "whitespace"}]},
//	      {"kind": "repeat", "min": 1, "max": 2, "nodes": [{"kind": "digit"}]}
//	    ]
//	  }]
//	}
//
// Unknown fields are rejected at every level.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/KromDaniel/regkit/pkg/generate"
	"github.com/KromDaniel/regkit/pkg/regkit"
)

// ErrInvalidRecipe is returned for recipes that cannot be assembled.
var ErrInvalidRecipe = errors.New("invalid recipe")

// File is a decoded recipe.
type File struct {
	// Package and Engine are defaults for code generation.
	Package     string       `json:"package,omitempty"`
	Engine      string       `json:"engine,omitempty"`
	Definitions []Definition `json:"patterns"`
}

// Definition is one named pattern.
type Definition struct {
	Name  string `json:"name"`
	Doc   string `json:"doc,omitempty"`
	Nodes []Node `json:"nodes"`
}

// Node is one component. Kind selects the component; the other fields are
// read as the kind requires.
type Node struct {
	Kind string `json:"kind"`

	// Text is the literal of "text" and the pattern of "raw".
	Text string `json:"text,omitempty"`
	// Name is the capture or reference name, the property name, the POSIX
	// class name or the character name.
	Name string `json:"name,omitempty"`
	// Index is the group number of a numbered reference.
	Index int `json:"index,omitempty"`

	Count int    `json:"count,omitempty"`
	Min   int    `json:"min,omitempty"`
	Max   int    `json:"max,omitempty"`
	Greed string `json:"greed,omitempty"`

	Chars   string `json:"chars,omitempty"`
	Literal string `json:"literal,omitempty"`
	Key     string `json:"key,omitempty"`
	Value   string `json:"value,omitempty"`

	Flags  *Flags       `json:"flags,omitempty"`
	Global *GlobalFlags `json:"global,omitempty"`

	// Nodes holds the children: the sequence of a group or quantifier, the
	// alternatives of "choice" and "branch_reset", the members of class
	// kinds.
	Nodes []Node `json:"nodes,omitempty"`
}

// Flags is the record of a "flags" node. Each field is "", "on" or "off".
type Flags struct {
	ASCII      string `json:"ascii,omitempty"`
	FullCase   string `json:"full_case,omitempty"`
	IgnoreCase string `json:"ignore_case,omitempty"`
	Locale     string `json:"locale,omitempty"`
	Multiline  string `json:"multiline,omitempty"`
	DotAll     string `json:"dot_all,omitempty"`
	Unicode    string `json:"unicode,omitempty"`
	Verbose    string `json:"verbose,omitempty"`
	Word       string `json:"word,omitempty"`
}

// GlobalFlags is the record of a "global_flags" node.
type GlobalFlags struct {
	BestMatch    bool `json:"best_match,omitempty"`
	EnhanceMatch bool `json:"enhance_match,omitempty"`
	POSIX        bool `json:"posix,omitempty"`
	Reverse      bool `json:"reverse,omitempty"`
	Version0     bool `json:"version0,omitempty"`
	Version1     bool `json:"version1,omitempty"`
	IgnoreCase   bool `json:"ignore_case,omitempty"`
	Multiline    bool `json:"multiline,omitempty"`
	DotAll       bool `json:"dot_all,omitempty"`
	Verbose      bool `json:"verbose,omitempty"`
}

// Decode reads a recipe from r.
func Decode(r io.Reader) (*File, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecipe, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after recipe", ErrInvalidRecipe)
	}
	if len(f.Definitions) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrInvalidRecipe)
	}
	return &f, nil
}

// Load reads the recipe file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Build assembles the definition.
func (d Definition) Build() (*regkit.Regex, error) {
	nodes, err := buildAll(d.Nodes, "nodes")
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", d.Name, err)
	}
	return regkit.New(nodes...), nil
}

// Patterns assembles every definition of f.
func (f *File) Patterns() ([]generate.Pattern, error) {
	out := make([]generate.Pattern, 0, len(f.Definitions))
	for _, d := range f.Definitions {
		r, err := d.Build()
		if err != nil {
			return nil, err
		}
		out = append(out, generate.Pattern{Name: d.Name, Regex: r, Doc: d.Doc})
	}
	return out, nil
}

// Lookup returns the definition called name.
func (f *File) Lookup(name string) (Definition, bool) {
	for _, d := range f.Definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
