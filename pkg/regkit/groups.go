package regkit

import (
	"fmt"
	"strconv"
	"strings"
)

// Capture wraps nodes in an unnamed capturing group. Unnamed groups are
// numbered from 1 in left-to-right order of their opening parenthesis.
func Capture(nodes ...Node) Expr {
	e := wrap("(", nodes, ")")
	e.lay = e.lay.withCapture("")
	return e
}

// CaptureAs wraps nodes in a capturing group addressable by name.
func CaptureAs(name string, nodes ...Node) (Expr, error) {
	if !isGroupName(name) {
		return Expr{}, fmt.Errorf("%w: capture name %q must be a letter or underscore followed by letters, digits or underscores",
			ErrInvalidConfiguration, name)
	}
	e := wrap("(?<"+name+">", nodes, ")")
	e.lay = e.lay.withCapture(name)
	return e, nil
}

// MustCaptureAs is like CaptureAs but panics on error.
func MustCaptureAs(name string, nodes ...Node) Expr {
	e, err := CaptureAs(name, nodes...)
	if err != nil {
		panic(err)
	}
	return e
}

// Reference matches the text captured by the group called name. Whether
// such a group precedes the reference is checked by the engine, or eagerly
// by (*Regex).CheckReferences.
func Reference(name string) Expr {
	return Expr{
		fragment: `\k<` + name + `>`,
		lay:      layout{references: []reference{{name: name}}, events: []int{-1}},
	}
}

// ReferenceIndex matches the text captured by the n-th capturing group.
func ReferenceIndex(n int) Expr {
	return Expr{
		fragment: `\k<` + strconv.Itoa(n) + `>`,
		lay:      layout{references: []reference{{index: n}}, events: []int{-1}},
	}
}

// Atomic wraps nodes in an atomic group: once it has matched, the engine
// does not backtrack into it.
func Atomic(nodes ...Node) Expr {
	return wrap("(?>", nodes, ")")
}

// BranchReset joins alternatives in a branch reset group. Capturing groups
// in each alternative are numbered from the same starting index.
func BranchReset(alternatives ...Node) Expr {
	parts := make([]string, len(alternatives))
	var branches []layout
	for i, alt := range alternatives {
		var lay layout
		parts[i], lay = parse([]Node{alt})
		branches = append(branches, lay)
	}
	return Expr{
		fragment: "(?|" + strings.Join(parts, "|") + ")",
		lay:      mergeBranches(branches),
	}
}

// mergeBranches overlays the capture lists of branch reset alternatives:
// group i of the result is named if any alternative names its group i.
// References keep their textual order.
func mergeBranches(branches []layout) layout {
	var out layout
	for _, b := range branches {
		out.nested = out.nested || b.nested
		for i, name := range b.captures {
			if i == len(out.captures) {
				out.captures = append(out.captures, name)
				out.events = append(out.events, i)
			} else if out.captures[i] == "" {
				out.captures[i] = name
			}
		}
	}
	for _, b := range branches {
		for _, r := range b.references {
			out.events = append(out.events, -(len(out.references) + 1))
			out.references = append(out.references, r)
		}
	}
	return out
}

func isGroupName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
