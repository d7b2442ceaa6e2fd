package regkit

import (
	"fmt"
	"strings"
)

// Switch is the state of one inline flag.
type Switch uint8

const (
	// Unset leaves the flag as inherited.
	Unset Switch = iota
	// Enable turns the flag on for the wrapped fragment.
	Enable
	// Disable turns the flag off for the wrapped fragment.
	Disable
)

// Flags configures a scoped inline flag group. Only one of ASCII, Locale
// and Unicode may be enabled, and none of them can be disabled.
type Flags struct {
	ASCII      Switch // a
	FullCase   Switch // f
	IgnoreCase Switch // i
	Locale     Switch // L
	Multiline  Switch // m
	DotAll     Switch // s
	Unicode    Switch // u
	Verbose    Switch // x
	Word       Switch // w
}

type flagField struct {
	name   string
	letter string
	state  Switch
}

// fields lists the flags in rendering order.
func (f Flags) fields() []flagField {
	return []flagField{
		{"ASCII", "a", f.ASCII},
		{"FullCase", "f", f.FullCase},
		{"IgnoreCase", "i", f.IgnoreCase},
		{"Locale", "L", f.Locale},
		{"Multiline", "m", f.Multiline},
		{"DotAll", "s", f.DotAll},
		{"Unicode", "u", f.Unicode},
		{"Verbose", "x", f.Verbose},
		{"Word", "w", f.Word},
	}
}

// Validate reports conflicting character-semantics flags.
func (f Flags) Validate() error {
	var semantics []string
	for _, c := range []struct {
		name  string
		state Switch
	}{{"ASCII", f.ASCII}, {"Locale", f.Locale}, {"Unicode", f.Unicode}} {
		switch c.state {
		case Enable:
			semantics = append(semantics, c.name)
		case Disable:
			return fmt.Errorf("%w: %s can only be enabled", ErrInvalidConfiguration, c.name)
		}
	}
	if len(semantics) > 1 {
		return fmt.Errorf("%w: %s are mutually exclusive", ErrInvalidConfiguration, strings.Join(semantics, " and "))
	}
	for _, fl := range f.fields() {
		if fl.state > Disable {
			return fmt.Errorf("%w: invalid state %d for %s", ErrInvalidConfiguration, fl.state, fl.name)
		}
	}
	return nil
}

// letters renders "on-off", e.g. "ai-m". The "-" is omitted when nothing
// is disabled.
func (f Flags) letters() string {
	var on, off strings.Builder
	for _, fl := range f.fields() {
		switch fl.state {
		case Enable:
			on.WriteString(fl.letter)
		case Disable:
			off.WriteString(fl.letter)
		}
	}
	if off.Len() == 0 {
		return on.String()
	}
	return on.String() + "-" + off.String()
}

// WithFlags scopes flags to the fragment of c: (?on-off:...).
func WithFlags(c Component, flags Flags) (Expr, error) {
	if err := flags.Validate(); err != nil {
		return Expr{}, err
	}
	return Expr{
		fragment: "(?" + flags.letters() + ":" + c.Fragment() + ")",
		lay:      c.layout(),
	}, nil
}

// MustWithFlags is like WithFlags but panics on error.
func MustWithFlags(c Component, flags Flags) Expr {
	e, err := WithFlags(c, flags)
	if err != nil {
		panic(err)
	}
	return e
}

// GlobalFlags configures a flag marker that applies from its position to
// the end of the pattern. Global flags can only be turned on.
type GlobalFlags struct {
	BestMatch    bool // b
	EnhanceMatch bool // e
	POSIX        bool // p
	Reverse      bool // r
	Version0     bool // V0
	Version1     bool // V1
	IgnoreCase   bool // i
	Multiline    bool // m
	DotAll       bool // s
	Verbose      bool // x
}

// Validate reports conflicting version flags.
func (g GlobalFlags) Validate() error {
	if g.Version0 && g.Version1 {
		return fmt.Errorf("%w: Version0 and Version1 are mutually exclusive", ErrInvalidConfiguration)
	}
	return nil
}

func (g GlobalFlags) letters() string {
	var b strings.Builder
	for _, fl := range []struct {
		on     bool
		letter string
	}{
		{g.BestMatch, "b"},
		{g.EnhanceMatch, "e"},
		{g.POSIX, "p"},
		{g.Reverse, "r"},
		{g.Version0, "V0"},
		{g.Version1, "V1"},
		{g.IgnoreCase, "i"},
		{g.Multiline, "m"},
		{g.DotAll, "s"},
		{g.Verbose, "x"},
	} {
		if fl.on {
			b.WriteString(fl.letter)
		}
	}
	return b.String()
}

// WithGlobalFlags prepends a global flag marker (?letters) to the fragment
// of c. An empty configuration returns the fragment unchanged.
func WithGlobalFlags(c Component, flags GlobalFlags) (Expr, error) {
	if err := flags.Validate(); err != nil {
		return Expr{}, err
	}
	letters := flags.letters()
	if letters == "" {
		return Expr{fragment: c.Fragment(), lay: c.layout()}, nil
	}
	return Expr{fragment: "(?" + letters + ")" + c.Fragment(), lay: c.layout()}, nil
}
