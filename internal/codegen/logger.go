package codegen

import (
	"fmt"
	"io"
	"os"
)

// Logger prints verbose progress of pattern generation. Lines logged
// through a scope carry the scope name, so the steps of one pattern can be
// picked out of a run over many.
type Logger struct {
	enabled bool
	out     *io.Writer // shared by a logger and its scopes
	scope   string
}

// NewLogger creates a logger writing to stderr. A disabled logger and all
// of its scopes print nothing.
func NewLogger(enabled bool) *Logger {
	var out io.Writer = os.Stderr
	return &Logger{enabled: enabled, out: &out}
}

// SetOutput redirects l and every scope derived from it to w.
func (l *Logger) SetOutput(w io.Writer) {
	*l.out = w
}

// Scope returns a logger prefixing its lines with name. Scopes of scopes
// join their names with "/".
func (l *Logger) Scope(name string) *Logger {
	if l.scope != "" {
		name = l.scope + "/" + name
	}
	return &Logger{enabled: l.enabled, out: l.out, scope: name}
}

// Log prints a formatted line if verbose mode is enabled.
func (l *Logger) Log(format string, args ...any) {
	if !l.enabled {
		return
	}
	prefix := "[regkit] "
	if l.scope != "" {
		prefix += l.scope + ": "
	}
	fmt.Fprintf(*l.out, prefix+format+"\n", args...)
}
