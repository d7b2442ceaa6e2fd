package generate

import (
	"sort"

	"github.com/KromDaniel/regkit/pkg/regkit"
)

// AnalysisResult describes a pattern without generating code.
type AnalysisResult struct {
	Pattern  string
	Captures []string

	// Supported lists the targets whose engine compiles the pattern, sorted.
	Supported []Target

	// Rejected maps each remaining target to the engine's error message.
	Rejected map[Target]string

	// ReferenceError is set when a backreference does not refer to a
	// preceding capturing group.
	ReferenceError string
}

// Analyze compiles r with the engine of every target and reports which of
// them accept it.
//
// Example:
//
//	result := generate.Analyze(regkit.New(regkit.Lookahead(regkit.Text("a"))))
//	fmt.Println(result.Supported) // [regexp2]
func Analyze(r *regkit.Regex) *AnalysisResult {
	result := &AnalysisResult{
		Pattern:  r.Pattern(),
		Captures: r.Captures(),
		Rejected: make(map[Target]string),
	}
	if err := r.CheckReferences(); err != nil {
		result.ReferenceError = err.Error()
	}
	for _, t := range []Target{TargetRegexp, TargetRegexp2, TargetRE2, TargetCoregex} {
		if _, err := r.Compile(t.Engine()); err != nil {
			result.Rejected[t] = err.Error()
			continue
		}
		result.Supported = append(result.Supported, t)
	}
	sort.Slice(result.Supported, func(i, j int) bool { return result.Supported[i] < result.Supported[j] })
	return result
}

