package generate_test

import (
	"fmt"

	"github.com/KromDaniel/regkit/pkg/generate"
	"github.com/KromDaniel/regkit/pkg/regkit"
)

func ExampleAnalyze() {
	r := regkit.New(regkit.OneOrMore(regkit.Digit), regkit.Lookahead(regkit.Text("px")))
	result := generate.Analyze(r)
	fmt.Println(result.Pattern)
	fmt.Println(result.Supported)
	// Output:
	// (?:\d)+(?=px)
	// [regexp2]
}
