package coregex

import (
	"testing"

	"github.com/coregx/coregex"
	"github.com/google/go-cmp/cmp"

	"github.com/KromDaniel/regkit/pkg/engine"
)

func TestFindAll(t *testing.T) {
	pattern := `(?P<kind>CREDIT|DEBIT)\s+(\d{1,2}/\d{1,2}/\d{4})`
	m, err := engine.Compile(New(), pattern, []string{"kind", ""})
	if err != nil {
		t.Fatal(err)
	}
	if m.Engine() != "coregex" {
		t.Errorf("Engine() = %q", m.Engine())
	}
	all, err := m.FindAll("CREDIT 03/01/2022, DEBIT 3/5/2022, VOID 1/1/2020", -1)
	if err != nil {
		t.Fatal(err)
	}
	var got [][]string
	for _, match := range all {
		got = append(got, match.Groups())
	}
	want := [][]string{{"CREDIT", "03/01/2022"}, {"DEBIT", "3/5/2022"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestWithConfig(t *testing.T) {
	m, err := engine.Compile(NewWithConfig(coregex.DefaultConfig()), `\bgo\b`, nil)
	if err != nil {
		t.Fatal(err)
	}
	all, _ := m.FindAll("go gopher go", -1)
	if len(all) != 2 {
		t.Errorf("FindAll() returned %d matches, want 2", len(all))
	}
}

func TestCompileError(t *testing.T) {
	if _, err := engine.Compile(New(), `(`, nil); err == nil {
		t.Error("expected compile error")
	}
}
