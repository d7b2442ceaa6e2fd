package replace

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		template string
		wantSegs []Segment
		wantErr  bool
	}{
		{
			name:     "empty",
			template: "",
			wantSegs: []Segment{},
		},
		{
			name:     "literal only",
			template: "hello world",
			wantSegs: []Segment{{Type: SegmentLiteral, Literal: "hello world"}},
		},
		{
			name:     "full match",
			template: "$0",
			wantSegs: []Segment{{Type: SegmentFullMatch}},
		},
		{
			name:     "braced full match",
			template: "${0}",
			wantSegs: []Segment{{Type: SegmentFullMatch}},
		},
		{
			name:     "indexed",
			template: "$1",
			wantSegs: []Segment{{Type: SegmentCaptureIndex, CaptureIndex: 1}},
		},
		{
			name:     "two digit index",
			template: "$12x",
			wantSegs: []Segment{
				{Type: SegmentCaptureIndex, CaptureIndex: 12},
				{Type: SegmentLiteral, Literal: "x"},
			},
		},
		{
			name:     "named",
			template: "<$user>",
			wantSegs: []Segment{
				{Type: SegmentLiteral, Literal: "<"},
				{Type: SegmentCaptureName, CaptureName: "user"},
				{Type: SegmentLiteral, Literal: ">"},
			},
		},
		{
			name:     "braced name",
			template: "${user}name",
			wantSegs: []Segment{
				{Type: SegmentCaptureName, CaptureName: "user"},
				{Type: SegmentLiteral, Literal: "name"},
			},
		},
		{
			name:     "escaped dollar merges with literal",
			template: "cost: $$5",
			wantSegs: []Segment{{Type: SegmentLiteral, Literal: "cost: $5"}},
		},
		{
			name:     "trailing dollar",
			template: "a$",
			wantSegs: []Segment{{Type: SegmentLiteral, Literal: "a$"}},
		},
		{
			name:     "dollar before punctuation",
			template: "$-1",
			wantSegs: []Segment{{Type: SegmentLiteral, Literal: "$-1"}},
		},
		{
			name:     "unclosed brace",
			template: "${name",
			wantErr:  true,
		},
		{
			name:     "empty brace",
			template: "${}",
			wantErr:  true,
		},
		{
			name:     "mixed brace",
			template: "${1a}",
			wantErr:  true,
		},
		{
			name:     "invalid name",
			template: "${a-b}",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.template)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error", tt.template)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.template, err)
			}
			if diff := cmp.Diff(tt.wantSegs, got.Segments); diff != "" {
				t.Errorf("Parse(%q) segments mismatch (-want +got):\n%s", tt.template, diff)
			}
			if got.String() != tt.template {
				t.Errorf("String() = %q, want %q", got.String(), tt.template)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	names := []string{"", "", "year"}
	tests := []struct {
		template string
		wantErr  bool
	}{
		{"$0", false},
		{"$1-$2", false},
		{"${year}", false},
		{"$3", true},
		{"${month}", true},
		{"plain", false},
	}

	for _, tt := range tests {
		tmpl, err := Parse(tt.template)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.template, err)
		}
		err = tmpl.Validate(names)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownGroup) {
				t.Errorf("Validate(%q) = %v, want ErrUnknownGroup", tt.template, err)
			}
		} else if err != nil {
			t.Errorf("Validate(%q) unexpected error: %v", tt.template, err)
		}
	}
}

type fakeCaptures struct {
	groups []string
	named  map[string]string
}

func (f fakeCaptures) Group(i int) (string, bool) {
	if i < 0 || i >= len(f.groups) {
		return "", false
	}
	return f.groups[i], true
}

func (f fakeCaptures) Named(name string) (string, bool) {
	s, ok := f.named[name]
	return s, ok
}

func TestExpand(t *testing.T) {
	c := fakeCaptures{
		groups: []string{"2024-03-01", "2024", "03"},
		named:  map[string]string{"day": "01"},
	}
	tests := []struct {
		template string
		want     string
	}{
		{"$0", "2024-03-01"},
		{"$2/${day}/$1", "03/01/2024"},
		{"[$9]", "[]"},
		{"${missing}", ""},
		{"$$$1", "$2024"},
	}

	for _, tt := range tests {
		tmpl, err := Parse(tt.template)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.template, err)
		}
		got := string(tmpl.Expand([]byte("> "), c))
		if got != "> "+tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.template, got, "> "+tt.want)
		}
	}
}
