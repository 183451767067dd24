package gamba_test

import (
	"testing"

	"github.com/Colton1skees/GAMBA"
	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"((x))", "x"},
		{"x+y*z", "x+y*z"},
		{"(x+y)*z", "(x+y)*z"},
		{"x&y|z", "x&y|z"},
		{"(x|y)&z", "(x|y)&z"},
		{"x^y&z", "x^y&z"},
		{"x-y-z", "x-y-z"},
		{"x-(y-z)", "x-(y-z)"},
		{"x<<y+z", "x<<y+z"},
		{"(x<<y)+z", "(x<<y)+z"},
		{"~x&y", "~x&y"},
		{"-x*y", "-x*y"},
		{"~(x&y)", "~(x&y)"},
		{"x-(-y)", "x--y"},
		{"2*x+3*y", "2*x+3*y"},
		{"x-1", "255+x"},
		{"2*x+3*y+5", "5+2*x+3*y"},
	} {
		t.Run(tt.input, func(t *testing.T) {
			if s := gamba.Format(mustParse(t, tt.input, 8)); s != tt.want {
				t.Fatalf("unexpected output: %s", s)
			}
		})
	}
}

// Formatted output must re-parse to a structurally equal tree.
func TestFormat_RoundTrip(t *testing.T) {
	for _, input := range []string{
		"x",
		"x+y*z",
		"(x+y)*z",
		"x&y|z^w",
		"x<<y+z>>w",
		"~x*-y",
		"x--y",
		"x-(y-z)",
		"(x^y)&(x|z)",
		"2*x+3*y+5",
		"5-x-y",
		"(x&y)|(x&~y)",
		"1+2*x",
		"x>>(y&3)",
	} {
		t.Run(input, func(t *testing.T) {
			expr := mustParse(t, input, 8)
			reparsed := mustParse(t, gamba.Format(expr), 8)
			if diff := cmp.Diff(expr, reparsed); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
