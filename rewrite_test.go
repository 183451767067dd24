package gamba_test

import (
	"context"
	"testing"

	"github.com/Colton1skees/GAMBA"
	"github.com/google/go-cmp/cmp"
)

func TestRewrite(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name  string
		input string
		want  string
	}{
		{"XorFromOrAnd", "(x|y)-(x&y)", "x^y"},
		{"AddFromOrAnd", "(x|y)+(x&y)", "x+y"},
		{"AddFromXorAnd", "(x^y)+2*(x&y)", "x+y"},
		{"Absorb", "x|(x&y)", "x"},
		{"AbsorbAnd", "x&(x|y)", "x"},
		{"Complement", "x&~x", "0"},
		{"ComplementOr", "x|~x", "255"},
		{"DeMorgan", "~x&~y", "~(x|y)"},
		{"NegNot", "-~x-1", "x"},
		{"CollectTerms", "3*x+2*x", "5*x"},
		{"BitwiseResynth", "(x|y)&(x|~y)", "x"},
		{"NoImprovement", "x&y", "x&y"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustParse(t, tt.input, 8)
			result, err := gamba.Rewrite(ctx, expr, 0)
			if err != nil {
				t.Fatal(err)
			}
			if s := gamba.Format(result); s != tt.want {
				t.Fatalf("unexpected result: %s", s)
			}
		})
	}

	t.Run("NestedSubtree", func(t *testing.T) {
		// The reducible pattern sits under an unrelated operator.
		expr := mustParse(t, "z*((x|y)-(x&y))", 8)
		result, err := gamba.Rewrite(ctx, expr, 0)
		if err != nil {
			t.Fatal(err)
		}
		if s := gamba.Format(result); s != "z*(x^y)" {
			t.Fatalf("unexpected result: %s", s)
		}
	})

	t.Run("NeverCostlier", func(t *testing.T) {
		for _, input := range []string{"x&y", "x*y+z", "(x<<y)|z", "~(x*y)"} {
			expr := mustParse(t, input, 8)
			result, err := gamba.Rewrite(ctx, expr, 0)
			if err != nil {
				t.Fatal(err)
			}
			if gamba.Cost(result) > gamba.Cost(expr) {
				t.Fatalf("result %s costs more than input %s", gamba.Format(result), input)
			}
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		expr := mustParse(t, "(x&~y)|(~x&y)", 8)
		a, err := gamba.Rewrite(ctx, expr, 0)
		if err != nil {
			t.Fatal(err)
		}
		b, err := gamba.Rewrite(ctx, expr, 0)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		expr := mustParse(t, "(x|y)-(x&y)", 8)
		result, err := gamba.Rewrite(canceled, expr, 0)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(expr, result); diff != "" {
			t.Fatal(diff)
		}
	})
}
