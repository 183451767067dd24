package gamba

import "context"

// Simplifier simplifies mixed boolean-arithmetic expressions of one fixed
// bit width. A Simplifier holds no per-request state and is safe for
// concurrent use; every call is an independent pure computation.
type Simplifier struct {
	// Width is the bit width of every variable and constant, in [1, 64].
	Width uint

	// MaxSteps bounds the rewrite search. Zero means DefaultMaxSteps.
	MaxSteps int
}

// NewSimplifier returns a simplifier for the given bit width.
func NewSimplifier(width uint) *Simplifier {
	return &Simplifier{Width: width}
}

// Simplify parses the expression, rewrites it into an equivalent form of
// no greater cost and renders the result. Affine expressions are rebuilt
// directly from their extracted linear form; everything else goes through
// the bounded rewrite search. With linearOnly set, non-affine input is
// rejected with ErrNotLinear instead.
func (s *Simplifier) Simplify(ctx context.Context, input string, linearOnly bool) (string, error) {
	expr, err := Parse(input, s.Width)
	if err != nil {
		return "", err
	}

	result, err := s.SimplifyExpr(ctx, expr, linearOnly)
	if err != nil {
		return "", err
	}
	return Format(result), nil
}

// SimplifyExpr is Simplify on an already-parsed tree.
func (s *Simplifier) SimplifyExpr(ctx context.Context, expr Expr, linearOnly bool) (Expr, error) {
	form, err := AnalyzeLinear(expr, s.Width)
	if err != nil {
		return nil, err
	}

	if form != nil {
		result := form.Expr()
		// The synthesized form is canonical but not guaranteed smaller;
		// keep the input when it has strictly fewer nodes.
		if CountNodes(result) > CountNodes(expr) {
			return expr, nil
		}
		return result, nil
	}

	if linearOnly {
		return nil, ErrNotLinear
	}
	return Rewrite(ctx, expr, s.MaxSteps)
}

// CheckLinear reports whether the expression is an affine function of its
// variables at the given bit width.
func CheckLinear(input string, width uint) (bool, error) {
	expr, err := Parse(input, width)
	if err != nil {
		return false, err
	}
	form, err := AnalyzeLinear(expr, width)
	if err != nil {
		return false, err
	}
	return form != nil, nil
}
