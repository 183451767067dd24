package gamba

import "strings"

// Classification describes structural and semantic properties of one
// expression: how many variables it uses, whether it is an affine
// function, and how its operators mix arithmetic with bitwise logic.
type Classification struct {
	VarCount    int
	Linear      bool
	StringLen   int // length of the input with spaces removed
	NodeCount   int
	Alternation int // arithmetic/bitwise switches between adjacent operators
	Terms       int // term count of the linear form; zero when not linear
}

// Classify parses and classifies the given expression.
func Classify(input string, width uint) (*Classification, error) {
	expr, err := Parse(input, width)
	if err != nil {
		return nil, err
	}

	c := &Classification{
		VarCount:    len(Vars(expr)),
		StringLen:   len(strings.ReplaceAll(input, " ", "")),
		NodeCount:   CountNodes(expr),
		Alternation: alternation(expr),
	}

	form, err := AnalyzeLinear(expr, width)
	if err != nil {
		return nil, err
	}
	if form != nil {
		c.Linear = true
		c.Terms = countTerms(form)
	}
	return c, nil
}

// operator categories for the alternation count
const (
	catNone = iota
	catArithmetic
	catBitwise
)

func exprCategory(expr Expr) int {
	switch expr := expr.(type) {
	case *UnaryExpr:
		if expr.Op == NEG {
			return catArithmetic
		}
		return catBitwise
	case *BinaryExpr:
		if expr.Op.IsBitwise() {
			return catBitwise
		}
		// Shifts scale by powers of two and count as arithmetic.
		return catArithmetic
	default:
		return catNone
	}
}

// alternation counts the parent-child operator edges whose categories
// differ. A purely arithmetic or purely bitwise expression has
// alternation zero; heavily mixed boolean-arithmetic scores high.
func alternation(expr Expr) int {
	n := 0
	walkAlternation(expr, catNone, &n)
	return n
}

func walkAlternation(expr Expr, parent int, n *int) {
	cat := exprCategory(expr)
	if cat != catNone && parent != catNone && cat != parent {
		*n++
	}
	if cat == catNone {
		cat = parent
	}

	switch expr := expr.(type) {
	case *UnaryExpr:
		walkAlternation(expr.X, cat, n)
	case *BinaryExpr:
		walkAlternation(expr.LHS, cat, n)
		walkAlternation(expr.RHS, cat, n)
	}
}

// countTerms returns the number of terms of the synthesized linear form.
func countTerms(form *LinearForm) int {
	n := 0
	for _, c := range form.Coeffs {
		if !c.IsZero() {
			n++
		}
	}
	if !form.Const.IsZero() || n == 0 {
		n++
	}
	return n
}
