package gamba

// Verify reports whether two expressions of the same width evaluate
// identically across the sampling battery over the union of their
// variables.
//
// For small assignment spaces the battery is exhaustive and the answer is
// exact. Beyond that bound the check is probabilistic: statistically strong
// but not a mathematical proof of equivalence. This is a deliberate
// trade-off against combinatorial blow-up; a symbolic normal-form check for
// large variable counts is possible future work.
func Verify(original, candidate Expr, width uint) (bool, error) {
	assert(ExprWidth(original) == width, "verify: original width mismatch: %d != %d", ExprWidth(original), width)
	assert(ExprWidth(candidate) == width, "verify: candidate width mismatch: %d != %d", ExprWidth(candidate), width)

	s := newSampler(Vars(original, candidate), width)
	for _, a := range s.Assignments() {
		ov, err := Evaluate(original, a)
		if err != nil {
			return false, err
		}
		cv, err := Evaluate(candidate, a)
		if err != nil {
			return false, err
		}
		if !ov.Eq(cv) {
			return false, nil
		}
	}
	return true, nil
}
