package gamba

// LinearForm is the affine representation Σ cᵢ·xᵢ + c₀ of an expression
// that the analyzer certified as linear. Variables are kept in order of
// first occurrence in the source tree; coefficients are modular values of
// the form's width.
type LinearForm struct {
	Vars   []string
	Coeffs []Value
	Const  Value
}

// Width returns the bit width of the form.
func (f *LinearForm) Width() uint { return f.Const.Width }

// Eval evaluates the form under the given assignment.
func (f *LinearForm) Eval(a Assignment) (Value, error) {
	acc := f.Const
	for i, name := range f.Vars {
		v, ok := a[name]
		if !ok {
			return Value{}, &UnboundVariableError{Name: name}
		}
		acc = acc.Add(f.Coeffs[i].Mul(v))
	}
	return acc, nil
}

// Expr synthesizes the minimal expression of the form: zero coefficients
// are dropped, unit coefficients lose their factor and coefficients in the
// upper half of the range are rendered subtractively. A form with no
// surviving terms reduces to its constant.
func (f *LinearForm) Expr() Expr {
	width := f.Width()

	// Seeding the chain with the constant lets negative coefficients
	// subtract from it instead of leading with a negation. The
	// constructors hoist a trailing constant to the head anyway, so the
	// positive-leading tree is unchanged.
	var expr Expr
	if !f.Const.IsZero() {
		expr = &ConstantExpr{Value: f.Const}
	}

	for i, c := range f.Coeffs {
		if c.IsZero() {
			continue
		}

		v := NewVarExpr(f.Vars[i], width)

		// Prefer the subtractive spelling when the two's complement value
		// of the coefficient is negative: smaller constants read better
		// and cost no more.
		negative := c.Signed() < 0
		abs := c
		if negative {
			abs = c.Neg()
		}

		// A leading negative non-unit term keeps its raw coefficient; a
		// separate negation would cost an extra node.
		if expr == nil && negative && !abs.IsOne() {
			negative, abs = false, c
		}

		var term Expr = v
		if !abs.IsOne() {
			term = NewBinaryExpr(MUL, &ConstantExpr{Value: abs}, v)
		}

		switch {
		case expr == nil && negative:
			expr = NewUnaryExpr(NEG, term)
		case expr == nil:
			expr = term
		case negative:
			expr = NewBinaryExpr(SUB, expr, term)
		default:
			expr = NewBinaryExpr(ADD, expr, term)
		}
	}

	if expr == nil {
		return &ConstantExpr{Value: f.Const}
	}
	return expr
}

// AnalyzeLinear decides whether the expression is an affine function of its
// variables under its width's modular semantics. If so it returns the
// extracted form; otherwise it returns nil.
//
// Candidate coefficients come from probing: the all-zero assignment yields
// the constant term and each unit assignment yields one coefficient. The
// candidate is then validated against the full sampling battery, which
// includes simultaneous-ones assignments; a bitwise interaction between two
// variables (such as x&y) survives unit probing but cannot survive the
// battery. For assignment spaces within the exhaustive bound the
// classification is exact.
func AnalyzeLinear(expr Expr, width uint) (*LinearForm, error) {
	assert(ExprWidth(expr) == width, "analyze: width mismatch: %d != %d", ExprWidth(expr), width)

	vars := Vars(expr)
	s := newSampler(vars, width)

	// Constant term from the all-zero probe.
	c0, err := Evaluate(expr, s.assignAll(0))
	if err != nil {
		return nil, err
	}

	form := &LinearForm{Vars: vars, Coeffs: make([]Value, len(vars)), Const: c0}
	for i := range vars {
		a := s.assignAll(0)
		a[vars[i]] = NewValue(1, width)

		v, err := Evaluate(expr, a)
		if err != nil {
			return nil, err
		}
		form.Coeffs[i] = v.Sub(c0)
	}

	// Validate the candidate across the battery.
	for _, a := range s.Assignments() {
		ev, err := Evaluate(expr, a)
		if err != nil {
			return nil, err
		}
		fv, err := form.Eval(a)
		if err != nil {
			return nil, err
		}
		if !ev.Eq(fv) {
			return nil, nil
		}
	}
	return form, nil
}
