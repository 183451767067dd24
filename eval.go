package gamba

// Assignment maps variable names to values. All values bound for a single
// evaluation must share the evaluated tree's width.
type Assignment map[string]Value

// Evaluate computes the value of the expression under the given assignment.
// It is a pure recursive fold; every variable of the tree must be bound or
// an *UnboundVariableError is returned.
func Evaluate(expr Expr, a Assignment) (Value, error) {
	switch expr := expr.(type) {
	case *ConstantExpr:
		return expr.Value, nil
	case *VarExpr:
		v, ok := a[expr.Name]
		if !ok {
			return Value{}, &UnboundVariableError{Name: expr.Name}
		}
		return v, nil
	case *UnaryExpr:
		x, err := Evaluate(expr.X, a)
		if err != nil {
			return Value{}, err
		}
		if expr.Op == NEG {
			return x.Neg(), nil
		}
		return x.Not(), nil
	case *BinaryExpr:
		lhs, err := Evaluate(expr.LHS, a)
		if err != nil {
			return Value{}, err
		}
		rhs, err := Evaluate(expr.RHS, a)
		if err != nil {
			return Value{}, err
		}
		switch expr.Op {
		case ADD:
			return lhs.Add(rhs), nil
		case SUB:
			return lhs.Sub(rhs), nil
		case MUL:
			return lhs.Mul(rhs), nil
		case AND:
			return lhs.And(rhs), nil
		case OR:
			return lhs.Or(rhs), nil
		case XOR:
			return lhs.Xor(rhs), nil
		case SHL:
			return lhs.Shl(rhs), nil
		case LSHR:
			return lhs.LShr(rhs), nil
		default:
			panic("unreachable")
		}
	default:
		panic("unreachable")
	}
}
