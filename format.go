package gamba

import (
	"bytes"
	"strconv"
)

// Operator precedence levels, loosest binding first. These mirror the
// grammar in Parse so that formatted output re-parses to a structurally
// equal tree.
const (
	precOr = iota + 1
	precXor
	precAnd
	precShift
	precSum
	precProduct
	precUnary
	precAtom
)

func exprPrec(expr Expr) int {
	switch expr := expr.(type) {
	case *ConstantExpr, *VarExpr:
		return precAtom
	case *UnaryExpr:
		return precUnary
	case *BinaryExpr:
		switch expr.Op {
		case OR:
			return precOr
		case XOR:
			return precXor
		case AND:
			return precAnd
		case SHL, LSHR:
			return precShift
		case ADD, SUB:
			return precSum
		case MUL:
			return precProduct
		default:
			panic("unreachable")
		}
	default:
		panic("unreachable")
	}
}

var binaryTokens = [...]string{
	ADD:  "+",
	SUB:  "-",
	MUL:  "*",
	AND:  "&",
	OR:   "|",
	XOR:  "^",
	SHL:  "<<",
	LSHR: ">>",
}

// Format renders the expression as infix text with a minimal number of
// parentheses. The output is deterministic and Parse(Format(e), w) is
// structurally equal to e.
func Format(expr Expr) string {
	var buf bytes.Buffer
	formatExpr(&buf, expr)
	return buf.String()
}

func formatExpr(buf *bytes.Buffer, expr Expr) {
	switch expr := expr.(type) {
	case *ConstantExpr:
		buf.WriteString(strconv.FormatUint(expr.Value.V, 10))
	case *VarExpr:
		buf.WriteString(expr.Name)
	case *UnaryExpr:
		if expr.Op == NEG {
			buf.WriteByte('-')
		} else {
			buf.WriteByte('~')
		}
		formatChild(buf, expr.X, precUnary)
	case *BinaryExpr:
		prec := exprPrec(expr)
		formatChild(buf, expr.LHS, prec)
		buf.WriteString(binaryTokens[expr.Op])
		// All binary operators associate to the left, so a right child at
		// the same level needs parentheses to survive a round-trip. The one
		// exception is a constant-led sum such as 5+(2*x+3*y): the
		// constructors hoist constants back to the head, so the flat form
		// re-parses to the same tree.
		if expr.Op == ADD && IsConstantExpr(expr.LHS) && exprPrec(expr.RHS) == precSum {
			formatExpr(buf, expr.RHS)
		} else {
			formatChild(buf, expr.RHS, prec+1)
		}
	default:
		panic("unreachable")
	}
}

func formatChild(buf *bytes.Buffer, child Expr, min int) {
	if exprPrec(child) < min {
		buf.WriteByte('(')
		formatExpr(buf, child)
		buf.WriteByte(')')
		return
	}
	formatExpr(buf, child)
}
