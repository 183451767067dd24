package gamba

import (
	"context"

	"github.com/benbjohnson/immutable"
	log "github.com/sirupsen/logrus"
)

// DefaultMaxSteps is the default rewrite-search step budget. Exhausting it
// is a resource bound, not a failure; the best verified candidate found so
// far is returned.
const DefaultMaxSteps = 128

// rewriteRule rewrites a single node into an equivalent node, or returns
// nil when it does not apply. Rules must be sound on their own; the search
// additionally verifies every improvement against the original tree before
// accepting it.
type rewriteRule struct {
	name  string
	apply func(Expr) Expr
}

// rewriteRules is the process-wide rule registry. It is initialized once
// and read-only thereafter; rule order is part of the engine's determinism.
var rewriteRules = []rewriteRule{
	{"demorgan-and", ruleDeMorganAnd},
	{"demorgan-or", ruleDeMorganOr},
	{"absorb", ruleAbsorb},
	{"complement", ruleComplement},
	{"not-from-xor", ruleNotFromXor},
	{"neg-from-mul", ruleNegFromMul},
	{"add-neg", ruleAddNeg},
	{"sub-neg", ruleSubNeg},
	{"neg-not", ruleNegNot},
	{"collect-terms", ruleCollectTerms},
	{"factor-and", ruleFactorAnd},
	{"factor-or", ruleFactorOr},
	{"xor-from-or-and", ruleXorFromOrAnd},
	{"add-from-or-and", ruleAddFromOrAnd},
	{"add-from-xor-and", ruleAddFromXorAnd},
	{"bitwise-resynth", ruleBitwiseResynth},
	{"linear-resynth", ruleLinearResynth},
}

// Rewrite searches for an equivalent expression of strictly lower cost,
// using bounded best-first search over the rule registry. The returned
// expression is always verified against the input; if no verified
// improvement is found the input itself is returned. Cancellation is
// checked at iteration boundaries.
func Rewrite(ctx context.Context, expr Expr, maxSteps int) (Expr, error) {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	width := ExprWidth(expr)

	best, bestCost := expr, Cost(expr)

	// Frontier of candidates ordered by (cost, insertion sequence). The
	// sequence keeps keys unique and the expansion order deterministic.
	frontier := immutable.NewSortedMap[uint64, Expr](nil)
	frontier = frontier.Set(frontierKey(bestCost, 0), expr)
	seq := uint64(1)

	seen := map[string]struct{}{expr.String(): {}}

	steps := 0
	for ; frontier.Len() > 0 && steps < maxSteps; steps++ {
		select {
		case <-ctx.Done():
			log.Debugf("rewrite: canceled after %d steps", steps)
			return best, nil
		default:
		}

		// Pop the cheapest candidate.
		itr := frontier.Iterator()
		itr.First()
		key, cur, _ := itr.Next()
		frontier = frontier.Delete(key)
		curCost := Cost(cur)

		for _, cand := range neighbors(cur) {
			cost := Cost(cand)
			if cost > curCost {
				continue // monotonic improvement only
			}

			id := cand.String()
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			if cost < bestCost {
				ok, err := Verify(expr, cand, width)
				if err != nil {
					return nil, err
				}
				if !ok {
					// A rule produced a non-equivalent candidate. Unsound
					// rules are a bug, but the search stays correct by
					// refusing the candidate.
					log.Warnf("rewrite: dropping unverified candidate %q", Format(cand))
					continue
				}
				log.Debugf("rewrite: improved cost %d -> %d via %q", bestCost, cost, Format(cand))
				best, bestCost = cand, cost
			}

			frontier = frontier.Set(frontierKey(cost, seq), cand)
			seq++
		}
	}

	if frontier.Len() > 0 && steps >= maxSteps {
		log.Debugf("rewrite: %v after %d steps, %d candidates unexplored", ErrBudgetExhausted, steps, frontier.Len())
	}
	return best, nil
}

func frontierKey(cost int, seq uint64) uint64 {
	return uint64(cost)<<40 | seq
}

// neighbors returns every tree obtained by applying one registry rule to
// one node, in deterministic order.
func neighbors(expr Expr) []Expr {
	var out []Expr

	for _, rule := range rewriteRules {
		if r := rule.apply(expr); r != nil && CompareExpr(r, expr) != 0 {
			out = append(out, r)
		}
	}

	switch expr := expr.(type) {
	case *UnaryExpr:
		for _, x := range neighbors(expr.X) {
			out = append(out, NewUnaryExpr(expr.Op, x))
		}
	case *BinaryExpr:
		for _, lhs := range neighbors(expr.LHS) {
			out = append(out, NewBinaryExpr(expr.Op, lhs, expr.RHS))
		}
		for _, rhs := range neighbors(expr.RHS) {
			out = append(out, NewBinaryExpr(expr.Op, expr.LHS, rhs))
		}
	}
	return out
}

// Matching helpers.

func asBinary(e Expr, op BinaryOp) (*BinaryExpr, bool) {
	b, ok := e.(*BinaryExpr)
	if !ok || b.Op != op {
		return nil, false
	}
	return b, true
}

func asUnary(e Expr, op UnaryOp) (*UnaryExpr, bool) {
	u, ok := e.(*UnaryExpr)
	if !ok || u.Op != op {
		return nil, false
	}
	return u, true
}

func constValue(e Expr) (Value, bool) {
	c, ok := e.(*ConstantExpr)
	if !ok {
		return Value{}, false
	}
	return c.Value, true
}

// sameOperands returns true if {a1, b1} and {a2, b2} are the same pair of
// trees, in either order.
func sameOperands(a1, b1, a2, b2 Expr) bool {
	if CompareExpr(a1, a2) == 0 && CompareExpr(b1, b2) == 0 {
		return true
	}
	return CompareExpr(a1, b2) == 0 && CompareExpr(b1, a2) == 0
}

// ruleDeMorganAnd rewrites ~a & ~b to ~(a|b).
func ruleDeMorganAnd(e Expr) Expr {
	b, ok := asBinary(e, AND)
	if !ok {
		return nil
	}
	l, lok := asUnary(b.LHS, NOT)
	r, rok := asUnary(b.RHS, NOT)
	if !lok || !rok {
		return nil
	}
	return NewUnaryExpr(NOT, NewBinaryExpr(OR, l.X, r.X))
}

// ruleDeMorganOr rewrites ~a | ~b to ~(a&b).
func ruleDeMorganOr(e Expr) Expr {
	b, ok := asBinary(e, OR)
	if !ok {
		return nil
	}
	l, lok := asUnary(b.LHS, NOT)
	r, rok := asUnary(b.RHS, NOT)
	if !lok || !rok {
		return nil
	}
	return NewUnaryExpr(NOT, NewBinaryExpr(AND, l.X, r.X))
}

// ruleAbsorb rewrites a|(a&b) and a&(a|b) to a, in any operand order.
func ruleAbsorb(e Expr) Expr {
	b, ok := e.(*BinaryExpr)
	if !ok || (b.Op != OR && b.Op != AND) {
		return nil
	}
	inner := AND
	if b.Op == AND {
		inner = OR
	}

	if in, ok := asBinary(b.RHS, inner); ok {
		if CompareExpr(b.LHS, in.LHS) == 0 || CompareExpr(b.LHS, in.RHS) == 0 {
			return b.LHS
		}
	}
	if in, ok := asBinary(b.LHS, inner); ok {
		if CompareExpr(b.RHS, in.LHS) == 0 || CompareExpr(b.RHS, in.RHS) == 0 {
			return b.RHS
		}
	}
	return nil
}

// ruleComplement rewrites a&~a to 0 and a|~a, a^~a to all ones.
func ruleComplement(e Expr) Expr {
	b, ok := e.(*BinaryExpr)
	if !ok || !b.Op.IsBitwise() {
		return nil
	}

	matches := false
	if n, ok := asUnary(b.RHS, NOT); ok && CompareExpr(b.LHS, n.X) == 0 {
		matches = true
	}
	if n, ok := asUnary(b.LHS, NOT); ok && CompareExpr(b.RHS, n.X) == 0 {
		matches = true
	}
	if !matches {
		return nil
	}

	width := ExprWidth(e)
	if b.Op == AND {
		return NewConstantExpr(0, width)
	}
	return NewConstantExpr(bitmask(width), width)
}

// ruleNotFromXor rewrites the xor with all ones to a complement.
func ruleNotFromXor(e Expr) Expr {
	b, ok := asBinary(e, XOR)
	if !ok {
		return nil
	}
	if c, ok := constValue(b.LHS); ok && c.IsAllOnes() {
		return NewUnaryExpr(NOT, b.RHS)
	}
	if c, ok := constValue(b.RHS); ok && c.IsAllOnes() {
		return NewUnaryExpr(NOT, b.LHS)
	}
	return nil
}

// ruleNegFromMul rewrites multiplication by minus one to a negation.
func ruleNegFromMul(e Expr) Expr {
	b, ok := asBinary(e, MUL)
	if !ok {
		return nil
	}
	if c, ok := constValue(b.LHS); ok && c.IsAllOnes() {
		return NewUnaryExpr(NEG, b.RHS)
	}
	return nil
}

// ruleAddNeg rewrites a+(-b) to a-b.
func ruleAddNeg(e Expr) Expr {
	b, ok := asBinary(e, ADD)
	if !ok {
		return nil
	}
	if n, ok := asUnary(b.RHS, NEG); ok {
		return NewBinaryExpr(SUB, b.LHS, n.X)
	}
	if n, ok := asUnary(b.LHS, NEG); ok {
		return NewBinaryExpr(SUB, b.RHS, n.X)
	}
	return nil
}

// ruleSubNeg rewrites a-(-b) to a+b.
func ruleSubNeg(e Expr) Expr {
	b, ok := asBinary(e, SUB)
	if !ok {
		return nil
	}
	if n, ok := asUnary(b.RHS, NEG); ok {
		return NewBinaryExpr(ADD, b.LHS, n.X)
	}
	return nil
}

// ruleNegNot rewrites -~a to a+1 and ~-a to a-1.
func ruleNegNot(e Expr) Expr {
	if n, ok := asUnary(e, NEG); ok {
		if in, ok := asUnary(n.X, NOT); ok {
			return NewBinaryExpr(ADD, NewConstantExpr(1, ExprWidth(e)), in.X)
		}
	}
	if n, ok := asUnary(e, NOT); ok {
		if in, ok := asUnary(n.X, NEG); ok {
			return NewBinaryExpr(ADD, NewConstantExpr(bitmask(ExprWidth(e)), ExprWidth(e)), in.X)
		}
	}
	return nil
}

// linearTerm splits an expression into (coefficient, base): c*b yields
// (c, b), -b yields (-1, b) and anything else is itself with coefficient
// one.
func linearTerm(e Expr) (Value, Expr) {
	width := ExprWidth(e)
	if b, ok := asBinary(e, MUL); ok {
		if c, ok := constValue(b.LHS); ok {
			return c, b.RHS
		}
	}
	if n, ok := asUnary(e, NEG); ok {
		return NewValue(0, width).Sub(NewValue(1, width)), n.X
	}
	return NewValue(1, width), e
}

// ruleCollectTerms folds a sum or difference of terms over a common base
// into a single multiple: a+a, 3*a+a, 5*a-2*a and the like.
func ruleCollectTerms(e Expr) Expr {
	b, ok := e.(*BinaryExpr)
	if !ok || (b.Op != ADD && b.Op != SUB) {
		return nil
	}

	lc, lb := linearTerm(b.LHS)
	rc, rb := linearTerm(b.RHS)
	if CompareExpr(lb, rb) != 0 || IsConstantExpr(lb) {
		return nil
	}

	c := lc.Add(rc)
	if b.Op == SUB {
		c = lc.Sub(rc)
	}
	return NewBinaryExpr(MUL, &ConstantExpr{Value: c}, lb)
}

// ruleFactorAnd rewrites (a&b)|(a&c) to a&(b|c).
func ruleFactorAnd(e Expr) Expr {
	b, ok := asBinary(e, OR)
	if !ok {
		return nil
	}
	l, lok := asBinary(b.LHS, AND)
	r, rok := asBinary(b.RHS, AND)
	if !lok || !rok {
		return nil
	}
	common, lrest, rrest := commonOperand(l, r)
	if common == nil {
		return nil
	}
	return NewBinaryExpr(AND, common, NewBinaryExpr(OR, lrest, rrest))
}

// ruleFactorOr rewrites (a|b)&(a|c) to a|(b&c).
func ruleFactorOr(e Expr) Expr {
	b, ok := asBinary(e, AND)
	if !ok {
		return nil
	}
	l, lok := asBinary(b.LHS, OR)
	r, rok := asBinary(b.RHS, OR)
	if !lok || !rok {
		return nil
	}
	common, lrest, rrest := commonOperand(l, r)
	if common == nil {
		return nil
	}
	return NewBinaryExpr(OR, common, NewBinaryExpr(AND, lrest, rrest))
}

// commonOperand finds an operand shared between two binary expressions and
// returns it along with the two remaining operands.
func commonOperand(l, r *BinaryExpr) (common, lrest, rrest Expr) {
	switch {
	case CompareExpr(l.LHS, r.LHS) == 0:
		return l.LHS, l.RHS, r.RHS
	case CompareExpr(l.LHS, r.RHS) == 0:
		return l.LHS, l.RHS, r.LHS
	case CompareExpr(l.RHS, r.LHS) == 0:
		return l.RHS, l.LHS, r.RHS
	case CompareExpr(l.RHS, r.RHS) == 0:
		return l.RHS, l.LHS, r.LHS
	default:
		return nil, nil, nil
	}
}

// ruleXorFromOrAnd rewrites (a|b)-(a&b) to a^b.
func ruleXorFromOrAnd(e Expr) Expr {
	b, ok := asBinary(e, SUB)
	if !ok {
		return nil
	}
	l, lok := asBinary(b.LHS, OR)
	r, rok := asBinary(b.RHS, AND)
	if !lok || !rok || !sameOperands(l.LHS, l.RHS, r.LHS, r.RHS) {
		return nil
	}
	return NewBinaryExpr(XOR, l.LHS, l.RHS)
}

// ruleAddFromOrAnd rewrites (a|b)+(a&b) to a+b.
func ruleAddFromOrAnd(e Expr) Expr {
	b, ok := asBinary(e, ADD)
	if !ok {
		return nil
	}
	for _, pair := range [2][2]Expr{{b.LHS, b.RHS}, {b.RHS, b.LHS}} {
		l, lok := asBinary(pair[0], OR)
		r, rok := asBinary(pair[1], AND)
		if lok && rok && sameOperands(l.LHS, l.RHS, r.LHS, r.RHS) {
			return NewBinaryExpr(ADD, l.LHS, l.RHS)
		}
	}
	return nil
}

// ruleAddFromXorAnd rewrites (a^b)+2*(a&b) to a+b.
func ruleAddFromXorAnd(e Expr) Expr {
	b, ok := asBinary(e, ADD)
	if !ok {
		return nil
	}
	for _, pair := range [2][2]Expr{{b.LHS, b.RHS}, {b.RHS, b.LHS}} {
		x, xok := asBinary(pair[0], XOR)
		m, mok := asBinary(pair[1], MUL)
		if !xok || !mok {
			continue
		}
		c, cok := constValue(m.LHS)
		if !cok || c.V != 2 {
			continue
		}
		a, aok := asBinary(m.RHS, AND)
		if aok && sameOperands(x.LHS, x.RHS, a.LHS, a.RHS) {
			return NewBinaryExpr(ADD, x.LHS, x.RHS)
		}
	}
	return nil
}

// ruleBitwiseResynth re-expresses a node as the minimal disjunctive normal
// form of its truth table when the node computes a bitwise function of few
// variables.
func ruleBitwiseResynth(e Expr) Expr {
	cand, err := synthesizeBitwise(e, ExprWidth(e))
	if err != nil || cand == nil || Cost(cand) > Cost(e) {
		return nil
	}
	return cand
}

// linearResynthVarLimit caps per-node linear analysis inside the search;
// the sampling battery grows with the variable count.
const linearResynthVarLimit = 8

// ruleLinearResynth replaces a node that is affine in its variables with
// its synthesized linear form.
func ruleLinearResynth(e Expr) Expr {
	if len(Vars(e)) > linearResynthVarLimit {
		return nil
	}
	form, err := AnalyzeLinear(e, ExprWidth(e))
	if err != nil || form == nil {
		return nil
	}
	cand := form.Expr()
	if Cost(cand) > Cost(e) {
		return nil
	}
	return cand
}
