package gamba

import "fmt"

// Expr represents a node of a mixed boolean-arithmetic expression tree.
// Nodes are immutable once constructed; rewrites build new trees and may
// share subtrees freely.
type Expr interface {
	fmt.Stringer
	expr()
}

func (*ConstantExpr) expr() {}
func (*VarExpr) expr()      {}
func (*UnaryExpr) expr()    {}
func (*BinaryExpr) expr()   {}

// ExprWidth returns the bit width of the expression.
func ExprWidth(expr Expr) uint {
	switch expr := expr.(type) {
	case *ConstantExpr:
		return expr.Value.Width
	case *VarExpr:
		return expr.Width
	case *UnaryExpr:
		return ExprWidth(expr.X)
	case *BinaryExpr:
		return ExprWidth(expr.LHS)
	default:
		panic("unreachable")
	}
}

// UnaryOp represents a unary expression operation.
type UnaryOp int

// UnaryExpr operations.
const (
	NEG = UnaryOp(iota + 1) // arithmetic negation
	NOT                     // bitwise complement
)

var unaryOps = [...]string{
	NEG: "neg",
	NOT: "not",
}

// String returns the string representation of the operation.
func (op UnaryOp) String() string {
	if op > 0 && op < UnaryOp(len(unaryOps)) && unaryOps[op] != "" {
		return unaryOps[op]
	}
	return fmt.Sprintf("UnaryOp<%d>", op)
}

// BinaryOp represents a binary expression operation.
type BinaryOp int

// BinaryExpr operations.
const (
	binary_op_begin = BinaryOp(iota)
	ADD
	SUB
	MUL
	AND
	OR
	XOR
	SHL
	LSHR
	binary_op_end
)

var binaryOps = [...]string{
	ADD:  "add",
	SUB:  "sub",
	MUL:  "mul",
	AND:  "and",
	OR:   "or",
	XOR:  "xor",
	SHL:  "shl",
	LSHR: "lshr",
}

// String returns the string representation of the operation.
func (op BinaryOp) String() string {
	if op >= 0 && op < BinaryOp(len(binaryOps)) && binaryOps[op] != "" {
		return binaryOps[op]
	}
	return fmt.Sprintf("BinaryOp<%d>", op)
}

// IsArithmetic returns true if op is an arithmetic operator.
func (op BinaryOp) IsArithmetic() bool {
	return op == ADD || op == SUB || op == MUL
}

// IsBitwise returns true if op is a bitwise operator.
func (op BinaryOp) IsBitwise() bool {
	return op == AND || op == OR || op == XOR
}

// IsCommutative returns true if op commutes.
func (op BinaryOp) IsCommutative() bool {
	switch op {
	case ADD, MUL, AND, OR, XOR:
		return true
	default:
		return false
	}
}

// ConstantExpr represents a fixed-width constant.
type ConstantExpr struct {
	Value Value
}

// NewConstantExpr returns a constant expression of the given width with
// value reduced into range.
func NewConstantExpr(value uint64, width uint) *ConstantExpr {
	return &ConstantExpr{Value: NewValue(value, width)}
}

// String returns the string representation of the expression.
func (e *ConstantExpr) String() string {
	return fmt.Sprintf("(const %d %d)", e.Value.V, e.Value.Width)
}

// IsZero returns true if the constant is zero.
func (e *ConstantExpr) IsZero() bool { return e.Value.IsZero() }

// IsAllOnes returns true if all bits of the constant are one.
func (e *ConstantExpr) IsAllOnes() bool { return e.Value.IsAllOnes() }

// VarExpr represents a named variable. Variables are identified by name;
// no declaration is needed.
type VarExpr struct {
	Name  string
	Width uint
}

// NewVarExpr returns a new variable expression.
func NewVarExpr(name string, width uint) *VarExpr {
	assert(name != "", "variable name cannot be empty")
	return &VarExpr{Name: name, Width: width}
}

// String returns the string representation of the expression.
func (e *VarExpr) String() string {
	return fmt.Sprintf("(var %s %d)", e.Name, e.Width)
}

// UnaryExpr represents an operation on a single expression.
type UnaryExpr struct {
	Op UnaryOp
	X  Expr
}

// NewUnaryExpr returns an expression representing op applied to x.
// Constants are folded and double negations collapse.
func NewUnaryExpr(op UnaryOp, x Expr) Expr {
	switch op {
	case NEG:
		return newNegExpr(x)
	case NOT:
		return newNotExpr(x)
	default:
		panic("unreachable")
	}
}

func newNegExpr(x Expr) Expr {
	switch x := x.(type) {
	case *ConstantExpr:
		return &ConstantExpr{Value: x.Value.Neg()}
	case *UnaryExpr:
		if x.Op == NEG { // -(-a) = a
			return x.X
		}
	}
	return &UnaryExpr{Op: NEG, X: x}
}

func newNotExpr(x Expr) Expr {
	switch x := x.(type) {
	case *ConstantExpr:
		return &ConstantExpr{Value: x.Value.Not()}
	case *UnaryExpr:
		if x.Op == NOT { // ~(~a) = a
			return x.X
		}
	}
	return &UnaryExpr{Op: NOT, X: x}
}

// String returns the string representation of the expression.
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.Op, e.X)
}

// BinaryExpr represents an operation on two expressions.
type BinaryExpr struct {
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

// NewBinaryExpr returns a new expression applying op to lhs & rhs.
// Constants are folded, identities eliminated and commutative operands
// lightly normalized so structurally distinct spellings of the same term
// converge.
func NewBinaryExpr(op BinaryOp, lhs, rhs Expr) Expr {
	assert(ExprWidth(lhs) == ExprWidth(rhs), "binary expr width mismatch: op=%s %d != %d", op, ExprWidth(lhs), ExprWidth(rhs))

	switch op {
	case ADD:
		return newAddExpr(lhs, rhs)
	case SUB:
		return newSubExpr(lhs, rhs)
	case MUL:
		return newMulExpr(lhs, rhs)
	case AND:
		return newAndExpr(lhs, rhs)
	case OR:
		return newOrExpr(lhs, rhs)
	case XOR:
		return newXorExpr(lhs, rhs)
	case SHL:
		return newShlExpr(lhs, rhs)
	case LSHR:
		return newLShrExpr(lhs, rhs)
	default:
		panic("unreachable")
	}
}

// String returns the string representation of the expression.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Op, e.LHS, e.RHS)
}

// newAddExpr returns the expression representing the sum of lhs & rhs.
func newAddExpr(lhs, rhs Expr) Expr {
	// Move constant expression to left hand side.
	if !IsConstantExpr(lhs) && IsConstantExpr(rhs) {
		lhs, rhs = rhs, lhs
	}

	// Compute constant if both sides are constant.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if lhs.IsZero() {
			return rhs
		} else if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.Add(rhs.Value)}
		}
	}

	// Merge constant LHS with constant in RHS binary expression.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*BinaryExpr); ok {
			if rhs.Op == ADD && IsConstantExpr(rhs.LHS) { // X + (Y+z) == (X+Y) + z
				return NewBinaryExpr(ADD, NewBinaryExpr(ADD, lhs, rhs.LHS), rhs.RHS)
			} else if rhs.Op == SUB && IsConstantExpr(rhs.LHS) { // X + (Y-z) == (X+Y) - z
				return NewBinaryExpr(SUB, NewBinaryExpr(ADD, lhs, rhs.LHS), rhs.RHS)
			}
		}
	}

	// Refactor constant LHS.LHS to a standalone value on LHS.
	if lhs, ok := lhs.(*BinaryExpr); ok && IsConstantExpr(lhs.LHS) {
		if lhs.Op == ADD { // (X+y) + z = X + (y+z)
			return NewBinaryExpr(ADD, lhs.LHS, NewBinaryExpr(ADD, lhs.RHS, rhs))
		} else if lhs.Op == SUB { // (X-y) + z = X + (z-y)
			return NewBinaryExpr(ADD, lhs.LHS, NewBinaryExpr(SUB, rhs, lhs.RHS))
		}
	}

	return &BinaryExpr{Op: ADD, LHS: lhs, RHS: rhs}
}

// newSubExpr returns an expression representing the difference of lhs & rhs.
func newSubExpr(lhs, rhs Expr) Expr {
	// Subtracting a value from itself is zero.
	if CompareExpr(lhs, rhs) == 0 {
		return NewConstantExpr(0, ExprWidth(lhs))
	}

	// Compute constant if both sides are constant.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.Sub(rhs.Value)}
		}
	}

	// If constant is on right side, refactor to addition of its inverse.
	if rhs, ok := rhs.(*ConstantExpr); ok && !IsConstantExpr(lhs) {
		return NewBinaryExpr(ADD, &ConstantExpr{Value: rhs.Value.Neg()}, lhs)
	}

	// Refactor constant LHS.LHS to a standalone value on LHS.
	if lhs, ok := lhs.(*BinaryExpr); ok && IsConstantExpr(lhs.LHS) {
		if lhs.Op == ADD { // (X+y) - z = X + (y-z)
			return NewBinaryExpr(ADD, lhs.LHS, NewBinaryExpr(SUB, lhs.RHS, rhs))
		} else if lhs.Op == SUB { // (X-y) - z = X - (y+z)
			return NewBinaryExpr(SUB, lhs.LHS, NewBinaryExpr(ADD, lhs.RHS, rhs))
		}
	}

	return &BinaryExpr{Op: SUB, LHS: lhs, RHS: rhs}
}

// newMulExpr returns an expression that represents the product of lhs & rhs.
func newMulExpr(lhs, rhs Expr) Expr {
	// If constant is on right side, swap to left side.
	if IsConstantExpr(rhs) && !IsConstantExpr(lhs) {
		lhs, rhs = rhs, lhs
	}

	// Compute constant if both sides are constant.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.Mul(rhs.Value)}
		}

		// Optimize for multiplication with a constant 1 or 0.
		if lhs.Value.IsOne() {
			return rhs
		} else if lhs.IsZero() {
			return lhs
		}

		// Merge with a constant factor inside the RHS product.
		if rhs, ok := rhs.(*BinaryExpr); ok && rhs.Op == MUL && IsConstantExpr(rhs.LHS) {
			return NewBinaryExpr(MUL, NewBinaryExpr(MUL, lhs, rhs.LHS), rhs.RHS)
		}
	}

	return &BinaryExpr{Op: MUL, LHS: lhs, RHS: rhs}
}

// newAndExpr returns an expression that represents the bitwise AND of lhs & rhs.
func newAndExpr(lhs, rhs Expr) Expr {
	// Compute constant if both sides are constant.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.And(rhs.Value)}
		}
	}

	// If constant is on left side, swap to right side.
	if IsConstantExpr(lhs) && !IsConstantExpr(rhs) {
		lhs, rhs = rhs, lhs
	}

	// Conjunction with itself is itself.
	if CompareExpr(lhs, rhs) == 0 {
		return lhs
	}

	// Optimize for if constant is all ones or zeros.
	if rhs, ok := rhs.(*ConstantExpr); ok {
		if rhs.IsAllOnes() {
			return lhs
		} else if rhs.IsZero() {
			return rhs
		}
	}
	return &BinaryExpr{Op: AND, LHS: lhs, RHS: rhs}
}

// newOrExpr returns an expression that represents the bitwise OR of lhs & rhs.
func newOrExpr(lhs, rhs Expr) Expr {
	// Compute constant if both sides are constant.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.Or(rhs.Value)}
		}
	}

	// If constant is on left side, swap to right side.
	if IsConstantExpr(lhs) && !IsConstantExpr(rhs) {
		lhs, rhs = rhs, lhs
	}

	// Disjunction with itself is itself.
	if CompareExpr(lhs, rhs) == 0 {
		return lhs
	}

	// Optimize for if constant is all ones or zeros.
	if rhs, ok := rhs.(*ConstantExpr); ok {
		if rhs.IsAllOnes() {
			return rhs
		} else if rhs.IsZero() {
			return lhs
		}
	}
	return &BinaryExpr{Op: OR, LHS: lhs, RHS: rhs}
}

// newXorExpr returns an expression that represents the bitwise XOR of lhs & rhs.
func newXorExpr(lhs, rhs Expr) Expr {
	// If constant is on right side, swap to left side.
	if !IsConstantExpr(lhs) && IsConstantExpr(rhs) {
		lhs, rhs = rhs, lhs
	}

	// XOR with itself cancels.
	if CompareExpr(lhs, rhs) == 0 {
		return NewConstantExpr(0, ExprWidth(lhs))
	}

	// Compute constant if both sides are constant.
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if lhs.IsZero() {
			return rhs
		} else if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.Xor(rhs.Value)}
		}
	}

	return &BinaryExpr{Op: XOR, LHS: lhs, RHS: rhs}
}

// newShlExpr returns an expression that represents the shift-left of lhs by rhs bits.
func newShlExpr(lhs, rhs Expr) Expr {
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.Shl(rhs.Value)}
		}
	}
	if rhs, ok := rhs.(*ConstantExpr); ok {
		if rhs.IsZero() {
			return lhs
		} else if rhs.Value.V >= uint64(ExprWidth(lhs)) {
			return NewConstantExpr(0, ExprWidth(lhs))
		}
	}
	return &BinaryExpr{Op: SHL, LHS: lhs, RHS: rhs}
}

// newLShrExpr returns an expression that represents the logical shift-right
// of lhs by rhs bits.
func newLShrExpr(lhs, rhs Expr) Expr {
	if lhs, ok := lhs.(*ConstantExpr); ok {
		if rhs, ok := rhs.(*ConstantExpr); ok {
			return &ConstantExpr{Value: lhs.Value.LShr(rhs.Value)}
		}
	}
	if rhs, ok := rhs.(*ConstantExpr); ok {
		if rhs.IsZero() {
			return lhs
		} else if rhs.Value.V >= uint64(ExprWidth(lhs)) {
			return NewConstantExpr(0, ExprWidth(lhs))
		}
	}
	return &BinaryExpr{Op: LSHR, LHS: lhs, RHS: rhs}
}

// IsConstantExpr returns true if expr is an instance of ConstantExpr.
func IsConstantExpr(expr Expr) bool {
	_, ok := expr.(*ConstantExpr)
	return ok
}

// CompareExpr returns an integer comparing two expressions.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b. The ordering
// is total and used for structural equality, deduplication and
// deterministic tie-breaking.
func CompareExpr(a, b Expr) int {
	if a == nil && b != nil {
		return -1
	} else if a != nil && b == nil {
		return 1
	} else if a == nil && b == nil {
		return 0
	}

	if ak, bk := exprKind(a), exprKind(b); ak < bk {
		return -1
	} else if ak > bk {
		return 1
	}

	switch a := a.(type) {
	case *ConstantExpr:
		return compareConstantExpr(a, b.(*ConstantExpr))
	case *VarExpr:
		return compareVarExpr(a, b.(*VarExpr))
	case *UnaryExpr:
		return compareUnaryExpr(a, b.(*UnaryExpr))
	case *BinaryExpr:
		return compareBinaryExpr(a, b.(*BinaryExpr))
	default:
		panic("unreachable")
	}
}

func compareConstantExpr(a, b *ConstantExpr) int {
	if a.Value.Width < b.Value.Width {
		return -1
	} else if a.Value.Width > b.Value.Width {
		return 1
	}

	if a.Value.V < b.Value.V {
		return -1
	} else if a.Value.V > b.Value.V {
		return 1
	}
	return 0
}

func compareVarExpr(a, b *VarExpr) int {
	if a.Name < b.Name {
		return -1
	} else if a.Name > b.Name {
		return 1
	}
	if a.Width < b.Width {
		return -1
	} else if a.Width > b.Width {
		return 1
	}
	return 0
}

func compareUnaryExpr(a, b *UnaryExpr) int {
	if a.Op < b.Op {
		return -1
	} else if a.Op > b.Op {
		return 1
	}
	return CompareExpr(a.X, b.X)
}

func compareBinaryExpr(a, b *BinaryExpr) int {
	if a.Op < b.Op {
		return -1
	} else if a.Op > b.Op {
		return 1
	}
	if cmp := CompareExpr(a.LHS, b.LHS); cmp != 0 {
		return cmp
	}
	return CompareExpr(a.RHS, b.RHS)
}

// exprKind returns a numeric value for the type of expression.
// Only used internally for equality checks and sorting.
func exprKind(expr Expr) int {
	switch expr.(type) {
	case *ConstantExpr:
		return 1
	case *VarExpr:
		return 2
	case *UnaryExpr:
		return 3
	case *BinaryExpr:
		return 4
	default:
		panic("unreachable")
	}
}

// ExprVisitor represents a visitor that can be passed to WalkExpr().
type ExprVisitor interface {
	// Executed for every visited node. Return false to stop descending.
	Visit(expr Expr) bool
}

// WalkExpr visits every node of the tree in depth-first, left-to-right
// order.
func WalkExpr(v ExprVisitor, expr Expr) {
	if !v.Visit(expr) {
		return
	}

	switch expr := expr.(type) {
	case *ConstantExpr, *VarExpr:
		// nop
	case *UnaryExpr:
		WalkExpr(v, expr.X)
	case *BinaryExpr:
		WalkExpr(v, expr.LHS)
		WalkExpr(v, expr.RHS)
	default:
		panic("unreachable")
	}
}

type varCollector struct {
	names []string
	seen  map[string]struct{}
}

func (v *varCollector) Visit(expr Expr) bool {
	if expr, ok := expr.(*VarExpr); ok {
		if _, ok := v.seen[expr.Name]; !ok {
			v.seen[expr.Name] = struct{}{}
			v.names = append(v.names, expr.Name)
		}
	}
	return true
}

// Vars returns the names of all variables in the expressions in order of
// first occurrence in a depth-first traversal.
func Vars(exprs ...Expr) []string {
	v := &varCollector{seen: make(map[string]struct{})}
	for _, expr := range exprs {
		WalkExpr(v, expr)
	}
	return v.names
}

// Cost returns the structural complexity of the expression: a node count
// with multiplications weighted double. The rewrite engine only accepts
// candidates whose cost does not exceed their parent's.
func Cost(expr Expr) int {
	switch expr := expr.(type) {
	case *ConstantExpr, *VarExpr:
		return 1
	case *UnaryExpr:
		return 1 + Cost(expr.X)
	case *BinaryExpr:
		w := 1
		if expr.Op == MUL {
			w = 2
		}
		return w + Cost(expr.LHS) + Cost(expr.RHS)
	default:
		panic("unreachable")
	}
}

// CountNodes returns the number of nodes in the expression tree.
func CountNodes(expr Expr) int {
	switch expr := expr.(type) {
	case *ConstantExpr, *VarExpr:
		return 1
	case *UnaryExpr:
		return 1 + CountNodes(expr.X)
	case *BinaryExpr:
		return 1 + CountNodes(expr.LHS) + CountNodes(expr.RHS)
	default:
		panic("unreachable")
	}
}
