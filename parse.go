package gamba

import (
	"fmt"
	"strconv"
)

// Parse parses an infix mixed boolean-arithmetic expression into a tree
// whose every node carries the given bit width.
//
// Grammar, loosest binding first:
//
//	disjunction  := xordisj  { "|" xordisj }
//	xordisj      := conjunction { "^" conjunction }
//	conjunction  := shift { "&" shift }
//	shift        := sum { ("<<" | ">>") sum }
//	sum          := product { ("+" | "-") product }
//	product      := factor { "*" factor }
//	factor       := "-" factor | "~" factor | terminal
//	terminal     := "(" disjunction ")" | variable | constant
//
// Variables are identifiers matching [A-Za-z][A-Za-z0-9_]* with an optional
// trailing "[k]" index suffix kept as part of the name. Constants are
// decimal, hexadecimal ("0x") or binary ("0b") unsigned literals. All
// binary operators associate to the left. Any other token is a ParseError.
func Parse(input string, width uint) (Expr, error) {
	if width == 0 || width > MaxWidth {
		return nil, &ParseError{Pos: 0, Msg: "invalid bit width: " + strconv.FormatUint(uint64(width), 10)}
	}

	p := &parser{input: input, width: width}
	p.skipSpace()
	expr, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return expr, nil
}

// parser is a recursive descent parser over a byte string. One parser is
// built per Parse call; it holds no state beyond the cursor.
type parser struct {
	input string
	width uint
	pos   int
}

func (p *parser) parseDisjunction() (Expr, error) {
	expr, err := p.parseXorDisjunction()
	if err != nil {
		return nil, err
	}
	for p.peek() == '|' {
		p.next()
		rhs, err := p.parseXorDisjunction()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(OR, expr, rhs)
	}
	return expr, nil
}

func (p *parser) parseXorDisjunction() (Expr, error) {
	expr, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	for p.peek() == '^' {
		p.next()
		rhs, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(XOR, expr, rhs)
	}
	return expr, nil
}

func (p *parser) parseConjunction() (Expr, error) {
	expr, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	for p.peek() == '&' {
		p.next()
		rhs, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(AND, expr, rhs)
	}
	return expr, nil
}

func (p *parser) parseShift() (Expr, error) {
	expr, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		if p.peek() == '<' && p.peekNext() == '<' {
			op = SHL
		} else if p.peek() == '>' && p.peekNext() == '>' {
			op = LSHR
		} else {
			return expr, nil
		}
		p.next()
		p.next()

		rhs, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, rhs)
	}
}

func (p *parser) parseSum() (Expr, error) {
	expr, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.peek() == '+' || p.peek() == '-' {
		op := ADD
		if p.peek() == '-' {
			op = SUB
		}
		p.next()

		rhs, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, rhs)
	}
	return expr, nil
}

func (p *parser) parseProduct() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peek() == '*' {
		if p.peekNext() == '*' {
			return nil, p.errorf("power operator is not supported")
		}
		p.next()

		rhs, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(MUL, expr, rhs)
	}
	return expr, nil
}

func (p *parser) parseFactor() (Expr, error) {
	switch p.peek() {
	case '-':
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return NewUnaryExpr(NEG, x), nil
	case '~':
		p.next()
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return NewUnaryExpr(NOT, x), nil
	default:
		return p.parseTerminal()
	}
}

func (p *parser) parseTerminal() (Expr, error) {
	switch c := p.peek(); {
	case c == '(':
		p.next()
		expr, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, p.errorf("missing closing parenthesis")
		}
		p.next()
		return expr, nil
	case isLetter(c):
		return p.parseVariable()
	case isDigit(c):
		return p.parseConstant()
	case c == 0:
		return nil, p.errorf("unexpected end of expression")
	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) parseVariable() (Expr, error) {
	start := p.pos
	for isLetter(p.peek()) || isDigit(p.peek()) || p.peek() == '_' {
		p.pos++
	}

	// An optional index suffix like "v[12]" is kept in the name.
	if p.peek() == '[' {
		p.pos++
		for isDigit(p.peek()) {
			p.pos++
		}
		if p.peek() != ']' {
			return nil, p.errorf("missing closing bracket in variable name")
		}
		p.pos++
	}

	name := p.input[start:p.pos]
	p.skipSpace()
	return NewVarExpr(name, p.width), nil
}

func (p *parser) parseConstant() (Expr, error) {
	base := 10
	start := p.pos
	digits := isDigit

	if p.peek() == '0' && p.peekNext() == 'x' {
		base, digits = 16, isHexDigit
		p.pos += 2
		start = p.pos
	} else if p.peek() == '0' && p.peekNext() == 'b' {
		base, digits = 2, isBinaryDigit
		p.pos += 2
		start = p.pos
	}

	for digits(p.peek()) {
		p.pos++
	}
	if start == p.pos {
		return nil, p.errorf("invalid digit %q", p.peek())
	}

	// Reduce modulo 2^width; literals above the range are accepted and
	// wrapped like every other arithmetic result.
	v, err := strconv.ParseUint(p.input[start:p.pos], base, 64)
	if err != nil {
		return nil, p.errorf("invalid constant %q", p.input[start:p.pos])
	}
	p.skipSpace()
	return NewConstantExpr(v, p.width), nil
}

// peek returns the byte at the cursor, or zero at the end of input.
func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// peekNext returns the byte after the cursor, or zero at the end of input.
func (p *parser) peekNext() byte {
	if p.pos+1 >= len(p.input) {
		return 0
	}
	return p.input[p.pos+1]
}

// next advances past the current byte and any following spaces.
func (p *parser) next() {
	p.pos++
	p.skipSpace()
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func isLetter(c byte) bool      { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isBinaryDigit(c byte) bool { return c == '0' || c == '1' }
func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
