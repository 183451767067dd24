// Package gamba implements a simplifier for mixed boolean-arithmetic (MBA)
// expressions over fixed-width modular integers. Expressions combine
// arithmetic operators (+, -, *) and bitwise operators (&, |, ^, ~, <<, >>)
// under silent wrap-around semantics modulo 2^width.
//
// The entry points are Simplify, which rewrites an expression into a
// provably equivalent and no-more-complex form, and CheckLinear, which
// decides whether an expression is affine over its variables.
package gamba

import (
	"errors"
	"fmt"
)

// Standard widths.
const (
	WidthBool = 1
	Width8    = 8
	Width16   = 16
	Width32   = 32
	Width64   = 64

	// MaxWidth is the widest value the engine supports.
	MaxWidth = Width64
)

var (
	// ErrNotLinear is returned by Simplify when the input is not an affine
	// function of its variables and linear-only simplification was requested.
	ErrNotLinear = errors.New("expression is not linear")

	// ErrBudgetExhausted is reported internally when the rewrite search runs
	// out of its step budget. It is not a failure; the best candidate found
	// so far is still returned.
	ErrBudgetExhausted = errors.New("rewrite budget exhausted")
)

// WidthError is raised when two values of differing widths are combined.
// This is a programming-contract violation rather than a user-input error:
// every node of a parsed tree shares the width fixed at parse time. Value
// operations panic with a *WidthError and the engine boundary downgrades the
// panic to a failure outcome.
type WidthError struct {
	Op string
	A  uint
	B  uint
}

// Error implements the error interface.
func (e *WidthError) Error() string {
	return fmt.Sprintf("%s: width mismatch: %d != %d", e.Op, e.A, e.B)
}

// UnboundVariableError is returned when evaluation reaches a variable that
// has no binding in the assignment.
type UnboundVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("variable not bound: %s", e.Name)
}

// ParseError is returned when an expression cannot be parsed.
type ParseError struct {
	Pos int
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}
