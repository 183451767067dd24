package gamba

import "fmt"

// Value represents a fixed-width unsigned integer reduced modulo 2^Width.
// All arithmetic wraps silently; there are no overflow errors. Two values
// may only be combined when their widths agree.
type Value struct {
	V     uint64
	Width uint
}

// NewValue returns a value of the given width with v reduced into range.
func NewValue(v uint64, width uint) Value {
	assert(width > 0 && width <= MaxWidth, "invalid width: %d", width)
	return Value{V: v & bitmask(width), Width: width}
}

// String returns the string representation of the value.
func (v Value) String() string {
	return fmt.Sprintf("(%d:%d)", v.V, v.Width)
}

// IsZero returns true if the value is zero.
func (v Value) IsZero() bool { return v.V == 0 }

// IsOne returns true if the value is one.
func (v Value) IsOne() bool { return v.V == 1 }

// IsAllOnes returns true if all bits in the value are one.
func (v Value) IsAllOnes() bool { return v.V == bitmask(v.Width) }

// Add returns the sum of v and other.
func (v Value) Add(other Value) Value {
	v.checkWidth("add", other)
	return NewValue(v.V+other.V, v.Width)
}

// Sub returns the difference of v and other.
func (v Value) Sub(other Value) Value {
	v.checkWidth("sub", other)
	return NewValue(v.V-other.V, v.Width)
}

// Mul returns the product of v and other.
func (v Value) Mul(other Value) Value {
	v.checkWidth("mul", other)
	return NewValue(v.V*other.V, v.Width)
}

// Neg returns the additive inverse of v.
func (v Value) Neg() Value {
	return NewValue(-v.V, v.Width)
}

// And returns the bitwise AND of v and other.
func (v Value) And(other Value) Value {
	v.checkWidth("and", other)
	return NewValue(v.V&other.V, v.Width)
}

// Or returns the bitwise OR of v and other.
func (v Value) Or(other Value) Value {
	v.checkWidth("or", other)
	return NewValue(v.V|other.V, v.Width)
}

// Xor returns the bitwise XOR of v and other.
func (v Value) Xor(other Value) Value {
	v.checkWidth("xor", other)
	return NewValue(v.V^other.V, v.Width)
}

// Not returns the bitwise NOT of v.
func (v Value) Not() Value {
	return NewValue(^v.V, v.Width)
}

// Shl returns v shifted left by other bits. Shifting by at least the width
// yields zero.
func (v Value) Shl(other Value) Value {
	v.checkWidth("shl", other)
	if other.V >= uint64(v.Width) {
		return NewValue(0, v.Width)
	}
	return NewValue(v.V<<other.V, v.Width)
}

// LShr returns v logically shifted right by other bits. Shifting by at
// least the width yields zero.
func (v Value) LShr(other Value) Value {
	v.checkWidth("lshr", other)
	if other.V >= uint64(v.Width) {
		return NewValue(0, v.Width)
	}
	return NewValue(v.V>>other.V, v.Width)
}

// Eq returns true if v and other hold the same value.
func (v Value) Eq(other Value) bool {
	v.checkWidth("eq", other)
	return v.V == other.V
}

// Signed returns the value interpreted as a two's complement integer of its
// width. Used when choosing between additive and subtractive rendering of
// coefficients.
func (v Value) Signed() int64 {
	if v.Width == Width64 {
		return int64(v.V)
	}
	if v.V&(1<<(v.Width-1)) != 0 {
		return int64(v.V) - int64(1)<<v.Width
	}
	return int64(v.V)
}

func (v Value) checkWidth(op string, other Value) {
	if v.Width != other.Width {
		panic(&WidthError{Op: op, A: v.Width, B: other.Width})
	}
}

// bitmask returns a mask of width low bits. Variable shifts of 64 or more
// evaluate to zero, so at width 64 the subtraction yields all ones.
func bitmask(width uint) uint64 {
	return (1 << width) - 1
}
