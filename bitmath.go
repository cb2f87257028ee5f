// Package bitmath defines the primitive arithmetic and bitwise operators of
// an IR optimizer and evaluates them over concrete values and over ternary
// (known-0/known-1/unknown) bit vectors.
package bitmath

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
)

// BitIndexWidth is the width of results that report a bit position or count
// rather than a value.
const BitIndexWidth = 8

var (
	ErrUnknownOp    = errors.New("bitmath: unknown operator")
	ErrArity        = errors.New("bitmath: operand count mismatch")
	ErrDivideByZero = errors.New("bitmath: division by zero")
)

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}

// bitmask returns a mask covering the low width bits.
func bitmask(width uint) uint64 {
	if width >= Width64 {
		return ^uint64(0)
	}
	return (1 << width) - 1
}

// signExtend returns the low width bits of value sign-extended to 64 bits.
func signExtend(value uint64, width uint) uint64 {
	if width == 0 {
		return 0
	} else if width >= Width64 {
		return value
	}
	value &= bitmask(width)
	if value&(1<<(width-1)) != 0 {
		value |= ^bitmask(width)
	}
	return value
}
