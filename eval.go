package bitmath

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// Evaluate applies op to the given concrete operands and returns the result
// value masked to its final width. Operands carry their significant bits in
// the low lhsWidth/rhsWidth bits; unary operators take a zero lhsWidth and
// consume the right-hand operand.
func Evaluate(op Op, lhsWidth uint, lhs uint64, rhsWidth uint, rhs uint64) (uint64, uint, error) {
	desc, ok := Descriptor(op)
	if !ok {
		return 0, 0, ErrUnknownOp
	}
	if (desc.OperandCount == 1) != (lhsWidth == 0) {
		return 0, 0, ErrArity
	}

	width, err := ResultWidth(op, lhsWidth, rhsWidth)
	if err != nil {
		return 0, 0, err
	}

	// Interpret operands under the operator's signedness.
	var a, b uint64
	if desc.Signed {
		a, b = signExtend(lhs, lhsWidth), signExtend(rhs, rhsWidth)
	} else {
		a, b = lhs&bitmask(lhsWidth), rhs&bitmask(rhsWidth)
	}

	var v uint64
	switch op {
	case OpNot:
		v = ^b
	case OpAnd:
		v = a & b
	case OpOr:
		v = a | b
	case OpXor:
		v = a ^ b
	case OpShr:
		// Shift counts are not masked; shifting by >= width saturates to zero.
		v = a >> b
	case OpShl:
		v = a << b
	case OpRotr:
		n := b % uint64(width)
		am := a & bitmask(width)
		v = am>>n | am<<(uint64(width)-n)
	case OpRotl:
		n := b % uint64(width)
		am := a & bitmask(width)
		v = am<<n | am>>(uint64(width)-n)
	case OpNeg:
		v = -b
	case OpAdd:
		v = a + b
	case OpSub:
		v = a - b
	case OpMulHi, OpUMulHi:
		v = mulHigh(a, b, width, desc.Signed)
	case OpMul, OpUMul:
		v = a * b
	case OpDiv:
		if b == 0 {
			return 0, 0, ErrDivideByZero
		} else if int64(b) == -1 {
			v = -a // wraps MinInt64 instead of trapping
		} else {
			v = uint64(int64(a) / int64(b))
		}
	case OpUDiv:
		if b == 0 {
			return 0, 0, ErrDivideByZero
		}
		v = a / b
	case OpRem:
		if b == 0 {
			return 0, 0, ErrDivideByZero
		} else if int64(b) == -1 {
			v = 0
		} else {
			v = uint64(int64(a) % int64(b))
		}
	case OpURem:
		if b == 0 {
			return 0, 0, ErrDivideByZero
		}
		v = a % b
	case OpZeroExtend, OpSignExtend:
		// Already extended per signedness; rhs only states the target width.
		v = a
	case OpPopCount:
		v = uint64(bits.OnesCount64(b))
	case OpMostSigBit:
		if a == 0 {
			v = b
		} else {
			v = uint64(bits.Len64(a) - 1)
		}
	case OpLeastSigBit:
		if a == 0 {
			v = b
		} else {
			v = uint64(bits.TrailingZeros64(a))
		}
	case OpBitTest:
		v = a >> b & 1
	case OpMask:
		v = bitmask(rhsWidth)
	case OpBitCount:
		v = uint64(rhsWidth)
	case OpValueIf:
		if a&1 != 0 {
			v = b
		}
	case OpMaxValue:
		v = selectValue(a >= b, a, b)
	case OpMinValue:
		v = selectValue(a <= b, a, b)
	case OpSMaxValue:
		v = selectValue(int64(a) >= int64(b), a, b)
	case OpSMinValue:
		v = selectValue(int64(a) <= int64(b), a, b)
	case OpGreater:
		v = boolValue(int64(a) > int64(b))
	case OpGreaterEq:
		v = boolValue(int64(a) >= int64(b))
	case OpEqual:
		v = boolValue(a == b)
	case OpNotEqual:
		v = boolValue(a != b)
	case OpLessEq:
		v = boolValue(int64(a) <= int64(b))
	case OpLess:
		v = boolValue(int64(a) < int64(b))
	case OpUGreater:
		v = boolValue(a > b)
	case OpUGreaterEq:
		v = boolValue(a >= b)
	case OpULessEq:
		v = boolValue(a <= b)
	case OpULess:
		v = boolValue(a < b)
	default:
		panic("unreachable")
	}

	return v & bitmask(width), width, nil
}

// mulHigh returns bits [width, 2*width) of the full-precision product of a
// and b, both already extended to 64 bits per signedness.
func mulHigh(a, b uint64, width uint, signed bool) uint64 {
	p := new(uint256.Int).Mul(widen(a, signed), widen(b, signed))
	return p.Rsh(p, width).Uint64()
}

// widen lifts a 64-bit value into 256-bit two's complement.
func widen(v uint64, signed bool) *uint256.Int {
	x := new(uint256.Int).SetUint64(v)
	if signed && int64(v) < 0 {
		x.Neg(new(uint256.Int).SetUint64(-v))
	}
	return x
}

func selectValue(cond bool, a, b uint64) uint64 {
	if cond {
		return a
	}
	return b
}

func boolValue(cond bool) uint64 {
	if cond {
		return 1
	}
	return 0
}
