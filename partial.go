package bitmath

import "math/bits"

// EvaluatePartial applies op over ternary operands and returns a sound
// abstraction of the result: every concrete operand pair consistent with the
// inputs evaluates to a value consistent with the returned vector. Bits that
// cannot be proven constant across all such pairs come back unknown. Unary
// operators take a zero-width left operand.
func EvaluatePartial(op Op, lhs, rhs BitVector) (BitVector, error) {
	desc, ok := Descriptor(op)
	if !ok {
		return BitVector{}, ErrUnknownOp
	}
	if (desc.OperandCount == 1) != (lhs.width == 0) {
		return BitVector{}, ErrArity
	}

	// Width-only operators read no bit states and are always fully known.
	if op == OpMask || op == OpBitCount {
		return concrete(op, lhs, rhs)
	}

	// Fully-known operands evaluate exactly.
	if lhs.IsKnown() && rhs.IsKnown() {
		return concrete(op, lhs, rhs)
	}

	width, err := ResultWidth(op, lhs.width, rhs.width)
	if err != nil {
		return BitVector{}, err
	}
	m := bitmask(width)

	switch op {
	case OpNot:
		b := rhs.Resize(width, false)
		return makeVector(^b.value, b.unknown, width), nil

	case OpAnd:
		a, b := lhs.Resize(width, false), rhs.Resize(width, false)
		one := a.value & b.value
		zero := a.knownZeros() | b.knownZeros()
		return makeVector(one, m&^(one|zero), width), nil

	case OpOr:
		a, b := lhs.Resize(width, false), rhs.Resize(width, false)
		one := a.value | b.value
		zero := a.knownZeros() & b.knownZeros()
		return makeVector(one, m&^(one|zero), width), nil

	case OpXor:
		a, b := lhs.Resize(width, false), rhs.Resize(width, false)
		known := m &^ (a.unknown | b.unknown)
		return makeVector((a.value^b.value)&known, m&^known, width), nil

	case OpAdd, OpSub:
		// Bits below the lowest unknown input bit depend only on known bits
		// and are exact; that bit and everything above may be reached by a
		// carry and is tainted.
		a, b := lhs.Resize(width, true), rhs.Resize(width, true)
		var s uint64
		if op == OpAdd {
			s = a.value + b.value
		} else {
			s = a.value - b.value
		}
		exact := bitmask(uint(bits.TrailingZeros64(a.unknown | b.unknown)))
		return makeVector(s&exact, m&^exact, width), nil

	case OpNeg:
		b := rhs.Resize(width, true)
		exact := bitmask(uint(bits.TrailingZeros64(b.unknown)))
		return makeVector(-b.value&exact, m&^exact, width), nil

	case OpShr, OpShl, OpRotr, OpRotl:
		// A fully-known amount maps every output bit to one input bit (or to
		// zero); any unknown amount bit leaves multiple concretizations and
		// collapses the result.
		if !rhs.IsKnown() {
			return NewUnknownVector(width), nil
		}
		a, n := lhs.Resize(width, false), rhs.value
		switch op {
		case OpShr:
			return makeVector(a.value>>n, a.unknown>>n, width), nil
		case OpShl:
			return makeVector(a.value<<n, a.unknown<<n, width), nil
		case OpRotr:
			n %= uint64(width)
			w := uint64(width)
			return makeVector(a.value>>n|a.value<<(w-n), a.unknown>>n|a.unknown<<(w-n), width), nil
		default: // OpRotl
			n %= uint64(width)
			w := uint64(width)
			return makeVector(a.value<<n|a.value>>(w-n), a.unknown<<n|a.unknown>>(w-n), width), nil
		}

	case OpZeroExtend:
		return lhs.Resize(width, false), nil

	case OpSignExtend:
		return lhs.Resize(width, true), nil

	case OpValueIf:
		switch lhs.Bit(0) {
		case One:
			return rhs.Resize(width, false), nil
		case Zero:
			return NewValueVector(0, width), nil
		default:
			return NewUnknownVector(width), nil
		}

	default:
		// Multiplicative operators, comparisons and bit scans lose all
		// knowledge on any unknown input bit.
		return NewUnknownVector(width), nil
	}
}

// concrete evaluates fully-known operands through the concrete evaluator and
// wraps the result as a known vector.
func concrete(op Op, lhs, rhs BitVector) (BitVector, error) {
	v, w, err := Evaluate(op, lhs.width, lhs.value, rhs.width, rhs.value)
	if err != nil {
		return BitVector{}, err
	}
	return NewValueVector(v, w), nil
}
