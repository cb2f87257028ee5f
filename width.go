package bitmath

// RoundWidth canonicalizes a bit count to the register-class granularity of
// the machine model: the smallest member of {1,8,16,32,64} that covers it.
func RoundWidth(n uint) uint {
	switch {
	case n > 32:
		return Width64
	case n > 16:
		return Width32
	case n > 8:
		return Width16
	case n > 1:
		return Width8
	default:
		return WidthBool
	}
}

// ResultWidth returns the canonical output width of applying op to operands
// of the given widths. Unary operators take a zero lhsWidth.
func ResultWidth(op Op, lhsWidth, rhsWidth uint) (uint, error) {
	desc, ok := Descriptor(op)
	if !ok {
		return 0, ErrUnknownOp
	}

	switch {
	case op == OpPopCount || op == OpMostSigBit || op == OpLeastSigBit || op == OpBitCount:
		// Bit-index results use a fixed width.
		return BitIndexWidth, nil
	case op == OpBitTest || op.IsComparison():
		return WidthBool, nil
	case desc.OperandCount == 1:
		return RoundWidth(rhsWidth), nil
	default:
		return RoundWidth(max(lhsWidth, rhsWidth)), nil
	}
}
