package bitmath

import (
	"math/bits"
	"strings"
)

// TriBit is the state of a single bit in a BitVector.
type TriBit int8

const (
	Zero TriBit = iota
	One
	Unknown
)

// String returns the string representation of the bit state.
func (b TriBit) String() string {
	switch b {
	case Zero:
		return "0"
	case One:
		return "1"
	default:
		return "?"
	}
}

// BitVector is a fixed-width vector of ternary bits. Value bits at unknown
// positions are held zero so that equal vectors compare equal structurally.
type BitVector struct {
	value   uint64 // known bit values, zero at unknown positions
	unknown uint64 // mask of unknown positions
	width   uint
}

// NewUnknownVector returns an all-unknown vector of the given width.
func NewUnknownVector(width uint) BitVector {
	return BitVector{unknown: bitmask(width), width: width}
}

// NewValueVector returns a fully-known vector holding value at the given width.
func NewValueVector(value uint64, width uint) BitVector {
	return BitVector{value: value & bitmask(width), width: width}
}

// NewPartialVector returns a vector whose bits are unknown where unknownMask
// is set and hold value's bits elsewhere.
func NewPartialVector(value, unknownMask uint64, width uint) BitVector {
	return makeVector(value, unknownMask, width)
}

// makeVector canonicalizes the value/unknown pair to the given width.
func makeVector(value, unknownMask uint64, width uint) BitVector {
	m := bitmask(width)
	unknownMask &= m
	return BitVector{value: value & m &^ unknownMask, unknown: unknownMask, width: width}
}

// Width returns the width of the vector in bits.
func (v BitVector) Width() uint { return v.width }

// Bit returns the state of bit i.
func (v BitVector) Bit(i uint) TriBit {
	assert(i < v.width, "bit index out of range: %d >= %d", i, v.width)
	if v.unknown&(1<<i) != 0 {
		return Unknown
	} else if v.value&(1<<i) != 0 {
		return One
	}
	return Zero
}

// IsKnown returns true if every bit of the vector is known.
func (v BitVector) IsKnown() bool { return v.unknown == 0 }

// KnownValue returns the value formed by the known bits; unknown positions
// read as zero.
func (v BitVector) KnownValue() uint64 { return v.value }

// UnknownMask returns the mask of unknown bit positions.
func (v BitVector) UnknownMask() uint64 { return v.unknown }

// KnownBitCount returns the number of known bits in the vector.
func (v BitVector) KnownBitCount() int {
	return bits.OnesCount64(bitmask(v.width) &^ v.unknown)
}

// knownZeros returns the mask of bits known to be zero.
func (v BitVector) knownZeros() uint64 {
	return bitmask(v.width) &^ (v.value | v.unknown)
}

// Resize masks the vector down or extends it up to the given width. Widening
// fills with known zeros, or with copies of the top bit's state when signed.
func (v BitVector) Resize(width uint, signed bool) BitVector {
	if width <= v.width {
		return makeVector(v.value, v.unknown, width)
	}

	out := BitVector{value: v.value, unknown: v.unknown, width: width}
	if signed && v.width > 0 {
		fill := bitmask(width) &^ bitmask(v.width)
		switch v.Bit(v.width - 1) {
		case One:
			out.value |= fill
		case Unknown:
			out.unknown |= fill
		}
	}
	return out
}

// Equal returns true if both vectors have the same width and per-bit states.
func (v BitVector) Equal(other BitVector) bool { return v == other }

// String renders the vector most significant bit first, one character per
// bit: '0', '1' or '?'.
func (v BitVector) String() string {
	var sb strings.Builder
	for i := int(v.width) - 1; i >= 0; i-- {
		sb.WriteString(v.Bit(uint(i)).String())
	}
	return sb.String()
}
