package bitmath

import "fmt"

// Op identifies a primitive operator. The zero value is the invalid
// sentinel; valid operators are strictly between OpInvalid and the terminal
// sentinel and index the descriptor table densely.
type Op int

// Operators, in canonical order.
const (
	OpInvalid Op = iota

	// Bitwise modifiers.
	OpNot // ~RHS

	// Basic bitwise operations.
	OpAnd
	OpOr
	OpXor

	// Distributing bitwise operations.
	OpShr
	OpShl
	OpRotr
	OpRotl

	// Arithmetic modifiers.
	OpNeg // -RHS

	// Basic arithmetic operations.
	OpAdd
	OpSub

	// Distributing arithmetic operations.
	OpMulHi
	OpMul
	OpDiv
	OpRem

	// Unsigned variants of the above.
	OpUMulHi
	OpUMul
	OpUDiv
	OpURem

	// Special operations.
	OpZeroExtend  // ZX(LHS, RHS)
	OpSignExtend  // SX(LHS, RHS)
	OpPopCount    // POPCNT(RHS)
	OpMostSigBit  // MSB(LHS), or RHS if LHS is zero
	OpLeastSigBit // LSB(LHS), or RHS if LHS is zero
	OpBitTest     // (LHS>>RHS)&1
	OpMask        // all-ones mask of RHS's width
	OpBitCount    // RHS's width as a value
	OpValueIf     // LHS&1 ? RHS : 0

	OpMaxValue
	OpMinValue

	// Signed variants of the above.
	OpSMaxValue
	OpSMinValue

	OpGreater
	OpGreaterEq
	OpEqual    // always unsigned
	OpNotEqual // always unsigned
	OpLessEq
	OpLess

	// Unsigned variants of the above.
	OpUGreater
	OpUGreaterEq
	OpULessEq
	OpULess

	opMax
)

// OpDesc describes the static properties of an operator.
type OpDesc struct {
	// HintBitwise is >0 if bitwise operands are preferred, <0 if arithmetic
	// operands are preferred, and 0 if neutral. Consulted by cost models
	// only, never by the evaluators.
	HintBitwise int8

	// Signed reports whether operands are sign-extended before evaluation.
	Signed bool

	// OperandCount is either 1 or 2. Unary operators consume the right-hand
	// operand.
	OperandCount int

	// Commutative reports whether operand order is semantically irrelevant.
	Commutative bool

	// Symbol is the operator's display symbol; empty means the operator is
	// rendered in function form using Name.
	Symbol string
	Name   string

	// JoinBy is the operator used to fold a chain of this operator, e.g.
	// (A>>B)>>C joins the shift amounts B and C by OpAdd. OpInvalid when no
	// associative fold exists.
	JoinBy Op
}

var descriptors = [opMax]OpDesc{
	OpNot:         {HintBitwise: +1, OperandCount: 1, Symbol: "~", Name: "not"},
	OpAnd:         {HintBitwise: +1, OperandCount: 2, Commutative: true, Symbol: "&", Name: "and", JoinBy: OpAnd},
	OpOr:          {HintBitwise: +1, OperandCount: 2, Commutative: true, Symbol: "|", Name: "or", JoinBy: OpOr},
	OpXor:         {HintBitwise: +1, OperandCount: 2, Commutative: true, Symbol: "^", Name: "xor", JoinBy: OpXor},
	OpShr:         {HintBitwise: +1, OperandCount: 2, Symbol: ">>", Name: "shr", JoinBy: OpAdd},
	OpShl:         {HintBitwise: +1, OperandCount: 2, Symbol: "<<", Name: "shl", JoinBy: OpAdd},
	OpRotr:        {HintBitwise: +1, OperandCount: 2, Symbol: ">]", Name: "rotr", JoinBy: OpAdd},
	OpRotl:        {HintBitwise: +1, OperandCount: 2, Symbol: "[<", Name: "rotl", JoinBy: OpAdd},
	OpNeg:         {HintBitwise: -1, Signed: true, OperandCount: 1, Symbol: "-", Name: "neg"},
	OpAdd:         {HintBitwise: -1, Signed: true, OperandCount: 2, Commutative: true, Symbol: "+", Name: "add", JoinBy: OpAdd},
	OpSub:         {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: "-", Name: "sub", JoinBy: OpAdd},
	OpMulHi:       {HintBitwise: -1, Signed: true, OperandCount: 2, Commutative: true, Symbol: "h*", Name: "mulhi"},
	OpMul:         {HintBitwise: -1, Signed: true, OperandCount: 2, Commutative: true, Symbol: "*", Name: "mul", JoinBy: OpMul},
	OpDiv:         {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: "/", Name: "div", JoinBy: OpMul},
	OpRem:         {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: "%", Name: "rem"},
	OpUMulHi:      {HintBitwise: -1, OperandCount: 2, Commutative: true, Symbol: "uh*", Name: "umulhi"},
	OpUMul:        {HintBitwise: -1, OperandCount: 2, Commutative: true, Symbol: "u*", Name: "umul", JoinBy: OpUMul},
	OpUDiv:        {HintBitwise: -1, OperandCount: 2, Symbol: "u/", Name: "udiv", JoinBy: OpUMul},
	OpURem:        {HintBitwise: -1, OperandCount: 2, Symbol: "u%", Name: "urem"},
	OpZeroExtend:  {OperandCount: 2, Name: "__zx"},
	OpSignExtend:  {Signed: true, OperandCount: 2, Name: "__sx"},
	OpPopCount:    {HintBitwise: +1, OperandCount: 1, Name: "__popcnt"},
	OpMostSigBit:  {HintBitwise: +1, OperandCount: 2, Name: "__msb"},
	OpLeastSigBit: {HintBitwise: +1, OperandCount: 2, Name: "__lsb"},
	OpBitTest:     {HintBitwise: +1, OperandCount: 2, Name: "__bt"},
	OpMask:        {HintBitwise: +1, OperandCount: 1, Name: "__mask"},
	OpBitCount:    {HintBitwise: +1, OperandCount: 1, Name: "__bcnt"},
	OpValueIf:     {OperandCount: 2, Symbol: "?", Name: "if"},
	OpMaxValue:    {OperandCount: 2, Name: "max", JoinBy: OpMaxValue},
	OpMinValue:    {OperandCount: 2, Name: "min", JoinBy: OpMinValue},
	OpSMaxValue:   {Signed: true, OperandCount: 2, Name: "max_sgn", JoinBy: OpSMaxValue},
	OpSMinValue:   {Signed: true, OperandCount: 2, Name: "min_sgn", JoinBy: OpSMinValue},
	OpGreater:     {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: ">", Name: "greater"},
	OpGreaterEq:   {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: ">=", Name: "greater_eq"},
	OpEqual:       {OperandCount: 2, Commutative: true, Symbol: "==", Name: "equal"},
	OpNotEqual:    {OperandCount: 2, Commutative: true, Symbol: "!=", Name: "not_equal"},
	OpLessEq:      {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: "<=", Name: "less_eq"},
	OpLess:        {HintBitwise: -1, Signed: true, OperandCount: 2, Symbol: "<", Name: "less"},
	OpUGreater:    {OperandCount: 2, Symbol: "u>", Name: "ugreater"},
	OpUGreaterEq:  {OperandCount: 2, Symbol: "u>=", Name: "ugreater_eq"},
	OpULessEq:     {OperandCount: 2, Symbol: "u<=", Name: "uless_eq"},
	OpULess:       {OperandCount: 2, Symbol: "u<", Name: "uless"},
}

func init() {
	for op := OpInvalid + 1; op < opMax; op++ {
		n := descriptors[op].OperandCount
		assert(n == 1 || n == 2, "descriptor %d: invalid operand count %d", op, n)
	}
}

// Descriptor returns the descriptor for op. Returns false for the sentinel
// operators and any out-of-range value.
func Descriptor(op Op) (*OpDesc, bool) {
	if op <= OpInvalid || op >= opMax {
		return nil, false
	}
	return &descriptors[op], true
}

// Valid returns true if op is strictly between the sentinels.
func (op Op) Valid() bool {
	return op > OpInvalid && op < opMax
}

// String returns the string representation of the operator.
func (op Op) String() string {
	if desc, ok := Descriptor(op); ok {
		return desc.Name
	}
	return fmt.Sprintf("Op<%d>", int(op))
}

// IsUnary returns true if op consumes only the right-hand operand.
func (op Op) IsUnary() bool {
	desc, ok := Descriptor(op)
	return ok && desc.OperandCount == 1
}

// IsComparison returns true if op is an ordered comparison producing a
// boolean result.
func (op Op) IsComparison() bool {
	return op >= OpGreater && op <= OpULess
}

// Format renders an application of the operator over the given operand
// strings. Unary operators prefix the right-hand operand; binary operators
// render infix when a symbol exists and in function form otherwise.
func (d *OpDesc) Format(lhs, rhs string) string {
	if d.OperandCount == 1 {
		if d.Symbol != "" {
			return d.Symbol + rhs
		}
		return fmt.Sprintf("%s(%s)", d.Name, rhs)
	}
	if d.Symbol != "" {
		return fmt.Sprintf("(%s%s%s)", lhs, d.Symbol, rhs)
	}
	return fmt.Sprintf("%s(%s, %s)", d.Name, lhs, rhs)
}
