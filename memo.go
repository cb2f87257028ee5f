package bitmath

import "github.com/benbjohnson/immutable"

// memoKey identifies a partial evaluation by operator and operand state.
type memoKey struct {
	op                   Op
	lhsValue, lhsUnknown uint64
	lhsWidth             uint
	rhsValue, rhsUnknown uint64
	rhsWidth             uint
}

// memoKeyHasher hashes memoKey values. Implements immutable.Hasher.
type memoKeyHasher struct{}

func (h *memoKeyHasher) Hash(key interface{}) uint32 {
	k := key.(memoKey)
	x := uint64(k.op)
	for _, u := range [...]uint64{
		k.lhsValue, k.lhsUnknown, uint64(k.lhsWidth),
		k.rhsValue, k.rhsUnknown, uint64(k.rhsWidth),
	} {
		x ^= u
		x *= 0x100000001b3 // FNV-1a
	}
	return uint32(x ^ x>>32)
}

func (h *memoKeyHasher) Equal(a, b interface{}) bool {
	return a.(memoKey) == b.(memoKey)
}

// Memo is a persistent cache of partial evaluation results. Both evaluators
// are referentially transparent, so a result recorded once holds for every
// later call with the same arguments. Memos are immutable: recording an
// entry returns a new Memo sharing structure with the old one, which stays
// valid for concurrent readers.
type Memo struct {
	m *immutable.Map
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{m: immutable.NewMap(&memoKeyHasher{})}
}

// Len returns the number of recorded results.
func (mm *Memo) Len() int { return mm.m.Len() }

// EvaluatePartial returns the memoized result of EvaluatePartial(op, lhs,
// rhs), computing it on first use. The receiver is never modified; the
// returned memo contains the entry. Failed evaluations are not recorded.
func (mm *Memo) EvaluatePartial(op Op, lhs, rhs BitVector) (BitVector, *Memo, error) {
	key := memoKey{
		op:       op,
		lhsValue: lhs.value, lhsUnknown: lhs.unknown, lhsWidth: lhs.width,
		rhsValue: rhs.value, rhsUnknown: rhs.unknown, rhsWidth: rhs.width,
	}
	if v, ok := mm.m.Get(key); ok {
		return v.(BitVector), mm, nil
	}

	out, err := EvaluatePartial(op, lhs, rhs)
	if err != nil {
		return BitVector{}, mm, err
	}
	return out, &Memo{m: mm.m.Set(key, out)}, nil
}
