// Package mask implements the POCKET+ mask kernel (CCSDS 124.0-B-1
// §4.E / Equations 6-8): the build-vector and mask-vector recurrences
// that track which packet positions are currently unpredictable, and
// the change-vector derivation consumed by both the encoder and
// decoder state machines.
//
// Grounded on the reference's mask.rs; translated here as free
// functions over *bitvector.BitVector rather than methods, since the
// kernel is pure arithmetic with no state of its own — the encoder and
// decoder own the mask, build, and previous-input vectors and call
// these functions at each step.
package mask

import "github.com/tanagraspace/pocket-plus/lib/bitvector"

// BuildUpdate computes B_t (CCSDS Equation 6).
//
//	t == 0 or newMask: B_t := 0
//	otherwise:         B_t := (I_t XOR I_prev) OR B_prev
func BuildUpdate(isFirstStep, newMask bool, current, previous, buildPrev *bitvector.BitVector) *bitvector.BitVector {
	if isFirstStep || newMask {
		return bitvector.New(current.Len())
	}
	return current.Xor(previous).Or(buildPrev)
}

// MaskUpdate computes M_t (CCSDS Equation 7), given the previous
// step's build vector B_prev (not the B_t that BuildUpdate returns for
// this step) and the previous mask M_prev.
//
//	newMask: M_t := (I_t XOR I_prev) OR B_prev
//	else:    M_t := (I_t XOR I_prev) OR M_prev
func MaskUpdate(newMask bool, current, previous, buildPrev, maskPrev *bitvector.BitVector) *bitvector.BitVector {
	delta := current.Xor(previous)
	if newMask {
		return delta.Or(buildPrev)
	}
	return delta.Or(maskPrev)
}

// ChangeVector computes D_t (CCSDS Equation 8).
//
//	t == 0: D_t := M_t
//	else:   D_t := M_t XOR M_prev
func ChangeVector(isFirstStep bool, current, previous *bitvector.BitVector) *bitvector.BitVector {
	if isFirstStep {
		return current.Clone()
	}
	return current.Xor(previous)
}

// HorizontalXOR computes H from M for the q_t full-mask refresh
// (spec.md §4.F): H[i] = M[i] XOR M[i+1] for i < F-1, H[F-1] = M[F-1].
func HorizontalXOR(m *bitvector.BitVector) *bitvector.BitVector {
	f := m.Len()
	h := bitvector.New(f)
	for i := 0; i < f-1; i++ {
		h.SetBit(i, m.GetBit(i)^m.GetBit(i+1))
	}
	if f > 0 {
		h.SetBit(f-1, m.GetBit(f-1))
	}
	return h
}

// InverseHorizontalXOR recovers M from H, the decoder's side of
// HorizontalXOR. The decoder propagates from position F-1 toward 0:
// M[F-1] = H[F-1], M[i] = H[i] XOR M[i+1] for i < F-1.
func InverseHorizontalXOR(h *bitvector.BitVector) *bitvector.BitVector {
	f := h.Len()
	m := bitvector.New(f)
	if f == 0 {
		return m
	}
	m.SetBit(f-1, h.GetBit(f-1))
	for i := f - 2; i >= 0; i-- {
		m.SetBit(i, h.GetBit(i)^m.GetBit(i+1))
	}
	return m
}
