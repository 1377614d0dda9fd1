package mask

import (
	"testing"

	"github.com/tanagraspace/pocket-plus/lib/bitvector"
)

func TestBuildUpdateFirstStep(t *testing.T) {
	cur := bitvector.New(8)
	prev := bitvector.New(8)
	buildPrev := bitvector.New(8)
	buildPrev.SetBit(3, 1)

	got := BuildUpdate(true, false, cur, prev, buildPrev)
	if got.PopCount() != 0 {
		t.Errorf("B_0 should be zero, got popcount %d", got.PopCount())
	}
}

func TestBuildUpdateNewMaskResets(t *testing.T) {
	cur := bitvector.New(8)
	prev := bitvector.New(8)
	buildPrev := bitvector.New(8)
	buildPrev.SetBit(3, 1)

	got := BuildUpdate(false, true, cur, prev, buildPrev)
	if got.PopCount() != 0 {
		t.Errorf("B_t should reset to zero on new_mask, got popcount %d", got.PopCount())
	}
}

func TestBuildUpdateAccumulates(t *testing.T) {
	cur := bitvector.FromBytes([]byte{0b10100000}, 8)
	prev := bitvector.FromBytes([]byte{0b00100000}, 8)
	buildPrev := bitvector.New(8)
	buildPrev.SetBit(7, 1)

	got := BuildUpdate(false, false, cur, prev, buildPrev)
	if got.GetBit(0) != 1 {
		t.Error("expected bit 0 set from I_t xor I_prev")
	}
	if got.GetBit(7) != 1 {
		t.Error("expected bit 7 carried from B_prev")
	}
}

func TestMaskUpdateNewMask(t *testing.T) {
	cur := bitvector.FromBytes([]byte{0b11000000}, 8)
	prev := bitvector.New(8)
	buildPrev := bitvector.New(8)
	buildPrev.SetBit(7, 1)
	maskPrev := bitvector.New(8)
	maskPrev.SetBit(6, 1)

	got := MaskUpdate(true, cur, prev, buildPrev, maskPrev)
	if got.GetBit(7) != 1 {
		t.Error("new_mask should fold in buildPrev, not maskPrev")
	}
	if got.GetBit(6) != 0 {
		t.Error("new_mask should not see maskPrev")
	}
}

func TestMaskUpdateNoNewMask(t *testing.T) {
	cur := bitvector.New(8)
	prev := bitvector.New(8)
	buildPrev := bitvector.New(8)
	buildPrev.SetBit(7, 1)
	maskPrev := bitvector.New(8)
	maskPrev.SetBit(6, 1)

	got := MaskUpdate(false, cur, prev, buildPrev, maskPrev)
	if got.GetBit(6) != 1 {
		t.Error("non-new-mask should fold in maskPrev")
	}
	if got.GetBit(7) != 0 {
		t.Error("non-new-mask should not see buildPrev")
	}
}

func TestChangeVectorFirstStep(t *testing.T) {
	m := bitvector.FromBytes([]byte{0xAB}, 8)
	prev := bitvector.New(8)
	got := ChangeVector(true, m, prev)
	if !got.Equal(m) {
		t.Error("D_0 should equal M_0")
	}
}

func TestChangeVectorSubsequentStep(t *testing.T) {
	m := bitvector.FromBytes([]byte{0b11110000}, 8)
	prev := bitvector.FromBytes([]byte{0b11000000}, 8)
	got := ChangeVector(false, m, prev)
	want := bitvector.FromBytes([]byte{0b00110000}, 8)
	if !got.Equal(want) {
		t.Error("D_t should equal M_t xor M_prev")
	}
}

func TestHorizontalXORRoundTrip(t *testing.T) {
	m := bitvector.FromBytes([]byte{0b10110100, 0b01101001}, 16)
	h := HorizontalXOR(m)
	back := InverseHorizontalXOR(h)
	if !back.Equal(m) {
		t.Error("InverseHorizontalXOR(HorizontalXOR(M)) != M")
	}
}

func TestHorizontalXORLastBitUnchanged(t *testing.T) {
	m := bitvector.New(8)
	m.SetBit(7, 1)
	h := HorizontalXOR(m)
	if h.GetBit(7) != 1 {
		t.Error("H[F-1] must equal M[F-1]")
	}
}

func TestHorizontalXOR720(t *testing.T) {
	m := bitvector.New(720)
	for _, pos := range []int{0, 1, 2, 359, 360, 719} {
		m.SetBit(pos, 1)
	}
	h := HorizontalXOR(m)
	back := InverseHorizontalXOR(h)
	if !back.Equal(m) {
		t.Error("round-trip mismatch at F=720")
	}
}
