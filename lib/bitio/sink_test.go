package bitio

import (
	"testing"

	"github.com/tanagraspace/pocket-plus/lib/bitvector"
)

func TestSinkAppendBit(t *testing.T) {
	s := NewSink()
	bits := []uint8{1, 0, 1, 1, 0, 0, 1, 0} // 0xB2
	for _, b := range bits {
		if err := s.AppendBit(b); err != nil {
			t.Fatalf("AppendBit: %v", err)
		}
	}
	if s.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", s.Len())
	}
	got := s.ToBytes()
	if len(got) != 1 || got[0] != 0xB2 {
		t.Fatalf("ToBytes() = %x, want [b2]", got)
	}
}

func TestSinkAppendValue(t *testing.T) {
	s := NewSink()
	if err := s.AppendValue(0b1010, 4); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if err := s.AppendValue(0b1100, 4); err != nil {
		t.Fatal(err)
	}
	got := s.ToBytes()
	if got[0] != 0xAC {
		t.Fatalf("ToBytes()[0] = %x, want ac", got[0])
	}
}

func TestSinkAppendBits(t *testing.T) {
	s := NewSink()
	data := []byte{0xDE, 0xAD}
	if err := s.AppendBits(data, 16); err != nil {
		t.Fatal(err)
	}
	got := s.ToBytes()
	if got[0] != 0xDE || got[1] != 0xAD {
		t.Fatalf("ToBytes() = %x, want dead", got)
	}
}

func TestSinkAppendBitVector(t *testing.T) {
	s := NewSink()
	bv := bitvector.FromBytes([]byte{0xCA, 0xFE}, 16)
	if err := s.AppendBitVector(bv); err != nil {
		t.Fatal(err)
	}
	got := s.ToBytes()
	if got[0] != 0xCA || got[1] != 0xFE {
		t.Fatalf("ToBytes() = %x, want cafe", got)
	}
}

func TestSinkPartialByte(t *testing.T) {
	s := NewSink()
	for _, b := range []uint8{1, 0, 1, 1, 0} {
		if err := s.AppendBit(b); err != nil {
			t.Fatal(err)
		}
	}
	got := s.ToBytes()
	if got[0] != 0xB0 {
		t.Fatalf("ToBytes()[0] = %x, want b0 (10110 left-aligned)", got[0])
	}
}

func TestSinkMultiByte(t *testing.T) {
	s := NewSink()
	for _, v := range []uint64{0xDE, 0xAD, 0xBE} {
		if err := s.AppendValue(v, 8); err != nil {
			t.Fatal(err)
		}
	}
	got := s.ToBytes()
	want := []byte{0xDE, 0xAD, 0xBE}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("byte %d = %x, want %x", i, got[i], want[i])
		}
	}
}

func TestSinkAppendValueInvalidLength(t *testing.T) {
	s := NewSink()
	if err := s.AppendValue(0, 0); err == nil {
		t.Error("AppendValue(_, 0) should fail")
	}
	if err := s.AppendValue(0, 57); err == nil {
		t.Error("AppendValue(_, 57) should fail")
	}
}
