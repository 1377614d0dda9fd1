// Package codec implements the three POCKET+ entropy codecs (CCSDS
// 124.0-B-1 §5.2): Counter encoding (COUNT), run-length encoding
// (RLE), and bit extraction/insertion (BE). Each codec is a pure
// function of a Sink/Source and the values it reads or writes; none
// hold state across calls.
//
// Grounded on the reference's encode.rs/decode.rs, with the de Bruijn
// bit-scan there replaced by math/bits (see DESIGN.md): both give the
// same trailing/leading-zero count, and math/bits is what the teacher
// package (lib/per) reaches for when it needs bit-length arithmetic.
package codec

import (
	"math/bits"

	"github.com/tanagraspace/pocket-plus/lib/bitio"
	"github.com/tanagraspace/pocket-plus/lib/pocketerr"
)

// CountEncode writes the counter encoding of A (CCSDS Equation 9):
//
//	A = 1        -> '0'
//	2 <= A <= 33 -> '110' || BIT5(A-2)
//	A >= 34      -> '111' || BIT_E(A-2), E = 2*floor(log2(A-2)+1) - 6
//
// A must satisfy 1 <= A <= 65535.
func CountEncode(sink *bitio.Sink, a uint32) error {
	switch {
	case a == 0 || a > 65535:
		return &pocketerr.InvalidFormatError{Reason: "COUNT value out of range"}
	case a == 1:
		return sink.AppendBit(0)
	case a <= 33:
		if err := sink.AppendValue(0b110, 3); err != nil {
			return err
		}
		return sink.AppendValue(uint64(a-2), 5)
	default:
		if err := sink.AppendValue(0b111, 3); err != nil {
			return err
		}
		value := a - 2
		highestBit := bits.Len32(value) - 1
		e := 2*(highestBit+1) - 6
		return sink.AppendValue(uint64(value), e)
	}
}

// CountDecode reads one counter-encoded value, the inverse of
// CountEncode. It also doubles as the RLE terminator reader: a leading
// "10" decodes to 0, which RLE treats as "no more set bits".
func CountDecode(src *bitio.Source) (uint32, error) {
	bit0, err := src.ReadBit()
	if err != nil {
		return 0, err
	}
	if bit0 == 0 {
		return 1, nil
	}

	bit1, err := src.ReadBit()
	if err != nil {
		return 0, err
	}
	if bit1 == 0 {
		return 0, nil
	}

	bit2, err := src.ReadBit()
	if err != nil {
		return 0, err
	}
	if bit2 == 0 {
		raw, err := src.ReadBits(5)
		if err != nil {
			return 0, err
		}
		return raw + 2, nil
	}

	// '111' prefix: count the unary run of zeros up to and including
	// the terminating '1', which is itself the top bit of the value
	// field. Rewind it so the value read below includes that bit.
	size := 0
	for {
		next, err := src.ReadBit()
		if err != nil {
			return 0, err
		}
		size++
		if next == 1 {
			break
		}
	}
	valueBits := size + 5
	if err := src.Back(); err != nil {
		return 0, err
	}
	raw, err := src.ReadBits(valueBits)
	if err != nil {
		return 0, err
	}
	return raw + 2, nil
}
