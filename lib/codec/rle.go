package codec

import (
	"math/bits"

	"github.com/tanagraspace/pocket-plus/lib/bitio"
	"github.com/tanagraspace/pocket-plus/lib/bitvector"
	"github.com/tanagraspace/pocket-plus/lib/pocketerr"
)

// RLEEncode run-length encodes input (CCSDS §5.2.2). It walks from the
// last position toward the first, encoding the gap before each set bit
// as a COUNT value (gap+1), and terminates with the literal '10'.
//
// Position 0 is stored at bit 31 (the MSB) of word 0, so "walking from
// F-1 toward 0" means: words from the highest index down, and within a
// word, set bits from the least-significant upward (increasing
// bits.TrailingZeros32, which is decreasing position within the word).
func RLEEncode(output *bitio.Sink, input *bitvector.BitVector) error {
	words := input.Words()
	lastPos := input.Len() // exclusive upper bound; no set bit seen yet

	for wordIdx := len(words) - 1; wordIdx >= 0; wordIdx-- {
		word := words[wordIdx]
		for word != 0 {
			lsb := word & -word
			tz := bits.TrailingZeros32(lsb)
			word ^= lsb

			globalPos := wordIdx*32 + (31 - tz)
			if globalPos >= lastPos {
				continue
			}
			gap := lastPos - globalPos - 1
			if err := CountEncode(output, uint32(gap)+1); err != nil {
				return err
			}
			lastPos = globalPos
		}
	}
	return output.AppendValue(0b10, 2)
}

// RLEDecode is the inverse of RLEEncode: it reads COUNT values until
// the '10' terminator, reconstructing an F-bit vector with a set bit
// at each decoded position.
func RLEDecode(reader *bitio.Source, length int) (*bitvector.BitVector, error) {
	out := bitvector.New(length)
	lastPos := length

	for {
		// The '10' terminator and a COUNT value are disambiguated by
		// CountDecode itself: it returns 0 exactly for that two-bit
		// prefix, and >= 1 for every real gap.
		gapPlus1, err := CountDecode(reader)
		if err != nil {
			return nil, err
		}
		if gapPlus1 == 0 {
			break
		}
		lastPos -= int(gapPlus1)
		if lastPos < 0 {
			return nil, &pocketerr.InvalidFormatError{Reason: "RLE position underflow"}
		}
		out.SetBit(lastPos, 1)
	}
	return out, nil
}
