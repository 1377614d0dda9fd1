package codec

import (
	"math/bits"

	"github.com/tanagraspace/pocket-plus/lib/bitio"
	"github.com/tanagraspace/pocket-plus/lib/bitvector"
)

// BackwardPositions calls fn once for every set position of mask, in
// backward order (CCSDS §5.2.3, the order used for payload data):
// words from the highest index down, and within a word, set bits from
// the least-significant upward. This is the same traversal RLEEncode
// uses to walk positions from F-1 toward 0. Iteration stops at the
// first error fn returns.
func BackwardPositions(mask *bitvector.BitVector, fn func(pos int) error) error {
	words := mask.Words()
	length := mask.Len()

	for wordIdx := len(words) - 1; wordIdx >= 0; wordIdx-- {
		word := words[wordIdx]
		for word != 0 {
			lsb := word & -word
			tz := bits.TrailingZeros32(lsb)
			word ^= lsb

			pos := wordIdx*32 + (31 - tz)
			if pos >= length {
				continue
			}
			if err := fn(pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForwardPositions calls fn once for every set position of mask, in
// forward order (the order used for the k_t field): words from the
// lowest index up, and within a word, set bits from the
// most-significant downward. Iteration stops at the first error fn
// returns.
func ForwardPositions(mask *bitvector.BitVector, fn func(pos int) error) error {
	words := mask.Words()
	length := mask.Len()

	for wordIdx := 0; wordIdx < len(words); wordIdx++ {
		word := words[wordIdx]
		for word != 0 {
			lz := bits.LeadingZeros32(word)
			bitMask := uint32(1) << (31 - lz)
			word &^= bitMask

			pos := wordIdx*32 + lz
			if pos >= length {
				continue
			}
			if err := fn(pos); err != nil {
				return err
			}
		}
	}
	return nil
}

// BitExtract appends the data bits selected by mask, in backward order.
func BitExtract(output *bitio.Sink, data, mask *bitvector.BitVector) error {
	return BackwardPositions(mask, func(pos int) error {
		return output.AppendBit(data.GetBit(pos))
	})
}

// BitExtractForward appends the data bits selected by mask, in forward
// order.
func BitExtractForward(output *bitio.Sink, data, mask *bitvector.BitVector) error {
	return ForwardPositions(mask, func(pos int) error {
		return output.AppendBit(data.GetBit(pos))
	})
}

// BitInsert is the inverse of BitExtract: it reads one bit per set
// position of mask, in the same backward order BitExtract wrote them
// in, and writes each into result at that position.
func BitInsert(reader *bitio.Source, mask, result *bitvector.BitVector) error {
	return BackwardPositions(mask, func(pos int) error {
		bit, err := reader.ReadBit()
		if err != nil {
			return err
		}
		result.SetBit(pos, bit)
		return nil
	})
}
