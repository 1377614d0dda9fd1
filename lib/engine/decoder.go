package engine

import (
	"github.com/tanagraspace/pocket-plus/lib/bitio"
	"github.com/tanagraspace/pocket-plus/lib/bitvector"
	"github.com/tanagraspace/pocket-plus/lib/codec"
	"github.com/tanagraspace/pocket-plus/lib/mask"
	"github.com/tanagraspace/pocket-plus/lib/pocketerr"
)

// Decoder holds the full lifetime state of one decompression stream.
// Unlike Encoder it needs no ring buffers: every value the encoder
// derived from history (X_t, V_t) is carried on the wire, so the
// decoder only ever needs the current mask, the previous packet, and
// the step counter (spec.md §4.G).
type Decoder struct {
	f int
	r int

	m *bitvector.BitVector // M_t
	i *bitvector.BitVector // I_{t-1}

	t int
}

// NewDecoder constructs a decoder matching the parameters used by the
// corresponding Encoder. R is accepted for API symmetry with the
// encoder and is not otherwise read by the decoder algorithm, which
// takes X_t and V_t directly off the wire.
func NewDecoder(f, r int) (*Decoder, error) {
	if f <= 0 || f > bitvector.MaxLength {
		return nil, &pocketerr.InvalidPacketSizeError{Size: f}
	}
	if r < 0 || r > 7 {
		return nil, &pocketerr.InvalidRobustnessError{R: r}
	}
	return &Decoder{
		f: f,
		r: r,
		m: bitvector.New(f),
		i: bitvector.New(f),
	}, nil
}

// Step decodes one packet frame from reader and returns its F bits as
// ceil(F/8) bytes.
func (d *Decoder) Step(reader *bitio.Source) ([]byte, error) {
	xt, err := codec.RLEDecode(reader, d.f)
	if err != nil {
		return nil, err
	}
	vtRaw, err := reader.ReadBits(4)
	if err != nil {
		return nil, err
	}
	vt := int(vtRaw)

	xPrime := bitvector.New(d.f)
	var cBit uint8

	if vt > 0 && xt.PopCount() > 0 {
		eBit, err := reader.ReadBit()
		if err != nil {
			return nil, err
		}
		if eBit == 1 {
			walkErr := codec.ForwardPositions(xt, func(pos int) error {
				k, err := reader.ReadBit()
				if err != nil {
					return err
				}
				if k == 1 {
					d.m.SetBit(pos, 0)
					xPrime.SetBit(pos, 1)
				} else {
					d.m.SetBit(pos, 1)
				}
				return nil
			})
			if walkErr != nil {
				return nil, walkErr
			}
			cBit, err = reader.ReadBit()
			if err != nil {
				return nil, err
			}
		} else {
			if err := codec.ForwardPositions(xt, func(pos int) error {
				d.m.SetBit(pos, 1)
				return nil
			}); err != nil {
				return nil, err
			}
		}
	} else if vt == 0 && xt.PopCount() > 0 {
		if err := codec.ForwardPositions(xt, func(pos int) error {
			d.m.SetBit(pos, d.m.GetBit(pos)^1)
			return nil
		}); err != nil {
			return nil, err
		}
	}

	dDot, err := reader.ReadBit()
	if err != nil {
		return nil, err
	}

	sendMask := false
	uncompressed := false
	if dDot == 0 {
		sendBit, err := reader.ReadBit()
		if err != nil {
			return nil, err
		}
		sendMask = sendBit == 1
		if sendMask {
			h, err := codec.RLEDecode(reader, d.f)
			if err != nil {
				return nil, err
			}
			d.m = mask.InverseHorizontalXOR(h)
		}
		uBit, err := reader.ReadBit()
		if err != nil {
			return nil, err
		}
		uncompressed = uBit == 1
	}

	var out *bitvector.BitVector
	if uncompressed {
		if _, err := codec.CountDecode(reader); err != nil {
			return nil, err
		}
		out = bitvector.New(d.f)
		for pos := 0; pos < d.f; pos++ {
			bit, err := reader.ReadBit()
			if err != nil {
				return nil, err
			}
			out.SetBit(pos, bit)
		}
	} else {
		extractMask := d.m
		if cBit == 1 && vt > 0 {
			extractMask = d.m.Or(xPrime)
		}
		out = d.i.Clone()
		if err := codec.BitInsert(reader, extractMask, out); err != nil {
			return nil, err
		}
	}

	reader.AlignByte()

	d.i = out
	d.t++
	return out.ToBytes(), nil
}
