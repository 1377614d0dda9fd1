// Package engine implements the POCKET+ encoder and decoder state
// machines (CCSDS 124.0-B-1 §4.F/§4.G): the per-packet pipeline that
// drives the mask kernel and entropy codecs to build and parse a
// compressed stream. Everything below this package (bitvector, bitio,
// codec, mask) is stateless arithmetic; engine is where the protocol's
// actual state lives.
//
// Grounded on spec.md alone: the reference implementation's
// compress.rs/decompress.rs are parameter-validation stubs with no
// state machine, so the control flow here has no source to port from
// verbatim. Open questions resolved along the way are recorded in
// DESIGN.md.
package engine

import (
	"github.com/tanagraspace/pocket-plus/lib/bitio"
	"github.com/tanagraspace/pocket-plus/lib/bitvector"
	"github.com/tanagraspace/pocket-plus/lib/codec"
	"github.com/tanagraspace/pocket-plus/lib/mask"
	"github.com/tanagraspace/pocket-plus/lib/pocketerr"
)

// Encoder holds the full lifetime state of one compression stream.
type Encoder struct {
	f int
	r int

	m *bitvector.BitVector // M_t, the current mask
	b *bitvector.BitVector // B_t, the current build vector
	i *bitvector.BitVector // I_{t-1}, the previous input packet

	changes  *changeRing
	newMasks *flagRing

	t int

	pt, ft, rt periodCounter

	sink *bitio.Sink
}

// NewEncoder constructs an encoder for packets of f bits, robustness
// r, and the three control-flag periods. f must be 1..bitvector.MaxLength
// and r must be 0..7 (CCSDS 124.0-B-1 caps the robustness field at 4
// bits' worth of bootstrap history).
func NewEncoder(f, r, ptLimit, ftLimit, rtLimit int) (*Encoder, error) {
	if f <= 0 || f > bitvector.MaxLength {
		return nil, &pocketerr.InvalidPacketSizeError{Size: f}
	}
	if r < 0 || r > 7 {
		return nil, &pocketerr.InvalidRobustnessError{R: r}
	}
	if ptLimit <= 0 || ftLimit <= 0 || rtLimit <= 0 {
		return nil, &pocketerr.InvalidFormatError{Reason: "period limits must be positive"}
	}
	return &Encoder{
		f:        f,
		r:        r,
		m:        bitvector.New(f),
		b:        bitvector.New(f),
		i:        bitvector.New(f),
		changes:  newChangeRing(f),
		newMasks: &flagRing{},
		pt:       newPeriodCounter(ptLimit),
		ft:       newPeriodCounter(ftLimit),
		rt:       newPeriodCounter(rtLimit),
		sink:     bitio.NewSink(),
	}, nil
}

// robustnessWindow computes X_t = D_t | D_{t-1} | ... | D_{t-min(R,t)}.
func (e *Encoder) robustnessWindow(dt *bitvector.BitVector) *bitvector.BitVector {
	xt := dt.Clone()
	limit := e.r
	if e.t < limit {
		limit = e.t
	}
	for i := 1; i <= limit; i++ {
		xt.OrAssign(e.changes.at(i))
	}
	return xt
}

// effectiveRobustness computes V_t: R extended upward by one for every
// consecutive all-zero change-ring entry starting at distance R+1
// back, capped at 15.
func (e *Encoder) effectiveRobustness() int {
	v := e.r
	for d := e.r + 1; d <= ringSize-1; d++ {
		if e.changes.at(d).PopCount() != 0 {
			break
		}
		v++
	}
	if v > 15 {
		v = 15
	}
	return v
}

// Step compresses one F-bit packet (packetBytes must hold exactly
// ceil(F/8) bytes) and appends its frame to the stream.
func (e *Encoder) Step(packetBytes []byte) error {
	it := bitvector.FromBytes(packetBytes, e.f)
	isFirst := e.t == 0
	fl := controlFlags(e.t, e.r, &e.pt, &e.ft, &e.rt)

	mPrev := e.m
	bPrev := e.b

	bt := mask.BuildUpdate(isFirst, fl.newMask, it, e.i, bPrev)
	mt := mask.MaskUpdate(fl.newMask, it, e.i, bPrev, mPrev)
	dt := mask.ChangeVector(isFirst, mt, mPrev)

	xt := e.robustnessWindow(dt)
	vt := e.effectiveRobustness()

	headerHasBody := vt > 0 && xt.PopCount() > 0
	var eBit, cBit uint8
	xPrime := bitvector.New(e.f) // positions where the mask went from 1 to 0, mirrors the decoder's X'_t
	if headerHasBody {
		notMt := mt.Not()
		xPrime = xt.And(notMt)
		if xPrime.PopCount() > 0 {
			eBit = 1
		}
		if eBit == 1 {
			newMaskCount := 0
			if fl.newMask {
				newMaskCount++
			}
			for d := 1; d <= vt; d++ {
				if e.newMasks.at(d) {
					newMaskCount++
				}
			}
			if newMaskCount >= 2 {
				cBit = 1
			}
		}
	}

	dDot := uint8(0)
	if !fl.sendMask && !fl.uncompressed {
		dDot = 1
	}

	if err := codec.RLEEncode(e.sink, xt); err != nil {
		return err
	}
	if err := e.sink.AppendValue(uint64(vt), 4); err != nil {
		return err
	}
	if headerHasBody {
		if err := e.sink.AppendBit(eBit); err != nil {
			return err
		}
		if eBit == 1 {
			if err := codec.BitExtractForward(e.sink, mt.Not(), xt); err != nil {
				return err
			}
			if err := e.sink.AppendBit(cBit); err != nil {
				return err
			}
		}
	}
	if err := e.sink.AppendBit(dDot); err != nil {
		return err
	}

	if dDot == 0 {
		if err := e.sink.AppendBit(boolBit(fl.sendMask)); err != nil {
			return err
		}
		if fl.sendMask {
			h := mask.HorizontalXOR(mt)
			if err := codec.RLEEncode(e.sink, h); err != nil {
				return err
			}
		}
		if err := e.sink.AppendBit(boolBit(fl.uncompressed)); err != nil {
			return err
		}
	}

	if fl.uncompressed {
		if err := codec.CountEncode(e.sink, uint32(e.f)); err != nil {
			return err
		}
		if err := e.sink.AppendBitVector(it); err != nil {
			return err
		}
	} else {
		extractMask := mt
		if cBit == 1 && vt > 0 {
			extractMask = mt.Or(xPrime)
		}
		if err := codec.BitExtract(e.sink, it, extractMask); err != nil {
			return err
		}
	}

	if err := e.sink.AlignByte(); err != nil {
		return err
	}

	e.i = it
	e.m = mt
	e.b = bt
	e.newMasks.push(fl.newMask)
	e.changes.push(dt)
	e.t++
	return nil
}

// Finish returns the compressed bytes accumulated across all Step
// calls.
func (e *Encoder) Finish() []byte {
	return e.sink.ToBytes()
}

func boolBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
