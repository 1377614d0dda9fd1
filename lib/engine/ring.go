package engine

import "github.com/tanagraspace/pocket-plus/lib/bitvector"

// ringSize is the depth of history the encoder keeps: the robustness
// window never looks back further than 15 steps past R (spec.md §4.F,
// effective-robustness V_t capped at 15), so 16 change vectors and 16
// new-mask flags (distance 1..16 back) are always enough.
const ringSize = 16

// changeRing holds the last ringSize change vectors D_{t-1..t-16}.
// Slots with no real history yet are zero vectors rather than nil:
// absence of a prior step is treated as "no change", which is what
// lets the robustness-window and effective-robustness math run
// unmodified during the first few steps of a stream.
type changeRing struct {
	entries [ringSize]*bitvector.BitVector
}

func newChangeRing(f int) *changeRing {
	r := &changeRing{}
	for i := range r.entries {
		r.entries[i] = bitvector.New(f)
	}
	return r
}

// push inserts the newest change vector, shifting every other entry
// one slot further back and dropping the oldest.
func (r *changeRing) push(v *bitvector.BitVector) {
	copy(r.entries[1:], r.entries[:ringSize-1])
	r.entries[0] = v
}

// at returns the change vector distance steps back (distance 1 is the
// most recently pushed). distance must be in [1, ringSize].
func (r *changeRing) at(distance int) *bitvector.BitVector {
	return r.entries[distance-1]
}

// flagRing holds the last ringSize new-mask flags, same convention as
// changeRing.
type flagRing struct {
	entries [ringSize]bool
}

func (r *flagRing) push(v bool) {
	copy(r.entries[1:], r.entries[:ringSize-1])
	r.entries[0] = v
}

func (r *flagRing) at(distance int) bool {
	return r.entries[distance-1]
}
