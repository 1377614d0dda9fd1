package engine

// periodCounter drives one of the three independent control-flag
// schedules (spec.md §4.F): new_mask on pt_limit, send_mask on
// ft_limit, uncompressed on rt_limit. Each counts down from its limit
// and fires (resetting to the limit) when it reaches 1.
type periodCounter struct {
	limit int
	count int
}

func newPeriodCounter(limit int) periodCounter {
	return periodCounter{limit: limit, count: limit}
}

// tick decrements the counter by one step and reports whether it
// fired this step.
func (c *periodCounter) tick() bool {
	c.count--
	if c.count <= 1 {
		c.count = c.limit
		return true
	}
	return false
}

// flags bundles the three per-step control flags the encoder derives
// before processing a packet. The decoder does not derive them: it
// reads d_dot, send_mask and uncompressed off the wire.
type flags struct {
	newMask      bool
	sendMask     bool
	uncompressed bool
}

// controlFlags computes the flags for step t of a stream with
// robustness R, given the three period counters. Steps 0..R are
// bootstrap steps: they force send_mask and uncompressed on and
// new_mask off, without touching the counters, so the decoder has a
// full R-step change history before any periodic schedule engages.
func controlFlags(t, r int, pt, ft, rt *periodCounter) flags {
	if t <= r {
		return flags{newMask: false, sendMask: true, uncompressed: true}
	}
	return flags{
		newMask:      pt.tick(),
		sendMask:     ft.tick(),
		uncompressed: rt.tick(),
	}
}
