package network

import "sync/atomic"

// Clock is a monotonic logical clock stamping trace events.
//
// Every recorded event carries a strictly increasing seq number from this
// clock, never a wall-clock timestamp. This keeps traces deterministic:
// the same sequence of turns produces the same sequence numbers, and
// causal order in the journal is explicit.
//
// Thread-safety: Clock uses atomic operations, though propagation itself
// is single-threaded and only one goroutine normally calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
