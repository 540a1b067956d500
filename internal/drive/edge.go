package drive

import "time"

// EdgeEstimator turns rising-edge notifications into a measured period.
//
// HandleEdge is invoked by the hardware event dispatch path, so it must
// complete in bounded time: no locks, no allocation. lastEdge and seen
// are touched only from that path; the measured period is published
// through the shared State atomically.
type EdgeEstimator struct {
	state *State

	lastEdge time.Duration
	seen     bool
}

func NewEdgeEstimator(s *State) *EdgeEstimator {
	return &EdgeEstimator{state: s}
}

// HandleEdge records a rising edge observed at ts, a CLOCK_MONOTONIC
// offset (the gpiocdev LineEvent.Timestamp convention). The first edge
// only seeds the reference timestamp; each subsequent edge publishes the
// interval since the previous one. Edges are strictly later than their
// predecessor, so the delta is always positive.
func (e *EdgeEstimator) HandleEdge(ts time.Duration) {
	if e.seen {
		e.state.setPeriodMicros(uint64((ts - e.lastEdge).Microseconds()))
	}
	e.lastEdge = ts
	e.seen = true
}
