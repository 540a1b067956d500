package drive

import "sync/atomic"

// State is the block of state shared by the three execution contexts:
// the edge handler publishes the measured period, the control plane reads
// it and stores duty-cycle updates, and the generator loop reads the duty.
//
// Both scalars are independent atomics. No cross-field consistency is
// needed (period and duty are unrelated), and neither the edge handler
// nor the generator may ever block on a lock, so there is none to take.
type State struct {
	periodUS atomic.Uint64
	duty     atomic.Int32
}

// DefaultDuty is the duty cycle in percent until a caller writes one.
const DefaultDuty = 50

func NewState() *State {
	s := &State{}
	s.duty.Store(DefaultDuty)
	return s
}

// PeriodMicros returns the last measured inter-edge interval in
// microseconds. Zero means no interval has been measured yet.
func (s *State) PeriodMicros() uint64 {
	return s.periodUS.Load()
}

func (s *State) setPeriodMicros(us uint64) {
	s.periodUS.Store(us)
}

// Duty returns the current duty cycle in percent (0..100).
func (s *State) Duty() int {
	return int(s.duty.Load())
}

// SetDuty stores a new duty cycle, clamped to 0..100.
func (s *State) SetDuty(pct int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	s.duty.Store(int32(pct))
}
