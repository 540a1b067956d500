package drive

import (
	"context"
	"sync/atomic"
	"time"
)

// Generator produces the PWM carrier: a fixed carrier period divided
// into equal steps, with the line held high for the first duty% of the
// steps of every cycle.
//
// The step counter is owned by the generator; the duty cycle is a
// snapshot read from shared State each tick, so a write lands on some
// subsequent tick rather than necessarily the very next one.
type Generator struct {
	state *State
	out   OutputLine

	steps   int
	tick    time.Duration
	counter int

	// tickErrs counts output-line write failures. The tick path cannot
	// afford to do more than count them; the service snapshot surfaces
	// the total.
	tickErrs atomic.Uint64
}

func NewGenerator(s *State, out OutputLine, carrier time.Duration, steps int) *Generator {
	return &Generator{
		state: s,
		out:   out,
		steps: steps,
		tick:  carrier / time.Duration(steps),
		// Start one step before zero so the first tick drives step 0.
		counter: steps - 1,
	}
}

// TickInterval is the spacing between generator ticks (carrier/steps).
func (g *Generator) TickInterval() time.Duration {
	return g.tick
}

// Tick advances one PWM step and drives the output line: high while the
// step counter is below the duty cycle, low for the rest of the cycle.
func (g *Generator) Tick() {
	g.counter = (g.counter + 1) % g.steps
	v := 0
	if g.counter < g.state.Duty() {
		v = 1
	}
	if err := g.out.SetValue(v); err != nil {
		g.tickErrs.Add(1)
	}
}

// TickErrors returns the number of output-line writes that have failed.
func (g *Generator) TickErrors() uint64 {
	return g.tickErrs.Load()
}

// nextDeadline advances the scheduled deadline by one tick. The new
// deadline is derived from the previous *scheduled* deadline, never
// from now, so scheduling jitter does not accumulate into carrier
// frequency drift. A late tick is not compensated: when the advanced
// deadline has already passed, the schedule skips forward a whole
// number of ticks and keeps phase instead of bursting to catch up.
func (g *Generator) nextDeadline(next, now time.Time) time.Time {
	next = next.Add(g.tick)
	if d := next.Sub(now); d <= 0 {
		skip := (-d)/g.tick + 1
		next = next.Add(skip * g.tick)
	}
	return next
}

// run ticks until ctx is done or stopCh closes.
func (g *Generator) run(ctx context.Context, stopCh <-chan struct{}) {
	timer := time.NewTimer(g.tick)
	defer timer.Stop()
	next := time.Now().Add(g.tick)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-timer.C:
			g.Tick()
			next = g.nextDeadline(next, time.Now())
			timer.Reset(time.Until(next))
		}
	}
}
