package drive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// maxDutyInput bounds a duty-cycle write. Longer inputs are rejected
// outright rather than truncated.
const maxDutyInput = 15

// ErrInputTooLarge is returned by WriteDuty when the input exceeds
// maxDutyInput bytes.
var ErrInputTooLarge = errors.New("duty-cycle input too large")

// ErrNotANumber is returned by WriteDuty when the input does not parse
// as a base-10 integer.
var ErrNotANumber = errors.New("duty-cycle input is not an integer")

// Control is the caller-facing surface: one read operation for the
// measured period and one write operation for the duty cycle. Both
// complete in bounded time and may run concurrently with the edge
// handler and the generator loop.
type Control struct {
	state *State
}

func NewControl(s *State) *Control {
	return &Control{state: s}
}

// ReadPeriod formats the last measured inter-edge interval as decimal
// microseconds with a trailing newline, e.g. "1000\n". "0\n" means no
// interval has been measured yet.
func (c *Control) ReadPeriod() string {
	return strconv.FormatUint(c.state.PeriodMicros(), 10) + "\n"
}

// WriteDuty parses text as a base-10 duty-cycle percentage, clamps it to
// 0..100 and stores it. Trailing whitespace (typically a newline) is
// accepted. On failure the stored duty cycle is left unchanged. Returns
// the number of bytes consumed.
func (c *Control) WriteDuty(text []byte) (int, error) {
	if len(text) > maxDutyInput {
		return 0, fmt.Errorf("%w: %d bytes (limit %d)", ErrInputTooLarge, len(text), maxDutyInput)
	}
	s := strings.TrimSpace(string(text))
	pct, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	c.state.SetDuty(pct)
	return len(text), nil
}
