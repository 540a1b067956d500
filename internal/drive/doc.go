// Package drive is the real-time core of motorctl: a 1 kHz software PWM
// generator on one GPIO line and a rising-edge period meter on another,
// sharing state through atomics so that:
// - the edge handler never blocks and publishes the measured period
// - the generator tick reads a duty snapshot and drives the line
// - the control surface reads the period and stores duty updates
//
// Hardware access goes through the Linux GPIO character device
// (go-gpiocdev); non-Linux builds get error stubs.
package drive
