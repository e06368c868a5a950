// Package clock converts variable wall-clock frame times into a fixed
// simulation cadence.
//
// Each frame the host calls Advance with the current time. The elapsed time
// (clamped to MaxDelta) is added to an accumulator, and the caller then calls
// DrainStep until it returns false, running one simulation tick per true.
package clock

import "time"

const (
	// DefaultStep is one tick at 60 ticks per second.
	DefaultStep = time.Second / 60

	// DefaultMaxDelta bounds catch-up after a stall (tab suspension, debugger, ...).
	DefaultMaxDelta = 250 * time.Millisecond
)

// Source provides monotonic timestamps.
type Source interface {
	Now() time.Time
}

// System reads the wall clock. time.Now carries a monotonic reading, so
// differences between two samples are immune to wall-clock adjustments.
type System struct{}

// Now returns the current time.
func (System) Now() time.Time {
	return time.Now()
}

// Clock accumulates elapsed time and hands it out in fixed steps.
type Clock struct {
	step        time.Duration
	maxDelta    time.Duration
	lastTime    time.Time
	started     bool
	accumulator time.Duration
}

// New creates a clock. Non-positive arguments fall back to the defaults.
func New(step, maxDelta time.Duration) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Clock{
		step:     step,
		maxDelta: maxDelta,
	}
}

// Reset sets the reference time and discards any accumulated time.
func (c *Clock) Reset(now time.Time) {
	c.lastTime = now
	c.started = true
	c.accumulator = 0
}

// Advance records now as the latest sample and adds the elapsed time since
// the previous sample to the accumulator. The returned delta is what was
// actually added: never negative and never more than the max delta.
// The first call on a fresh clock only establishes the reference time.
func (c *Clock) Advance(now time.Time) time.Duration {
	if !c.started {
		c.lastTime = now
		c.started = true
		return 0
	}

	delta := now.Sub(c.lastTime)
	c.lastTime = now

	if delta < 0 {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}

	c.accumulator += delta
	return delta
}

// DrainStep consumes one step from the accumulator if a full step is
// available and reports whether the caller should run a tick.
func (c *Clock) DrainStep() bool {
	if c.accumulator < c.step {
		return false
	}
	c.accumulator -= c.step
	return true
}

// Accumulator returns the time not yet consumed by ticks.
func (c *Clock) Accumulator() time.Duration {
	return c.accumulator
}

// Step returns the fixed tick length.
func (c *Clock) Step() time.Duration {
	return c.step
}

// MaxDelta returns the per-frame clamp.
func (c *Clock) MaxDelta() time.Duration {
	return c.maxDelta
}

// Alpha returns how far the accumulator is into the next step, in [0, 1).
// Renderers can use it to interpolate between the last two simulation states.
func (c *Clock) Alpha() float64 {
	return float64(c.accumulator) / float64(c.step)
}
