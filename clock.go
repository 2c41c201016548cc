package timerwheel

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

// tickClock maps absolute instants onto discrete ticks counted from the
// creation instant of a wheel, and ticks onto ring positions.
type tickClock struct {
	start time.Time
	width time.Duration
	mask  uint64
}

// ticks returns the tick nearest to t. Rounding to the nearest tick instead
// of flooring halves the average distance between a deadline and the tick
// it is bucketed into.
func (c tickClock) ticks(t time.Time) (uint64, error) {
	if t.Before(c.start) {
		return 0, fmt.Errorf("%w: %v is %v before creation", ErrPastCreation, t, c.start.Sub(t))
	}

	// Sub saturates instead of wrapping, so the largest duration means the
	// real distance could not be represented.
	d := t.Sub(c.start)
	if d == math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is too far from creation", ErrOverflow, t)
	}

	ns, carry := bits.Add64(uint64(d), uint64(c.width/2), 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %v is too far from creation", ErrOverflow, t)
	}

	return ns / uint64(c.width), nil
}

// startOf returns the nominal instant at which tick begins.
func (c tickClock) startOf(tick uint64) (time.Time, error) {
	hi, lo := bits.Mul64(tick, uint64(c.width))
	if hi != 0 || lo > math.MaxInt64 {
		return time.Time{}, fmt.Errorf("%w: tick %d", ErrOverflow, tick)
	}

	return c.start.Add(time.Duration(lo)), nil
}

// index returns the ring slot of tick.
func (c tickClock) index(tick uint64) int {
	return int(tick & c.mask)
}
