package timerwheel

import (
	"errors"
	"math"
	"testing"
	"time"
)

func newTestClock() tickClock {
	return tickClock{start: epoch, width: 100 * time.Millisecond, mask: 255}
}

func Test_tickClock_ticks(t *testing.T) {
	tests := []struct {
		at   time.Time
		err  error
		name string
		want uint64
	}{
		{name: "creation", at: epoch, want: 0},
		{name: "rounds down below half", at: ms(49), want: 0},
		{name: "rounds up at half", at: ms(50), want: 1},
		{name: "exact tick", at: ms(100), want: 1},
		{name: "just under the next half", at: ms(149), want: 1},
		{name: "next half", at: ms(150), want: 2},
		{name: "sub millisecond", at: epoch.Add(149*time.Millisecond + 999*time.Microsecond), want: 1},
		{name: "a revolution later", at: ms(25_600), want: 256},
		{name: "before creation", at: ms(-1), err: ErrPastCreation},
		{name: "saturated", at: epoch.AddDate(300, 0, 0), err: ErrOverflow},
		{name: "largest duration", at: epoch.Add(time.Duration(math.MaxInt64)), err: ErrOverflow},
	}

	c := newTestClock()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.ticks(tt.at)
			if tt.err != nil {
				equal(t, errors.Is(err, tt.err), true)
				return
			}
			equal(t, err, nil)
			equal(t, got, tt.want)
		})
	}
}

func Test_tickClock_ticksIsMonotonic(t *testing.T) {
	c := newTestClock()
	var last uint64
	for n := int64(0); n < 5_000; n += 7 {
		got, err := c.ticks(ms(n))
		equal(t, err, nil)
		if got < last {
			t.Fatalf("ticks(%dms) = %d, went back from %d", n, got, last)
		}
		again, _ := c.ticks(ms(n))
		equal(t, again, got)
		last = got
	}
}

func Test_tickClock_startOf(t *testing.T) {
	c := newTestClock()

	got, err := c.startOf(0)
	equal(t, err, nil)
	equal(t, got.Equal(epoch), true)

	got, err = c.startOf(12)
	equal(t, err, nil)
	equal(t, got.Equal(ms(1_200)), true)

	_, err = c.startOf(math.MaxUint64)
	equal(t, errors.Is(err, ErrOverflow), true)

	_, err = c.startOf(uint64(math.MaxInt64)/uint64(100*time.Millisecond) + 1)
	equal(t, errors.Is(err, ErrOverflow), true)
}

func Test_tickClock_index(t *testing.T) {
	c := newTestClock()
	equal(t, c.index(0), 0)
	equal(t, c.index(255), 255)
	equal(t, c.index(256), 0)
	equal(t, c.index(261), 5)
}
