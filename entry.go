package timerwheel

import "time"

// empty is the arena index that never holds an entry. It terminates the
// slot lists and the free list.
const empty = 0

type (
	entry[T any] struct {
		data T
		// the deadline requested by the caller, also the handle generation token.
		when time.Time
		// the tick whose slot holds the entry. later than due when deferred.
		tick uint64
		// the tick nearest to when.
		due uint64
		// neighbours in the slot list, or the next free index while released.
		prev int
		next int
		live bool
	}

	// slot is one ring bucket. next caches the earliest instant worth waking
	// up for among the entries in the list; it is only rebuilt lazily, so after
	// a removal it may still point at an entry that no longer exists.
	slot struct {
		head  int
		next  time.Time
		armed bool
	}

	// Timeout is a timeout which has been scheduled with a TimerWheel.
	//
	// It can be used to later cancel the timeout. A Timeout whose entry already
	// fired or was cancelled is stale, even when its arena index has since been
	// handed to another timeout.
	Timeout struct {
		when  time.Time
		index int
	}
)

// When returns the deadline the timeout was scheduled for.
func (t Timeout) When() time.Time {
	return t.when
}

// lower lowers the cached instant to at, arming the slot if needed.
func (s *slot) lower(at time.Time) {
	if !s.armed || !s.next.Before(at) {
		s.next = at
		s.armed = true
	}
}

// reset forgets the cached instant.
func (s *slot) reset() {
	s.next = time.Time{}
	s.armed = false
}
