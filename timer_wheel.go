package timerwheel

import (
	"time"
)

// TimerWheel is a timer wheel where data can be associated with each timeout.
//
// The wheel is a ring of slots, each representing a fixed width of time
// (a tick). A timeout is bucketed into the slot of the tick nearest to its
// deadline and linked into that slot's list, so inserting and cancelling are
// O(1), and finding what has fired only touches the slots between the last
// poll and now.
//
// Because of the fixed resolution, timeouts do not fire promptly at their
// deadline but at the tick they were bucketed into.
//
// A TimerWheel is not safe for concurrent use. It keeps no notion of the
// current time; every call that needs one takes it as an argument.
type TimerWheel[T any] struct {
	Options // inherited options

	log   Logger
	clock tickClock
	wheel []slot
	arena *arena[T]

	// Drain cursor. Every tick before curTick has been fully polled;
	// curIndex walks the list of curTick's slot and is empty once that list
	// is exhausted.
	curTick  uint64
	curIndex int

	stats Statistics
}

// New creates a timer wheel with no timeouts.
//
// By default the ring has 256 slots of 100ms each and the wheel is created
// at time.Now().
func New[T any](opts ...Option) *TimerWheel[T] {
	options := NewOptions(opts...)

	return &TimerWheel[T]{
		Options: options,
		log:     prefixed(options.Logger),
		clock: tickClock{
			start: options.Start,
			width: options.TickWidth,
			mask:  uint64(options.RingLength - 1),
		},
		wheel: make([]slot, options.RingLength),
		arena: newArena[T](options.Capacity),
	}
}

// Insert schedules data to fire at the given deadline and returns a Timeout
// that can be passed to Cancel.
//
// A deadline that falls on a tick the wheel has already polled is moved to
// the tick after the one being polled, so it fires on a later Poll instead
// of being skipped.
//
// It fails with ErrPastCreation when at precedes the creation instant and
// with ErrOverflow when at cannot be expressed in ticks; the wheel is left
// untouched in both cases.
func (tw *TimerWheel[T]) Insert(at time.Time, data T) (Timeout, error) {
	due, err := tw.clock.ticks(at)
	if err != nil {
		return Timeout{}, err
	}

	tick := due
	if tick <= tw.curTick {
		tick = tw.curTick + 1
	}

	begin, err := tw.clock.startOf(tick)
	if err != nil {
		return Timeout{}, err
	}

	if tick != due {
		tw.log.Printf("moving %d to %d", due, tick)
		tw.stats.deferred++
	}

	idx := tw.arena.alloc()
	s := &tw.wheel[tw.clock.index(tick)]
	e := &tw.arena.entries[idx]
	e.data, e.when, e.tick, e.due = data, at, tick, due
	e.next = s.head
	if s.head != empty {
		tw.arena.entries[s.head].prev = idx
	}
	s.head = idx

	// Rounding to the nearest tick can put a deadline in a tick that only
	// begins after it, so never cache anything before the tick starts.
	// The cache is only ever lowered here, other entries may share the slot.
	if begin.Before(at) {
		begin = at
	}
	s.lower(begin)

	tw.stats.inserted++
	tw.log.Printf("inserted %d at slot %d for tick %d", idx, tw.clock.index(tick), tick)

	return Timeout{when: at, index: idx}, nil
}

// Poll advances the wheel to now and returns the data of one timeout that
// has fired by then.
//
// Poll returns at most one timeout per call; it must be called in a loop
// until ok is false to process every timeout due at now. Progress is kept
// between calls, so ticks that were fully polled are never visited again.
//
// It fails with ErrPastCreation or ErrOverflow under the same conditions as
// Insert.
func (tw *TimerWheel[T]) Poll(now time.Time) (data T, ok bool, err error) {
	target, err := tw.clock.ticks(now)
	if err != nil {
		return data, false, err
	}

	for tw.curTick <= target {
		head := tw.curIndex

		// The current slot is exhausted, move on to the next tick.
		if head == empty {
			tw.curTick++
			s := &tw.wheel[tw.clock.index(tw.curTick)]
			if s.head == empty {
				// nothing lives here, whatever is cached was cancelled.
				s.reset()
			}
			tw.curIndex = s.head
			continue
		}

		// Starting on a slot: most of it is about to fire, so forget the cached
		// instant and rebuild it from the entries that survive.
		s := &tw.wheel[tw.clock.index(tw.curTick)]
		if head == s.head {
			s.reset()
		}

		e := &tw.arena.entries[head]
		tw.curIndex = e.next
		if e.tick <= target {
			tw.stats.fired++
			return tw.remove(head).data, true, nil
		}

		// Belongs to a later revolution of the ring.
		s.lower(e.when)
	}

	return data, false, nil
}

// NextTimeout returns the instant at which the earliest pending timeout is
// due, or false when the wheel is empty.
//
// Half a tick is added to compensate for the nearest-tick rounding, so that
// polling at the returned instant never happens before the timeout's tick
// has come.
func (tw *TimerWheel[T]) NextTimeout() (time.Time, bool) {
	var (
		earliest time.Time
		found    bool
	)

	for i := range tw.wheel {
		s := &tw.wheel[i]
		if s.armed && (!found || s.next.Before(earliest)) {
			earliest, found = s.next, true
		}
	}

	if !found {
		return time.Time{}, false
	}

	next := earliest.Add(tw.clock.width / 2)
	tw.log.Printf("next timeout %v", next)

	return next, true
}

// Cancel cancels the timeout and returns its data.
//
// ok is false when the timeout already fired or was already cancelled, even
// if its slot in the arena now holds another timeout.
func (tw *TimerWheel[T]) Cancel(t Timeout) (data T, ok bool) {
	e := tw.arena.get(t.index)
	if e == nil || !e.when.Equal(t.when) {
		return data, false
	}

	tw.stats.cancelled++

	return tw.remove(t.index).data, true
}

// Len returns the number of pending timeouts.
func (tw *TimerWheel[T]) Len() int {
	return tw.arena.count
}

// remove unlinks idx from its slot list and releases it.
// The slot's cached instant is left alone.
func (tw *TimerWheel[T]) remove(idx int) entry[T] {
	e := &tw.arena.entries[idx]
	if e.prev == empty {
		tw.wheel[tw.clock.index(e.tick)].head = e.next
	} else {
		tw.arena.entries[e.prev].next = e.next
	}
	if e.next != empty {
		tw.arena.entries[e.next].prev = e.prev
	}

	if tw.curIndex == idx {
		tw.curIndex = e.next
	}

	return tw.arena.release(idx)
}
