package timerwheel

// Statistics contains timer wheel metrics.
type Statistics struct {
	live      int
	capacity  int
	inserted  int64
	fired     int64
	cancelled int64
	deferred  int64
}

// Live returns the number of pending timeouts.
func (s Statistics) Live() int {
	return s.live
}

// Capacity returns how many timeouts the wheel holds before it has to grow.
func (s Statistics) Capacity() int {
	return s.capacity
}

// Inserted returns the total number of timeouts inserted.
func (s Statistics) Inserted() int64 {
	return s.inserted
}

// Fired returns the total number of timeouts returned by Poll.
func (s Statistics) Fired() int64 {
	return s.fired
}

// Cancelled returns the total number of timeouts removed by Cancel.
func (s Statistics) Cancelled() int64 {
	return s.cancelled
}

// Deferred returns the total number of timeouts inserted for a tick that had
// already been polled and therefore moved to the next one.
func (s Statistics) Deferred() int64 {
	return s.deferred
}

// Stats returns a snapshot of the wheel's statistics.
func (tw *TimerWheel[T]) Stats() Statistics {
	s := tw.stats
	s.live = tw.arena.count
	s.capacity = tw.arena.capacity()

	return s
}
