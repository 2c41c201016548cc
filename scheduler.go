package timerwheel

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	schedulerIdle int32 = iota
	schedulerRunning
	schedulerStopped
)

// idleWait is how long the background goroutine sleeps when nothing is
// scheduled. Any Schedule call wakes it up earlier.
const idleWait = time.Minute

// Scheduler drives a TimerWheel from a background goroutine.
//
// The goroutine sleeps until the wheel's next timeout, polls every timeout
// due by then and hands their data to the fire callback. All access to the
// wheel is serialized by a mutex, so Schedule and Cancel can be called from
// any goroutine. The callback runs on the background goroutine without the
// lock held and may schedule or cancel timeouts, or stop the scheduler.
type Scheduler[T any] struct {
	mu    sync.Mutex
	wheel *TimerWheel[T]

	// fire is called with the data of every timeout that fires.
	fire func(T)

	// wakeCh interrupts the sleep when an earlier timeout may have been added.
	wakeCh chan struct{}

	// stopCh tells the background goroutine to exit.
	stopCh chan struct{}

	// wg waits for the background goroutine to exit.
	wg sync.WaitGroup

	// state is one of schedulerIdle, schedulerRunning, schedulerStopped (atomic).
	state int32

	// firing is 1 while the background goroutine runs fire callbacks (atomic).
	firing int32
}

// NewScheduler creates a scheduler that calls fire for every timeout that
// fires. The options configure the underlying wheel.
func NewScheduler[T any](fire func(T), opts ...Option) *Scheduler[T] {
	return &Scheduler[T]{
		wheel:  New[T](opts...),
		fire:   fire,
		wakeCh: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
	}
}

// Start starts the background goroutine. It is non-blocking and only has an
// effect on a scheduler that has never been started or stopped.
func (s *Scheduler[T]) Start() {
	if !atomic.CompareAndSwapInt32(&s.state, schedulerIdle, schedulerRunning) {
		return
	}

	s.wg.Add(1)
	go s.run()
}

// Stop stops the background goroutine and waits for it to exit.
// A stopped scheduler cannot be started again; pending timeouts never fire,
// including the rest of a batch whose callbacks are being run.
//
// Stop may be called from the fire callback. While callbacks are running it
// does not wait, the goroutine exits as soon as the current callback returns.
func (s *Scheduler[T]) Stop() {
	if atomic.CompareAndSwapInt32(&s.state, schedulerIdle, schedulerStopped) {
		return
	}
	if !atomic.CompareAndSwapInt32(&s.state, schedulerRunning, schedulerStopped) {
		return
	}

	close(s.stopCh)
	if atomic.LoadInt32(&s.firing) == 0 {
		s.wg.Wait()
	}
}

// IsRunning returns true if the background goroutine is running.
func (s *Scheduler[T]) IsRunning() bool {
	return atomic.LoadInt32(&s.state) == schedulerRunning
}

// Schedule schedules data to be passed to the fire callback at the given
// deadline.
func (s *Scheduler[T]) Schedule(at time.Time, data T) (Timeout, error) {
	s.mu.Lock()
	t, err := s.wheel.Insert(at, data)
	s.mu.Unlock()

	if err != nil {
		return Timeout{}, err
	}

	s.wake()

	return t, nil
}

// After schedules data to be passed to the fire callback once d has elapsed.
func (s *Scheduler[T]) After(d time.Duration, data T) (Timeout, error) {
	return s.Schedule(time.Now().Add(d), data)
}

// Cancel cancels the timeout, returning its data if it had not fired yet.
func (s *Scheduler[T]) Cancel(t Timeout) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wheel.Cancel(t)
}

// Len returns the number of pending timeouts.
func (s *Scheduler[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wheel.Len()
}

// Stats returns a snapshot of the underlying wheel's statistics.
func (s *Scheduler[T]) Stats() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wheel.Stats()
}

func (s *Scheduler[T]) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

// run is the main loop of the background goroutine.
//
// 1. poll everything due by now
// 2. hand the fired data to the callback
// 3. sleep until the next timeout, a wake up or a stop
func (s *Scheduler[T]) run() {
	defer s.wg.Done()

	timer := time.NewTimer(idleWait)
	defer timer.Stop()

	for {
		now := time.Now()
		fired, next, ok := s.advance(now)
		if !s.dispatch(fired) {
			return
		}

		wait := idleWait
		if ok {
			// A next timeout that already passed without firing anything is a
			// cached instant left behind by a cancellation. Check back after a tick.
			if wait = next.Sub(now); wait <= 0 {
				wait = s.wheel.clock.width
			}
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-timer.C:
		case <-s.wakeCh:
		case <-s.stopCh:
			return
		}
	}
}

// dispatch hands fired data to the callback until the batch is done or the
// scheduler is stopped. It returns false once stopped.
func (s *Scheduler[T]) dispatch(fired []T) bool {
	atomic.StoreInt32(&s.firing, 1)
	defer atomic.StoreInt32(&s.firing, 0)

	for _, data := range fired {
		if atomic.LoadInt32(&s.state) == schedulerStopped {
			return false
		}
		s.fire(data)
	}

	return atomic.LoadInt32(&s.state) != schedulerStopped
}

// advance polls the wheel up to now and returns the fired data together with
// the wheel's next timeout.
func (s *Scheduler[T]) advance(now time.Time) (fired []T, next time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		data, hit, err := s.wheel.Poll(now)
		if err != nil {
			s.wheel.log.Printf("scheduler poll failed: %v", err)
			break
		}
		if !hit {
			break
		}
		fired = append(fired, data)
	}

	next, ok = s.wheel.NextTimeout()

	return fired, next, ok
}
