package timerwheel

import (
	"time"
)

// default is a 256 slot ring with 100ms ticks, covering 25.6s per revolution.
const (
	defaultRingLength = 256
	defaultTickWidth  = 100 * time.Millisecond
	defaultCapacity   = 256
)

// Options is common options
type Options struct {
	Logger     Logger
	Start      time.Time
	RingLength int
	TickWidth  time.Duration
	Capacity   int
}

// NewOptions creates options with defaults.
// Start defaults to time.Now() when no WithStart option is given.
func NewOptions(opts ...Option) Options {
	var options = Options{
		Logger:     discardLogger{},
		RingLength: defaultRingLength,
		TickWidth:  defaultTickWidth,
		Capacity:   defaultCapacity,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.Start.IsZero() {
		options.Start = time.Now()
	}

	return options
}

// Option is for setting options.
type Option func(*Options)

// WithLogger sets logger.
func WithLogger(logger Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithStart sets the creation instant all tick arithmetic is relative to.
// Useful for driving a wheel from a synthetic clock.
func WithStart(t time.Time) Option {
	return func(o *Options) {
		o.Start = t
	}
}

// WithRingLength sets the number of slots, must be a power of two and at
// least 2. If not, it will be ignored.
func WithRingLength(n int) Option {
	return func(o *Options) {
		if n >= 2 && n&(n-1) == 0 {
			o.RingLength = n
		}
	}
}

// WithTickWidth sets tick width, must be at least one millisecond.
// If not, it will be ignored.
func WithTickWidth(d time.Duration) Option {
	return func(o *Options) {
		if d >= time.Millisecond {
			o.TickWidth = d
		}
	}
}

// WithCapacity sets the initial number of entries the arena can hold
// before it has to grow, must be greater than 0.
// If not, it will be ignored.
func WithCapacity(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Capacity = n
		}
	}
}
