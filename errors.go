package timerwheel

import "errors"

var (
	// ErrPastCreation is returned when a timestamp precedes the instant the wheel was created.
	ErrPastCreation = errors.New("timerwheel: time is before wheel creation")
	// ErrOverflow is returned when a timestamp cannot be represented as a tick.
	ErrOverflow = errors.New("timerwheel: tick arithmetic overflow")
)
