package timerwheel

import (
	"log"

	"github.com/zeromicro/go-zero/core/logx"
)

// Logger receives the wheel's debug output: deferrals, insertions and the
// computed next timeouts. It is called synchronously from the wheel's
// methods, so it must not call back into the wheel.
type Logger interface {
	Printf(string, ...any)
}

// LoggerFunc adapts a printf style function to Logger.
type LoggerFunc func(string, ...any)

// Printf implements Logger interface.
func (f LoggerFunc) Printf(msg string, args ...any) { f(msg, args...) }

// discardLogger is used when no logger is configured.
type discardLogger struct{}

func (discardLogger) Printf(string, ...any) {}

var (
	// Printf writes through the standard library logger.
	Printf = LoggerFunc(log.Printf)

	// Logx writes through go-zero's logx at debug level, so the output follows
	// whatever logx.MustSetup configured.
	Logx = LoggerFunc(logx.Debugf)
)

// prefixed tags every line with the package name. A discarded logger stays
// discarded without formatting anything.
func prefixed(l Logger) Logger {
	if _, ok := l.(discardLogger); ok || l == nil {
		return discardLogger{}
	}

	return LoggerFunc(func(format string, args ...any) {
		l.Printf("timerwheel: "+format, args...)
	})
}
