package timerwheel

import (
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"
)

// epoch is the creation instant of the wheels under test. It carries no
// monotonic reading so arithmetic far from it behaves like the wall clock.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ms returns epoch plus n milliseconds.
func ms(n int64) time.Time {
	return epoch.Add(time.Duration(n) * time.Millisecond)
}

func equal(t *testing.T, got, want any) {
	if !reflect.DeepEqual(got, want) {
		_, file, line, _ := runtime.Caller(1)
		t.Logf("\033[37m%s:%d:\n got: %#v\nwant: %#v\033[39m\n ", filepath.Base(file), line, got, want)
		t.FailNow()
	}
}

// drain polls w at now until nothing more fires.
func drain[T any](t *testing.T, w *TimerWheel[T], now time.Time) []T {
	var fired []T
	for {
		data, ok, err := w.Poll(now)
		if err != nil {
			t.Fatalf("Poll(%v): %v", now, err)
		}
		if !ok {
			return fired
		}
		fired = append(fired, data)
	}
}
