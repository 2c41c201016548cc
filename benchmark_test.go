package timerwheel

import (
	"testing"
	"time"
)

// BenchmarkInsert benchmarks the Insert method.
func BenchmarkInsert(b *testing.B) {
	tw := New[int](WithStart(epoch))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = tw.Insert(ms(int64(i%60_000)), i)
	}
}

// BenchmarkInsertCancel benchmarks an Insert immediately followed by Cancel.
// The arena never grows past its initial capacity.
func BenchmarkInsertCancel(b *testing.B) {
	tw := New[int](WithStart(epoch))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		t, _ := tw.Insert(ms(int64(i%60_000)), i)
		tw.Cancel(t)
	}
}

// BenchmarkPoll benchmarks draining timeouts spread over many ticks.
func BenchmarkPoll(b *testing.B) {
	tw := New[int](WithStart(epoch))
	for i := 0; i < b.N; i++ {
		_, _ = tw.Insert(ms(int64(i%600_000)), i)
	}
	b.ResetTimer()

	now := ms(700_000)
	for {
		if _, ok, _ := tw.Poll(now); !ok {
			break
		}
	}
}

// BenchmarkNextTimeout benchmarks the minimum query over the whole ring.
func BenchmarkNextTimeout(b *testing.B) {
	tw := New[int](WithStart(epoch))
	for i := 0; i < 10_000; i++ {
		_, _ = tw.Insert(ms(int64(i*7)), i)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		tw.NextTimeout()
	}
}

// BenchmarkSchedulerAfterParallel benchmarks parallel After calls.
func BenchmarkSchedulerAfterParallel(b *testing.B) {
	s := NewScheduler(func(int) {})
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = s.After(time.Hour, i)
			i++
		}
	})
}
