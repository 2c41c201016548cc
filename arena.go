package timerwheel

// arena is the memory backing the slot lists. Entries are addressed by a
// stable index; growing never moves an index, and index 0 is never handed
// out so it can stand for "no entry".
type arena[T any] struct {
	entries []entry[T]
	// head of the free list, threaded through entry.next.
	free  int
	count int
}

func newArena[T any](capacity int) *arena[T] {
	a := &arena[T]{
		entries: make([]entry[T], 1, capacity+1),
	}
	a.grow(capacity)

	return a
}

// grow adds n vacant entries and pushes them onto the free list so that the
// lowest new index is handed out first.
func (a *arena[T]) grow(n int) {
	var (
		l = len(a.entries)
		s = l + n
	)

	if s > cap(a.entries) {
		ne := make([]entry[T], l, s)
		copy(ne, a.entries)
		a.entries = ne
	}

	a.entries = a.entries[:s]
	for i := s - 1; i >= l; i-- {
		a.entries[i].next = a.free
		a.free = i
	}
}

// alloc takes a vacant index, doubling the capacity when none is left.
func (a *arena[T]) alloc() int {
	if a.free == empty {
		a.grow(a.capacity())
	}

	idx := a.free
	e := &a.entries[idx]
	a.free = e.next
	e.prev, e.next, e.live = empty, empty, true
	a.count++

	return idx
}

// release returns idx to the free list and hands back what it held.
func (a *arena[T]) release(idx int) entry[T] {
	e := a.entries[idx]
	a.entries[idx] = entry[T]{next: a.free}
	a.free = idx
	a.count--

	return e
}

// get returns the live entry at idx, or nil.
func (a *arena[T]) get(idx int) *entry[T] {
	if idx <= empty || idx >= len(a.entries) || !a.entries[idx].live {
		return nil
	}

	return &a.entries[idx]
}

func (a *arena[T]) capacity() int {
	return len(a.entries) - 1
}
