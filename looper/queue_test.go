// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewQueueRoundsUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{3, 4},
		{64, 64},
		{100, 128},
		{1025, 2048},
	}

	for _, tt := range tests {
		q := NewQueue[int](tt.input)
		if q.Cap() != tt.expected {
			t.Errorf("NewQueue(%d): expected capacity %d, got %d", tt.input, tt.expected, q.Cap())
		}
		if q.mask != uint64(tt.expected-1) {
			t.Errorf("NewQueue(%d): expected mask %d, got %d", tt.input, tt.expected-1, q.mask)
		}
	}
}

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q := NewQueue[int](4)
	for i := range 3 {
		if !q.Push(i) {
			t.Fatalf("Push(%d) failed on non-full queue", i)
		}
	}

	for want := range 3 {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %d, %v; want %d, true", got, ok, want)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("Pop() on empty queue returned a value")
	}
}

func TestQueueFullRejectsNewest(t *testing.T) {
	t.Parallel()

	q := NewQueue[int](2)
	q.Push(1)
	q.Push(2)

	if q.Push(3) {
		t.Fatal("Push on full queue: expected false")
	}
	if q.Free() != 0 || q.Len() != 2 {
		t.Errorf("Len/Free = %d/%d, want 2/0", q.Len(), q.Free())
	}

	got, _ := q.Pop()
	if got != 1 {
		t.Errorf("oldest value lost: Pop() = %d, want 1", got)
	}
}

func TestQueueWrapAround(t *testing.T) {
	t.Parallel()

	q := NewQueue[int](4)
	for round := range 10 {
		for i := range 3 {
			q.Push(round*10 + i)
		}
		for i := range 3 {
			got, ok := q.Pop()
			if !ok || got != round*10+i {
				t.Fatalf("round %d: Pop() = %d, %v", round, got, ok)
			}
		}
	}
}

func TestQueuePopReleasesSlot(t *testing.T) {
	t.Parallel()

	q := NewQueue[[]float32](2)
	q.Push(make([]float32, 8))
	q.Pop()

	if q.slots[0] != nil {
		t.Error("popped slot still references the value")
	}
}

func TestQueueConcurrent(t *testing.T) {
	t.Parallel()

	const total = 100_000
	q := NewQueue[Message](16)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if q.Push(SetLoopRegion(uint64(i), uint64(i+1))) {
				i++
			}
		}
	}()

	errs := make(chan string, 1)
	go func() {
		defer wg.Done()
		for next := 0; next < total; {
			m, ok := q.Pop()
			if !ok {
				continue
			}
			if m.Region.Start != uint64(next) || m.Region.End != uint64(next+1) {
				errs <- m.String()
				return
			}
			next++
		}
	}()

	wg.Wait()
	close(errs)
	if bad, ok := <-errs; ok {
		t.Fatalf("out of order or torn message: %s", bad)
	}
}

func TestQueueLenFromThirdGoroutine(t *testing.T) {
	t.Parallel()

	const total = 200_000
	q := NewQueue[int](8)

	var (
		wg   sync.WaitGroup
		done atomic.Bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < total; {
			if q.Push(i) {
				i++
			}
		}
	}()
	go func() {
		defer wg.Done()
		defer done.Store(true)
		for n := 0; n < total; {
			if _, ok := q.Pop(); ok {
				n++
			}
		}
	}()

	for !done.Load() {
		if n := q.Len(); n < 0 || n > q.Cap() {
			t.Fatalf("Len() = %d outside [0, %d]", n, q.Cap())
		}
		if f := q.Free(); f < 0 || f > q.Cap() {
			t.Fatalf("Free() = %d outside [0, %d]", f, q.Cap())
		}
	}
	wg.Wait()

	if n := q.Len(); n != 0 {
		t.Errorf("Len() after drain = %d, want 0", n)
	}
}
