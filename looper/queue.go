// SPDX-License-Identifier: EPL-2.0

package looper

import "sync/atomic"

// Queue is a bounded lock-free single-producer, single-consumer queue.
//
// It uses two monotonically increasing atomic cursors and a power-of-two
// slot array indexed with a bit mask. There are no mutexes and no CAS loops,
// only atomic loads and stores, so neither side can ever block the other.
//
// The producer stores writePos after filling a slot; the consumer loads
// writePos before reading a slot. The consumer stores readPos after it has
// copied the value out, which hands the slot back to the producer.
//
// Thread assignment:
//   - Push: producer goroutine only
//   - Pop: consumer goroutine only
//   - Len, Cap, Free: any goroutine (the answer may be stale)
type Queue[T any] struct {
	// Separate cache lines to prevent false sharing between producer and consumer.
	writePos atomic.Uint64
	_pad1    [56]byte
	readPos  atomic.Uint64
	_pad2    [56]byte

	slots []T
	mask  uint64
}

// NewQueue creates a queue with capacity rounded up to the next power of two.
func NewQueue[T any](minSize int) *Queue[T] {
	size := 1
	for size < minSize {
		size <<= 1
	}
	return &Queue[T]{
		slots: make([]T, size),
		mask:  uint64(size - 1),
	}
}

// Push appends v. It returns false without modifying the queue when it is
// full, so a full queue rejects the newest value.
func (q *Queue[T]) Push(v T) bool {
	w := q.writePos.Load()
	r := q.readPos.Load()

	if w-r == uint64(len(q.slots)) {
		return false
	}

	q.slots[w&q.mask] = v
	q.writePos.Store(w + 1)
	return true
}

// Pop removes the oldest value. ok is false when the queue is empty.
func (q *Queue[T]) Pop() (v T, ok bool) {
	r := q.readPos.Load()
	w := q.writePos.Load()

	if r == w {
		return v, false
	}

	slot := &q.slots[r&q.mask]
	v = *slot
	var zero T
	*slot = zero // drop references held by the slot
	q.readPos.Store(r + 1)
	return v, true
}

// Len returns the number of queued values. readPos is loaded first: it never
// passes writePos, so the difference cannot wrap. A stale readPos can
// overstate the count, which is clamped to the capacity.
func (q *Queue[T]) Len() int {
	r := q.readPos.Load()
	w := q.writePos.Load()
	return int(min(w-r, uint64(len(q.slots))))
}

// Cap returns the queue capacity.
func (q *Queue[T]) Cap() int { return len(q.slots) }

// Free returns the number of values that can be pushed before the queue is full.
func (q *Queue[T]) Free() int {
	return len(q.slots) - q.Len()
}
