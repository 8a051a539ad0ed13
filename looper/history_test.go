// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"slices"
	"testing"
)

// seekHistory moves the cursor to offset without writing, leaving the
// skipped segments nil so they read as silence.
func seekHistory(h *History, offset uint64) {
	idx := int(offset / uint64(h.segmentSize))
	for len(h.segments) < idx {
		h.segments = append(h.segments, nil)
		h.peaks = append(h.peaks, 0)
	}
	h.size = offset
}

func ramp(n int, from float32) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = from + float32(i)
	}
	return s
}

func TestHistoryAppendReadRoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHistory(16, 0, 0, nil)
	data := ramp(50, 1)

	if n := h.Append(data); n != len(data) {
		t.Fatalf("Append() = %d, want %d", n, len(data))
	}
	if h.Size() != 50 {
		t.Fatalf("Size() = %d, want 50", h.Size())
	}
	if h.Segments() != 4 {
		t.Errorf("Segments() = %d, want 4", h.Segments())
	}

	got := make([]float32, 30)
	h.ReadInto(got, 10)
	if !slices.Equal(got, data[10:40]) {
		t.Errorf("ReadInto spanning segments = %v, want %v", got, data[10:40])
	}
}

func TestHistoryReadBeyondCursorIsSilent(t *testing.T) {
	t.Parallel()

	h := NewHistory(8, 0, 0, nil)
	h.Append([]float32{1, 2, 3})

	got := []float32{9, 9, 9, 9, 9}
	h.ReadInto(got, 1)
	if want := []float32{2, 3, 0, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("ReadInto straddling cursor = %v, want %v", got, want)
	}

	far := []float32{9, 9}
	h.ReadInto(far, 1000)
	if !slices.Equal(far, []float32{0, 0}) {
		t.Errorf("ReadInto beyond cursor = %v, want zeros", far)
	}
}

func TestHistoryMixAt(t *testing.T) {
	t.Parallel()

	h := NewHistory(4, 0, 0, nil)
	h.Append([]float32{2, 2, 2, 2, 2, 2})

	if n := h.MixAt(2, []float32{1, 1, 1}); n != 3 {
		t.Fatalf("MixAt() = %d, want 3", n)
	}

	got := make([]float32, 6)
	h.ReadInto(got, 0)
	if want := []float32{2, 2, 3, 3, 3, 2}; !slices.Equal(got, want) {
		t.Errorf("after MixAt = %v, want %v", got, want)
	}
}

func TestHistoryMixAtNeverExtends(t *testing.T) {
	t.Parallel()

	h := NewHistory(4, 0, 0, nil)
	h.Append([]float32{1, 1})

	if n := h.MixAt(1, []float32{1, 1, 1}); n != 1 {
		t.Errorf("MixAt past cursor mixed %d samples, want 1", n)
	}
	if n := h.MixAt(5, []float32{1}); n != 0 {
		t.Errorf("MixAt beyond cursor mixed %d samples, want 0", n)
	}
	if h.Size() != 2 {
		t.Errorf("Size() = %d after MixAt, want 2", h.Size())
	}
}

func TestHistoryPoolBeforeAllocation(t *testing.T) {
	t.Parallel()

	pool := NewQueue[[]float32](2)
	pooled := make([]float32, 4)
	pool.Push(pooled)

	obs := &recordingObserver{}
	h := NewHistory(4, 0, 0, pool)
	h.observer = obs
	h.Append(make([]float32, 8))

	if want := []bool{true, false}; !slices.Equal(obs.pooled, want) {
		t.Errorf("pooled draws = %v, want %v", obs.pooled, want)
	}
	if &h.segments[0][0] != &pooled[0] {
		t.Error("first segment was not taken from the pool")
	}
}

func TestHistoryMaxSegmentsTruncates(t *testing.T) {
	t.Parallel()

	h := NewHistory(4, 2, 0, nil)
	if n := h.Append(make([]float32, 10)); n != 8 {
		t.Errorf("Append() = %d, want 8", n)
	}
	if n := h.Append([]float32{1}); n != 0 {
		t.Errorf("Append() on full history = %d, want 0", n)
	}
}

func TestHistoryPeaks(t *testing.T) {
	t.Parallel()

	h := NewHistory(4, 0, 0, nil)
	h.Append([]float32{0.125, -0.5, 0.25, 0, 0.25})

	if got := h.Peak(0); got != 0.5 {
		t.Errorf("Peak(0) = %v, want 0.5", got)
	}
	if got := h.Peak(1); got != 0.25 {
		t.Errorf("Peak(1) = %v, want 0.25", got)
	}

	h.MixAt(4, []float32{0.5})
	if got := h.Peak(1); got != 0.75 {
		t.Errorf("Peak(1) after mix = %v, want 0.75", got)
	}
	if got := h.Peak(7); got != 0 {
		t.Errorf("Peak(7) = %v, want 0", got)
	}
}

func TestHistoryRewindReusesSegments(t *testing.T) {
	t.Parallel()

	h := NewHistory(4, 0, 0, nil)
	h.Append([]float32{1, 1, 1, 1, 1, 1})
	first := &h.segments[0][0]

	h.Rewind()
	if h.Size() != 0 {
		t.Fatalf("Size() after Rewind = %d, want 0", h.Size())
	}
	if h.Peak(0) != 0 {
		t.Errorf("Peak(0) after Rewind = %v, want 0", h.Peak(0))
	}

	h.Append([]float32{2, 2})
	if &h.segments[0][0] != first {
		t.Error("Rewind did not reuse the first segment")
	}

	got := make([]float32, 4)
	h.ReadInto(got, 0)
	if want := []float32{2, 2, 0, 0}; !slices.Equal(got, want) {
		t.Errorf("stale samples visible after Rewind: %v", got)
	}
}

func TestHistoryNilSegmentsReadSilent(t *testing.T) {
	t.Parallel()

	h := NewHistory(4, 0, 16, nil)
	seekHistory(h, 10)
	h.Append([]float32{5, 5})

	got := make([]float32, 12)
	h.ReadInto(got, 0)
	want := []float32{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5, 5}
	if !slices.Equal(got, want) {
		t.Errorf("ReadInto() = %v, want %v", got, want)
	}
}

type recordingObserver struct {
	pooled []bool
}

func (r *recordingObserver) segmentAcquired(_ int, pooled bool) {
	r.pooled = append(r.pooled, pooled)
}
