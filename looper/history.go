// SPDX-License-Identifier: EPL-2.0

package looper

import "github.com/ik5/audloop/utils"

// segmentObserver is told whenever History takes a new segment into use.
// pooled reports whether the segment came from the spare pool.
type segmentObserver interface {
	segmentAcquired(handle int, pooled bool)
}

// History is the append-only store of everything recorded in a session.
//
// Samples live in fixed-size segments addressed by offset/segmentSize and
// offset%segmentSize, so earlier offsets never move when the store grows.
// Growth takes a segment from the spare pool and only allocates when the
// pool is empty. Segments are never freed during a session.
//
// A History is owned by the real-time goroutine. None of its methods are
// safe for concurrent use.
type History struct {
	segmentSize int
	maxSegments int

	// segments is the index table. A nil entry was never written and reads
	// as silence.
	segments [][]float32
	peaks    []float32
	size     uint64

	pool     *Queue[[]float32]
	observer segmentObserver
}

// NewHistory creates an empty history. pool may be nil, in which case every
// segment is allocated on demand. maxSegments of zero means unbounded, and
// growth past capacityHint then reallocates the segment index. A positive
// maxSegments sizes the index for the whole bound.
func NewHistory(segmentSize, maxSegments, capacityHint int, pool *Queue[[]float32]) *History {
	if segmentSize <= 0 {
		segmentSize = DefaultSegmentSize
	}
	if maxSegments > 0 && capacityHint < maxSegments {
		capacityHint = maxSegments
	}
	return &History{
		segmentSize: segmentSize,
		maxSegments: maxSegments,
		segments:    make([][]float32, 0, capacityHint),
		peaks:       make([]float32, 0, capacityHint),
		pool:        pool,
	}
}

// SegmentSize returns the number of samples per segment.
func (h *History) SegmentSize() int { return h.segmentSize }

// Size returns the write cursor: the number of samples recorded so far.
func (h *History) Size() uint64 { return h.size }

// Segments returns the number of segments in the index table.
func (h *History) Segments() int { return len(h.segments) }

// Append writes samples at the cursor and advances it. It returns the number
// of samples stored, which is less than len(samples) only when the
// MaxSegments bound has been reached.
func (h *History) Append(samples []float32) int {
	written := 0
	for written < len(samples) {
		idx, off := h.locate(h.size)
		seg := h.acquire(idx)
		if seg == nil {
			break
		}
		if off == 0 {
			h.peaks[idx] = 0
		}

		n := copy(seg[off:], samples[written:])
		h.notePeak(idx, seg[off:off+n])
		written += n
		h.size += uint64(n)
	}
	return written
}

// MixAt adds samples into the stored material starting at offset. Only the
// written range [0, Size()) is touched; the cursor never moves. It returns
// the number of samples mixed.
func (h *History) MixAt(offset uint64, samples []float32) int {
	if offset >= h.size {
		return 0
	}
	samples = samples[:min(uint64(len(samples)), h.size-offset)]

	mixed := 0
	for mixed < len(samples) {
		idx, off := h.locate(offset + uint64(mixed))
		seg := h.acquire(idx)
		if seg == nil {
			break
		}

		n := min(len(seg)-off, len(samples)-mixed)
		utils.MixInto(seg[off:off+n], samples[mixed:mixed+n])
		h.notePeak(idx, seg[off:off+n])
		mixed += n
	}
	return mixed
}

// ReadInto fills dst with the samples starting at start. Positions at or
// beyond the cursor, and segments that were never written, read as zero.
func (h *History) ReadInto(dst []float32, start uint64) {
	pos := start
	for len(dst) > 0 {
		if pos >= h.size {
			clear(dst)
			return
		}

		idx, off := h.locate(pos)
		n := min(len(dst), h.segmentSize-off)
		n = int(min(uint64(n), h.size-pos))

		if seg := h.segments[idx]; seg != nil {
			copy(dst[:n], seg[off:off+n])
		} else {
			clear(dst[:n])
		}

		dst = dst[n:]
		pos += uint64(n)
	}
}

// Peak returns the absolute peak of segment i, or 0 when the segment holds
// no recorded material.
func (h *History) Peak(i int) float32 {
	if i < 0 || i >= len(h.peaks) || uint64(i)*uint64(h.segmentSize) >= h.size {
		return 0
	}
	return h.peaks[i]
}

// Rewind moves the cursor back to 0. Segments stay in the index table and are
// overwritten by the next take.
func (h *History) Rewind() {
	h.size = 0
}

func (h *History) locate(offset uint64) (idx, off int) {
	seg := uint64(h.segmentSize)
	return int(offset / seg), int(offset % seg)
}

// acquire returns segment idx, bringing it into use if needed. It returns nil
// when idx lies beyond the MaxSegments bound.
func (h *History) acquire(idx int) []float32 {
	if idx < len(h.segments) && h.segments[idx] != nil {
		return h.segments[idx]
	}
	if h.maxSegments > 0 && idx >= h.maxSegments {
		return nil
	}

	for len(h.segments) <= idx {
		h.segments = append(h.segments, nil)
		h.peaks = append(h.peaks, 0)
	}

	var (
		seg    []float32
		pooled bool
	)
	if h.pool != nil {
		seg, pooled = h.pool.Pop()
	}
	if !pooled || len(seg) != h.segmentSize {
		seg = make([]float32, h.segmentSize)
		pooled = false
	}

	h.segments[idx] = seg
	h.peaks[idx] = 0
	if h.observer != nil {
		h.observer.segmentAcquired(idx, pooled)
	}
	return seg
}

func (h *History) notePeak(idx int, s []float32) {
	if p := utils.Peak(s); p > h.peaks[idx] {
		h.peaks[idx] = p
	}
}
