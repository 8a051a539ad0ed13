// SPDX-License-Identifier: EPL-2.0

package host

// Input supplies the samples of one callback. Fill must not block. It
// writes len(dst) samples, padding with silence when it runs short, and
// returns how many of them came from the input.
type Input interface {
	Fill(dst []float32) int
}

// SliceInput plays samples held in memory, then silence.
type SliceInput struct {
	samples []float32
	pos     int
}

// NewSliceInput wraps samples without copying them.
func NewSliceInput(samples []float32) *SliceInput {
	return &SliceInput{samples: samples}
}

func (s *SliceInput) Fill(dst []float32) int {
	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	clear(dst[n:])
	return n
}

// Remaining returns the number of samples not yet played.
func (s *SliceInput) Remaining() int { return len(s.samples) - s.pos }

// silence is the Input used when none is given.
type silence struct{}

func (silence) Fill(dst []float32) int {
	clear(dst)
	return 0
}
