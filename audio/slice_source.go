// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// SliceSource serves interleaved samples held in memory.
type SliceSource struct {
	rate     int
	channels int
	samples  []float32
	pos      int
}

// NewSliceSource wraps samples. The slice is not copied. Trailing samples
// that do not form a whole frame are ignored.
func NewSliceSource(rate, channels int, samples []float32) (*SliceSource, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	whole := len(samples) - len(samples)%channels
	return &SliceSource{rate: rate, channels: channels, samples: samples[:whole]}, nil
}

func (s *SliceSource) SampleRate() int { return s.rate }
func (s *SliceSource) Channels() int   { return s.channels }
func (s *SliceSource) BufSize() int    { return 4096 }
func (s *SliceSource) Close() error    { return nil }

// Len returns the number of samples not yet read.
func (s *SliceSource) Len() int { return len(s.samples) - s.pos }

func (s *SliceSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	if s.pos >= len(s.samples) {
		return n, io.EOF
	}
	return n, nil
}
