// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic sources for tests. They satisfy
// audio.Source structurally so the package imports nothing from the module.
package audiotest

import (
	"errors"
	"io"
	"math"
)

// ErrClosed is returned by reads after Close.
var ErrClosed = errors.New("audiotest: source closed")

// Waveform returns the value of channel ch at frame.
type Waveform func(frame, ch int) float32

// Source generates a fixed number of frames from a Waveform.
type Source struct {
	rate    int
	chans   int
	frames  int
	next    int
	wave    Waveform
	closed  bool
	bufSize int

	// FailAfter, when positive, makes reads fail with Err once that many
	// frames have been produced.
	FailAfter int
	Err       error
}

// New creates a source of frames frames.
func New(rate, channels, frames int, wave Waveform) *Source {
	return &Source{rate: rate, chans: channels, frames: frames, wave: wave, bufSize: 4096}
}

// Silent produces zeros.
func Silent(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

// Constant produces value on every channel.
func Constant(rate, channels, frames int, value float32) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return value })
}

// Sine produces a full-scale sine of freq Hz on every channel.
func Sine(rate, channels, frames int, freq float64) *Source {
	return New(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(f) / float64(rate)))
	})
}

// Ramp produces frame/frames on channel 0 and its negation on other
// channels, which makes frame order and channel layout easy to assert.
func Ramp(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(f, ch int) float32 {
		v := float32(f) / float32(frames)
		if ch > 0 {
			return -v
		}
		return v
	})
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.chans }
func (s *Source) BufSize() int    { return s.bufSize }

// Closed reports whether Close was called.
func (s *Source) Closed() bool { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

// Reset rewinds the source to frame 0.
func (s *Source) Reset() { s.next = 0 }

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.FailAfter > 0 && s.next >= s.FailAfter {
		return 0, s.Err
	}
	if s.next >= s.frames {
		return 0, io.EOF
	}

	count := min(len(dst)/s.chans, s.frames-s.next)
	if s.FailAfter > 0 {
		count = min(count, s.FailAfter-s.next)
	}
	for f := range count {
		for ch := range s.chans {
			dst[f*s.chans+ch] = s.wave(s.next+f, ch)
		}
	}
	s.next += count

	if s.next >= s.frames {
		return count * s.chans, io.EOF
	}
	return count * s.chans, nil
}
