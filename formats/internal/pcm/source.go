// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts the integer PCM decoders of github.com/go-audio to
// audio.Source.
package pcm

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audloop/utils"
)

// Reader is the part of the go-audio wav and aiff decoders Source needs.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source converts integer PCM from a Reader to normalized float32 samples.
type Source struct {
	dec      Reader
	format   *goaudio.Format
	bitDepth int
	frames   int64
	buf      goaudio.IntBuffer
}

// NewSource wraps dec. frames is the stream length, or -1 when unknown.
func NewSource(dec Reader, format *goaudio.Format, bitDepth int, frames int64) *Source {
	return &Source{
		dec:      dec,
		format:   format,
		bitDepth: bitDepth,
		frames:   frames,
		buf:      goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
	}
}

func (s *Source) SampleRate() int { return s.format.SampleRate }
func (s *Source) Channels() int   { return s.format.NumChannels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Frames() int64   { return s.frames }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if c := cap(s.buf.Data); c > 0 {
		return c
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(&s.buf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		dst[i] = utils.IntToFloat32(v, s.bitDepth)
	}

	// The go-audio decoders only come up short at the end of the data.
	if n < len(dst) || err == io.EOF {
		return n, io.EOF
	}
	return n, nil
}

// Seekable returns r as an io.ReadSeeker, buffering it in memory when it
// cannot seek.
func Seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
