// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audloop/utils"
)

// Writer streams float32 samples into an integer PCM WAV file. The header
// is finalized by Close, which is why the destination must be seekable.
type Writer struct {
	enc    *wav.Encoder
	buf    goaudio.IntBuffer
	scale  float32
	frames int64
}

// NewWriter starts a WAV stream of 16 or 24 bit PCM.
func NewWriter(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Writer, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, sampleRate, channels)
	}
	if bitDepth != 16 && bitDepth != 24 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}
	return &Writer{
		enc:   wav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		buf:   goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
		scale: float32(int(1)<<(bitDepth-1) - 1),
	}, nil
}

// Write appends interleaved samples, clamping them to [-1, 1].
func (w *Writer) Write(samples []float32) error {
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, v := range samples {
		w.buf.Data[i] = int(utils.Clamp(v) * w.scale)
	}
	if err := w.enc.Write(&w.buf); err != nil {
		return fmt.Errorf("%w", err)
	}
	w.frames += int64(len(samples) / w.buf.Format.NumChannels)
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int64 { return w.frames }

// Close writes the final header. It does not close the destination.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Encode16 writes samples as a 16-bit PCM WAV in one call.
func Encode16(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	wr, err := NewWriter(w, sampleRate, channels, 16)
	if err != nil {
		return err
	}
	if err := wr.Write(samples); err != nil {
		return err
	}
	return wr.Close()
}
