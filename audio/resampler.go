// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audloop/utils"
)

// Resampler converts src to a target sample rate with Catmull-Rom
// interpolation, preserving the channel count. When downsampling, a
// one-pole low-pass runs on the input to tame aliasing. Equal rates pass
// samples through untouched.
type Resampler struct {
	src      Source
	srcRate  uint64
	dstRate  int
	channels int

	// window holds four consecutive source frames; output frame outIdx is
	// interpolated between window[1] (source frame srcIdx) and window[2].
	// Positions are kept as integers so long streams do not drift.
	window [4][]float32
	real   [4]bool
	srcIdx uint64
	outIdx uint64
	primed bool

	in    []float32
	inPos int
	inLen int
	eof   bool

	alpha    float32
	lp       []float32
	lpWarmed bool
}

// NewResampler wraps src. dstRate must be positive.
func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, dstRate)
	}
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, src.SampleRate())
	}

	step := float64(src.SampleRate()) / float64(dstRate)
	r := &Resampler{
		src:      src,
		srcRate:  uint64(src.SampleRate()),
		dstRate:  dstRate,
		channels: channels,
		in:       make([]float32, max(src.BufSize(), 1024)/channels*channels+channels),
		lp:       make([]float32, channels),
	}
	if step > 1 {
		r.alpha = float32(1 / step)
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with samples at the target rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.srcRate == uint64(r.dstRate) {
		return r.src.ReadSamples(dst)
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	dst64 := uint64(r.dstRate)
	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		target := r.outIdx * r.srcRate
		for r.srcIdx < target/dst64 {
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		x := float32(float64(target%dst64) / float64(dst64))
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			y1 := r.window[1][c]
			y0, y2, y3 := y1, y1, y1
			if r.real[0] {
				y0 = r.window[0][c]
			}
			if r.real[2] {
				y2 = r.window[2][c]
				y3 = y2
			}
			if r.real[3] {
				y3 = r.window[3][c]
			}
			out[c] = utils.CubicInterpolate(y0, y1, y2, y3, x)
		}

		written++
		r.outIdx++
	}
	return written * r.channels, nil
}

// prime fills window[1..3] so the first output frame lands on the first
// source frame.
func (r *Resampler) prime() error {
	r.primed = true
	for i := 1; i < len(r.window); i++ {
		ok, err := r.readFrame(r.window[i])
		if err != nil {
			return err
		}
		r.real[i] = ok
	}
	if !r.real[1] {
		return io.EOF
	}
	return nil
}

// advance shifts the window by one frame and reads the next source frame.
func (r *Resampler) advance() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.real[:], r.real[1:])
	r.window[3] = first

	r.srcIdx++
	ok, err := r.readFrame(r.window[3])
	r.real[3] = ok
	if err != nil {
		return err
	}
	if !r.real[1] {
		return io.EOF
	}
	return nil
}

// readFrame copies the next source frame into f. ok is false once the
// source is exhausted.
func (r *Resampler) readFrame(f []float32) (ok bool, err error) {
	if r.inPos >= r.inLen {
		if r.eof {
			return false, nil
		}
		n, err := r.src.ReadSamples(r.in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return false, fmt.Errorf("%w", err)
			}
			r.eof = true
		}
		r.inPos, r.inLen = 0, n-n%r.channels
		if r.inLen == 0 {
			return false, nil
		}
	}

	copy(f, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels

	if r.alpha > 0 {
		if !r.lpWarmed {
			copy(r.lp, f)
			r.lpWarmed = true
		}
		for c := range f {
			r.lp[c] += r.alpha * (f[c] - r.lp[c])
			f[c] = r.lp[c]
		}
	}
	return true, nil
}
