// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads is how many consecutive empty reads ReadAll tolerates.
const maxEmptyReads = 100

// Conform returns src converted to mono at rate. Stages that would do
// nothing are skipped, so a mono source at the right rate is returned as is.
func Conform(src Source, rate int) (Source, error) {
	out := src
	if out.Channels() > 1 {
		out = NewMonoMixer(out)
	}
	if out.SampleRate() != rate {
		r, err := NewResampler(out, rate)
		if err != nil {
			return nil, err
		}
		out = r
	}
	return out, nil
}

// ReadAll drains src into memory and returns the interleaved samples.
// bufSize of zero uses src.BufSize().
func ReadAll(src Source, bufSize int) ([]float32, error) {
	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	ch := max(src.Channels(), 1)
	bufSize = max(bufSize/ch*ch, ch)

	var (
		all   []float32
		buf   = make([]float32, bufSize)
		stall int
	)
	for {
		n, err := src.ReadSamples(buf)
		all = append(all, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return all, nil
		}
		if err != nil {
			return all, fmt.Errorf("%w", err)
		}
		if n > 0 {
			stall = 0
		} else if stall++; stall >= maxEmptyReads {
			return all, io.ErrNoProgress
		}
	}
}
