// SPDX-License-Identifier: EPL-2.0

package host

import (
	"github.com/ik5/audloop/looper"
	"github.com/ik5/audloop/utils"
)

// Pull adapts an engine to an output that reads little-endian float32
// mono bytes. Every FramesPerBuffer frames read run one callback; reads
// of any size are served from the last callback's output first.
//
// Read is called from the output's goroutine, which becomes the engine's
// real-time goroutine.
type Pull struct {
	engine *looper.Engine
	in     Input
	inBuf  []float32
	outBuf []float32
	pos    int
}

// NewPull returns a reader over e fed by in. A nil in feeds silence.
func NewPull(e *looper.Engine, in Input) *Pull {
	if in == nil {
		in = silence{}
	}
	frames := e.Config().FramesPerBuffer
	return &Pull{
		engine: e,
		in:     in,
		inBuf:  make([]float32, frames),
		outBuf: make([]float32, frames),
		pos:    frames,
	}
}

// Read fills p with whole samples. It never fails.
func (p *Pull) Read(b []byte) (int, error) {
	n := len(b) / bytesPerSample
	for i := 0; i < n; {
		if p.pos == len(p.outBuf) {
			p.in.Fill(p.inBuf)
			p.engine.Process(p.inBuf, p.outBuf)
			p.pos = 0
		}
		k := utils.PutFloat32LE(b[i*bytesPerSample:n*bytesPerSample], p.outBuf[p.pos:])
		p.pos += k
		i += k
	}
	return n * bytesPerSample, nil
}
