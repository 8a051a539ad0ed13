// SPDX-License-Identifier: EPL-2.0

package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/smallnest/ringbuffer"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/utils"
)

const (
	bytesPerSample = 4
	producerChunk  = 1024
	producerWait   = time.Millisecond
)

// InputFeed streams a mono source into the callback through a ring
// buffer of little-endian float32 samples.
//
//	producer goroutine          ring buffer            callback
//	src.ReadSamples  --write-->  [bytes]  --TryRead-->  Fill(dst)
//	(may block)                                         (never blocks)
//
// Fill is meant for exactly one goroutine, the audio callback.
type InputFeed struct {
	src      audio.Source
	ring     *ringbuffer.RingBuffer
	ringSize int

	// callback side
	scratch []byte
	carry   [bytesPerSample]byte
	carryN  int

	eof  atomic.Bool
	done chan struct{}
	err  error

	delivered    atomic.Uint64
	silentFrames atomic.Uint64
	underruns    atomic.Uint64
}

// NewInputFeed buffers up to ringFrames samples of src ahead of the
// callback. maxFrames is the largest Fill the callback is expected to make;
// larger fills are served in several ring reads.
func NewInputFeed(src audio.Source, ringFrames, maxFrames int) (*InputFeed, error) {
	if src.Channels() != 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrNotMono, src.Channels())
	}
	if ringFrames <= 0 || maxFrames <= 0 {
		return nil, fmt.Errorf("%w: ring=%d max=%d", ErrInvalidSize, ringFrames, maxFrames)
	}

	return &InputFeed{
		src:      src,
		ring:     ringbuffer.New(ringFrames * bytesPerSample),
		ringSize: ringFrames,
		scratch:  make([]byte, maxFrames*bytesPerSample),
		done:     make(chan struct{}),
	}, nil
}

// Start launches the producer. It stops at the end of the source, on a
// source error, or when ctx is done.
func (f *InputFeed) Start(ctx context.Context) {
	go f.produce(ctx)
}

func (f *InputFeed) produce(ctx context.Context) {
	defer close(f.done)

	chunk := min(producerChunk, f.ringSize)
	samples := make([]float32, chunk)
	buf := make([]byte, chunk*bytesPerSample)
	for {
		if ctx.Err() != nil {
			f.err = fmt.Errorf("%w", ctx.Err())
			return
		}
		if f.ring.Free() < len(buf) {
			time.Sleep(producerWait)
			continue
		}

		n, err := f.src.ReadSamples(samples)
		if n > 0 {
			size := utils.PutFloat32LE(buf, samples[:n]) * bytesPerSample
			if werr := f.write(ctx, buf[:size]); werr != nil {
				f.err = werr
				return
			}
		}
		if errors.Is(err, io.EOF) {
			f.eof.Store(true)
			return
		}
		if err != nil {
			f.err = fmt.Errorf("reading input: %w", err)
			return
		}
	}
}

// write pushes p into the ring, waiting for the callback to make room.
func (f *InputFeed) write(ctx context.Context, p []byte) error {
	written, _ := f.ring.Write(p)
	for written < len(p) {
		if ctx.Err() != nil {
			return fmt.Errorf("%w", ctx.Err())
		}
		time.Sleep(producerWait / 2)
		n, _ := f.ring.Write(p[written:])
		written += n
	}
	return nil
}

// Fill implements Input. Samples the producer has not delivered yet are
// replaced by silence and counted as an underrun, unless the source has
// ended.
func (f *InputFeed) Fill(dst []float32) int {
	got := 0
	for got < len(dst) {
		want := min(len(dst)-got, len(f.scratch)/bytesPerSample) * bytesPerSample
		copy(f.scratch, f.carry[:f.carryN])
		n, _ := f.ring.TryRead(f.scratch[f.carryN:want])
		n += f.carryN

		whole := n - n%bytesPerSample
		f.carryN = copy(f.carry[:], f.scratch[whole:n])
		got += utils.Float32FromLE(dst[got:], f.scratch[:whole])
		if whole < want {
			break
		}
	}
	clear(dst[got:])

	f.delivered.Add(uint64(got))
	if short := len(dst) - got; short > 0 && !f.eof.Load() {
		f.silentFrames.Add(uint64(short))
		f.underruns.Add(1)
	}
	return got
}

// Done is closed when the producer has stopped.
func (f *InputFeed) Done() <-chan struct{} { return f.done }

// Err returns why the producer stopped. It is nil when the source ended
// normally and must only be read after Done is closed.
func (f *InputFeed) Err() error { return f.err }

// Drained reports whether the source has ended and every sample has been
// handed to the callback.
func (f *InputFeed) Drained() bool {
	return f.eof.Load() && f.ring.Length() == 0
}

// Buffered returns the number of whole samples waiting in the ring.
func (f *InputFeed) Buffered() int { return f.ring.Length() / bytesPerSample }

// Delivered returns the number of input samples handed to the callback.
func (f *InputFeed) Delivered() uint64 { return f.delivered.Load() }

// SilentFrames returns how many samples were padded because the producer
// fell behind.
func (f *InputFeed) SilentFrames() uint64 { return f.silentFrames.Load() }

// Underruns returns the number of fills that came up short.
func (f *InputFeed) Underruns() uint64 { return f.underruns.Load() }
