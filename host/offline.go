// SPDX-License-Identifier: EPL-2.0

package host

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/ik5/audloop/looper"
)

// Cue is a control message due At samples after the start of a render.
type Cue struct {
	At  uint64
	Msg looper.Message
}

func (c Cue) String() string {
	return fmt.Sprintf("@%d %s", c.At, c.Msg.String())
}

// SortCues orders cues by time, keeping the given order for equal times.
func SortCues(cues []Cue) {
	slices.SortStableFunc(cues, func(a, b Cue) int { return cmp.Compare(a.At, b.At) })
}

// Offline runs an engine faster than real time. The calling goroutine
// plays both roles: it is the audio callback and the control side.
type Offline struct {
	engine *looper.Engine
	ctrl   *looper.Controller

	// OnNotification, when set, sees every notification after the
	// controller has serviced it.
	OnNotification func(looper.Notification)
}

// NewOffline returns a driver for e. ctrl must be e's controller.
func NewOffline(e *looper.Engine, ctrl *looper.Controller) *Offline {
	return &Offline{engine: e, ctrl: ctrl}
}

// Render runs total frames and returns the engine output.
func (o *Offline) Render(ctx context.Context, in Input, cues []Cue, total uint64) ([]float32, error) {
	out := make([]float32, 0, total)
	err := o.RenderTo(ctx, in, cues, total, func(block []float32) error {
		out = append(out, block...)
		return nil
	})
	return out, err
}

// RenderTo runs total frames in callbacks of Config.FramesPerBuffer and
// hands each output block to sink. The last block is cut to total.
//
// A cue is sent before the first callback that starts at or after its
// time. The engine applies one command per callback, so cues sharing a
// time take effect on consecutive callbacks, in order. A cue that does not
// fit in the command queue is retried on the next callback.
func (o *Offline) RenderTo(ctx context.Context, in Input, cues []Cue, total uint64, sink func([]float32) error) error {
	if in == nil {
		in = silence{}
	}
	pending := slices.Clone(cues)
	SortCues(pending)

	frames := o.engine.Config().FramesPerBuffer
	inBuf := make([]float32, frames)
	outBuf := make([]float32, frames)
	base := o.ctrl.CurrentSampleTime()

	for done := uint64(0); done < total; {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("render stopped at frame %d: %w", done, err)
		}

		for len(pending) > 0 && pending[0].At <= done {
			if !o.ctrl.Send(pending[0].Msg) {
				break
			}
			pending = pending[1:]
		}

		in.Fill(inBuf)
		o.engine.Process(inBuf, outBuf)
		o.ctrl.Pump(o.OnNotification)

		n := min(uint64(frames), total-done)
		if err := sink(outBuf[:n]); err != nil {
			return fmt.Errorf("writing frame %d: %w", base+done, err)
		}
		done += n
	}
	return nil
}
