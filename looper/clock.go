// SPDX-License-Identifier: EPL-2.0

package looper

import "sync/atomic"

// Clock counts audio frames processed since the engine started. It is the
// single source of truth for "now" in sample units.
//
// Only the real-time goroutine calls Advance. Now may be called from any
// goroutine.
type Clock struct {
	frames atomic.Uint64
}

// Advance moves the clock forward by frames. Called exactly once per callback.
func (c *Clock) Advance(frames int) {
	if frames <= 0 {
		return
	}
	c.frames.Add(uint64(frames))
}

// Now returns the number of frames processed so far.
func (c *Clock) Now() uint64 {
	return c.frames.Load()
}
