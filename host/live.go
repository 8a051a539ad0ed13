//go:build !headless

// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audloop/looper"
)

// bufferedCallbacks is how many callbacks the output device buffers.
const bufferedCallbacks = 4

// Live plays an engine through the default system output.
type Live struct {
	ctx    *oto.Context
	player *oto.Player
	pull   *Pull

	mu      sync.Mutex // setup and control only
	started bool
}

// NewLive opens the system output at the engine's sample rate. Only one
// Live may exist per process.
func NewLive(e *looper.Engine, in Input) (*Live, error) {
	cfg := e.Config()
	op := &oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize: time.Duration(bufferedCallbacks*cfg.FramesPerBuffer) *
			time.Second / time.Duration(cfg.SampleRate),
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio output: %w", err)
	}
	<-ready

	pull := NewPull(e, in)
	return &Live{ctx: ctx, player: ctx.NewPlayer(pull), pull: pull}, nil
}

// Start begins pulling callbacks from the engine.
func (l *Live) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.started && l.player != nil {
		l.player.Play()
		l.started = true
	}
}

// Stop pauses the output. The engine clock stops with it.
func (l *Live) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started && l.player != nil {
		l.player.Pause()
		l.started = false
	}
}

// Close stops the output and releases the player.
func (l *Live) Close() error {
	l.Stop()

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.player == nil {
		return nil
	}
	err := l.player.Close()
	l.player = nil
	if err != nil {
		return fmt.Errorf("closing audio output: %w", err)
	}
	return nil
}

// Started reports whether the output is running.
func (l *Live) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}
