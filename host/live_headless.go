//go:build headless

// SPDX-License-Identifier: EPL-2.0

package host

import (
	"sync"
	"time"

	"github.com/ik5/audloop/looper"
)

// Live paces engine callbacks from a timer and discards the output.
type Live struct {
	pull     *Pull
	interval time.Duration
	buf      []byte

	mu      sync.Mutex
	started bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewLive(e *looper.Engine, in Input) (*Live, error) {
	cfg := e.Config()
	return &Live{
		pull:     NewPull(e, in),
		interval: time.Duration(cfg.FramesPerBuffer) * time.Second / time.Duration(cfg.SampleRate),
		buf:      make([]byte, cfg.FramesPerBuffer*bytesPerSample),
	}, nil
}

func (l *Live) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return
	}
	l.started = true
	l.stop = make(chan struct{})
	l.wg.Add(1)
	go l.run(l.stop)
}

func (l *Live) run(stop <-chan struct{}) {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			_, _ = l.pull.Read(l.buf)
		}
	}
}

func (l *Live) Stop() {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return
	}
	l.started = false
	close(l.stop)
	l.mu.Unlock()

	l.wg.Wait()
}

func (l *Live) Close() error {
	l.Stop()
	return nil
}

func (l *Live) Started() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.started
}
