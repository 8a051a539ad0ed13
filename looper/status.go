// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"runtime"
	"sync/atomic"
)

// Status is a consistent snapshot of the engine's transport view.
type Status struct {
	State      State
	Region     Region
	HasLoop    bool
	Size       uint64 // history write cursor
	Position   uint64 // playback cursor
	SampleTime uint64
}

// statusBoard publishes Status from the real-time goroutine to readers with a
// sequence lock. The writer never waits; readers retry while a write is in
// progress or when the sequence moved under them.
type statusBoard struct {
	seq      atomic.Uint64
	state    atomic.Uint32
	start    atomic.Uint64
	end      atomic.Uint64
	hasLoop  atomic.Bool
	size     atomic.Uint64
	position atomic.Uint64
	time     atomic.Uint64
}

func (b *statusBoard) publish(s Status) {
	b.seq.Add(1)
	b.state.Store(uint32(s.State))
	b.start.Store(s.Region.Start)
	b.end.Store(s.Region.End)
	b.hasLoop.Store(s.HasLoop)
	b.size.Store(s.Size)
	b.position.Store(s.Position)
	b.time.Store(s.SampleTime)
	b.seq.Add(1)
}

func (b *statusBoard) read() Status {
	for spins := 0; ; spins++ {
		before := b.seq.Load()
		if before&1 == 0 {
			s := Status{
				State:      State(b.state.Load()),
				Region:     Region{Start: b.start.Load(), End: b.end.Load()},
				HasLoop:    b.hasLoop.Load(),
				Size:       b.size.Load(),
				Position:   b.position.Load(),
				SampleTime: b.time.Load(),
			}
			if b.seq.Load() == before {
				return s
			}
		}
		if spins%64 == 63 {
			runtime.Gosched()
		}
	}
}

// Stats are cumulative engine counters.
type Stats struct {
	Callbacks            uint64
	Frames               uint64
	CommandsApplied      uint64
	CommandsRejected     uint64
	SegmentsPooled       uint64
	SegmentsAllocated    uint64
	NotificationsDropped uint64
	SamplesTruncated     uint64
	RecoveredPanics      uint64
}

type engineStats struct {
	callbacks            atomic.Uint64
	frames               atomic.Uint64
	commandsApplied      atomic.Uint64
	commandsRejected     atomic.Uint64
	segmentsPooled       atomic.Uint64
	segmentsAllocated    atomic.Uint64
	notificationsDropped atomic.Uint64
	samplesTruncated     atomic.Uint64
	recoveredPanics      atomic.Uint64
}

func (s *engineStats) snapshot() Stats {
	return Stats{
		Callbacks:            s.callbacks.Load(),
		Frames:               s.frames.Load(),
		CommandsApplied:      s.commandsApplied.Load(),
		CommandsRejected:     s.commandsRejected.Load(),
		SegmentsPooled:       s.segmentsPooled.Load(),
		SegmentsAllocated:    s.segmentsAllocated.Load(),
		NotificationsDropped: s.notificationsDropped.Load(),
		SamplesTruncated:     s.samplesTruncated.Load(),
		RecoveredPanics:      s.recoveredPanics.Load(),
	}
}
