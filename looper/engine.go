// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"fmt"

	"github.com/ik5/audloop/utils"
)

// outboxSize bounds the notifications an engine holds when the notification
// queue is full. Notifications already in the queue are never dropped; beyond
// outboxSize the oldest staged notification is.
const outboxSize = 32

// Engine is the real-time half of the looper. Process is the audio callback;
// every other exported method is safe to call from any goroutine.
type Engine struct {
	cfg Config

	clock   Clock
	history *History
	player  *Player

	// Real-time goroutine only.
	state     State
	region    Region
	hasLoop   bool
	takeStart uint64
	truncated bool
	now       uint64
	silence   []float32

	commands      *Queue[Message]
	notifications *Queue[Notification]
	spares        *Queue[[]float32]

	outbox    [outboxSize]Notification
	outHead   int
	outLen    int
	stats     engineStats
	statusOut statusBoard
}

// New creates an engine for cfg. It preallocates cfg.PreallocSegments
// segments into the spare pool so that early recording never allocates.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	poolCap := max(cfg.PreallocSegments, cfg.PoolSize, 1)
	e := &Engine{
		cfg:           cfg,
		commands:      NewQueue[Message](cfg.CommandQueueSize),
		notifications: NewQueue[Notification](cfg.NotificationQueueSize),
		spares:        NewQueue[[]float32](poolCap),
		silence:       make([]float32, cfg.FramesPerBuffer),
	}

	for range cfg.PreallocSegments {
		e.spares.Push(make([]float32, cfg.SegmentSize))
	}

	limit := cfg.SegmentLimit()
	hint := max(limit, 2*cfg.PreallocSegments, 64)
	e.history = NewHistory(cfg.SegmentSize, limit, hint, e.spares)
	e.history.observer = e
	e.player = NewPlayer(e.history)
	e.publish()

	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Now returns the sample clock.
func (e *Engine) Now() uint64 { return e.clock.Now() }

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats { return e.stats.snapshot() }

// Status returns the last published transport view.
func (e *Engine) Status() Status { return e.statusOut.read() }

// Process runs one audio callback. input and output hold one mono frame per
// element. A short or nil input is padded with silence.
//
// Process never blocks and does not allocate while the spare pool has
// segments and the callback size does not exceed Config.FramesPerBuffer.
func (e *Engine) Process(input, output []float32) {
	defer e.recoverCallback(output)

	frames := len(output)
	in := e.inputFor(input, frames)
	e.now = e.clock.Now()

	if msg, ok := e.commands.Pop(); ok {
		e.apply(msg)
	}

	e.clock.Advance(frames)

	if e.state == Recording {
		e.capture(in)
	}

	switch e.state {
	case Overdubbing:
		pos := e.player.Position()
		e.player.WriteInto(output)
		e.player.OverdubAt(pos, in)
	case Playing:
		e.player.WriteInto(output)
	default:
		clear(output)
	}

	if e.cfg.Monitor && (e.state == Recording || e.state == Overdubbing) {
		utils.MixInto(output, in)
	}

	e.flush()
	e.publish()
	e.stats.callbacks.Add(1)
	e.stats.frames.Add(uint64(frames))
}

func (e *Engine) inputFor(input []float32, frames int) []float32 {
	if len(input) >= frames {
		return input[:frames]
	}
	if len(e.silence) < frames {
		e.silence = make([]float32, frames)
	}
	in := e.silence[:frames]
	n := copy(in, input)
	clear(in[n:])
	return in
}

func (e *Engine) capture(in []float32) {
	if e.truncated {
		e.stats.samplesTruncated.Add(uint64(len(in)))
		return
	}
	n := e.history.Append(in)
	if n < len(in) {
		e.truncated = true
		e.stats.samplesTruncated.Add(uint64(len(in) - n))
		e.notify(Notification{Kind: CapacityExceeded, Size: e.history.Size()})
	}
}

func (e *Engine) apply(msg Message) {
	switch msg.Kind {
	case MsgSetMode:
		e.applyAction(msg)
	case MsgSetLoopRegion:
		e.applyRegion(msg)
	default:
		e.reject(msg, RejectUnknownMessage)
	}
}

func (e *Engine) applyAction(msg Message) {
	tr, ok := Next(e.state, msg.Action, e.hasLoop)
	if !ok {
		return
	}

	switch tr.Effect {
	case EffectBeginTake:
		e.player.Stop()
		if e.cfg.Capture == CaptureTake && tr.From == Idle {
			e.history.Rewind()
			e.hasLoop = false
		}
		e.takeStart = e.history.Size()
		e.truncated = false

	case EffectResolveLoop:
		r := Region{Start: e.takeStart, End: e.history.Size()}
		if !r.Valid() {
			e.reject(msg, RejectEmptyTake)
			return
		}
		e.commitRegion(r)

	case EffectRestartLoop:
		e.player.Start(e.region)

	case EffectHalt:
		e.player.Stop()
	}

	e.state = tr.To
	e.stats.commandsApplied.Add(1)
	e.notify(Notification{Kind: StateChanged, From: tr.From, To: tr.To})
}

func (e *Engine) applyRegion(msg Message) {
	r := msg.Region
	switch {
	case !r.Valid():
		e.reject(msg, RejectEmptyRegion)
		return
	case r.End > e.history.Size():
		e.reject(msg, RejectRegionBeyondHistory)
		return
	}

	e.stats.commandsApplied.Add(1)
	e.commitRegion(r)
}

// commitRegion replaces the loop region. The player restarts on the new
// region when it is sounding or about to sound.
func (e *Engine) commitRegion(r Region) {
	e.region = r
	e.hasLoop = true
	if e.state != Idle {
		e.player.Start(r)
	}
	e.notify(Notification{Kind: LoopLengthResolved, Length: r.Len(), Region: r})
}

func (e *Engine) reject(msg Message, reason RejectReason) {
	e.stats.commandsRejected.Add(1)
	e.notify(Notification{Kind: Rejected, Reason: reason, Msg: msg})
}

// segmentAcquired implements segmentObserver.
func (e *Engine) segmentAcquired(handle int, pooled bool) {
	if !pooled {
		e.stats.segmentsAllocated.Add(1)
		return
	}
	e.stats.segmentsPooled.Add(1)
	e.notify(Notification{Kind: BufferExchanged, Handle: handle})
}

// notify stages n in the outbox, dropping the oldest entry when it is full.
func (e *Engine) notify(n Notification) {
	n.SampleTime = e.now
	if e.outLen == len(e.outbox) {
		e.outHead = (e.outHead + 1) % len(e.outbox)
		e.outLen--
		e.stats.notificationsDropped.Add(1)
	}
	e.outbox[(e.outHead+e.outLen)%len(e.outbox)] = n
	e.outLen++
}

// flush moves staged notifications into the queue until it is full.
func (e *Engine) flush() {
	for e.outLen > 0 {
		if !e.notifications.Push(e.outbox[e.outHead]) {
			return
		}
		e.outbox[e.outHead] = Notification{}
		e.outHead = (e.outHead + 1) % len(e.outbox)
		e.outLen--
	}
}

func (e *Engine) publish() {
	e.statusOut.publish(Status{
		State:      e.state,
		Region:     e.region,
		HasLoop:    e.hasLoop,
		Size:       e.history.Size(),
		Position:   e.player.Position(),
		SampleTime: e.clock.Now(),
	})
}

func (e *Engine) recoverCallback(output []float32) {
	if r := recover(); r != nil {
		clear(output)
		e.player.Stop()
		e.state = Idle
		e.stats.recoveredPanics.Add(1)
		e.publish()
	}
}
