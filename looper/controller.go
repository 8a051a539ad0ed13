// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// pollInterval is how often Await checks the notification queue.
const pollInterval = time.Millisecond

// Controller is the control-goroutine side of an Engine. It sends commands,
// drains notifications and keeps the spare segment pool topped up.
//
// A Controller is not safe for concurrent use: the queues it drives are
// single-producer, single-consumer, so exactly one goroutine may own it.
type Controller struct {
	engine *Engine
	logger *slog.Logger
}

// NewController returns the controller for e. A nil logger discards output.
func NewController(e *Engine, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{engine: e, logger: logger}
}

// Send queues msg for the next callback. It returns false when the command
// queue is full; the message is then dropped and the caller may retry.
func (c *Controller) Send(msg Message) bool {
	if !c.engine.commands.Push(msg) {
		c.logger.Warn("command queue full", "msg", msg.String())
		return false
	}
	return true
}

// PollNotification returns the oldest pending notification, if any.
func (c *Controller) PollNotification() (Notification, bool) {
	return c.engine.notifications.Pop()
}

// CurrentSampleTime returns the engine clock.
func (c *Controller) CurrentSampleTime() uint64 {
	return c.engine.clock.Now()
}

func (c *Controller) Record() bool   { return c.Send(SetMode(ActionRecord)) }
func (c *Controller) MarkLoop() bool { return c.Send(SetMode(ActionMarkLoop)) }
func (c *Controller) Overdub() bool  { return c.Send(SetMode(ActionOverdub)) }
func (c *Controller) Play() bool     { return c.Send(SetMode(ActionPlay)) }
func (c *Controller) Stop() bool     { return c.Send(SetMode(ActionStop)) }
func (c *Controller) Cycle() bool    { return c.Send(SetMode(ActionCycle)) }

// SetLoopRegion requests the loop region [start, end).
func (c *Controller) SetLoopRegion(start, end uint64) bool {
	return c.Send(SetLoopRegion(start, end))
}

// Pump drains every pending notification, replenishes the segment pool when
// the engine reports a BufferExchanged, and passes each notification to fn
// when fn is not nil. It returns the number of notifications drained.
func (c *Controller) Pump(fn func(Notification)) int {
	count := 0
	for {
		n, ok := c.PollNotification()
		if !ok {
			return count
		}
		count++
		c.service(n)
		if fn != nil {
			fn(n)
		}
	}
}

// Await pumps notifications until match returns true or ctx is done. Every
// notification seen on the way is serviced like Pump does.
func (c *Controller) Await(ctx context.Context, match func(Notification) bool) (Notification, error) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		for {
			n, ok := c.PollNotification()
			if !ok {
				break
			}
			c.service(n)
			if match(n) {
				return n, nil
			}
		}

		select {
		case <-ctx.Done():
			return Notification{}, fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Replenish pushes fresh segments until the pool holds Config.PoolSize
// spares or is full. It returns the number of segments added.
func (c *Controller) Replenish() int {
	cfg := c.engine.cfg
	added := 0
	for c.engine.spares.Len() < cfg.PoolSize {
		if !c.engine.spares.Push(make([]float32, cfg.SegmentSize)) {
			break
		}
		added++
	}
	return added
}

// SamplesFor converts d to samples at the session rate.
func (c *Controller) SamplesFor(d time.Duration) uint64 {
	return SamplesFor(c.engine.cfg.SampleRate, d)
}

// Status returns the engine's last published transport view.
func (c *Controller) Status() Status { return c.engine.Status() }

// Stats returns the engine counters.
func (c *Controller) Stats() Stats { return c.engine.Stats() }

// Missed returns how many notifications the engine dropped because the
// control side did not drain them in time.
func (c *Controller) Missed() uint64 {
	return c.engine.stats.notificationsDropped.Load()
}

func (c *Controller) service(n Notification) {
	switch n.Kind {
	case BufferExchanged:
		added := c.Replenish()
		c.logger.Debug("segment drawn from pool", "handle", n.Handle, "replenished", added)
	case Rejected:
		c.logger.Warn("command rejected", "time", n.SampleTime, "msg", n.Msg.String(), "reason", n.Reason.String())
	case CapacityExceeded:
		c.logger.Warn("history capacity exceeded", "time", n.SampleTime, "size", n.Size)
	case LoopLengthResolved:
		c.logger.Info("loop resolved", "time", n.SampleTime, "length", n.Length,
			"start", n.Region.Start, "end", n.Region.End)
	case StateChanged:
		c.logger.Info("transport", "time", n.SampleTime, "from", n.From.String(), "to", n.To.String())
	}
}
