// SPDX-License-Identifier: EPL-2.0

package looper

import (
	"fmt"
	"strings"
	"time"
)

// CaptureMode selects what happens to the history when recording starts
// from Idle.
type CaptureMode int

const (
	// CaptureContinuous keeps every recorded sample. A new take starts at
	// the current write cursor.
	CaptureContinuous CaptureMode = iota
	// CaptureTake rewinds the history so that each take starts at offset 0.
	CaptureTake
)

func (m CaptureMode) String() string {
	switch m {
	case CaptureContinuous:
		return "continuous"
	case CaptureTake:
		return "take"
	default:
		return fmt.Sprintf("CaptureMode(%d)", int(m))
	}
}

// ParseCaptureMode converts "continuous" or "take" to a CaptureMode.
func ParseCaptureMode(s string) (CaptureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continuous":
		return CaptureContinuous, nil
	case "take":
		return CaptureTake, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCaptureMode, s)
	}
}

const (
	// DefaultSegmentSize is the number of samples held by one history segment.
	DefaultSegmentSize = 16 * 1024
	// DefaultFramesPerBuffer is the callback size assumed when sizing scratch space.
	DefaultFramesPerBuffer = 128
	// DefaultQueueSize is the capacity of the command and notification queues.
	DefaultQueueSize = 64
	// DefaultPoolSize is the number of spare segments the controller keeps
	// queued for the engine.
	DefaultPoolSize = 8
	// DefaultPrealloc is how much history is allocated before the first callback.
	DefaultPrealloc = time.Minute
	// DefaultMaxSession is the longest session DefaultConfig can record.
	DefaultMaxSession = 4 * time.Hour
)

// Config holds the fixed per-session parameters of an Engine.
type Config struct {
	// SampleRate is the session rate in Hz. It never changes during a session.
	SampleRate int
	// FramesPerBuffer is the expected callback size. Callbacks of other sizes
	// are accepted.
	FramesPerBuffer int
	// SegmentSize is the number of samples per history segment.
	SegmentSize int
	// PreallocSegments segments are created up front and queued for the engine.
	PreallocSegments int
	// MaxSegments bounds the history. Zero derives the bound from MaxSession.
	MaxSegments int
	// MaxSession bounds the history by duration when MaxSegments is zero.
	// The segment index is sized for the whole bound up front. With both
	// fields zero the history is unbounded and the index grows inside the
	// callback.
	MaxSession time.Duration
	// PoolSize is the number of spare segments the controller tops the pool up to.
	PoolSize int
	// CommandQueueSize and NotificationQueueSize are rounded up to a power of two.
	CommandQueueSize      int
	NotificationQueueSize int
	// Capture selects continuous or take capture.
	Capture CaptureMode
	// Monitor adds the input to the output while recording or overdubbing.
	Monitor bool
}

// DefaultConfig returns a configuration for the given sample rate with one
// minute of history preallocated.
func DefaultConfig(sampleRate int) Config {
	c := Config{
		SampleRate:            sampleRate,
		FramesPerBuffer:       DefaultFramesPerBuffer,
		SegmentSize:           DefaultSegmentSize,
		PoolSize:              DefaultPoolSize,
		MaxSession:            DefaultMaxSession,
		CommandQueueSize:      DefaultQueueSize,
		NotificationQueueSize: DefaultQueueSize,
		Capture:               CaptureContinuous,
	}
	if sampleRate > 0 {
		c.PreallocSegments = c.SegmentsFor(DefaultPrealloc)
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, c.SampleRate)
	case c.FramesPerBuffer <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidFrameCount, c.FramesPerBuffer)
	case c.SegmentSize <= 0:
		return fmt.Errorf("%w: %d", ErrInvalidSegmentSize, c.SegmentSize)
	case c.CommandQueueSize <= 0 || c.NotificationQueueSize <= 0:
		return fmt.Errorf("%w: commands=%d notifications=%d",
			ErrInvalidQueueSize, c.CommandQueueSize, c.NotificationQueueSize)
	case c.MaxSegments < 0 || c.MaxSession < 0:
		return fmt.Errorf("%w: max=%d session=%s",
			ErrInvalidSegmentLimit, c.MaxSegments, c.MaxSession)
	case c.SegmentLimit() > 0 && c.PreallocSegments > c.SegmentLimit():
		return fmt.Errorf("%w: prealloc=%d max=%d",
			ErrInvalidSegmentLimit, c.PreallocSegments, c.SegmentLimit())
	case c.Capture != CaptureContinuous && c.Capture != CaptureTake:
		return fmt.Errorf("%w: %d", ErrUnknownCaptureMode, int(c.Capture))
	}
	return nil
}

// SegmentLimit returns the number of segments the history may hold:
// MaxSegments when set, else enough for MaxSession. Zero means unbounded.
func (c Config) SegmentLimit() int {
	if c.MaxSegments > 0 {
		return c.MaxSegments
	}
	return c.SegmentsFor(c.MaxSession)
}

// SegmentsFor returns the number of segments needed to hold d of audio.
func (c Config) SegmentsFor(d time.Duration) int {
	if c.SegmentSize <= 0 || d <= 0 {
		return 0
	}
	samples := SamplesFor(c.SampleRate, d)
	return int((samples + uint64(c.SegmentSize) - 1) / uint64(c.SegmentSize))
}

// SamplesFor converts a duration to a sample count at rate, rounding to the
// nearest sample.
func SamplesFor(rate int, d time.Duration) uint64 {
	if rate <= 0 || d <= 0 {
		return 0
	}
	ns := uint64(d)
	r := uint64(rate)
	whole := ns / uint64(time.Second) * r
	frac := (ns%uint64(time.Second)*r + uint64(time.Second)/2) / uint64(time.Second)
	return whole + frac
}

// DurationOf converts a sample count at rate to a duration.
func DurationOf(rate int, samples uint64) time.Duration {
	if rate <= 0 {
		return 0
	}
	secs := samples / uint64(rate)
	rem := samples % uint64(rate)
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(rate)
}
