// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audloop/looper"
)

// EngineOptions are the session flags shared by render and live.
type EngineOptions struct {
	Rate       int
	Frames     int
	Capture    string
	Monitor    bool
	MaxSession time.Duration
}

func (o *EngineOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.Rate, "rate", 48000, "session sample rate in Hz")
	cmd.Flags().IntVar(&o.Frames, "frames", looper.DefaultFramesPerBuffer, "frames per callback")
	cmd.Flags().StringVar(&o.Capture, "capture", looper.CaptureContinuous.String(), "capture mode (continuous|take)")
	cmd.Flags().BoolVar(&o.Monitor, "monitor", false, "mix the input into the output while capturing")
	cmd.Flags().DurationVar(&o.MaxSession, "max-session", looper.DefaultMaxSession, "longest history the session may record")
}

// config turns the flags into an engine configuration.
func (o *EngineOptions) config() (looper.Config, error) {
	mode, err := looper.ParseCaptureMode(o.Capture)
	if err != nil {
		return looper.Config{}, err
	}

	cfg := looper.DefaultConfig(o.Rate)
	cfg.FramesPerBuffer = o.Frames
	cfg.Capture = mode
	cfg.Monitor = o.Monitor
	cfg.MaxSession = o.MaxSession
	if err := cfg.Validate(); err != nil {
		return looper.Config{}, fmt.Errorf("%w", err)
	}
	return cfg, nil
}
