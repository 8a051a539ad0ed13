// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/formats/wav"
	"github.com/ik5/audloop/host"
	"github.com/ik5/audloop/looper"
	"github.com/ik5/audloop/score"
)

// ErrNoLength is returned when neither the cue sheet nor an input file
// decides how long to render.
var ErrNoLength = errors.New("render length unknown: set length in the cue sheet or pass --in")

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	EngineOptions

	Input  string
	Score  string
	Output string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run a cue sheet offline and write the output",
		Long: `Run the looper faster than real time. The input file is decoded,
down-mixed to mono and resampled to the session rate, then fed to the engine
one callback at a time while the cue sheet sends transport commands at exact
sample times. The engine output is written as 16-bit PCM WAV.

Example:
  audloop render --in take.wav --score cues.yaml --out bounce.wav
  audloop render --in riff.mp3 --score cues.yaml --out bounce.wav --capture take --monitor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRender(ctx, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Input, "in", "", "input audio file (wav, mp3, ogg, aiff)")
	cmd.Flags().StringVar(&opts.Score, "score", "", "cue sheet (required)")
	cmd.Flags().StringVar(&opts.Output, "out", "", "output WAV file (required)")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runRender(ctx context.Context, opts *RenderOptions) error {
	log := opts.Logger

	cfg, err := opts.config()
	if err != nil {
		return err
	}

	sheet, err := score.Load(opts.Score)
	if err != nil {
		return err
	}
	cues, err := sheet.Cues(cfg.SampleRate)
	if err != nil {
		return err
	}

	var input []float32
	if opts.Input != "" {
		input, err = audloop.LoadFile(opts.Input, cfg.SampleRate)
		if err != nil {
			return err
		}
		log.Info("input loaded", "path", opts.Input, "samples", len(input),
			"duration", looper.DurationOf(cfg.SampleRate, uint64(len(input))))
	}

	total, ok := sheet.Frames(cfg.SampleRate)
	if !ok {
		if input == nil {
			return ErrNoLength
		}
		total = uint64(len(input))
	}

	engine, err := looper.New(cfg)
	if err != nil {
		return err
	}
	ctrl := looper.NewController(engine, log)

	f, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer f.Close()

	w, err := wav.NewWriter(f, cfg.SampleRate, 1, 16)
	if err != nil {
		return err
	}

	log.Info("rendering", "cues", len(cues), "frames", total, "rate", cfg.SampleRate,
		"capture", cfg.Capture.String())
	if err := host.NewOffline(engine, ctrl).RenderTo(ctx, host.NewSliceInput(input), cues, total, w.Write); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	st := ctrl.Stats()
	log.Info("render complete", "path", opts.Output, "frames", w.Frames(),
		"callbacks", st.Callbacks, "rejected", st.CommandsRejected,
		"allocated", st.SegmentsAllocated, "dropped", st.NotificationsDropped)
	return nil
}
