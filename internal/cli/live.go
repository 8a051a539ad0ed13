// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/host"
	"github.com/ik5/audloop/looper"
	"github.com/ik5/audloop/metrics"
	"github.com/ik5/audloop/tui"
)

// LiveOptions holds flags for the live command.
type LiveOptions struct {
	*RootOptions
	EngineOptions

	Input       string
	Ring        time.Duration
	MetricsAddr string
}

// NewLiveCommand creates the live command.
func NewLiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "live",
		Short: "Run the looper on the system audio output",
		Long: `Run the looper in real time with a keyboard controller. The input file,
when given, stands in for a microphone: a producer goroutine decodes it into
a ring buffer that the audio callback reads without blocking.

Logs go to --log-file, since the terminal belongs to the controller.

Example:
  audloop live --in guitar.wav --monitor
  audloop live --in drums.ogg --metrics-addr :9090 --log-file audloop.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLive(ctx, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Input, "in", "", "input audio file played as the microphone")
	cmd.Flags().DurationVar(&opts.Ring, "ring", 250*time.Millisecond, "input ring buffer length")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	return cmd
}

func runLive(ctx context.Context, opts *LiveOptions) error {
	log := opts.Logger

	cfg, err := opts.config()
	if err != nil {
		return err
	}
	engine, err := looper.New(cfg)
	if err != nil {
		return err
	}
	ctrl := looper.NewController(engine, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var input host.Input
	if opts.Input != "" {
		feed, err := openFeed(ctx, opts.Input, cfg, opts.Ring)
		if err != nil {
			return err
		}
		input = feed
		defer func() {
			log.Info("input feed", "delivered", feed.Delivered(),
				"underruns", feed.Underruns(), "silent", feed.SilentFrames())
		}()
	}

	labels := prometheus.Labels{"session": opts.Session}
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(engine, labels))
	rec := metrics.NewRecorder(reg, cfg.SampleRate, labels)
	if opts.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, opts.MetricsAddr, reg, log); err != nil {
				log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	out, err := host.NewLive(engine, input)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			log.Error("closing output", "error", err)
		}
	}()
	out.Start()
	log.Info("live session started", "rate", cfg.SampleRate, "frames", cfg.FramesPerBuffer)

	model := tui.New(ctrl, cfg.SampleRate, tui.WithNotificationHook(rec.Observe))
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	return nil
}

func openFeed(ctx context.Context, path string, cfg looper.Config, ring time.Duration) (*host.InputFeed, error) {
	src, err := audloop.OpenSource(path, cfg.SampleRate)
	if err != nil {
		return nil, err
	}

	ringFrames := max(int(looper.SamplesFor(cfg.SampleRate, ring)), cfg.FramesPerBuffer)
	feed, err := host.NewInputFeed(src, ringFrames, cfg.FramesPerBuffer)
	if err != nil {
		_ = src.Close()
		return nil, err
	}

	go func() {
		<-feed.Done()
		_ = src.Close()
	}()
	feed.Start(ctx)
	return feed, nil
}
