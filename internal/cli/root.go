// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags and the logger set up from them.
type RootOptions struct {
	Verbose bool
	LogFile string

	// Session identifies this run in logs and metrics.
	Session string
	Logger  *slog.Logger

	logCloser io.Closer
}

// NewRootCommand creates the root command for the audloop CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "audloop",
		Short: "audloop - real-time audio looper",
		Long: `A real-time audio looper: record a take, mark a loop, overdub layers
and play them back sample-accurately.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "write logs to this file instead of stderr")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewLiveCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))

	return cmd
}

// setup builds the logger from the global flags.
func (o *RootOptions) setup(stderr io.Writer) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	o.Session = id.String()

	w := stderr
	if o.LogFile != "" {
		f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		w, o.logCloser = f, f
	}

	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	o.Logger = slog.New(handler).With("session", o.Session)
	return nil
}

func (o *RootOptions) close() error {
	if o.logCloser == nil {
		return nil
	}
	err := o.logCloser.Close()
	o.logCloser = nil
	return err
}
