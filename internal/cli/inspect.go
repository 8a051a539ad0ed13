// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audloop"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the format of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := audloop.Inspect(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "format:      %s\n", info.Format)
			fmt.Fprintf(out, "sample rate: %d Hz\n", info.SampleRate)
			fmt.Fprintf(out, "channels:    %d\n", info.Channels)
			if info.Frames < 0 {
				fmt.Fprintln(out, "duration:    unknown")
			} else {
				fmt.Fprintf(out, "duration:    %s (%d frames)\n", info.Duration(), info.Frames)
			}
			rootOpts.Logger.Debug("inspected", "path", args[0])
			return nil
		},
	}
}
