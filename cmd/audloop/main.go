// SPDX-License-Identifier: EPL-2.0

// Command audloop renders cue sheets through the looper engine and runs it
// live on the system audio output.
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audloop/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
