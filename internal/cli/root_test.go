// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "audloop", cmd.Use)
	assert.Contains(t, cmd.Long, "overdub")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"render", "live", "inspect"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err, "command %s should exist", name)
			require.NotNil(t, sub)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
	assert.Equal(t, "false", verbose.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("log-file"))
}

func TestEngineFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"render", "live"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)

		for flag, def := range map[string]string{
			"rate":        "48000",
			"frames":      "128",
			"capture":     "continuous",
			"monitor":     "false",
			"max-session": "4h0m0s",
		} {
			f := sub.Flags().Lookup(flag)
			require.NotNil(t, f, "%s --%s", name, flag)
			assert.Equal(t, def, f.DefValue, "%s --%s", name, flag)
		}
	}

	live, _, err := cmd.Find([]string{"live"})
	require.NoError(t, err)
	require.NotNil(t, live.Flags().Lookup("metrics-addr"))
	require.NotNil(t, live.Flags().Lookup("ring"))
}

func TestLogFileReceivesSessionLogs(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "audloop.log")
	wavPath := writeTone(t, dir, 8000, 8000)

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"inspect", wavPath, "--verbose", "--log-file", logPath})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "session="), "log lines carry the session id")
	assert.Contains(t, string(data), "inspected")
}
