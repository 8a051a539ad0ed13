// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audloop"
	"github.com/ik5/audloop/looper"
	"github.com/ik5/audloop/score"
)

// writeTone writes frames of a 440 Hz tone at rate and returns the path.
func writeTone(t *testing.T, dir string, rate, frames int) string {
	t.Helper()

	samples := make([]float32, frames)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate)))
	}
	path := filepath.Join(dir, "tone.wav")
	require.NoError(t, audloop.Bounce(path, rate, samples))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInspect(t *testing.T) {
	path := writeTone(t, t.TempDir(), 8000, 12000)

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "format:      wav")
	assert.Contains(t, out, "sample rate: 8000 Hz")
	assert.Contains(t, out, "channels:    1")
	assert.Contains(t, out, "duration:    1.5s (12000 frames)")

	_, err = run(t, "inspect")
	require.Error(t, err)
}

func TestRenderLoopsTheTake(t *testing.T) {
	dir := t.TempDir()
	in := writeTone(t, dir, 8000, 8000)
	cues := filepath.Join(dir, "cues.yaml")
	require.NoError(t, os.WriteFile(cues, []byte(`
sample_rate: 8000
length: 3s
events:
  - at: 0s
    action: record
  - at_frame: 8000
    action: mark
`), 0o600))
	outPath := filepath.Join(dir, "bounce.wav")

	_, err := run(t, "render", "--in", in, "--score", cues, "--out", outPath, "--rate", "8000", "--frames", "100")
	require.NoError(t, err)

	take, err := audloop.LoadFile(in, 8000)
	require.NoError(t, err)
	out, err := audloop.LoadFile(outPath, 8000)
	require.NoError(t, err)
	require.Len(t, out, 24000)

	for i := range 8000 {
		require.Zero(t, out[i], "silence while recording, frame %d", i)
		require.Equal(t, out[8000+i], out[16000+i], "second pass, frame %d", i)
		require.InDelta(t, take[i], out[8000+i], 1.0/8192, "frame %d", i)
	}
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	cues := filepath.Join(dir, "cues.yaml")
	require.NoError(t, os.WriteFile(cues, []byte("sample_rate: 44100\nevents: []\n"), 0o600))
	out := filepath.Join(dir, "out.wav")

	_, err := run(t, "render", "--score", cues, "--out", out)
	require.ErrorIs(t, err, score.ErrRateMismatch)

	_, err = run(t, "render", "--score", cues, "--out", out, "--rate", "44100")
	require.ErrorIs(t, err, ErrNoLength)

	_, err = run(t, "render", "--score", cues, "--out", out, "--rate", "44100", "--capture", "loop")
	require.ErrorIs(t, err, looper.ErrUnknownCaptureMode)

	_, err = run(t, "render", "--score", cues, "--out", out, "--rate", "44100", "--max-session", "-1s")
	require.ErrorIs(t, err, looper.ErrInvalidSegmentLimit)

	_, err = run(t, "render", "--out", out)
	require.Error(t, err, "--score is required")
}
