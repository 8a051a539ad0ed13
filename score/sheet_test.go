// SPDX-License-Identifier: EPL-2.0

package score

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audloop/host"
	"github.com/ik5/audloop/looper"
)

const example = `
sample_rate: 48000
length: 4s
events:
  - at: 3s
    action: loop
    start: 0
    end: 500ms
  - at_frame: 48000
    action: mark
  - at: 0s
    action: record
  - at: 2s
    action: Overdub
`

func TestParseResolvesAndSortsCues(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(example))
	require.NoError(t, err)

	frames, ok := s.Frames(48000)
	require.True(t, ok)
	require.Equal(t, uint64(192000), frames)

	cues, err := s.Cues(48000)
	require.NoError(t, err)
	require.Equal(t, []host.Cue{
		{At: 0, Msg: looper.SetMode(looper.ActionRecord)},
		{At: 48000, Msg: looper.SetMode(looper.ActionMarkLoop)},
		{At: 96000, Msg: looper.SetMode(looper.ActionOverdub)},
		{At: 144000, Msg: looper.SetLoopRegion(0, 24000)},
	}, cues)
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "unknown action",
			yaml: "events:\n  - at: 0\n    action: rewind\n",
			want: looper.ErrUnknownAction,
		},
		{
			name: "missing time",
			yaml: "events:\n  - action: record\n",
			want: ErrMissingTime,
		},
		{
			name: "both times",
			yaml: "events:\n  - at: 1s\n    at_frame: 10\n    action: record\n",
			want: ErrAmbiguousTime,
		},
		{
			name: "loop without end",
			yaml: "events:\n  - at: 0\n    action: loop\n    start: 0\n",
			want: ErrMissingRegion,
		},
		{
			name: "range on a mode change",
			yaml: "events:\n  - at: 0\n    action: play\n    start: 0\n    end: 10\n",
			want: ErrUnexpectedRange,
		},
		{
			name: "bad duration",
			yaml: "length: soon\n",
			want: ErrInvalidPosition,
		},
		{
			name: "negative duration",
			yaml: "events:\n  - at: -1s\n    action: stop\n",
			want: ErrInvalidPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.yaml))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("event:\n  - at: 0\n    action: record\n"))
	require.Error(t, err)
}

func TestEmptySheet(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(""))
	require.NoError(t, err)

	_, ok := s.Frames(48000)
	require.False(t, ok)
	cues, err := s.Cues(44100)
	require.NoError(t, err)
	require.Empty(t, cues)
}

func TestCuesCheckRate(t *testing.T) {
	t.Parallel()

	s, err := Parse(strings.NewReader(example))
	require.NoError(t, err)
	_, err = s.Cues(44100)
	require.ErrorIs(t, err, ErrRateMismatch)
}

func TestLoadAndEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cues.yaml")
	require.NoError(t, os.WriteFile(path, []byte(example), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))

	again, err := Parse(&buf)
	require.NoError(t, err)
	require.Equal(t, s, again)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Position
		at48 uint64
	}{
		{in: "0", want: At(0), at48: 0},
		{in: "24000", want: At(24000), at48: 24000},
		{in: "1.5s", want: After(1500 * time.Millisecond), at48: 72000},
		{in: " 250ms ", want: After(250 * time.Millisecond), at48: 12000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePosition(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.at48, got.Resolve(48000))
		})
	}
}
