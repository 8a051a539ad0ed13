// SPDX-License-Identifier: EPL-2.0

package host

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audloop/looper"
)

func TestOfflineRenderPlaysTakeTwice(t *testing.T) {
	t.Parallel()

	e, c := newEngine(t, nil)
	take := sine(48000)

	var lengths []uint64
	off := NewOffline(e, c)
	off.OnNotification = func(n looper.Notification) {
		if n.Kind == looper.LoopLengthResolved {
			lengths = append(lengths, n.Length)
		}
	}

	cues := []Cue{
		{At: 48000, Msg: looper.SetMode(looper.ActionMarkLoop)},
		{At: 0, Msg: looper.SetMode(looper.ActionRecord)},
	}
	out, err := off.Render(context.Background(), NewSliceInput(take), cues, 48000+96000)
	require.NoError(t, err)
	require.Len(t, out, 144000)
	require.Equal(t, []uint64{48000}, lengths)

	for i := range 96000 {
		require.Equal(t, take[i%48000], out[48000+i], "frame %d", i)
	}
}

func TestOfflineCuesSharingATimeApplyOnConsecutiveCallbacks(t *testing.T) {
	t.Parallel()

	e, c := newEngine(t, nil)
	var resolved looper.Notification
	off := NewOffline(e, c)
	off.OnNotification = func(n looper.Notification) {
		if n.Kind == looper.LoopLengthResolved {
			resolved = n
		}
	}

	cues := []Cue{
		{At: 256, Msg: looper.SetMode(looper.ActionRecord)},
		{At: 256, Msg: looper.SetMode(looper.ActionMarkLoop)},
	}
	_, err := off.Render(context.Background(), NewSliceInput(ramp(1024)), cues, 1024)
	require.NoError(t, err)

	require.Equal(t, uint64(128), resolved.Length)
	require.Equal(t, uint64(384), resolved.SampleTime)
	require.Equal(t, looper.Overdubbing, c.Status().State)
}

func TestOfflineCueTimesAreRelativeToRenderStart(t *testing.T) {
	t.Parallel()

	e, c := newEngine(t, nil)
	off := NewOffline(e, c)
	_, err := off.Render(context.Background(), nil, nil, 1000)
	require.NoError(t, err)

	var changed []looper.Notification
	off.OnNotification = func(n looper.Notification) {
		if n.Kind == looper.StateChanged {
			changed = append(changed, n)
		}
	}
	cues := []Cue{{At: 128, Msg: looper.SetMode(looper.ActionRecord)}}
	_, err = off.Render(context.Background(), nil, cues, 512)
	require.NoError(t, err)

	require.Len(t, changed, 1)
	require.Equal(t, uint64(1024+128), changed[0].SampleTime)
}

func TestOfflineLastBlockIsCut(t *testing.T) {
	t.Parallel()

	e, c := newEngine(t, nil)
	var blocks []int
	err := NewOffline(e, c).RenderTo(context.Background(), nil, nil, 300, func(b []float32) error {
		blocks = append(blocks, len(b))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{128, 128, 44}, blocks)
}

func TestOfflineErrors(t *testing.T) {
	t.Parallel()

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		e, c := newEngine(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewOffline(e, c).Render(ctx, nil, nil, 48000)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("sink", func(t *testing.T) {
		t.Parallel()

		e, c := newEngine(t, nil)
		errDisk := errors.New("disk full")
		err := NewOffline(e, c).RenderTo(context.Background(), nil, nil, 1000, func([]float32) error {
			return errDisk
		})
		require.ErrorIs(t, err, errDisk)
	})
}

func TestSortCuesIsStable(t *testing.T) {
	t.Parallel()

	cues := []Cue{
		{At: 10, Msg: looper.SetMode(looper.ActionStop)},
		{At: 0, Msg: looper.SetMode(looper.ActionRecord)},
		{At: 10, Msg: looper.SetMode(looper.ActionPlay)},
	}
	SortCues(cues)

	require.Equal(t, looper.ActionRecord, cues[0].Msg.Action)
	require.Equal(t, looper.ActionStop, cues[1].Msg.Action)
	require.Equal(t, looper.ActionPlay, cues[2].Msg.Action)
}

func TestSliceInput(t *testing.T) {
	t.Parallel()

	in := NewSliceInput([]float32{1, 2, 3})
	dst := []float32{9, 9}
	require.Equal(t, 2, in.Fill(dst))
	require.Equal(t, []float32{1, 2}, dst)
	require.Equal(t, 1, in.Remaining())

	require.Equal(t, 1, in.Fill(dst))
	require.Equal(t, []float32{3, 0}, dst)
	require.Equal(t, 0, in.Fill(dst))
	require.Equal(t, []float32{0, 0}, dst)
}
