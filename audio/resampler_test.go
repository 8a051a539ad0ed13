// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audloop/internal/audiotest"
)

func TestResamplerOutputLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"same rate", 48000, 48000, 4800, 4800},
		{"upsample 2x", 8000, 16000, 100, 200},
		{"downsample 3x", 48000, 16000, 4800, 1600},
		{"44.1k to 48k", 44100, 48000, 44100, 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewResampler(audiotest.Constant(tt.srcRate, 1, tt.frames, 0.5), tt.dstRate)
			if err != nil {
				t.Fatalf("NewResampler() error: %v", err)
			}
			out, err := ReadAll(r, 1000)
			if err != nil {
				t.Fatalf("ReadAll() error: %v", err)
			}
			if len(out) != tt.want {
				t.Fatalf("len = %d, want %d", len(out), tt.want)
			}
			for i, v := range out {
				if math.Abs(float64(v-0.5)) > 1e-6 {
					t.Fatalf("sample %d = %v, want 0.5", i, v)
				}
			}
		})
	}
}

func TestResamplerHitsSourceFramesWhenUpsampling(t *testing.T) {
	t.Parallel()

	src := audiotest.Ramp(8000, 2, 50)
	r, err := NewResampler(src, 16000)
	if err != nil {
		t.Fatalf("NewResampler() error: %v", err)
	}
	out, err := ReadAll(r, 64)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}

	for f := range 50 {
		want := float32(f) / 50
		l, rgt := out[4*f], out[4*f+1]
		if math.Abs(float64(l-want)) > 1e-6 || math.Abs(float64(rgt+want)) > 1e-6 {
			t.Fatalf("frame %d = (%v, %v), want (%v, %v)", f, l, rgt, want, -want)
		}
	}
}

func TestResamplerValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewResampler(audiotest.Silent(8000, 1, 1), 0); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("rate 0 error = %v", err)
	}

	r, _ := NewResampler(audiotest.Silent(8000, 2, 10), 16000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v", err)
	}
}

func TestResamplerPropagatesSourceErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("device unplugged")
	src := audiotest.Sine(8000, 1, 1000, 440)
	src.FailAfter = 100
	src.Err = boom

	r, _ := NewResampler(src, 16000)
	if _, err := ReadAll(r, 32); !errors.Is(err, boom) {
		t.Errorf("ReadAll() error = %v, want source error", err)
	}
}
