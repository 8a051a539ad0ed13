// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"slices"
	"testing"
)

func TestMixInto(t *testing.T) {
	t.Parallel()

	dst := []float32{2, 2, 2, 5}
	MixInto(dst, []float32{1, 1, 1})

	if want := []float32{3, 3, 3, 5}; !slices.Equal(dst, want) {
		t.Errorf("MixInto() = %v, want %v", dst, want)
	}
}

func TestPeak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []float32
		want float32
	}{
		{name: "empty", in: nil, want: 0},
		{name: "positive", in: []float32{0.1, 0.7, 0.2}, want: 0.7},
		{name: "negative wins", in: []float32{0.1, -0.9, 0.2}, want: 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Peak(tt.in); got != tt.want {
				t.Errorf("Peak(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAverage(t *testing.T) {
	t.Parallel()

	dst := make([]float32, 4)
	n := Average(dst, []float32{1, 0, 0.5, 0.5, -1, 1}, 2)

	if n != 3 {
		t.Fatalf("Average() frames = %d, want 3", n)
	}
	if want := []float32{0.5, 0.5, 0, 0}; !slices.Equal(dst, want) {
		t.Errorf("Average() = %v, want %v", dst, want)
	}

	if n := Average(dst, []float32{1, 2}, 0); n != 0 {
		t.Errorf("Average() with zero channels = %d, want 0", n)
	}
}
