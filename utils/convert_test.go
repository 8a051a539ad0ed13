// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input float32
		want  int16
	}{
		{name: "zero", input: 0, want: 0},
		{name: "full scale", input: 1, want: math.MaxInt16},
		{name: "negative full scale", input: -1, want: -math.MaxInt16},
		{name: "half", input: 0.5, want: 16383},
		{name: "clipped high", input: 3.5, want: math.MaxInt16},
		{name: "clipped low", input: -2, want: -math.MaxInt16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.input); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestInt16RoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []int16{0, 1, -1, 1000, -1000, 16384, -16384} {
		f := Int16ToFloat32(v)
		back := Float32ToInt16(f)
		if d := int(back) - int(v); d < -1 || d > 1 {
			t.Errorf("round trip of %d gave %d", v, back)
		}
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		v     int
		depth int
		want  float32
	}{
		{name: "8-bit midpoint", v: 128, depth: 8, want: 0},
		{name: "8-bit min", v: 0, depth: 8, want: -1},
		{name: "16-bit min", v: -32768, depth: 16, want: -1},
		{name: "24-bit half", v: 4194304, depth: 24, want: 0.5},
		{name: "32-bit min", v: math.MinInt32, depth: 32, want: -1},
		{name: "12-bit half", v: 1024, depth: 12, want: 0.5},
		{name: "invalid depth", v: 10, depth: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := IntToFloat32(tt.v, tt.depth); got != tt.want {
				t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.v, tt.depth, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()

	if Clamp(1.5) != 1 || Clamp(-1.5) != -1 || Clamp(0.25) != 0.25 {
		t.Error("Clamp does not limit to [-1, 1]")
	}
}
