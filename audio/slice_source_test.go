// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"testing"
)

func TestSliceSource(t *testing.T) {
	t.Parallel()

	src, err := NewSliceSource(8000, 2, []float32{1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("NewSliceSource() error: %v", err)
	}
	if src.Len() != 6 {
		t.Fatalf("Len() = %d, want 6 (partial frame dropped)", src.Len())
	}

	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil || !slices.Equal(buf, []float32{1, 2, 3, 4}) {
		t.Fatalf("first read = %d, %v, %v", n, err, buf)
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || !errors.Is(err, io.EOF) {
		t.Fatalf("second read = %d, %v; want 2, EOF", n, err)
	}

	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("odd dst error = %v, want ErrInvalidDstSize", err)
	}
}

func TestNewSliceSourceValidates(t *testing.T) {
	t.Parallel()

	if _, err := NewSliceSource(0, 1, nil); !errors.Is(err, ErrInvalidRate) {
		t.Errorf("rate 0 error = %v", err)
	}
	if _, err := NewSliceSource(8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("channels 0 error = %v", err)
	}
}
