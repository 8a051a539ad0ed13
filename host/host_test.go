// SPDX-License-Identifier: EPL-2.0

package host

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audloop/looper"
)

func newEngine(t *testing.T, mutate func(*looper.Config)) (*looper.Engine, *looper.Controller) {
	t.Helper()

	cfg := looper.DefaultConfig(48000)
	cfg.PreallocSegments = 8
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := looper.New(cfg)
	require.NoError(t, err)
	return e, looper.NewController(e, nil)
}

func sine(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/48000))
	}
	return s
}

func ramp(n int) []float32 {
	s := make([]float32, n)
	for i := range s {
		s[i] = float32(i+1) / float32(n)
	}
	return s
}
