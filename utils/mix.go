// SPDX-License-Identifier: EPL-2.0

package utils

// MixInto adds src to dst sample by sample. Only the first
// min(len(dst), len(src)) samples are touched. Results are not clamped.
func MixInto(dst, src []float32) {
	n := min(len(dst), len(src))
	dst = dst[:n]
	src = src[:n]
	for i := range dst {
		dst[i] += src[i]
	}
}

// Peak returns the largest absolute sample value in s.
func Peak(s []float32) float32 {
	var p float32
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > p {
			p = v
		}
	}
	return p
}

// Average writes the mean of each frame of interleaved into dst and returns
// the number of frames written.
func Average(dst, interleaved []float32, channels int) int {
	if channels <= 0 {
		return 0
	}
	frames := min(len(dst), len(interleaved)/channels)
	if channels == 1 {
		return copy(dst, interleaved[:frames])
	}
	inv := 1 / float32(channels)
	for f := range frames {
		var sum float32
		base := f * channels
		for ch := range channels {
			sum += interleaved[base+ch]
		}
		dst[f] = sum * inv
	}
	return frames
}
