// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

// PutFloat32LE encodes src into dst as little-endian IEEE 754 floats and
// returns the number of samples encoded, which is limited by len(dst)/4.
func PutFloat32LE(dst []byte, src []float32) int {
	n := min(len(src), len(dst)/4)
	for i := range n {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(src[i]))
	}
	return n
}

// Float32FromLE decodes little-endian floats from src into dst and returns
// the number of samples decoded. A trailing partial sample is ignored.
func Float32FromLE(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/4)
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[i*4:]))
	}
	return n
}
