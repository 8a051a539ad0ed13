// SPDX-License-Identifier: EPL-2.0

// Package utils holds small sample-level helpers shared by the audio,
// formats and looper packages: PCM conversion, clamping, interpolation
// and in-place mixing.
//
// Every function here works on caller-provided values or slices and never
// allocates, so the helpers are safe to call from a real-time audio callback.
package utils
