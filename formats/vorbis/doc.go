// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Samples come out as the decoder produces them, already float32 and
// interleaved, at the stream's own rate and channel count.
package vorbis
