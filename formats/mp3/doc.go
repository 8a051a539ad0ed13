// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo; mono files are duplicated
// to both channels. Use audio.Conform to fold the result to mono.
package mp3
