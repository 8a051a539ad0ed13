// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files through github.com/go-audio/aiff.
//
// Uncompressed 16, 24 and 32 bit PCM is supported at any rate and channel
// count. Input that cannot seek is buffered in memory first, because the
// underlying decoder walks the chunk list with Seek.
package aiff
