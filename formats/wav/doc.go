// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// [Decoder] accepts integer PCM (plain or WAVE_FORMAT_EXTENSIBLE) at 8, 16,
// 24 or 32 bits and produces normalized float32 samples. [Writer] streams
// float32 samples into a 16 or 24 bit PCM file:
//
//	f, _ := os.Create("bounce.wav")
//	w, err := wav.NewWriter(f, 48000, 1, 16)
//	...
//	w.Write(block)
//	w.Close()
//	f.Close()
package wav
