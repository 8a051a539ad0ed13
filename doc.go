// SPDX-License-Identifier: EPL-2.0

// Package audloop is a real-time audio looper.
//
// The core lives in the looper package: a sample clock, a segmented history
// that records everything played into it, a loop player that wraps a region
// of that history, and a transport state machine driven from a control
// goroutine through lock-free queues. The engine runs inside an audio
// callback and never blocks, allocates or panics on its common path.
//
// This package ties the core to the file formats the module can read and
// write:
//
//	src, err := audloop.OpenSource("take.ogg", 48000)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// OpenSource decodes any format known to DefaultRegistry (WAV, MP3, Ogg
// Vorbis and AIFF), then down-mixes it to mono and resamples it to the
// session rate, which is the shape the engine expects on its input.
// LoadFile does the same and reads the whole stream into memory.
//
// # Rendering
//
// Bounce writes the engine output to a 16-bit PCM WAV file:
//
//	out, err := host.NewOffline(engine, ctrl).Render(ctx, in, cues, total)
//	...
//	err = audloop.Bounce("bounce.wav", 48000, out)
//
// # Subpackages
//
//   - looper: the real-time engine and its control API
//   - audio: Source pipeline, decoder registry, resampler and mono mixer
//   - formats/wav, formats/mp3, formats/vorbis, formats/aiff: decoders
//   - host: offline, ring-buffered and live drivers for the engine
//   - score: YAML cue sheets of timed transport commands
//   - tui: terminal controller
//   - metrics: Prometheus collector over engine statistics
package audloop
