// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming building blocks that turn decoded
// files into the mono stream the looper consumes.
//
// # Source Interface
//
// Every decoder and processor implements [Source]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in [-1.0, 1.0]. A read returning
// io.EOF ends the stream.
//
// # Conversion
//
// [Resampler] changes the sample rate with Catmull-Rom interpolation and
// [MonoMixer] averages channels. [Conform] chains the two only where needed:
//
//	mono, err := audio.Conform(src, 48000)
//	samples, err := audio.ReadAll(mono, 0)
//
// # Format Registry
//
// A [Registry] maps format keys to decoders. Keys are case-insensitive and
// match file extensions:
//
//	reg := audio.NewRegistry()
//	reg.Register(wav.Decoder{}, "wav", "wave")
//	src, err := reg.Decode(audio.FormatOf("take.WAV"), f)
package audio
