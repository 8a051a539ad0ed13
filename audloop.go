// SPDX-License-Identifier: EPL-2.0

package audloop

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ik5/audloop/audio"
	"github.com/ik5/audloop/formats/aiff"
	"github.com/ik5/audloop/formats/mp3"
	"github.com/ik5/audloop/formats/vorbis"
	"github.com/ik5/audloop/formats/wav"
)

// DefaultRegistry knows every format this module can decode.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry with the WAV, MP3, Ogg Vorbis and AIFF
// decoders under their usual file extensions.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")
	reg.Register(aiff.Decoder{}, "aiff", "aif")
	return reg
}

// fileSource closes the underlying file together with the decoded stream.
type fileSource struct {
	audio.Source
	file *os.File
}

func (s fileSource) Close() error {
	return errors.Join(s.Source.Close(), s.file.Close())
}

// Frames forwards the length of the decoded stream when it is known.
func (s fileSource) Frames() int64 { return audio.FramesOf(s.Source) }

// Open decodes the file at path with reg, picking the decoder from the
// file extension. Closing the returned source closes the file.
func Open(reg *audio.Registry, path string) (audio.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	src, err := reg.Decode(audio.FormatOf(path), f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fileSource{Source: src, file: f}, nil
}

// OpenSource decodes path with DefaultRegistry and conforms the stream to
// mono at rate.
func OpenSource(path string, rate int) (audio.Source, error) {
	src, err := Open(DefaultRegistry, path)
	if err != nil {
		return nil, err
	}

	out, err := audio.Conform(src, rate)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return out, nil
}

// LoadFile reads the whole of path into memory as mono samples at rate.
func LoadFile(path string, rate int) ([]float32, error) {
	src, err := OpenSource(path, rate)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	samples, err := audio.ReadAll(src, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

// Bounce writes mono samples at rate to path as a 16-bit PCM WAV file,
// replacing any existing file.
func Bounce(path string, rate int, samples []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := wav.Encode16(f, rate, 1, samples); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// Info describes a decodable file.
type Info struct {
	Format     string
	SampleRate int
	Channels   int
	// Frames is -1 when the decoder cannot tell the length up front.
	Frames int64
}

// Duration returns the playing time, or zero when Frames is unknown.
func (i Info) Duration() time.Duration {
	if i.Frames < 0 || i.SampleRate <= 0 {
		return 0
	}
	return time.Duration(i.Frames) * time.Second / time.Duration(i.SampleRate)
}

// Inspect decodes the header of path and reports its format.
func Inspect(path string) (Info, error) {
	src, err := Open(DefaultRegistry, path)
	if err != nil {
		return Info{}, err
	}
	defer src.Close()

	return Info{
		Format:     audio.FormatOf(path),
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		Frames:     audio.FramesOf(src),
	}, nil
}
