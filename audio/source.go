// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a pull-based stream of interleaved float32 samples in [-1, 1].
type Source interface {
	// SampleRate of the stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the number
	// of float32 values written, not frames. n == 0 with io.EOF ends the
	// stream; a final short read may also return io.EOF.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the read size the source prefers.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Sized is implemented by sources that know their length up front.
type Sized interface {
	// Frames returns the total number of frames in the stream.
	Frames() int64
}

// FramesOf returns the length of src in frames, or -1 when src does not
// know it.
func FramesOf(src Source) int64 {
	if s, ok := src.(Sized); ok {
		return s.Frames()
	}
	return -1
}

// Decoder constructs a Source from an encoded stream.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (Source, error)

func (f DecoderFunc) Decode(r io.Reader) (Source, error) { return f(r) }

// Registry maps format keys such as "wav" or "ogg" to decoders.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

// Register adds d under format and every alias. Keys are case-insensitive
// and a leading dot is ignored, so ".WAV" and "wav" are the same key.
func (r *Registry) Register(d Decoder, format string, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codecs[formatKey(format)] = d
	for _, a := range aliases {
		r.codecs[formatKey(a)] = d
	}
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.codecs[formatKey(format)]
	return d, ok
}

// Formats returns the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Decode looks up format and decodes rd with it.
func (r *Registry) Decode(format string, rd io.Reader) (Source, error) {
	d, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := d.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", formatKey(format), err)
	}
	return src, nil
}

// FormatOf returns the registry key for a file path, taken from its extension.
func FormatOf(path string) string {
	return formatKey(filepath.Ext(path))
}

func formatKey(s string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
}
