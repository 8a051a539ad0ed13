// SPDX-License-Identifier: EPL-2.0

package score

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audloop/looper"
)

// Position is a point or length in a cue sheet, held either as frames or
// as a duration.
type Position struct {
	Frames   uint64
	Duration time.Duration
	// Timed is true when the value was written as a duration.
	Timed bool
}

// At returns a position of n frames.
func At(n uint64) Position { return Position{Frames: n} }

// After returns a position d into the render.
func After(d time.Duration) Position { return Position{Duration: d, Timed: true} }

// ParsePosition reads "48000" as frames and "1.5s" as a duration.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return At(n), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return After(d), nil
}

// Resolve returns the position in frames at rate.
func (p Position) Resolve(rate int) uint64 {
	if p.Timed {
		return looper.SamplesFor(rate, p.Duration)
	}
	return p.Frames
}

// IsZero reports whether the position is unset or zero.
func (p Position) IsZero() bool { return p.Frames == 0 && p.Duration == 0 }

func (p Position) String() string {
	if p.Timed {
		return p.Duration.String()
	}
	return strconv.FormatUint(p.Frames, 10)
}

func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidPosition, node.Line)
	}
	pos, err := ParsePosition(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = pos
	return nil
}

func (p Position) MarshalYAML() (any, error) {
	if p.Timed {
		return p.Duration.String(), nil
	}
	return p.Frames, nil
}
