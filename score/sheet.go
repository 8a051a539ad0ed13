// SPDX-License-Identifier: EPL-2.0

package score

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audloop/host"
	"github.com/ik5/audloop/looper"
)

// actionLoop is the cue sheet name for a SetLoopRegion command.
const actionLoop = "loop"

// Sheet is a parsed cue sheet.
type Sheet struct {
	// SampleRate, when set, must equal the session rate.
	SampleRate int `yaml:"sample_rate,omitempty"`
	// Length is the render length. Zero leaves the choice to the caller.
	Length Position `yaml:"length,omitempty"`
	Events []Event  `yaml:"events"`
}

// Event is one timed command.
type Event struct {
	At      *Position `yaml:"at,omitempty"`
	AtFrame *uint64   `yaml:"at_frame,omitempty"`
	Action  string    `yaml:"action"`
	Start   *Position `yaml:"start,omitempty"`
	End     *Position `yaml:"end,omitempty"`
}

// Time returns when the event is due, in frames at rate.
func (e Event) Time(rate int) uint64 {
	if e.AtFrame != nil {
		return *e.AtFrame
	}
	if e.At != nil {
		return e.At.Resolve(rate)
	}
	return 0
}

// Message converts the event into the control message it stands for.
func (e Event) Message(rate int) (looper.Message, error) {
	if strings.EqualFold(strings.TrimSpace(e.Action), actionLoop) {
		if e.Start == nil || e.End == nil {
			return looper.Message{}, ErrMissingRegion
		}
		return looper.SetLoopRegion(e.Start.Resolve(rate), e.End.Resolve(rate)), nil
	}

	if e.Start != nil || e.End != nil {
		return looper.Message{}, fmt.Errorf("%w: %q", ErrUnexpectedRange, e.Action)
	}
	a, err := looper.ParseAction(e.Action)
	if err != nil {
		return looper.Message{}, err
	}
	return looper.SetMode(a), nil
}

func (e Event) validate() error {
	switch {
	case e.At == nil && e.AtFrame == nil:
		return ErrMissingTime
	case e.At != nil && e.AtFrame != nil:
		return ErrAmbiguousTime
	}
	_, err := e.Message(1)
	return err
}

// Parse reads a cue sheet. Unknown fields are rejected.
func Parse(r io.Reader) (*Sheet, error) {
	var s Sheet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing cue sheet: %w", err)
	}

	for i, e := range s.Events {
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads the cue sheet at path.
func Load(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cue sheet: %w", err)
	}

	s, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Check reports whether the sheet can run at rate.
func (s *Sheet) Check(rate int) error {
	if s.SampleRate != 0 && s.SampleRate != rate {
		return fmt.Errorf("%w: sheet %d Hz, session %d Hz", ErrRateMismatch, s.SampleRate, rate)
	}
	return nil
}

// Cues resolves the events at rate into cues sorted by time.
func (s *Sheet) Cues(rate int) ([]host.Cue, error) {
	if err := s.Check(rate); err != nil {
		return nil, err
	}

	cues := make([]host.Cue, 0, len(s.Events))
	for i, e := range s.Events {
		msg, err := e.Message(rate)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i+1, err)
		}
		cues = append(cues, host.Cue{At: e.Time(rate), Msg: msg})
	}
	host.SortCues(cues)
	return cues, nil
}

// Frames returns the render length at rate and whether the sheet sets one.
func (s *Sheet) Frames(rate int) (uint64, bool) {
	if s.Length.IsZero() {
		return 0, false
	}
	return s.Length.Resolve(rate), true
}

// Encode writes the sheet as YAML.
func (s *Sheet) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding cue sheet: %w", err)
	}
	return enc.Close()
}
