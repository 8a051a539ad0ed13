// SPDX-License-Identifier: EPL-2.0

package looper

// Region is a half-open interval [Start, End) of history offsets.
type Region struct {
	Start uint64
	End   uint64
}

// Len returns the number of samples in the region.
func (r Region) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Valid reports whether the region holds at least one sample.
func (r Region) Valid() bool { return r.End > r.Start }

// Player reads a loop region from the history, wrapping seamlessly from End
// back to Start. It applies no fade at the seam.
type Player struct {
	history *History
	region  Region
	pos     uint64
	active  bool
}

// NewPlayer creates an inactive player over h.
func NewPlayer(h *History) *Player {
	return &Player{history: h}
}

// Start activates the player on r with the cursor at r.Start. An empty
// region stops the player.
func (p *Player) Start(r Region) {
	if !r.Valid() {
		p.Stop()
		return
	}
	p.region = r
	p.pos = r.Start
	p.active = true
}

// Stop deactivates the player. Subsequent WriteInto calls produce silence.
func (p *Player) Stop() {
	p.active = false
}

// Active reports whether the player is producing loop audio.
func (p *Player) Active() bool { return p.active }

// Region returns the region of the last Start.
func (p *Player) Region() Region { return p.region }

// Position returns the playback cursor.
func (p *Player) Position() uint64 { return p.pos }

// WriteInto fills dst with loop audio and advances the cursor. A buffer
// longer than the loop wraps as many times as needed.
func (p *Player) WriteInto(dst []float32) {
	if !p.active {
		clear(dst)
		return
	}

	for len(dst) > 0 {
		n := min(uint64(len(dst)), p.region.End-p.pos)
		p.history.ReadInto(dst[:n], p.pos)
		dst = dst[n:]
		p.pos += n
		if p.pos >= p.region.End {
			p.pos = p.region.Start
		}
	}
}

// OverdubAt mixes input into the history at the loop positions starting at
// pos, wrapping exactly as WriteInto does. Callers pass the Position read
// before WriteInto so the layer lands on the audio that was just played.
func (p *Player) OverdubAt(pos uint64, input []float32) {
	if !p.active || pos < p.region.Start || pos >= p.region.End {
		return
	}

	for len(input) > 0 {
		n := min(uint64(len(input)), p.region.End-pos)
		p.history.MixAt(pos, input[:n])
		input = input[n:]
		pos += n
		if pos >= p.region.End {
			pos = p.region.Start
		}
	}
}
