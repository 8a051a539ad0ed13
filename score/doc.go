// SPDX-License-Identifier: EPL-2.0

// Package score loads cue sheets: YAML lists of transport commands due at
// exact sample times, used to drive an engine offline.
//
//	sample_rate: 48000
//	length: 4s
//	events:
//	  - at: 0s
//	    action: record
//	  - at_frame: 48000
//	    action: mark
//	  - at: 3s
//	    action: loop
//	    start: 0
//	    end: 24000
//
// Times and lengths are either frames (plain integers) or Go durations
// ("1.5s", "250ms"), converted to frames at the session rate. Actions are
// the transport actions record, mark, overdub, play, stop and cycle, plus
// loop, which sets the loop region to [start, end).
package score
