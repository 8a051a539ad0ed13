// SPDX-License-Identifier: EPL-2.0

// Package host drives a looper.Engine the way an audio device would.
//
// Three drivers are provided:
//
//   - Offline calls Process in a tight loop over an Input, sending timed
//     Cues through the controller at exact sample times. It is
//     deterministic and is what renders and tests use.
//   - InputFeed decouples a blocking producer (file decoding) from the
//     callback through a byte ring buffer. The callback side never blocks;
//     it reads what is there and pads the rest with silence.
//   - Live hands a Pull reader to the system audio output. The output
//     pulls float32 frames and each pull of FramesPerBuffer frames runs
//     one callback. Built with the headless tag, Live paces callbacks from
//     a timer instead and discards the output.
package host
