// SPDX-License-Identifier: EPL-2.0

// Package looper is the real-time core of audloop: it records a mono input
// stream into an ever-growing history, lets a performer mark a loop inside
// that history and plays the loop back while layering overdubs on top.
//
// # Threads
//
// Two goroutines cooperate and never share mutable state directly:
//
//   - The real-time goroutine calls [Engine.Process] once per audio
//     callback. It owns the [History], the [Player] and the transport
//     state. Process never blocks, never takes a lock and does not allocate
//     on the common path.
//   - The control goroutine owns a [Controller]. It sends [Message] values
//     and drains [Notification] values through bounded lock-free
//     single-producer, single-consumer [Queue] instances.
//
// A third queue carries spare history segments from the controller into the
// engine. Each time the engine takes one it reports BufferExchanged and the
// controller tops the pool up again, so allocation happens on the control
// side.
//
// # Timing
//
// The [Clock] counts frames processed. Commands are applied at the start of
// the next callback, and every notification is stamped with the clock value
// at the start of the callback that produced it. Loop lengths are therefore
// exact to the sample.
//
// # Transport
//
// The engine is Idle, Recording, Overdubbing or Playing. [Next] describes
// every transition; pairs it does not list are ignored. The usual sequence
// is record, mark (the loop is the take so far and overdubbing begins),
// play, and stop.
//
// # Backpressure
//
// A full command queue rejects the newest command: [Controller.Send]
// returns false. A full notification queue never blocks the engine; pending
// notifications wait in a small outbox and the oldest is dropped when that
// overflows. [Controller.Missed] reports how many were lost.
package looper
