// SPDX-License-Identifier: EPL-2.0

// Package metrics exports engine statistics to Prometheus.
//
// Collector reads the engine counters and transport status at scrape time,
// so nothing is added to the audio callback. Recorder counts the
// notifications the control goroutine services.
package metrics
