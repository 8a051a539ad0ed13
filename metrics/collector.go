// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ik5/audloop/looper"
)

const namespace = "audloop"

// Source is what Collector scrapes. *looper.Engine and *looper.Controller
// both satisfy it.
type Source interface {
	Stats() looper.Stats
	Status() looper.Status
}

type counterDesc struct {
	desc  *prometheus.Desc
	value func(looper.Stats) uint64
}

// Collector is a prometheus.Collector over one engine.
type Collector struct {
	src      Source
	counters []counterDesc

	state      *prometheus.Desc
	history    *prometheus.Desc
	loopLength *prometheus.Desc
	sampleTime *prometheus.Desc
}

// NewCollector returns a collector for src. labels are attached to every
// metric, typically the session id.
func NewCollector(src Source, labels prometheus.Labels) *Collector {
	counter := func(name, help string, value func(looper.Stats) uint64) counterDesc {
		return counterDesc{
			desc:  prometheus.NewDesc(prometheus.BuildFQName(namespace, "engine", name), help, nil, labels),
			value: value,
		}
	}
	gauge := func(name, help string, variable ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "engine", name), help, variable, labels)
	}

	return &Collector{
		src: src,
		counters: []counterDesc{
			counter("callbacks_total", "Audio callbacks processed.",
				func(s looper.Stats) uint64 { return s.Callbacks }),
			counter("frames_total", "Frames processed.",
				func(s looper.Stats) uint64 { return s.Frames }),
			counter("commands_applied_total", "Control commands applied.",
				func(s looper.Stats) uint64 { return s.CommandsApplied }),
			counter("commands_rejected_total", "Control commands rejected as invalid.",
				func(s looper.Stats) uint64 { return s.CommandsRejected }),
			counter("segments_pooled_total", "History segments taken from the spare pool.",
				func(s looper.Stats) uint64 { return s.SegmentsPooled }),
			counter("segments_allocated_total", "History segments allocated on the audio goroutine.",
				func(s looper.Stats) uint64 { return s.SegmentsAllocated }),
			counter("notifications_dropped_total", "Notifications dropped because the control side fell behind.",
				func(s looper.Stats) uint64 { return s.NotificationsDropped }),
			counter("samples_truncated_total", "Input samples lost to the history limit.",
				func(s looper.Stats) uint64 { return s.SamplesTruncated }),
			counter("recovered_panics_total", "Callbacks that panicked and were silenced.",
				func(s looper.Stats) uint64 { return s.RecoveredPanics }),
		},
		state:      gauge("transport_state", "1 for the current transport state, 0 otherwise.", "state"),
		history:    gauge("history_samples", "Samples recorded into the history."),
		loopLength: gauge("loop_length_samples", "Length of the loop region, 0 without a loop."),
		sampleTime: gauge("sample_time", "Engine clock in frames."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, cd := range c.counters {
		ch <- cd.desc
	}
	ch <- c.state
	ch <- c.history
	ch <- c.loopLength
	ch <- c.sampleTime
}

var states = []looper.State{looper.Idle, looper.Recording, looper.Overdubbing, looper.Playing}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.src.Stats()
	for _, cd := range c.counters {
		ch <- prometheus.MustNewConstMetric(cd.desc, prometheus.CounterValue, float64(cd.value(stats)))
	}

	st := c.src.Status()
	for _, s := range states {
		v := 0.0
		if st.State == s {
			v = 1
		}
		ch <- prometheus.MustNewConstMetric(c.state, prometheus.GaugeValue, v, s.String())
	}

	loop := 0.0
	if st.HasLoop {
		loop = float64(st.Region.Len())
	}
	ch <- prometheus.MustNewConstMetric(c.history, prometheus.GaugeValue, float64(st.Size))
	ch <- prometheus.MustNewConstMetric(c.loopLength, prometheus.GaugeValue, loop)
	ch <- prometheus.MustNewConstMetric(c.sampleTime, prometheus.GaugeValue, float64(st.SampleTime))
}
