// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ik5/audloop/looper"
)

// Recorder counts serviced notifications. Observe is meant to be passed to
// Controller.Pump or host.Offline.OnNotification.
type Recorder struct {
	notifications *prometheus.CounterVec
	rejected      *prometheus.CounterVec
	loopLength    prometheus.Histogram
	rate          float64
}

// NewRecorder registers the notification metrics with reg. sampleRate
// converts loop lengths to seconds.
func NewRecorder(reg prometheus.Registerer, sampleRate int, labels prometheus.Labels) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		rate: float64(sampleRate),
		notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "control",
			Name:        "notifications_total",
			Help:        "Engine notifications serviced by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "control",
			Name:        "rejections_total",
			Help:        "Rejected commands by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		loopLength: f.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "control",
			Name:        "loop_length_seconds",
			Help:        "Length of resolved loops.",
			ConstLabels: labels,
			Buckets:     []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
}

// Observe counts n.
func (r *Recorder) Observe(n looper.Notification) {
	r.notifications.WithLabelValues(n.Kind.String()).Inc()
	switch n.Kind {
	case looper.Rejected:
		r.rejected.WithLabelValues(n.Reason.String()).Inc()
	case looper.LoopLengthResolved:
		r.loopLength.Observe(float64(n.Length) / r.rate)
	}
}
