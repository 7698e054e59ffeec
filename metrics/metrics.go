// Package metrics exposes Prometheus collectors for the framing
// pipeline: queue depths, frame counts and CRC failures per channel.
// Grounded on JSchlarb-synchrophasor's use of client_golang for exactly
// this shape of per-component gauge/counter (SPEC_FULL.md §2 ambient
// additions).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors bundles every metric this module registers. Construct one
// with NewCollectors and register it with a prometheus.Registerer.
type Collectors struct {
	QueueDepth    *prometheus.GaugeVec
	FramesEmitted *prometheus.CounterVec
	CrcFailures   *prometheus.CounterVec
	QueueFull     *prometheus.CounterVec
}

// NewCollectors constructs an unregistered Collectors.
func NewCollectors() *Collectors {
	return &Collectors{
		QueueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "tmframe",
			Name:      "queue_depth",
			Help:      "Number of frames currently queued between pipeline stages.",
		}, []string{"channel"}),
		FramesEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tmframe",
			Name:      "frames_emitted_total",
			Help:      "Total Transfer Frames emitted by a channel stage.",
		}, []string{"channel"}),
		CrcFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tmframe",
			Name:      "crc_failures_total",
			Help:      "Total frames rejected for a Frame Error Control Field mismatch.",
		}, []string{"channel"}),
		QueueFull: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tmframe",
			Name:      "queue_full_total",
			Help:      "Total non-blocking sends rejected because a queue was at capacity.",
		}, []string{"channel"}),
	}
}

// MustRegister registers every collector with reg, panicking on a
// duplicate registration (mirrors prometheus.MustRegister's contract).
func (c *Collectors) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.QueueDepth, c.FramesEmitted, c.CrcFailures, c.QueueFull)
}
