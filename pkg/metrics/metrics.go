// Package metrics exposes discovery counters as prometheus collectors.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "netsweep"

// Metrics holds the discovery collectors. A nil *Metrics records nothing.
type Metrics struct {
	probes    *prometheus.CounterVec
	duration  prometheus.Histogram
	reachable prometheus.Gauge
}

// New creates the collectors and registers them on registerer.
func New(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Probe outcomes by kind.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "discovery_duration_seconds",
			Help:      "Wall time of one subnet discovery.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 15, 20, 30, 60},
		}),
		reachable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reachable_hosts",
			Help:      "Reachable hosts found by the last discovery.",
		}),
	}

	for _, c := range []prometheus.Collector{m.probes, m.duration, m.reachable} {
		if err := registerer.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return m, nil
}

// ObserveOutcome counts one probe outcome.
func (m *Metrics) ObserveOutcome(outcome string) {
	if m == nil {
		return
	}
	m.probes.WithLabelValues(outcome).Inc()
}

// ObserveDiscovery records a finished discovery.
func (m *Metrics) ObserveDiscovery(elapsed time.Duration, reachable int) {
	if m == nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.reachable.Set(float64(reachable))
}
