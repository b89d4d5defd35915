// Package metrics exposes puzzle activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "figurate"

// Recorder owns a private registry so independent instances never collide.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	wins       prometheus.Counter
	sessions   prometheus.Gauge
}

// New registers the puzzle collectors plus the Go runtime collector.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Puzzle operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		wins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wins_total",
			Help:      "Operations that brought a puzzle onto its target.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Live puzzle sessions.",
		}),
	}
	r.registry.MustRegister(
		r.operations,
		r.wins,
		r.sessions,
		collectors.NewGoCollector(),
	)
	return r
}

// Operation counts one puzzle operation.
func (r *Recorder) Operation(name, outcome string) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(name, outcome).Inc()
}

// Win counts a transition into the won state.
func (r *Recorder) Win() {
	if r == nil {
		return
	}
	r.wins.Inc()
}

// SetSessions reports the number of live sessions.
func (r *Recorder) SetSessions(n int) {
	if r == nil {
		return
	}
	r.sessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}
