// Package metrics exposes Prometheus counters for catalogue activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cookbook"

// Metrics owns a private registry so tests can build as many as they like.
// All recording methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry   *prometheus.Registry
	registered *prometheus.CounterVec
	rejected   *prometheus.CounterVec
	summaries  *prometheus.CounterVec
	cacheHits  prometheus.Counter
}

// New creates the collectors and registers them along with the Go runtime
// collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		registered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_registered_total",
			Help:      "Catalogue entries registered, by entry type.",
		}, []string{"type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_rejected_total",
			Help:      "Entry registrations rejected, by validation reason.",
		}, []string{"reason"}),
		summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Recipe summaries requested, by outcome.",
		}, []string{"result"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summary_cache_hits_total",
			Help:      "Recipe summaries served from the cache.",
		}),
	}
	m.registry.MustRegister(
		m.registered,
		m.rejected,
		m.summaries,
		m.cacheHits,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) EntryRegistered(kind string) {
	if m == nil {
		return
	}
	m.registered.WithLabelValues(kind).Inc()
}

func (m *Metrics) RegistrationRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) SummaryComputed(result string) {
	if m == nil {
		return
	}
	m.summaries.WithLabelValues(result).Inc()
}

func (m *Metrics) SummaryCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
