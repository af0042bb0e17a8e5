// Package metrics holds the prometheus collectors shared by the browser's
// components.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Image cache lookup outcomes.
const (
	ImageHit   = "hit"
	ImageMiss  = "miss"
	ImageError = "error"
)

// Metrics groups the collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry *prometheus.Registry

	ImageRequests    *prometheus.CounterVec
	FilterRecomputes prometheus.Counter
	FilterResults    prometheus.Gauge
	BatchesServed    prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ImageRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "seedbrowser_image_requests_total",
			Help: "Seed image lookups by outcome (hit, miss, error)",
		}, []string{"result"}),
		FilterRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedbrowser_filter_recomputes_total",
			Help: "Number of times the filtered result list was rebuilt",
		}),
		FilterResults: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "seedbrowser_filter_results",
			Help: "Size of the current filtered result list",
		}),
		BatchesServed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "seedbrowser_batches_served_total",
			Help: "Result batches handed to the renderer",
		}),
	}

	m.registry.MustRegister(
		m.ImageRequests,
		m.FilterRecomputes,
		m.FilterResults,
		m.BatchesServed,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveImage(result string) {
	if m == nil {
		return
	}
	m.ImageRequests.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRecompute(results int) {
	if m == nil {
		return
	}
	m.FilterRecomputes.Inc()
	m.FilterResults.Set(float64(results))
}

func (m *Metrics) ObserveBatch() {
	if m == nil {
		return
	}
	m.BatchesServed.Inc()
}
