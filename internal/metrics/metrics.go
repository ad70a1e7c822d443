// Package metrics exposes Prometheus instrumentation for the card service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for the card pipeline.
type Metrics struct {
	registry *prometheus.Registry

	CardsGenerated   *prometheus.CounterVec
	UpstreamFailures *prometheus.CounterVec
	RenderDuration   prometheus.Histogram
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CardsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statuscard_cards_generated_total",
			Help: "Card requests by outcome.",
		}, []string{"status"}),
		UpstreamFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statuscard_upstream_failures_total",
			Help: "Upstream lookup failures by service.",
		}, []string{"service"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "statuscard_render_seconds",
			Help:    "Time spent composing and encoding a card.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.CardsGenerated, m.UpstreamFailures, m.RenderDuration)
	return m
}

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
