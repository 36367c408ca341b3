package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each server
// owns its registry so tests can build many servers side by side.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	SectionRenders  *prometheus.CounterVec
	ChartRenders    *prometheus.CounterVec
	ConfigReloads   prometheus.Counter
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pitchdeck_http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pitchdeck_http_request_duration_seconds",
				Help:    "HTTP request latency by route",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
			},
			[]string{"route"},
		),

		SectionRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pitchdeck_section_renders_total",
				Help: "Section renders by section slug",
			},
			[]string{"section"},
		),

		ChartRenders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pitchdeck_chart_renders_total",
				Help: "Chart images rendered by format",
			},
			[]string{"format"},
		),

		ConfigReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pitchdeck_config_reloads_total",
				Help: "Configuration reloads applied",
			},
		),
	}

	m.registry.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.SectionRenders,
		m.ChartRenders,
		m.ConfigReloads,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
