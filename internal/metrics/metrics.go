package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-prompt-studio/internal/promptgen"
)

const namespace = "prompt_studio"

// Metrics owns a private registry so tests and multiple servers never clash
// on the default one.
type Metrics struct {
	registry *prometheus.Registry

	generations        *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	httpRequests       *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generations_total",
				Help:      "Prompt generations by mode, style and outcome",
			},
			[]string{"mode", "style", "outcome"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "generation_duration_seconds",
				Help:      "Time spent on one prompt generation including the upstream call",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
			},
			[]string{"mode", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served by route and status code",
			},
			[]string{"route", "status"},
		),
	}
	reg.MustRegister(m.generations, m.generationDuration, m.httpRequests)
	return m
}

func (m *Metrics) ObserveGeneration(mode promptgen.Mode, style promptgen.Style, outcome string, d time.Duration) {
	m.generations.WithLabelValues(string(mode), string(style), outcome).Inc()
	m.generationDuration.WithLabelValues(string(mode), outcome).Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTP(route string, status int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
