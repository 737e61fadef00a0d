package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry

	sessionsStarted    prometheus.Counter
	responsesSaved     prometheus.Counter
	responsesDuplicate prometheus.Counter
	aggregations       prometheus.Counter
	requestDuration    *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{registry: prometheus.NewRegistry()}

	m.sessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecocart_sessions_started_total",
		Help: "Participant sessions opened.",
	})
	m.responsesSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecocart_responses_saved_total",
		Help: "Completed survey records persisted.",
	})
	m.responsesDuplicate = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecocart_responses_duplicate_total",
		Help: "Save attempts skipped because the session was already stored.",
	})
	m.aggregations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecocart_aggregations_total",
		Help: "Stats snapshots computed.",
	})
	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecocart_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	m.registry.MustRegister(
		m.sessionsStarted,
		m.responsesSaved,
		m.responsesDuplicate,
		m.aggregations,
		m.requestDuration,
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
