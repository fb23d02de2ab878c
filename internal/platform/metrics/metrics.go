// Package metrics defines the application's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, route pattern
	// and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// SweepRunsTotal counts status sweep executions.
	SweepRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "task_sweep_runs_total",
			Help: "Total status sweep executions",
		},
	)

	// SweepCompletedTotal counts tasks transitioned to done by the sweep.
	SweepCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "task_sweep_completed_total",
			Help: "Total tasks completed by the status sweep",
		},
	)
)

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
