package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per route, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reporting_requests_total",
			Help: "Total API requests received",
		},
		[]string{"route", "method", "status"},
	)

	// request latency in seconds per route/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reporting_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// certified report generations by outcome (ok, validation_error, render_error)
	ReportCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reporting_certified_reports_total",
			Help: "Total certified report generation attempts",
		},
		[]string{"outcome"},
	)

	// time spent inside the browser render, successful renders only
	RenderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reporting_render_duration_seconds",
			Help:    "Histogram of PDF render durations",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)

	// browser renders currently in flight
	RendersInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reporting_renders_in_flight",
			Help: "Number of browser renders currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		ReportCount,
		RenderDuration,
		RendersInFlight,
	)
}
