// internal/server/metrics.go
package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pcrsim_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pcrsim_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	simulationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrsim_simulations_total",
		Help: "Completed simulate and search requests.",
	})

	ampliconsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pcrsim_amplicons_total",
		Help: "Amplicons returned across all simulate requests.",
	})
)
