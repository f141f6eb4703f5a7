package messaging

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "returnnotify_gateway_requests_total",
			Help: "Outbound gateway requests by gateway and status.",
		},
		[]string{"gateway", "status"},
	)
	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "returnnotify_gateway_request_duration_seconds",
			Help:    "Duration of outbound gateway HTTP requests.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"gateway"},
	)
)
