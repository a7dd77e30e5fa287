package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lingua_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Detection metrics
	detectionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_detection_requests_total",
			Help: "Total number of detection requests",
		},
		[]string{"type", "status"}, // type: single, bulk, websocket
	)

	detectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lingua_detection_duration_seconds",
			Help:    "Detection duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 25, 60},
		},
		[]string{"type"},
	)

	detectionBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lingua_detection_batch_size",
			Help:    "Number of texts per bulk detection call",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	mentionsFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lingua_mentions_found",
			Help:    "Number of mentioned languages found per request",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "lingua_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lingua_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
