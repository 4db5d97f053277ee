package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	WebSocketConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of open WebSocket connections",
		},
	)

	BoardEventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_events_received_total",
			Help: "Inbound client events by type",
		},
		[]string{"type"},
	)

	BoardEventsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_events_delivered_total",
			Help: "Outbound events queued to clients, by type and delivery mode",
		},
		[]string{"type", "delivery"},
	)

	WebSocketClientsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_clients_evicted_total",
			Help: "Clients dropped because their send queue was full",
		},
	)
)
