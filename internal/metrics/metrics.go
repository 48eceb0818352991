package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_market_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skill_market_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_market_lifecycle_transitions_total",
		Help: "Successful task and offer transitions by event kind.",
	}, []string{"kind"})

	EventDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_market_event_deliveries_total",
		Help: "Lifecycle event delivery attempts by result.",
	}, []string{"result"})

	EventQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skill_market_event_queue_depth",
		Help: "Lifecycle events waiting in the in-memory queue.",
	})
)
