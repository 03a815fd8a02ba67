package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cafe_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// IntakeOutcomes counts order/reservation creations by result (created, rejected, conflict, failed).
	IntakeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_intake_total",
			Help: "Order and reservation intake outcomes",
		},
		[]string{"kind", "outcome"},
	)

	ChatReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_chat_replies_total",
			Help: "Chat replies by resolving tier",
		},
		[]string{"tier"},
	)

	MailDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cafe_mail_deliveries_total",
			Help: "Outbound email attempts by result",
		},
		[]string{"result"},
	)
)
