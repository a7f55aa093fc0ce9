package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_checkouts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"status"},
	)

	TopupDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_topup_decisions_total",
			Help: "Total number of topup decisions",
		},
		[]string{"action", "source"},
	)

	ReconcileMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_reconcile_matches_total",
			Help: "Total number of bank reconciliation match results",
		},
		[]string{"result"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_notifications_sent_total",
			Help: "Total number of checkout notifications",
		},
		[]string{"status"},
	)
)
