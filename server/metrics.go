package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contactbook",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by method, route & status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contactbook",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method & route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	contactOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contactbook",
		Name:      "contact_operations_total",
		Help:      "Number of successful contact writes by operation.",
	}, []string{"operation"})

	issuedTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "contactbook",
		Name:      "issued_tokens_total",
		Help:      "Number of newly signed auth tokens.",
	})

	reapedTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "contactbook",
		Name:      "reaped_tokens_total",
		Help:      "Number of expired auth tokens removed.",
	})
)
