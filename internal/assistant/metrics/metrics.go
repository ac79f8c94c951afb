// Package metrics exposes Prometheus instrumentation for the assistant.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatRequests counts chat turns by resolved intent type.
	ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "chat_requests_total",
		Help:      "Chat turns handled, labeled by resolved intent type.",
	}, []string{"type"})

	// ChatDuration observes end-to-end chat turn latency.
	ChatDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "assistant",
		Name:      "chat_duration_seconds",
		Help:      "End-to-end chat turn latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// Predictions counts completed price prediction runs.
	Predictions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "predictions_total",
		Help:      "Completed next-day price prediction runs.",
	})

	// ExternalErrors counts failed calls to upstream services.
	ExternalErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "external_errors_total",
		Help:      "Failed calls to upstream services, labeled by service.",
	}, []string{"service"})

	// ArticlesScored counts news articles run through sentiment scoring.
	ArticlesScored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assistant",
		Name:      "articles_scored_total",
		Help:      "News articles run through sentiment scoring.",
	})
)
