// Package metrics holds the Prometheus collectors for the IPC server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts handled requests by action.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trigram_requests_total",
		Help: "Total number of IPC requests by action",
	}, []string{"action"})

	// RequestErrorsTotal counts error responses by code.
	RequestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trigram_request_errors_total",
		Help: "Total number of IPC error responses by code",
	}, []string{"code"})

	// MatchesTotal counts matches and lexicon hits returned to clients.
	MatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trigram_matches_total",
		Help: "Total number of fuzzy matches returned",
	})

	// RequestDuration observes time spent per action.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trigram_request_duration_seconds",
		Help:    "Time spent handling IPC requests",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"action"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
