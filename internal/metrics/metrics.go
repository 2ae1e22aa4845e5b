// Package metrics holds the process-wide prometheus collectors. The CLI is a
// short-lived batch job, so collectors are exported through a node_exporter
// textfile rather than an HTTP endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PillarCacheLookups counts day pillar cache reads by result: hit, miss, error.
	PillarCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saju",
			Name:      "pillar_cache_lookups_total",
			Help:      "Day pillar cache reads by result",
		},
		[]string{"result"},
	)

	PillarCacheWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "saju",
			Name:      "pillar_cache_write_failures_total",
			Help:      "Day pillar cache writes that failed and were ignored",
		},
	)

	// LunarRequests counts calls to the lunar calendar service by outcome:
	// ok, error, rejected (breaker open or rate limiter cancelled).
	LunarRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saju",
			Name:      "lunar_requests_total",
			Help:      "Lunar calendar service requests by outcome",
		},
		[]string{"outcome"},
	)

	LunarRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "saju",
			Name:      "lunar_request_duration_seconds",
			Help:      "Lunar calendar service request latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	Compatibility = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "saju",
			Name:      "compatibility_total",
			Help:      "Compatibility computations by warning label",
		},
		[]string{"warning"},
	)
)

// WriteTextfile dumps the default registry in the text exposition format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
