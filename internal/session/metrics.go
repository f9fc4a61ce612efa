package session

import "github.com/prometheus/client_golang/prometheus"

// Collectors returns the Prometheus metrics of all sessions.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		reconcileOperations,
		staleResponses,
		malformedRecords,
	}
}

var reconcileOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "reconcile_operations_total",
		Help: "How many actions were applied to collections, partitioned by collection, action and result.",
	},
	[]string{"collection", "action", "result"},
)

var staleResponses = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "stale_responses_discarded_total",
		Help: "How many backend responses were discarded because a newer response had already been applied.",
	},
	[]string{"collection"},
)

var malformedRecords = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "malformed_records_total",
		Help: "How many records were dropped because they could not be normalized.",
	},
	[]string{"collection"},
)
