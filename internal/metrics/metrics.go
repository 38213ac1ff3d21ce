package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LocationUpdates counts accepted telemetry ingests.
	LocationUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_location_updates_total",
		Help: "Number of bus telemetry updates applied.",
	})

	// LocationUpdateFailures counts rejected telemetry ingests.
	LocationUpdateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_location_update_failures_total",
		Help: "Number of bus telemetry updates rejected.",
	})

	// NearbyQueries counts proximity lookups.
	NearbyQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleet_nearby_queries_total",
		Help: "Number of nearby-bus proximity queries served.",
	})
)

// Handler exposes the default registry for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
