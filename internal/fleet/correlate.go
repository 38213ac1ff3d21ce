package fleet

import (
	"sort"

	"fleet_tracker/internal/models"
)

// OnRoute decides route membership from whichever shape the bus carries: a
// populated Route object or a bare RouteID. Population may or may not have
// happened (and may have yielded nil for a deleted route), so both shapes
// must answer uniformly.
func OnRoute(bus models.Bus, routeID uint) bool {
	if bus.Route != nil {
		return bus.Route.ID == routeID
	}
	return bus.RouteID == routeID
}

// BusesOnRoute filters buses belonging to the route, preserving the input
// (storage) order.
func BusesOnRoute(buses []models.Bus, routeID uint) []models.Bus {
	matched := make([]models.Bus, 0)
	for _, bus := range buses {
		if OnRoute(bus, routeID) {
			matched = append(matched, bus)
		}
	}
	return matched
}

// RouteAggregate carries the derived per-route counts used by the dashboard
// rankings. Nothing here is stored; it is recomputed from the current bus
// and route collections on every read.
type RouteAggregate struct {
	RouteID      uint   `json:"routeId"`
	RouteName    string `json:"routeName"`
	BusCount     int    `json:"busCount"`
	DelayedCount int    `json:"delayedCount"`
}

// AggregateRoutes computes bus and delayed counts for every route, including
// routes with no buses, in the routes' given order.
func AggregateRoutes(routes []models.Route, buses []models.Bus) []RouteAggregate {
	aggs := make([]RouteAggregate, 0, len(routes))
	for _, route := range routes {
		agg := RouteAggregate{RouteID: route.ID, RouteName: route.RouteName}
		for _, bus := range buses {
			if !OnRoute(bus, route.ID) {
				continue
			}
			agg.BusCount++
			if bus.Status == models.StatusDelayed {
				agg.DelayedCount++
			}
		}
		aggs = append(aggs, agg)
	}
	return aggs
}

// Busiest returns the top n aggregates by bus count, descending. The input
// slice is left untouched.
func Busiest(aggs []RouteAggregate, n int) []RouteAggregate {
	return topN(aggs, n, func(a, b RouteAggregate) bool { return a.BusCount > b.BusCount })
}

// MostDelayed returns the top n aggregates by delayed count, descending.
func MostDelayed(aggs []RouteAggregate, n int) []RouteAggregate {
	return topN(aggs, n, func(a, b RouteAggregate) bool { return a.DelayedCount > b.DelayedCount })
}

func topN(aggs []RouteAggregate, n int, less func(a, b RouteAggregate) bool) []RouteAggregate {
	ranked := make([]RouteAggregate, len(aggs))
	copy(ranked, aggs)
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
