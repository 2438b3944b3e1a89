package catalogue

import (
	"fmt"

	"github.com/shiva/transit-catalogue/internal/model"
)

// Stats computes the route statistics of a bus.
//
// A circular route is driven once along its listed stops, which already
// close the loop. A linear route is driven forward and then back, so it
// visits 2N-1 stops and its road length adds the reverse leg, looked up
// separately because road distances may differ by direction. The great-circle
// length is symmetric, so the reverse leg just doubles it.
//
// Any missing road distance fails the whole query with ErrUndefinedDistance.
// A zero great-circle length fails with ErrDegenerateRoute.
//
// Complexity: O(N) where N = number of listed stops.
func (c *Catalogue) Stats(number string) (model.RouteStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.busByNumber[number]
	if !ok {
		return model.RouteStats{}, fmt.Errorf("%w: %q", ErrUnknownBus, number)
	}
	b := c.buses[id]
	route := b.stops
	n := len(route)

	stats := model.RouteStats{
		Bus:         b.number,
		TotalStops:  n,
		UniqueStops: countUnique(route),
	}
	if !b.circular {
		stats.TotalStops = 2*n - 1
	}

	for i := 0; i+1 < n; i++ {
		d, err := c.distance(route[i], route[i+1])
		if err != nil {
			return model.RouteStats{}, fmt.Errorf("bus %q: %w", number, err)
		}
		stats.RoadLength += d
	}
	if !b.circular {
		for i := 0; i+1 < n; i++ {
			d, err := c.distance(route[i+1], route[i])
			if err != nil {
				return model.RouteStats{}, fmt.Errorf("bus %q: %w", number, err)
			}
			stats.RoadLength += d
		}
	}

	for i := 0; i+1 < n; i++ {
		stats.GeoLength += c.geoDist(c.stops[route[i]].coords, c.stops[route[i+1]].coords)
	}
	if !b.circular {
		stats.GeoLength *= 2
	}

	if stats.GeoLength == 0 {
		return model.RouteStats{}, fmt.Errorf("%w: bus %q", ErrDegenerateRoute, number)
	}
	stats.Curvature = float64(stats.RoadLength) / stats.GeoLength

	return stats, nil
}

func countUnique(route []StopID) int {
	seen := make(map[StopID]struct{}, len(route))
	for _, id := range route {
		seen[id] = struct{}{}
	}
	return len(seen)
}
