// Package catalogue is the in-memory registry of stops and buses.
//
// Stops and buses live in append-only slices and are addressed by integer
// handles (StopID, BusID). Every index (names, road distances, buses serving
// a stop) stores handles, so a handle stays valid for the lifetime of the
// Catalogue no matter how many entities are added after it.
//
// Lifecycle: build the catalogue with Load (or AddStop, SetDistance, AddBus
// in that order), then query it. All methods are safe for concurrent use;
// readers arriving while a load is in progress see a consistent snapshot.
package catalogue

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shiva/transit-catalogue/internal/model"
	"github.com/shiva/transit-catalogue/pkg/geo"
)

// StopID is a stable handle to a registered stop.
type StopID int

// BusID is a stable handle to a registered bus.
type BusID int

// GeoFunc returns the great-circle distance in meters between two points.
// It must be symmetric and pure.
type GeoFunc func(a, b model.Coordinates) float64

type stop struct {
	name   string
	coords model.Coordinates
	buses  []string // sorted, unique
}

type bus struct {
	number   string
	stops    []StopID
	circular bool
}

// Catalogue owns every stop and bus record and the indexes over them.
type Catalogue struct {
	mu sync.RWMutex

	stops []stop
	buses []bus

	stopByName  map[string]StopID
	busByNumber map[string]BusID

	distances distanceTable
	geoDist   GeoFunc
}

// New creates an empty catalogue. A nil geoDist falls back to geo.GreatCircleM.
func New(geoDist GeoFunc) *Catalogue {
	if geoDist == nil {
		geoDist = geo.GreatCircleM
	}
	return &Catalogue{
		stopByName:  make(map[string]StopID),
		busByNumber: make(map[string]BusID),
		distances:   make(distanceTable),
		geoDist:     geoDist,
	}
}

// ─── Batch Load ─────────────────────────────────────────────

// Load registers a whole batch: all stops first, then every road distance in
// input order, then all buses. It stops at the first failing definition;
// entities registered before the failure remain in the catalogue.
func (c *Catalogue) Load(batch model.Batch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range batch.Stops {
		if _, err := c.addStop(s.Name, s.Coordinates); err != nil {
			return fmt.Errorf("load stop %q: %w", s.Name, err)
		}
	}
	for _, s := range batch.Stops {
		for _, d := range s.Distances {
			if err := c.setDistance(s.Name, d.To, d.Meters); err != nil {
				return fmt.Errorf("load distance %q -> %q: %w", s.Name, d.To, err)
			}
		}
	}
	for _, b := range batch.Buses {
		if _, err := c.addBus(b.Number, b.Stops, b.IsCircular); err != nil {
			return fmt.Errorf("load bus %q: %w", b.Number, err)
		}
	}
	return nil
}

// ─── Registration ───────────────────────────────────────────

// AddStop registers a stop. Re-registering an existing name fails with
// ErrDuplicateKey and leaves the original stop untouched.
func (c *Catalogue) AddStop(name string, coords model.Coordinates) (StopID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addStop(name, coords)
}

func (c *Catalogue) addStop(name string, coords model.Coordinates) (StopID, error) {
	if _, ok := c.stopByName[name]; ok {
		return 0, fmt.Errorf("%w: stop %q", ErrDuplicateKey, name)
	}
	id := StopID(len(c.stops))
	c.stops = append(c.stops, stop{name: name, coords: coords})
	c.stopByName[name] = id
	return id, nil
}

// AddBus registers a bus over already registered stops and records the bus
// number on every stop it visits. On error nothing is modified.
func (c *Catalogue) AddBus(number string, stopNames []string, circular bool) (BusID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addBus(number, stopNames, circular)
}

func (c *Catalogue) addBus(number string, stopNames []string, circular bool) (BusID, error) {
	if _, ok := c.busByNumber[number]; ok {
		return 0, fmt.Errorf("%w: bus %q", ErrDuplicateKey, number)
	}
	if len(stopNames) == 0 {
		return 0, fmt.Errorf("%w: bus %q", ErrEmptyRoute, number)
	}

	route := make([]StopID, len(stopNames))
	for i, name := range stopNames {
		id, ok := c.stopByName[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q on bus %q", ErrUnknownStop, name, number)
		}
		route[i] = id
	}

	id := BusID(len(c.buses))
	c.buses = append(c.buses, bus{number: number, stops: route, circular: circular})
	c.busByNumber[number] = id

	for _, sid := range route {
		c.stops[sid].buses = insertSorted(c.stops[sid].buses, number)
	}
	return id, nil
}

// insertSorted adds s to the sorted slice xs unless it is already present.
func insertSorted(xs []string, s string) []string {
	i := sort.SearchStrings(xs, s)
	if i < len(xs) && xs[i] == s {
		return xs
	}
	xs = append(xs, "")
	copy(xs[i+1:], xs[i:])
	xs[i] = s
	return xs
}

// ─── Lookup ─────────────────────────────────────────────────

// FindStop returns the handle of the stop with the given name.
func (c *Catalogue) FindStop(name string) (StopID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.stopByName[name]
	return id, ok
}

// FindBus returns the handle of the bus with the given number.
func (c *Catalogue) FindBus(number string) (BusID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.busByNumber[number]
	return id, ok
}

// Stop returns a snapshot of the stop behind id.
func (c *Catalogue) Stop(id StopID) (model.Stop, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id < 0 || int(id) >= len(c.stops) {
		return model.Stop{}, false
	}
	s := c.stops[id]
	return model.Stop{
		Name:        s.name,
		Coordinates: s.coords,
		Buses:       append([]string{}, s.buses...),
	}, true
}

// Bus returns a snapshot of the bus behind id with stops resolved to names.
func (c *Catalogue) Bus(id BusID) (model.Bus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id < 0 || int(id) >= len(c.buses) {
		return model.Bus{}, false
	}
	b := c.buses[id]
	names := make([]string, len(b.stops))
	for i, sid := range b.stops {
		names[i] = c.stops[sid].name
	}
	return model.Bus{Number: b.number, Stops: names, IsCircular: b.circular}, true
}

// BusesServing returns the sorted bus numbers whose routes visit the stop.
// The result is a copy and may be modified by the caller.
func (c *Catalogue) BusesServing(stopName string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.stopByName[stopName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStop, stopName)
	}
	return append([]string{}, c.stops[id].buses...), nil
}

// StopNames returns every registered stop name, sorted.
func (c *Catalogue) StopNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.stops))
	for _, s := range c.stops {
		names = append(names, s.name)
	}
	sort.Strings(names)
	return names
}

// BusNumbers returns every registered bus number, sorted.
func (c *Catalogue) BusNumbers() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	numbers := make([]string, 0, len(c.buses))
	for _, b := range c.buses {
		numbers = append(numbers, b.number)
	}
	sort.Strings(numbers)
	return numbers
}

// Len returns the number of registered stops and buses.
func (c *Catalogue) Len() (stops, buses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stops), len(c.buses)
}
