package catalogue

import "fmt"

// stopPair is an ordered (from, to) key of the road distance table.
type stopPair struct {
	from, to StopID
}

// distanceTable maps ordered stop pairs to road distances in meters.
//
// Rule: setting (a, b) always overwrites (a, b) and fills (b, a) only while
// (b, a) is still unset. An explicit (b, a) therefore always wins over the
// mirrored value, whichever order the two definitions arrive in.
type distanceTable map[stopPair]int

func (t distanceTable) set(from, to StopID, meters int) {
	t[stopPair{from, to}] = meters
	back := stopPair{to, from}
	if _, ok := t[back]; !ok {
		t[back] = meters
	}
}

func (t distanceTable) get(from, to StopID) (int, bool) {
	d, ok := t[stopPair{from, to}]
	return d, ok
}

// SetDistance records the road distance from one stop to another.
func (c *Catalogue) SetDistance(from, to string, meters int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setDistance(from, to, meters)
}

func (c *Catalogue) setDistance(from, to string, meters int) error {
	if meters < 0 {
		return fmt.Errorf("%w: %q -> %q = %d", ErrInvalidDistance, from, to, meters)
	}
	fromID, ok := c.stopByName[from]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, from)
	}
	toID, ok := c.stopByName[to]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, to)
	}
	c.distances.set(fromID, toID, meters)
	return nil
}

// Distance returns the road distance between two stop handles.
func (c *Catalogue) Distance(from, to StopID) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.distance(from, to)
}

func (c *Catalogue) distance(from, to StopID) (int, error) {
	d, ok := c.distances.get(from, to)
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", ErrUndefinedDistance, c.stopLabel(from), c.stopLabel(to))
	}
	return d, nil
}

// DistanceBetween resolves both stop names and returns the road distance.
func (c *Catalogue) DistanceBetween(from, to string) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fromID, ok := c.stopByName[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStop, from)
	}
	toID, ok := c.stopByName[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownStop, to)
	}
	return c.distance(fromID, toID)
}

func (c *Catalogue) stopLabel(id StopID) string {
	if id < 0 || int(id) >= len(c.stops) {
		return fmt.Sprintf("#%d", id)
	}
	return fmt.Sprintf("%q", c.stops[id].name)
}
