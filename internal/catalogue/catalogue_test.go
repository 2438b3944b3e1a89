package catalogue

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/shiva/transit-catalogue/internal/model"
)

// flatGeo treats coordinates as planar meters with Manhattan distance.
// Good enough for exact expectations in tests.
func flatGeo(a, b model.Coordinates) float64 {
	dx := a.Lat - b.Lat
	if dx < 0 {
		dx = -dx
	}
	dy := a.Lng - b.Lng
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func mustAddStop(t *testing.T, c *Catalogue, name string, lat, lng float64) StopID {
	t.Helper()
	id, err := c.AddStop(name, model.Coordinates{Lat: lat, Lng: lng})
	if err != nil {
		t.Fatalf("AddStop(%q): %v", name, err)
	}
	return id
}

func TestAddStop_DuplicateRejected(t *testing.T) {
	c := New(flatGeo)
	mustAddStop(t, c, "A", 1, 2)

	_, err := c.AddStop("A", model.Coordinates{Lat: 9, Lng: 9})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("AddStop(duplicate) error = %v, want ErrDuplicateKey", err)
	}

	id, _ := c.FindStop("A")
	s, _ := c.Stop(id)
	if s.Coordinates != (model.Coordinates{Lat: 1, Lng: 2}) {
		t.Errorf("duplicate AddStop changed coordinates to %+v", s.Coordinates)
	}
}

func TestStopHandlesStayValid(t *testing.T) {
	c := New(flatGeo)
	first := mustAddStop(t, c, "first", 0, 0)

	// Push the backing slice through several reallocations.
	for i := 0; i < 1000; i++ {
		mustAddStop(t, c, fmt.Sprintf("stop-%d", i), float64(i), 0)
	}

	s, ok := c.Stop(first)
	if !ok || s.Name != "first" {
		t.Fatalf("Stop(first) = %+v, %v; want name first", s, ok)
	}
	if id, _ := c.FindStop("first"); id != first {
		t.Errorf("FindStop(first) = %d, want %d", id, first)
	}
}

func TestFind_Missing(t *testing.T) {
	c := New(flatGeo)
	if _, ok := c.FindStop("nope"); ok {
		t.Error("FindStop(nope) reported found")
	}
	if _, ok := c.FindBus("nope"); ok {
		t.Error("FindBus(nope) reported found")
	}
	if _, ok := c.Stop(StopID(3)); ok {
		t.Error("Stop(3) on empty catalogue reported found")
	}
	if _, ok := c.Bus(BusID(-1)); ok {
		t.Error("Bus(-1) reported found")
	}
}

func TestAddBus(t *testing.T) {
	tests := []struct {
		name    string
		number  string
		stops   []string
		wantErr error
	}{
		{name: "linear", number: "1", stops: []string{"A", "B", "C"}},
		{name: "circular with repeat", number: "2", stops: []string{"A", "B", "A"}},
		{name: "single stop", number: "3", stops: []string{"C"}},
		{name: "unknown stop", number: "4", stops: []string{"A", "Z"}, wantErr: ErrUnknownStop},
		{name: "empty route", number: "5", stops: nil, wantErr: ErrEmptyRoute},
		{name: "duplicate number", number: "1", stops: []string{"A"}, wantErr: ErrDuplicateKey},
	}

	c := New(flatGeo)
	mustAddStop(t, c, "A", 0, 0)
	mustAddStop(t, c, "B", 1, 0)
	mustAddStop(t, c, "C", 2, 0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddBus(tt.number, tt.stops, false)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddBus error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddBus: %v", err)
			}
			id, ok := c.FindBus(tt.number)
			if !ok {
				t.Fatalf("FindBus(%q) not found after AddBus", tt.number)
			}
			b, _ := c.Bus(id)
			if !reflect.DeepEqual(b.Stops, tt.stops) {
				t.Errorf("Bus stops = %v, want %v", b.Stops, tt.stops)
			}
		})
	}
}

func TestAddBus_FailureLeavesNoTrace(t *testing.T) {
	c := New(flatGeo)
	mustAddStop(t, c, "A", 0, 0)

	if _, err := c.AddBus("9", []string{"A", "missing"}, true); !errors.Is(err, ErrUnknownStop) {
		t.Fatalf("AddBus error = %v, want ErrUnknownStop", err)
	}
	if _, ok := c.FindBus("9"); ok {
		t.Error("failed AddBus left the bus registered")
	}
	buses, _ := c.BusesServing("A")
	if len(buses) != 0 {
		t.Errorf("failed AddBus left service entries %v", buses)
	}
}

func TestBusesServing(t *testing.T) {
	c := New(flatGeo)
	for _, n := range []string{"A", "B", "C", "D"} {
		mustAddStop(t, c, n, 0, 0)
	}
	mustAddBus := func(number string, stops ...string) {
		t.Helper()
		if _, err := c.AddBus(number, stops, false); err != nil {
			t.Fatalf("AddBus(%q): %v", number, err)
		}
	}
	mustAddBus("828", "A", "B", "A")
	mustAddBus("256", "B", "C")
	mustAddBus("10", "A", "A", "C")

	tests := []struct {
		stop string
		want []string
	}{
		{"A", []string{"10", "828"}},
		{"B", []string{"256", "828"}},
		{"C", []string{"10", "256"}},
		{"D", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.stop, func(t *testing.T) {
			got, err := c.BusesServing(tt.stop)
			if err != nil {
				t.Fatalf("BusesServing: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BusesServing(%q) = %v, want %v", tt.stop, got, tt.want)
			}
		})
	}

	if _, err := c.BusesServing("Samara"); !errors.Is(err, ErrUnknownStop) {
		t.Errorf("BusesServing(unknown) error = %v, want ErrUnknownStop", err)
	}
}

func TestBusesServing_EveryRouteStopAndNoOther(t *testing.T) {
	c := New(flatGeo)
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		mustAddStop(t, c, n, 0, 0)
	}
	routes := map[string][]string{
		"x": {"A", "B", "C"},
		"y": {"C", "D", "C"},
		"z": {"E"},
	}
	for number, stops := range routes {
		if _, err := c.AddBus(number, stops, true); err != nil {
			t.Fatalf("AddBus(%q): %v", number, err)
		}
	}

	for number, stops := range routes {
		onRoute := map[string]bool{}
		for _, s := range stops {
			onRoute[s] = true
		}
		for _, s := range c.StopNames() {
			buses, _ := c.BusesServing(s)
			has := false
			for _, b := range buses {
				if b == number {
					has = true
				}
			}
			if has != onRoute[s] {
				t.Errorf("bus %q listed at stop %q = %v, want %v", number, s, has, onRoute[s])
			}
		}
	}
}

func TestBusesServing_ReturnsCopy(t *testing.T) {
	c := New(flatGeo)
	mustAddStop(t, c, "A", 0, 0)
	if _, err := c.AddBus("1", []string{"A"}, true); err != nil {
		t.Fatal(err)
	}
	got, _ := c.BusesServing("A")
	got[0] = "mutated"

	again, _ := c.BusesServing("A")
	if again[0] != "1" {
		t.Errorf("BusesServing result aliases internal state: %v", again)
	}
}

func TestListings(t *testing.T) {
	c := New(flatGeo)
	mustAddStop(t, c, "b", 0, 0)
	mustAddStop(t, c, "a", 0, 0)
	if _, err := c.AddBus("20", []string{"a"}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBus("100", []string{"b"}, true); err != nil {
		t.Fatal(err)
	}

	if got := c.StopNames(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("StopNames = %v", got)
	}
	if got := c.BusNumbers(); !reflect.DeepEqual(got, []string{"100", "20"}) {
		t.Errorf("BusNumbers = %v", got)
	}
	if stops, buses := c.Len(); stops != 2 || buses != 2 {
		t.Errorf("Len = %d, %d; want 2, 2", stops, buses)
	}
}

func TestLoad(t *testing.T) {
	batch := model.Batch{
		Stops: []model.StopDefinition{
			{Name: "A", Coordinates: model.Coordinates{Lat: 0, Lng: 0},
				Distances: []model.DistanceDefinition{{To: "B", Meters: 3}}},
			{Name: "B", Coordinates: model.Coordinates{Lat: 4, Lng: 0},
				Distances: []model.DistanceDefinition{{To: "A", Meters: 5}}},
		},
		Buses: []model.BusDefinition{
			{Number: "1", Stops: []string{"A", "B"}},
		},
	}

	c := New(flatGeo)
	if err := c.Load(batch); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d, _ := c.DistanceBetween("A", "B"); d != 3 {
		t.Errorf("A->B = %d, want 3", d)
	}
	if d, _ := c.DistanceBetween("B", "A"); d != 5 {
		t.Errorf("B->A = %d, want 5", d)
	}
	if buses, _ := c.BusesServing("B"); !reflect.DeepEqual(buses, []string{"1"}) {
		t.Errorf("BusesServing(B) = %v", buses)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		batch   model.Batch
		wantErr error
	}{
		{
			name: "duplicate stop",
			batch: model.Batch{Stops: []model.StopDefinition{
				{Name: "A"}, {Name: "A"},
			}},
			wantErr: ErrDuplicateKey,
		},
		{
			name: "distance to unknown stop",
			batch: model.Batch{Stops: []model.StopDefinition{
				{Name: "A", Distances: []model.DistanceDefinition{{To: "Z", Meters: 1}}},
			}},
			wantErr: ErrUnknownStop,
		},
		{
			name: "negative distance",
			batch: model.Batch{Stops: []model.StopDefinition{
				{Name: "A", Distances: []model.DistanceDefinition{{To: "A", Meters: -1}}},
			}},
			wantErr: ErrInvalidDistance,
		},
		{
			name: "bus over unknown stop",
			batch: model.Batch{
				Stops: []model.StopDefinition{{Name: "A"}},
				Buses: []model.BusDefinition{{Number: "1", Stops: []string{"A", "B"}}},
			},
			wantErr: ErrUnknownStop,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(flatGeo).Load(tt.batch)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConcurrentReaders(t *testing.T) {
	c := New(flatGeo)
	mustAddStop(t, c, "A", 0, 0)
	mustAddStop(t, c, "B", 3, 4)
	if err := c.SetDistance("A", "B", 10); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBus("1", []string{"A", "B", "A"}, true); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Stats("1"); err != nil {
				errs <- err
			}
			if _, err := c.BusesServing("A"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent read failed: %v", err)
	}
}
