// Package model contains domain models for the transit catalogue.
//
// Views (Stop, Bus, RouteStats, StopInfo) are what queries return. Definitions
// (StopDefinition, BusDefinition, Batch) are what the readers and the
// PostgreSQL source produce before anything is registered.
package model

// ─── Location ───────────────────────────────────────────────

// Coordinates represents a WGS-84 geographic point in degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"latitude" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" yaml:"longitude" validate:"gte=-180,lte=180"`
}

// ─── Registry Views ─────────────────────────────────────────

// Stop is a read-only view of a registered stop.
// Buses is sorted lexicographically and never contains duplicates.
type Stop struct {
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Buses       []string    `json:"buses"`
}

// Bus is a read-only view of a registered bus. Stops are stop names in
// route order; duplicates are allowed.
type Bus struct {
	Number     string   `json:"number"`
	Stops      []string `json:"stops"`
	IsCircular bool     `json:"is_roundtrip"`
}

// ─── Query Results ──────────────────────────────────────────

// RouteStats is the answer to a bus query. It is derived on demand and never
// stored in the catalogue.
type RouteStats struct {
	Bus         string  `json:"bus"`
	TotalStops  int     `json:"stop_count"`
	UniqueStops int     `json:"unique_stop_count"`
	RoadLength  int     `json:"route_length"`
	GeoLength   float64 `json:"geo_length"`
	Curvature   float64 `json:"curvature"`
}

// StopInfo is the answer to a stop query.
type StopInfo struct {
	Name  string   `json:"name"`
	Buses []string `json:"buses"`
}

// ─── Batch Definitions ──────────────────────────────────────

// DistanceDefinition is one "<meters>m to <stop>" entry of a stop definition.
type DistanceDefinition struct {
	To     string `json:"to" yaml:"to" validate:"required"`
	Meters int    `json:"meters" yaml:"meters" validate:"gte=0"`
}

// StopDefinition describes a stop together with the road distances that
// start at it.
type StopDefinition struct {
	Name        string               `json:"name" yaml:"name" validate:"required"`
	Coordinates `yaml:",inline"`
	Distances   []DistanceDefinition `json:"road_distances" yaml:"road_distances" validate:"dive"`
}

// BusDefinition describes a bus route by stop names.
type BusDefinition struct {
	Number     string   `json:"number" yaml:"number" validate:"required"`
	Stops      []string `json:"stops" yaml:"stops" validate:"min=1,dive,required"`
	IsCircular bool     `json:"is_roundtrip" yaml:"is_roundtrip"`
}

// Batch is everything needed to build one catalogue.
type Batch struct {
	Stops []StopDefinition `json:"stops" yaml:"stops" validate:"dive"`
	Buses []BusDefinition  `json:"buses" yaml:"buses" validate:"dive"`
}
