// Package geo provides great-circle distance functions for the transit
// catalogue.
//
// GreatCircleM is the distance the catalogue uses for route curvature. It uses
// the spherical law of cosines over a 6 371 000 m Earth radius. HaversineM is
// the alternative selected by CATALOGUE_GEO_FORMULA=haversine (or -geo on the
// command line); over stop-to-stop distances both agree to well under a meter.
package geo

import (
	"math"

	"github.com/shiva/transit-catalogue/internal/model"
)

// ─── Constants ──────────────────────────────────────────────

const (
	// EarthRadiusKm is the mean radius of Earth in kilometers.
	EarthRadiusKm = 6371.0

	// EarthRadiusM is the mean radius of Earth in meters.
	EarthRadiusM = 6_371_000.0
)

// ─── Distance ───────────────────────────────────────────────

// GreatCircleM returns the great-circle distance between two points in meters.
// It is symmetric and returns exactly 0 for identical points.
//
// Complexity: O(1)
func GreatCircleM(a, b model.Coordinates) float64 {
	if a == b {
		return 0
	}

	cosC := math.Sin(degToRad(a.Lat))*math.Sin(degToRad(b.Lat)) +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*math.Cos(degToRad(math.Abs(a.Lng-b.Lng)))

	// Rounding can push the cosine just past ±1 for near-identical points.
	cosC = math.Max(-1, math.Min(1, cosC))

	return math.Acos(cosC) * EarthRadiusM
}

// HaversineKm returns the great-circle distance between two points in kilometers.
//
// Complexity: O(1)
func HaversineKm(a, b model.Coordinates) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// HaversineM returns the great-circle distance between two points in meters.
func HaversineM(a, b model.Coordinates) float64 {
	return HaversineKm(a, b) * 1000.0
}

// ─── Helpers ────────────────────────────────────────────────

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
