// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geo provides geographic coordinate primitives for the trip pipeline.
package geo

import (
	"math"
)

const (
	// EarthRadius is the mean earth radius in meters.
	EarthRadius = 6371000.0
	// SamePointThreshold is the distance in meters below which two geocoded
	// points are treated as identical to avoid degenerate routing calls.
	SamePointThreshold = 20.0
)

// Coordinate represents a geographic coordinate as a longitude/latitude pair.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Haversine calculates the great-circle distance in meters between two points
// on a sphere (in our case: Earth).
func Haversine(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}

// SamePoint reports whether two coordinates lie within the same-point threshold
// of each other.
func SamePoint(a, b Coordinate) bool {
	return Haversine(a, b) <= SamePointThreshold
}
