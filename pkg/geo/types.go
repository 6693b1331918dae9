// Package geo provides the coordinate type shared by the location-based tools.
package geo

import "strconv"

// Coordinate bounds in WGS-84 degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Location represents a geographic coordinate (latitude and longitude)
// with standardized JSON field names.
//
// Example:
//
//	loc := geo.Location{Latitude: 55.6761, Longitude: 12.5683}
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// X returns the longitude formatted for query strings.
func (l Location) X() string {
	return FormatDegrees(l.Longitude)
}

// Y returns the latitude formatted for query strings.
func (l Location) Y() string {
	return FormatDegrees(l.Latitude)
}

// FormatDegrees renders a coordinate with the shortest decimal
// representation that round-trips, e.g. 12.5683 stays "12.5683".
func FormatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
