// Package geo handles geographic data structures: reference ellipsoids,
// coordinates and the simple shapes built from them.
package geo

import (
	"math"
	"strconv"
)

// Geometry is implemented by every shape made of coordinates.
type Geometry interface {
	Points() []Coordinate
}

// DistanceCalculator computes the distance in meters between two points.
type DistanceCalculator interface {
	Distance(p1, p2 Coordinate) (float64, error)
}

// BearingCalculator computes bearings in degrees and destination points.
type BearingCalculator interface {
	Bearing(p1, p2 Coordinate) (float64, error)
	FinalBearing(p1, p2 Coordinate) (float64, error)
	Destination(p Coordinate, bearing, distance float64) (Coordinate, error)
}

// CoordinateFormatter renders a coordinate as text.
type CoordinateFormatter interface {
	Format(c Coordinate) string
}

// Coordinate is a latitude/longitude pair bound to a reference ellipsoid.
type Coordinate struct {
	ellipsoid Ellipsoid
	lat       float64
	lng       float64
}

// NewCoordinate returns a WGS-84 coordinate.
// lat must be within [-90, 90] and lng within [-180, 180].
func NewCoordinate(lat, lng float64) (Coordinate, error) {
	return NewCoordinateOn(lat, lng, WGS84)
}

// NewCoordinateOn returns a coordinate on the given ellipsoid.
// A zero ellipsoid falls back to WGS-84.
func NewCoordinateOn(lat, lng float64, e Ellipsoid) (Coordinate, error) {
	if !ValidLatitude(lat) {
		return Coordinate{}, NewError(InvalidCoordinate, "new coordinate", "latitude %v out of [-90, 90]", lat)
	}
	if !ValidLongitude(lng) {
		return Coordinate{}, NewError(InvalidCoordinate, "new coordinate", "longitude %v out of [-180, 180]", lng)
	}
	if e.IsZero() {
		e = WGS84
	}

	return Coordinate{lat: lat, lng: lng, ellipsoid: e}, nil
}

// MustCoordinate is like NewCoordinate but panics on invalid input.
func MustCoordinate(lat, lng float64) Coordinate {
	c, err := NewCoordinate(lat, lng)
	if err != nil {
		panic(err)
	}

	return c
}

// ValidLatitude reports whether lat is a finite value in [-90, 90].
func ValidLatitude(lat float64) bool {
	return inBounds(lat, -90, 90)
}

// ValidLongitude reports whether lng is a finite value in [-180, 180].
func ValidLongitude(lng float64) bool {
	return inBounds(lng, -180, 180)
}

func inBounds(value, lower, upper float64) bool {
	if math.IsNaN(value) {
		return false
	}

	return value >= lower && value <= upper
}

// Lat returns the latitude in degrees.
func (c Coordinate) Lat() float64 { return c.lat }

// Lng returns the longitude in degrees.
func (c Coordinate) Lng() float64 { return c.lng }

// Ellipsoid returns the reference ellipsoid.
func (c Coordinate) Ellipsoid() Ellipsoid { return c.ellipsoid }

// Points returns the coordinate as a single point sequence.
func (c Coordinate) Points() []Coordinate {
	return []Coordinate{c}
}

// Distance measures the distance to other with the given calculator.
func (c Coordinate) Distance(other Coordinate, calc DistanceCalculator) (float64, error) {
	return calc.Distance(c, other)
}

// Format renders the coordinate with f.
func (c Coordinate) Format(f CoordinateFormatter) string {
	return f.Format(c)
}

// String renders "lat lng" in plain decimal degrees.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.lat, 'f', -1, 64) + " " + strconv.FormatFloat(c.lng, 'f', -1, 64)
}

// SameEllipsoid reports whether both coordinates share a reference ellipsoid.
func SameEllipsoid(p1, p2 Coordinate) bool {
	return p1.ellipsoid.Same(p2.ellipsoid)
}
