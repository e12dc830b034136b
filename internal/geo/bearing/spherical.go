package bearing

import (
	"math"

	"github.com/woozymasta/geodesy/internal/geo"
)

// EarthRadius is the sphere radius in meters used by Spherical.
const EarthRadius = 6371009.0

// Spherical computes bearings with closed-form great-circle formulae.
type Spherical struct{}

// Bearing returns the initial bearing from p1 towards p2 in [0, 360).
func (Spherical) Bearing(p1, p2 geo.Coordinate) (float64, error) {
	lat1 := geo.Deg2Rad(p1.Lat())
	lat2 := geo.Deg2Rad(p2.Lat())
	dLng := geo.Deg2Rad(p2.Lng()) - geo.Deg2Rad(p1.Lng())

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	bearing := geo.Rad2Deg(math.Atan2(y, x))
	if bearing < 0 {
		bearing = geo.Fmod(bearing+360, 360)
	}

	return bearing, nil
}

// FinalBearing returns the bearing on arrival at p2, i.e. the reversed
// initial bearing from p2 back to p1.
func (s Spherical) FinalBearing(p1, p2 geo.Coordinate) (float64, error) {
	initial, err := s.Bearing(p2, p1)
	if err != nil {
		return 0, err
	}

	return geo.Fmod(initial+180, 360), nil
}

// Destination returns the point reached from p after distance meters on
// bearing degrees. The longitude is wrapped into [-180, 180).
func (Spherical) Destination(p geo.Coordinate, bearing, distance float64) (geo.Coordinate, error) {
	d := distance / EarthRadius
	b := geo.Deg2Rad(bearing)
	phi := geo.Deg2Rad(p.Lat())
	lambda := geo.Deg2Rad(p.Lng())

	// rounding can push the sine past ±1 at the poles
	sinPhi2 := math.Sin(phi)*math.Cos(d) + math.Cos(phi)*math.Sin(d)*math.Cos(b)
	phi2 := math.Asin(math.Max(-1, math.Min(sinPhi2, 1)))
	lambda2 := lambda + math.Atan2(math.Sin(b)*math.Sin(d)*math.Cos(phi), math.Cos(d)-math.Sin(phi)*math.Sin(phi2))

	return geo.NewCoordinateOn(geo.Rad2Deg(phi2), geo.NormalizeLongitude(geo.Rad2Deg(lambda2)), p.Ellipsoid())
}
