package distance

import (
	"math"

	"github.com/woozymasta/geodesy/internal/geo"
)

// Haversine measures great-circle distances on a sphere with the
// arithmetic mean radius of the first point's ellipsoid.
type Haversine struct{}

// Distance returns the distance in meters rounded to millimeters.
func (Haversine) Distance(p1, p2 geo.Coordinate) (float64, error) {
	if err := checkEllipsoids("haversine", p1, p2); err != nil {
		return 0, err
	}

	lat1 := geo.Deg2Rad(p1.Lat())
	lat2 := geo.Deg2Rad(p2.Lat())
	dLat := lat2 - lat1
	dLng := geo.Deg2Rad(p2.Lng()) - geo.Deg2Rad(p1.Lng())

	radius := p1.Ellipsoid().ArithmeticMeanRadius()

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	// rounding can push h slightly above 1 for antipodal points
	d := 2 * radius * math.Asin(math.Sqrt(math.Min(h, 1)))

	return geo.Round10(d, -3), nil
}
