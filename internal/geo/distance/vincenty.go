package distance

import (
	"errors"

	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/geo/vincenty"
)

// Vincenty measures geodesic distances on the ellipsoid.
// MaxIterations <= 0 uses vincenty.DefaultDistanceIterations.
type Vincenty struct {
	MaxIterations int
}

// NewVincenty returns a calculator with the default iteration cap.
func NewVincenty() Vincenty {
	return Vincenty{MaxIterations: vincenty.DefaultDistanceIterations}
}

// Distance returns the distance in meters rounded to millimeters.
// Identical points are 0 m apart; nearly antipodal points may fail with
// geo.ErrNonConvergent.
func (v Vincenty) Distance(p1, p2 geo.Coordinate) (float64, error) {
	if err := checkEllipsoids("vincenty", p1, p2); err != nil {
		return 0, err
	}

	limit := v.MaxIterations
	if limit <= 0 {
		limit = vincenty.DefaultDistanceIterations
	}

	res, err := vincenty.Inverse(p1, p2, limit)
	if errors.Is(err, geo.ErrCoincidentPoints) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return res.Distance, nil
}
