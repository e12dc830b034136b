package bearing

import (
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/geo/vincenty"
)

// Ellipsoidal computes bearings and destinations on the reference
// ellipsoid with Vincenty's direct and inverse solutions.
// MaxIterations <= 0 uses vincenty.DefaultBearingIterations.
type Ellipsoidal struct {
	MaxIterations int
}

// NewEllipsoidal returns a calculator with the default iteration cap.
func NewEllipsoidal() Ellipsoidal {
	return Ellipsoidal{MaxIterations: vincenty.DefaultBearingIterations}
}

func (e Ellipsoidal) limit() int {
	if e.MaxIterations <= 0 {
		return vincenty.DefaultBearingIterations
	}

	return e.MaxIterations
}

// Inverse solves the inverse problem between p1 and p2.
func (e Ellipsoidal) Inverse(p1, p2 geo.Coordinate) (vincenty.InverseResult, error) {
	return vincenty.Inverse(p1, p2, e.limit())
}

// Direct solves the direct problem from p.
func (e Ellipsoidal) Direct(p geo.Coordinate, bearing, distance float64) (vincenty.DirectResult, error) {
	return vincenty.Direct(p, bearing, distance, e.limit())
}

// Bearing returns the initial bearing from p1 towards p2 in [0, 360).
// Identical points fail with geo.ErrCoincidentPoints.
func (e Ellipsoidal) Bearing(p1, p2 geo.Coordinate) (float64, error) {
	res, err := e.Inverse(p1, p2)
	if err != nil {
		return 0, err
	}

	return res.InitialBearing, nil
}

// FinalBearing returns the bearing on arrival at p2 in [0, 360).
func (e Ellipsoidal) FinalBearing(p1, p2 geo.Coordinate) (float64, error) {
	res, err := e.Inverse(p1, p2)
	if err != nil {
		return 0, err
	}

	return res.FinalBearing, nil
}

// Destination returns the point reached from p after distance meters on
// the initial bearing.
func (e Ellipsoidal) Destination(p geo.Coordinate, bearing, distance float64) (geo.Coordinate, error) {
	res, err := e.Direct(p, bearing, distance)
	if err != nil {
		return geo.Coordinate{}, err
	}

	return res.Destination, nil
}

// DestinationFinalBearing returns the bearing on arrival at the destination.
func (e Ellipsoidal) DestinationFinalBearing(p geo.Coordinate, bearing, distance float64) (float64, error) {
	res, err := e.Direct(p, bearing, distance)
	if err != nil {
		return 0, err
	}

	return res.FinalBearing, nil
}
