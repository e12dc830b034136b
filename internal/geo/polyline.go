package geo

// Polyline is an open chain of points.
type Polyline struct {
	path
}

// NewPolyline returns a polyline through the given points.
func NewPolyline(points ...Coordinate) *Polyline {
	pl := &Polyline{}
	pl.points = append(pl.points, points...)

	return pl
}

// Segments returns the lines between consecutive points,
// or an empty slice for fewer than two points.
func (pl *Polyline) Segments() []*Line {
	return pl.chain()
}

// Length returns the sum of all segment lengths.
func (pl *Polyline) Length(calc DistanceCalculator) (float64, error) {
	if len(pl.points) < 2 {
		return 0, nil
	}

	return sumLengths(pl.Segments(), calc)
}

// Reverse returns a new polyline with the point order reversed.
func (pl *Polyline) Reverse() *Polyline {
	return NewPolyline(pl.reversed()...)
}
