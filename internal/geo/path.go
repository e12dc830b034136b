package geo

// path is the ordered point sequence shared by Polyline and Polygon.
// Duplicates are allowed and insertion order is kept.
type path struct {
	points []Coordinate
}

// AddPoint appends p to the sequence.
func (p *path) AddPoint(c Coordinate) {
	p.points = append(p.points, c)
}

// Points returns a copy of the point sequence.
func (p *path) Points() []Coordinate {
	out := make([]Coordinate, len(p.points))
	copy(out, p.points)

	return out
}

// NumberOfPoints returns the number of points.
func (p *path) NumberOfPoints() int {
	return len(p.points)
}

// Lats returns the latitudes of all points in order.
func (p *path) Lats() []float64 {
	lats := make([]float64, len(p.points))
	for i, c := range p.points {
		lats[i] = c.lat
	}

	return lats
}

// Lngs returns the longitudes of all points in order.
func (p *path) Lngs() []float64 {
	lngs := make([]float64, len(p.points))
	for i, c := range p.points {
		lngs[i] = c.lng
	}

	return lngs
}

// Bounds returns the smallest box holding every point.
// ok is false for an empty sequence.
func (p *path) Bounds() (b Bounds, ok bool) {
	if len(p.points) == 0 {
		return Bounds{}, false
	}

	first := p.points[0]
	north, south := first.lat, first.lat
	west, east := first.lng, first.lng

	for _, c := range p.points[1:] {
		north = max(north, c.lat)
		south = min(south, c.lat)
		west = min(west, c.lng)
		east = max(east, c.lng)
	}

	e := first.ellipsoid
	return NewBounds(
		Coordinate{lat: north, lng: west, ellipsoid: e},
		Coordinate{lat: south, lng: east, ellipsoid: e},
	), true
}

// chain returns the segments between consecutive points.
func (p *path) chain() []*Line {
	if len(p.points) < 2 {
		return []*Line{}
	}

	segments := make([]*Line, 0, len(p.points))
	for i := 1; i < len(p.points); i++ {
		segments = append(segments, NewLine(p.points[i-1], p.points[i]))
	}

	return segments
}

func (p *path) reversed() []Coordinate {
	out := make([]Coordinate, len(p.points))
	for i, c := range p.points {
		out[len(p.points)-1-i] = c
	}

	return out
}

// sumLengths adds the lengths of all segments.
func sumLengths(segments []*Line, calc DistanceCalculator) (float64, error) {
	total := 0.0
	for _, s := range segments {
		d, err := s.Length(calc)
		if err != nil {
			return 0, err
		}
		total += d
	}

	return total, nil
}
