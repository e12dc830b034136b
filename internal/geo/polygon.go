package geo

import "math"

// Polygon is a closed chain of points: the last point connects back
// to the first. Polygons crossing the 180th meridian are not supported.
type Polygon struct {
	path
}

// NewPolygon returns a polygon with the given vertices.
func NewPolygon(points ...Coordinate) *Polygon {
	pg := &Polygon{}
	pg.points = append(pg.points, points...)

	return pg
}

// Segments returns the polygon edges including the closing edge from
// the last point back to the first. Fewer than two points yield none.
func (pg *Polygon) Segments() []*Line {
	segments := pg.chain()
	if len(pg.points) < 2 {
		return segments
	}

	return append(segments, NewLine(pg.points[len(pg.points)-1], pg.points[0]))
}

// Contains reports whether point lies inside the polygon using the PNPOLY
// ray casting algorithm by W. Randolph Franklin.
//
// Points exactly on the boundary may go either way.
func (pg *Polygon) Contains(point Coordinate) bool {
	n := len(pg.points)
	inside := false

	for node, alt := 0, n-1; node < n; alt, node = node, node+1 {
		pn, pa := pg.points[node], pg.points[alt]
		if (pn.lng > point.lng) != (pa.lng > point.lng) &&
			point.lat < (pa.lat-pn.lat)*(point.lng-pn.lng)/(pa.lng-pn.lng)+pn.lat {
			inside = !inside
		}
	}

	return inside
}

// ContainsGeometry reports whether every point of g is inside the polygon.
// Edges of g leaving and re-entering the polygon are not detected.
func (pg *Polygon) ContainsGeometry(g Geometry) bool {
	for _, p := range g.Points() {
		if !pg.Contains(p) {
			return false
		}
	}

	return true
}

// Perimeter returns the sum of all edge lengths, 0 for fewer than two points.
func (pg *Polygon) Perimeter(calc DistanceCalculator) (float64, error) {
	if len(pg.points) < 2 {
		return 0, nil
	}

	return sumLengths(pg.Segments(), calc)
}

// Area returns the approximate polygon area in square meters.
//
// The vertices are projected onto a local equirectangular plane centered
// on the first point and scaled with the arithmetic mean radius, so the
// ellipsoid flattening is ignored. The error stays below 1% for small areas.
func (pg *Polygon) Area() float64 {
	if len(pg.points) < 3 {
		return 0
	}

	ref := pg.points[0]
	radius := ref.ellipsoid.ArithmeticMeanRadius()

	area := 0.0
	for _, s := range pg.Segments() {
		x1, y1 := project(s.point1, ref)
		x2, y2 := project(s.point2, ref)
		area += x2*y1 - x1*y2
	}

	return math.Abs(area * 0.5 * radius * radius)
}

func project(p, ref Coordinate) (x, y float64) {
	x = Deg2Rad(p.lng-ref.lng) * math.Cos(Deg2Rad(p.lat))
	y = Deg2Rad(p.lat - ref.lat)

	return x, y
}

// Reverse returns a new polygon with reversed orientation.
func (pg *Polygon) Reverse() *Polygon {
	return NewPolygon(pg.reversed()...)
}
