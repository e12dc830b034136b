package geo

// Line is an ordered pair of points; direction matters for bearings.
type Line struct {
	point1 Coordinate
	point2 Coordinate
}

// NewLine returns the line from point1 to point2.
func NewLine(point1, point2 Coordinate) *Line {
	return &Line{point1: point1, point2: point2}
}

// Point1 returns the start point.
func (l *Line) Point1() Coordinate { return l.point1 }

// Point2 returns the end point.
func (l *Line) Point2() Coordinate { return l.point2 }

// SetPoint1 replaces the start point.
func (l *Line) SetPoint1(p Coordinate) { l.point1 = p }

// SetPoint2 replaces the end point.
func (l *Line) SetPoint2(p Coordinate) { l.point2 = p }

// Points returns both points.
func (l *Line) Points() []Coordinate {
	return []Coordinate{l.point1, l.point2}
}

// Length returns the distance between the two points.
func (l *Line) Length(calc DistanceCalculator) (float64, error) {
	return calc.Distance(l.point1, l.point2)
}

// Bearing returns the initial bearing from point1 towards point2.
func (l *Line) Bearing(calc BearingCalculator) (float64, error) {
	return calc.Bearing(l.point1, l.point2)
}

// FinalBearing returns the bearing on arrival at point2.
func (l *Line) FinalBearing(calc BearingCalculator) (float64, error) {
	return calc.FinalBearing(l.point1, l.point2)
}

// Reverse returns a new line with swapped direction.
func (l *Line) Reverse() *Line {
	return &Line{point1: l.point2, point2: l.point1}
}
