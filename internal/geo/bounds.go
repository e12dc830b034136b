package geo

// Bounds is a box given by its north-west and south-east corners.
type Bounds struct {
	northWest Coordinate
	southEast Coordinate
}

// NewBounds returns the box between the two corners.
func NewBounds(northWest, southEast Coordinate) Bounds {
	return Bounds{northWest: northWest, southEast: southEast}
}

// NorthWest returns the north-west corner.
func (b Bounds) NorthWest() Coordinate { return b.northWest }

// SouthEast returns the south-east corner.
func (b Bounds) SouthEast() Coordinate { return b.southEast }

func (b Bounds) North() float64 { return b.northWest.lat }
func (b Bounds) South() float64 { return b.southEast.lat }
func (b Bounds) West() float64  { return b.northWest.lng }
func (b Bounds) East() float64  { return b.southEast.lng }

// Center returns the middle of the box. Boxes whose west edge is east of
// their east edge are treated as wrapping over the 180th meridian.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		lat:       (b.North() + b.South()) / 2,
		lng:       b.centerLng(),
		ellipsoid: b.northWest.ellipsoid,
	}
}

func (b Bounds) centerLng() float64 {
	center := (b.East() + b.West()) / 2
	overlap := b.West() > 0 && b.East() < 0

	switch {
	case overlap && center > 0:
		return -180 + center
	case overlap && center < 0:
		return 180 + center
	case overlap:
		return 180
	default:
		return center
	}
}
