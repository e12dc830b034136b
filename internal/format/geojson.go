package format

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/woozymasta/geodesy/internal/geo"
)

// ErrDegeneratePolygon is returned for polygons with fewer than three points.
var ErrDegeneratePolygon = errors.New("polygon needs at least 3 points")

// PointGeoJSON renders a GeoJSON Point (longitude first).
func PointGeoJSON(c geo.Coordinate) ([]byte, error) {
	return json.Marshal(geojson.NewGeometry(toPoint(c)))
}

// PolylineGeoJSON renders a GeoJSON LineString.
func PolylineGeoJSON(pl *geo.Polyline) ([]byte, error) {
	return json.Marshal(geojson.NewGeometry(LineString(pl)))
}

// PolygonGeoJSON renders a GeoJSON Polygon with a single closed ring.
func PolygonGeoJSON(pg *geo.Polygon) ([]byte, error) {
	poly, err := Polygon(pg)
	if err != nil {
		return nil, err
	}

	return json.Marshal(geojson.NewGeometry(poly))
}

// LineString converts a polyline into an orb geometry.
func LineString(pl *geo.Polyline) orb.LineString {
	pts := pl.Points()
	ls := make(orb.LineString, len(pts))
	for i, c := range pts {
		ls[i] = toPoint(c)
	}

	return ls
}

// Polygon converts a polygon into an orb geometry. The ring is closed by
// repeating the first point when needed.
func Polygon(pg *geo.Polygon) (orb.Polygon, error) {
	pts := pg.Points()
	if len(pts) < 3 {
		return nil, ErrDegeneratePolygon
	}

	ring := make(orb.Ring, 0, len(pts)+1)
	for _, c := range pts {
		ring = append(ring, toPoint(c))
	}
	if !closed(ring) {
		ring = append(ring, ring[0])
	}

	return orb.Polygon{ring}, nil
}

// closed reports whether the ring ends on its first point. orb's
// Ring.Closed needs four points and misses short rings.
func closed(ring orb.Ring) bool {
	return len(ring) > 1 && ring[0] == ring[len(ring)-1]
}

func toPoint(c geo.Coordinate) orb.Point {
	return orb.Point{c.Lng(), c.Lat()}
}

// ParseGeometry reads a GeoJSON geometry (Point, LineString or Polygon) and
// returns it as geo shapes on the given ellipsoid. For polygons only the
// outer ring is used and the repeated closing point is dropped.
func ParseGeometry(data []byte, e geo.Ellipsoid) (geo.Geometry, error) {
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	switch v := g.Geometry().(type) {
	case orb.Point:
		return fromPoint(v, e)
	case orb.LineString:
		pts, err := fromPoints(v, e)
		if err != nil {
			return nil, err
		}
		return geo.NewPolyline(pts...), nil
	case orb.Polygon:
		if len(v) == 0 {
			return nil, ErrDegeneratePolygon
		}
		ring := v[0]
		if closed(ring) {
			ring = ring[:len(ring)-1]
		}
		pts, err := fromPoints(ring, e)
		if err != nil {
			return nil, err
		}
		if len(pts) < 3 {
			return nil, ErrDegeneratePolygon
		}
		return geo.NewPolygon(pts...), nil
	default:
		return nil, fmt.Errorf("parse geojson: unsupported geometry %s", g.Type)
	}
}

func fromPoint(p orb.Point, e geo.Ellipsoid) (geo.Coordinate, error) {
	return geo.NewCoordinateOn(p.Lat(), p.Lon(), e)
}

func fromPoints(pts []orb.Point, e geo.Ellipsoid) ([]geo.Coordinate, error) {
	out := make([]geo.Coordinate, 0, len(pts))
	for _, p := range pts {
		c, err := fromPoint(p, e)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

// FeatureCollection accumulates shapes with properties.
type FeatureCollection struct {
	fc *geojson.FeatureCollection
}

// NewFeatureCollection returns an empty collection.
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{fc: geojson.NewFeatureCollection()}
}

// Add appends g with the given properties. Degenerate polygons are rejected.
func (c *FeatureCollection) Add(g geo.Geometry, props map[string]any) error {
	var og orb.Geometry

	switch v := g.(type) {
	case geo.Coordinate:
		og = toPoint(v)
	case *geo.Polyline:
		og = LineString(v)
	case *geo.Line:
		og = orb.LineString{toPoint(v.Point1()), toPoint(v.Point2())}
	case *geo.Polygon:
		poly, err := Polygon(v)
		if err != nil {
			return err
		}
		og = poly
	default:
		return fmt.Errorf("unsupported geometry %T", g)
	}

	f := geojson.NewFeature(og)
	for k, v := range props {
		f.Properties[k] = v
	}
	c.fc.Append(f)

	return nil
}

// Len returns the number of features.
func (c *FeatureCollection) Len() int {
	return len(c.fc.Features)
}

// MarshalJSON implements json.Marshaler.
func (c *FeatureCollection) MarshalJSON() ([]byte, error) {
	return c.fc.MarshalJSON()
}
