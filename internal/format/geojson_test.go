package format

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/woozymasta/geodesy/internal/geo"
)

type geometryDoc struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func decodeGeometry(t *testing.T, data []byte) geometryDoc {
	t.Helper()

	var doc geometryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}

	return doc
}

func TestPointGeoJSON(t *testing.T) {
	data, err := PointGeoJSON(geo.MustCoordinate(52.5, 13.4))
	if err != nil {
		t.Fatal(err)
	}

	doc := decodeGeometry(t, data)
	if doc.Type != "Point" {
		t.Errorf("type = %q", doc.Type)
	}

	var xy [2]float64
	if err := json.Unmarshal(doc.Coordinates, &xy); err != nil {
		t.Fatal(err)
	}
	if xy != [2]float64{13.4, 52.5} {
		t.Errorf("coordinates = %v, want lng first", xy)
	}
}

func TestPolylineGeoJSON(t *testing.T) {
	pl := geo.NewPolyline(
		geo.MustCoordinate(52.5, 13.4),
		geo.MustCoordinate(48.1, 11.6),
		geo.MustCoordinate(50.1, 8.7),
	)

	data, err := PolylineGeoJSON(pl)
	if err != nil {
		t.Fatal(err)
	}

	doc := decodeGeometry(t, data)
	if doc.Type != "LineString" {
		t.Errorf("type = %q", doc.Type)
	}

	var coords [][2]float64
	if err := json.Unmarshal(doc.Coordinates, &coords); err != nil {
		t.Fatal(err)
	}
	if len(coords) != 3 || coords[1] != [2]float64{11.6, 48.1} {
		t.Errorf("coordinates = %v", coords)
	}
}

func TestPolygonGeoJSON(t *testing.T) {
	pg := geo.NewPolygon(
		geo.MustCoordinate(0, 0),
		geo.MustCoordinate(0, 1),
		geo.MustCoordinate(1, 1),
		geo.MustCoordinate(1, 0),
	)

	data, err := PolygonGeoJSON(pg)
	if err != nil {
		t.Fatal(err)
	}

	doc := decodeGeometry(t, data)
	if doc.Type != "Polygon" {
		t.Errorf("type = %q", doc.Type)
	}

	var rings [][][2]float64
	if err := json.Unmarshal(doc.Coordinates, &rings); err != nil {
		t.Fatal(err)
	}
	if len(rings) != 1 || len(rings[0]) != 5 {
		t.Fatalf("rings = %v", rings)
	}
	if rings[0][0] != rings[0][4] {
		t.Errorf("ring not closed: %v", rings[0])
	}

	// already closed input is not closed twice
	twice := geo.NewPolygon(append(pg.Points(), geo.MustCoordinate(0, 0))...)
	poly, err := Polygon(twice)
	if err != nil {
		t.Fatal(err)
	}
	if len(poly[0]) != 5 {
		t.Errorf("ring length = %d", len(poly[0]))
	}

	// a three point ring ending on its start is already closed
	short := geo.NewPolygon(geo.MustCoordinate(0, 0), geo.MustCoordinate(1, 1), geo.MustCoordinate(0, 0))
	poly, err = Polygon(short)
	if err != nil {
		t.Fatal(err)
	}
	if len(poly[0]) != 3 {
		t.Errorf("short ring length = %d, want 3", len(poly[0]))
	}
}

func TestPolygonGeoJSONDegenerate(t *testing.T) {
	pg := geo.NewPolygon(geo.MustCoordinate(0, 0), geo.MustCoordinate(1, 1))
	if _, err := PolygonGeoJSON(pg); !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("got %v", err)
	}
}

func TestParseGeometry(t *testing.T) {
	g, err := ParseGeometry([]byte(`{"type":"Point","coordinates":[13.4,52.5]}`), geo.WGS84)
	if err != nil {
		t.Fatal(err)
	}
	if c, ok := g.(geo.Coordinate); !ok || c.Lat() != 52.5 || c.Lng() != 13.4 {
		t.Errorf("point = %#v", g)
	}

	g, err = ParseGeometry([]byte(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}`), geo.WGS84)
	if err != nil {
		t.Fatal(err)
	}
	pg, ok := g.(*geo.Polygon)
	if !ok {
		t.Fatalf("got %T", g)
	}
	if pg.NumberOfPoints() != 4 {
		t.Errorf("closing point kept: %d points", pg.NumberOfPoints())
	}

	g, err = ParseGeometry([]byte(`{"type":"LineString","coordinates":[[0,0],[1,1]]}`), geo.WGS84)
	if err != nil {
		t.Fatal(err)
	}
	if pl, ok := g.(*geo.Polyline); !ok || pl.NumberOfPoints() != 2 {
		t.Errorf("linestring = %#v", g)
	}
}

func TestParseGeometryErrors(t *testing.T) {
	cases := map[string]string{
		"garbage":     `{"type":`,
		"multi":       `{"type":"MultiPoint","coordinates":[[0,0]]}`,
		"range":       `{"type":"Point","coordinates":[200,0]}`,
		"short ring":  `{"type":"Polygon","coordinates":[[[0,0],[1,1],[0,0]]]}`,
		"empty rings": `{"type":"Polygon","coordinates":[]}`,
	}
	for name, doc := range cases {
		if _, err := ParseGeometry([]byte(doc), geo.WGS84); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseGeometryShortClosedRing(t *testing.T) {
	doc := `{"type":"Polygon","coordinates":[[[0,0],[1,1],[0,0]]]}`
	if _, err := ParseGeometry([]byte(doc), geo.WGS84); !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("got %v, want ErrDegeneratePolygon", err)
	}

	doc = `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`
	g, err := ParseGeometry([]byte(doc), geo.WGS84)
	if err != nil {
		t.Fatal(err)
	}
	if pg, ok := g.(*geo.Polygon); !ok || pg.NumberOfPoints() != 3 {
		t.Errorf("triangle = %#v", g)
	}
}

func TestFeatureCollection(t *testing.T) {
	fc := NewFeatureCollection()

	if err := fc.Add(geo.MustCoordinate(1, 2), map[string]any{"name": "start"}); err != nil {
		t.Fatal(err)
	}
	line := geo.NewLine(geo.MustCoordinate(0, 0), geo.MustCoordinate(1, 1))
	if err := fc.Add(line, nil); err != nil {
		t.Fatal(err)
	}
	if err := fc.Add(geo.NewPolygon(geo.MustCoordinate(0, 0)), nil); !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("degenerate polygon: %v", err)
	}
	if fc.Len() != 2 {
		t.Fatalf("len = %d", fc.Len())
	}

	data, err := json.Marshal(fc)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry   geometryDoc    `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Type != "FeatureCollection" || len(doc.Features) != 2 {
		t.Fatalf("doc = %s", data)
	}
	if doc.Features[0].Properties["name"] != "start" {
		t.Errorf("properties = %v", doc.Features[0].Properties)
	}
	if doc.Features[1].Geometry.Type != "LineString" {
		t.Errorf("line type = %q", doc.Features[1].Geometry.Type)
	}
}

func TestEncode(t *testing.T) {
	doc := []byte("{\n  \"type\": \"Point\",\n  \"coordinates\": [13.4, 52.5]\n}")

	small, err := Encode(doc, EncodingJSON, true)
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(string(small), " \n") {
		t.Errorf("not minified: %s", small)
	}

	raw, err := Encode(doc, "", false)
	if err != nil || string(raw) != string(doc) {
		t.Errorf("plain json changed: %s, %v", raw, err)
	}

	y, err := Encode(doc, EncodingYAML, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(y), "type: Point\n") || !strings.Contains(string(y), "- 13.4") {
		t.Errorf("yaml = %s", y)
	}

	if _, err := Encode(doc, "toml", false); err == nil {
		t.Error("expected error for unknown encoding")
	}
}
