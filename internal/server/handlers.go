// Package server handles HTTP requests and middleware.
package server

import (
	"bytes"
	"encoding/json"
	"image"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/woozymasta/geodesy/internal/config"
	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/geo/bearing"
	"github.com/woozymasta/geodesy/internal/render"

	"github.com/cespare/xxhash/v2"
)

const etagCap = 64

// EllipsoidInfo describes a registry entry.
type EllipsoidInfo struct {
	Key  string  `json:"key"`
	Name string  `json:"name"`
	A    float64 `json:"a"`
	F    float64 `json:"f"`
	B    float64 `json:"b"`
}

// DistanceResponse is returned by /api/distance.
type DistanceResponse struct {
	Model    string  `json:"model"`
	Distance float64 `json:"distance"`
}

// BearingResponse is returned by /api/bearing.
type BearingResponse struct {
	Model   string  `json:"model"`
	Initial float64 `json:"initial"`
	Final   float64 `json:"final"`
}

// DestinationResponse is returned by /api/destination. Final is only set
// for the ellipsoidal model.
type DestinationResponse struct {
	Model       string   `json:"model"`
	Destination Point    `json:"destination"`
	Final       *float64 `json:"final,omitempty"`
}

// PolylineResponse is returned by /api/polyline.
type PolylineResponse struct {
	Model   string          `json:"model"`
	GeoJSON json.RawMessage `json:"geojson"`
	Length  float64         `json:"length"`
	Points  int             `json:"points"`
}

// PolygonResponse is returned by /api/polygon.
type PolygonResponse struct {
	Model     string          `json:"model"`
	GeoJSON   json.RawMessage `json:"geojson"`
	Contains  *bool           `json:"contains,omitempty"`
	Area      float64         `json:"area"`
	Perimeter float64         `json:"perimeter"`
}

// FormatResponse is returned by /api/format.
type FormatResponse struct {
	Text string `json:"text"`
}

// HandleEllipsoids lists the registered ellipsoids.
func (s *ServerContext) HandleEllipsoids(w http.ResponseWriter, r *http.Request) {
	keys := s.Registry.Keys()
	list := make([]EllipsoidInfo, 0, len(keys))
	for _, key := range keys {
		e := s.Registry.MustLookup(key)
		list = append(list, EllipsoidInfo{Key: key, Name: e.Name(), A: e.A(), F: e.F(), B: e.B()})
	}

	writeJSON(w, http.StatusOK, list)
}

// HandleDistance measures the distance between two points.
func (s *ServerContext) HandleDistance(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	calc, model, err := s.distanceCalculator(req.Model)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p1, p2, err := s.pair(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	started := time.Now()
	d, err := calc.Distance(p1, p2)
	s.Metrics.Observe("distance", model, started, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DistanceResponse{Model: model, Distance: d})
}

// HandleBearing returns the initial and final bearing between two points.
func (s *ServerContext) HandleBearing(w http.ResponseWriter, r *http.Request) {
	var req PairRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	calc, model, err := s.bearingCalculator(req.Model)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p1, p2, err := s.pair(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	started := time.Now()
	initial, err := calc.Bearing(p1, p2)
	var final float64
	if err == nil {
		final, err = calc.FinalBearing(p1, p2)
	}
	s.Metrics.Observe("bearing", model, started, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, BearingResponse{Model: model, Initial: initial, Final: final})
}

// HandleDestination solves the direct problem.
func (s *ServerContext) HandleDestination(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	calc, model, err := s.bearingCalculator(req.Model)
	if err != nil {
		writeError(w, r, err)
		return
	}
	from, err := s.coordinate(req.From, req.Ellipsoid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := DestinationResponse{Model: model}
	started := time.Now()

	if e, ok := calc.(bearing.Ellipsoidal); ok {
		res, err := e.Direct(from, req.Bearing, req.Distance)
		s.Metrics.Observe("destination", model, started, err)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Destination = toPoint(res.Destination)
		resp.Final = &res.FinalBearing
	} else {
		dest, err := calc.Destination(from, req.Bearing, req.Distance)
		s.Metrics.Observe("destination", model, started, err)
		if err != nil {
			writeError(w, r, err)
			return
		}
		resp.Destination = toPoint(dest)
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandlePolyline measures a polyline and returns it as GeoJSON.
func (s *ServerContext) HandlePolyline(w http.ResponseWriter, r *http.Request) {
	var req ShapeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	calc, model, err := s.distanceCalculator(req.Model)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pts, err := s.coordinates(req.Points, req.Ellipsoid)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(pts) < 2 {
		writeError(w, r, render.ErrTooFewPoints)
		return
	}

	pl := geo.NewPolyline(pts...)

	started := time.Now()
	length, err := pl.Length(calc)
	s.Metrics.Observe("length", model, started, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	doc, err := format.PolylineGeoJSON(pl)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PolylineResponse{
		Model:   model,
		GeoJSON: doc,
		Length:  length,
		Points:  pl.NumberOfPoints(),
	})
}

// HandlePolygon returns area, perimeter and optional containment of a point.
func (s *ServerContext) HandlePolygon(w http.ResponseWriter, r *http.Request) {
	var req ShapeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	calc, model, err := s.distanceCalculator(req.Model)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pts, err := s.coordinates(req.Points, req.Ellipsoid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	pg := geo.NewPolygon(pts...)
	doc, err := format.PolygonGeoJSON(pg)
	if err != nil {
		writeError(w, r, err)
		return
	}

	started := time.Now()
	perimeter, err := pg.Perimeter(calc)
	s.Metrics.Observe("perimeter", model, started, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := PolygonResponse{
		Model:     model,
		GeoJSON:   doc,
		Area:      pg.Area(),
		Perimeter: perimeter,
	}

	if req.Point != nil {
		p, err := s.coordinate(*req.Point, req.Ellipsoid)
		if err != nil {
			writeError(w, r, err)
			return
		}
		inside := pg.Contains(p)
		resp.Contains = &inside
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleFormat renders a single coordinate as text or GeoJSON.
func (s *ServerContext) HandleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := s.coordinate(req.Point, req.Ellipsoid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if strings.EqualFold(req.Format, "geojson") {
		doc, err := format.PointGeoJSON(c)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, FormatResponse{Text: string(doc)})
		return
	}

	f, err := formatter(req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, FormatResponse{Text: c.Format(f)})
}

func formatter(req FormatRequest) (geo.CoordinateFormatter, error) {
	units, err := format.ParseUnits(req.Units)
	if err != nil {
		return nil, badRequest("%v", err)
	}

	switch strings.ToLower(req.Format) {
	case "decimal", "":
		f := format.NewDecimalDegrees()
		if req.Digits != nil {
			f.Digits = *req.Digits
		}
		return f, nil
	case "dm":
		f := format.NewDecimalMinutes()
		f.Units = units
		f.CardinalLetters = req.Cardinal
		if req.Digits != nil {
			f.Digits = *req.Digits
		}
		return f, nil
	case "dms":
		f := format.NewDMS()
		f.Units = units
		f.CardinalLetters = req.Cardinal
		return f, nil
	default:
		return nil, badRequest("unknown format %q", req.Format)
	}
}

// HandlePreview renders a polygon or polyline as a WebP image.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req ShapeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	pts, err := s.coordinates(req.Points, req.Ellipsoid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	preview := render.NewPreview(s.Config.Preview.Size)

	var pic *image.RGBA
	switch strings.ToLower(req.Kind) {
	case config.KindPolygon, "":
		pic, err = preview.Polygon(geo.NewPolygon(pts...))
	case config.KindPolyline:
		pic, err = preview.Polyline(geo.NewPolyline(pts...))
	default:
		err = badRequest("unknown kind %q", req.Kind)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.EncodeWebP(&buf, pic, s.Config.Preview.Quality); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = w.Write(buf.Bytes())
}

func (s *ServerContext) pair(req PairRequest) (geo.Coordinate, geo.Coordinate, error) {
	p1, err := s.coordinate(req.From, req.Ellipsoid)
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}
	p2, err := s.coordinate(req.To, req.Ellipsoid)
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, err
	}

	return p1, p2, nil
}

// HandleFavicon serves the site icon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	etag := contentETag(s.IndexHTML)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// contentETag builds a strong ETag from the size and hash of data.
func contentETag(data []byte) string {
	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, int64(len(data)), 16)
	buf = append(buf, '-')
	buf = strconv.AppendUint(buf, xxhash.Sum64(data), 16)
	buf = append(buf, '"')

	return string(buf)
}
