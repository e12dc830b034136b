package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/geo/bearing"
	"github.com/woozymasta/geodesy/internal/geo/distance"
	"github.com/woozymasta/geodesy/internal/render"

	"github.com/rs/zerolog/log"
)

// maxBodySize limits request bodies.
const maxBodySize = 1 << 20

// Point is a coordinate in a request or response. Ellipsoid overrides the
// request ellipsoid for this point only.
type Point struct {
	Ellipsoid string  `json:"ellipsoid,omitempty"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// PairRequest is the body of /api/distance and /api/bearing.
type PairRequest struct {
	Ellipsoid string `json:"ellipsoid,omitempty"`
	Model     string `json:"model,omitempty"`
	From      Point  `json:"from"`
	To        Point  `json:"to"`
}

// DestinationRequest is the body of /api/destination.
type DestinationRequest struct {
	Ellipsoid string  `json:"ellipsoid,omitempty"`
	Model     string  `json:"model,omitempty"`
	From      Point   `json:"from"`
	Bearing   float64 `json:"bearing"`
	Distance  float64 `json:"distance"`
}

// ShapeRequest is the body of /api/polyline, /api/polygon and /api/preview.
type ShapeRequest struct {
	Ellipsoid string  `json:"ellipsoid,omitempty"`
	Model     string  `json:"model,omitempty"`
	Kind      string  `json:"kind,omitempty"` // preview only
	Points    []Point `json:"points"`
	Point     *Point  `json:"point,omitempty"` // polygon containment test
}

// FormatRequest is the body of /api/format.
type FormatRequest struct {
	Ellipsoid string `json:"ellipsoid,omitempty"`
	Format    string `json:"format"` // decimal, dm, dms or geojson
	Units     string `json:"units,omitempty"`
	Point     Point  `json:"point"`
	Digits    *int   `json:"digits,omitempty"`
	Cardinal  bool   `json:"cardinal,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("decode body: %v", err)
	}

	return nil
}

// statusFor maps calculation errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, geo.ErrInvalidCoordinate),
		errors.Is(err, geo.ErrInvalidEllipsoid),
		errors.Is(err, format.ErrDegeneratePolygon),
		errors.Is(err, render.ErrTooFewPoints):
		return http.StatusBadRequest
	case errors.Is(err, geo.ErrEllipsoidMismatch),
		errors.Is(err, geo.ErrCoincidentPoints),
		errors.Is(err, geo.ErrNonConvergent):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// ellipsoid resolves a registry key, falling back to WGS-84.
func (s *ServerContext) ellipsoid(key string) (geo.Ellipsoid, error) {
	if key == "" {
		key = geo.KeyWGS84
	}

	e, ok := s.Registry.Lookup(key)
	if !ok {
		return geo.Ellipsoid{}, badRequest("unknown ellipsoid %q", key)
	}

	return e, nil
}

func (s *ServerContext) coordinate(p Point, requestEllipsoid string) (geo.Coordinate, error) {
	key := requestEllipsoid
	if p.Ellipsoid != "" {
		key = p.Ellipsoid
	}

	e, err := s.ellipsoid(key)
	if err != nil {
		return geo.Coordinate{}, err
	}

	return geo.NewCoordinateOn(p.Lat, p.Lng, e)
}

func (s *ServerContext) coordinates(points []Point, requestEllipsoid string) ([]geo.Coordinate, error) {
	out := make([]geo.Coordinate, 0, len(points))
	for i, p := range points {
		c, err := s.coordinate(p, requestEllipsoid)
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out = append(out, c)
	}

	return out, nil
}

// distanceCalculator returns the calculator for model (config default when
// empty) and its normalized name.
func (s *ServerContext) distanceCalculator(model string) (geo.DistanceCalculator, string, error) {
	name := strings.ToLower(strings.TrimSpace(model))
	if name == "" {
		name = s.Config.Distance
	}

	calc, err := distance.ByName(name, s.Config.Iterations.Distance)
	if err != nil {
		return nil, name, badRequest("%v", err)
	}

	return calc, name, nil
}

func (s *ServerContext) bearingCalculator(model string) (geo.BearingCalculator, string, error) {
	name := strings.ToLower(strings.TrimSpace(model))
	if name == "" {
		name = s.Config.Bearing
	}

	calc, err := bearing.ByName(name, s.Config.Iterations.Bearing)
	if err != nil {
		return nil, name, badRequest("%v", err)
	}

	return calc, name, nil
}

func toPoint(c geo.Coordinate) Point {
	return Point{Lat: c.Lat(), Lng: c.Lng()}
}
