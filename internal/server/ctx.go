package server

import (
	"fmt"
	"net/http"

	"github.com/woozymasta/geodesy/assets"
	"github.com/woozymasta/geodesy/internal/config"
	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/metrics"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Registry  *geo.Registry
	Metrics   *metrics.Collector
	IndexHTML []byte
	Favicon   []byte
}

// NewServerContext builds the ellipsoid registry and renders the index page.
// A nil collector disables metrics.
func NewServerContext(cfg *config.Config, collector *metrics.Collector) (*ServerContext, error) {
	log.Info().Int("config_ellipsoids", len(cfg.Ellipsoids)).Msg("Initializing server context")

	registry, err := cfg.Registry()
	if err != nil {
		return nil, fmt.Errorf("build ellipsoid registry: %w", err)
	}

	for _, key := range registry.Keys() {
		e := registry.MustLookup(key)
		log.Debug().
			Str("key", key).
			Str("name", e.Name()).
			Float64("a", e.A()).
			Float64("f", e.F()).
			Msg("Ellipsoid registered")
	}

	index, err := assets.Page()
	if err != nil {
		return nil, fmt.Errorf("render index page: %w", err)
	}
	favicon, err := assets.Favicon()
	if err != nil {
		return nil, fmt.Errorf("render favicon: %w", err)
	}

	log.Info().
		Int("ellipsoids", registry.Len()).
		Str("distance", cfg.Distance).
		Str("bearing", cfg.Bearing).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Registry:  registry,
		Metrics:   collector,
		IndexHTML: index,
		Favicon:   favicon,
	}, nil
}

// Routes registers every handler on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/ellipsoids", s.HandleEllipsoids)
	mux.HandleFunc("POST /api/distance", s.HandleDistance)
	mux.HandleFunc("POST /api/bearing", s.HandleBearing)
	mux.HandleFunc("POST /api/destination", s.HandleDestination)
	mux.HandleFunc("POST /api/polyline", s.HandlePolyline)
	mux.HandleFunc("POST /api/polygon", s.HandlePolygon)
	mux.HandleFunc("POST /api/format", s.HandleFormat)
	mux.HandleFunc("POST /api/preview", s.HandlePreview)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	mux.HandleFunc("GET /favicon.svg", s.HandleFavicon)
	mux.HandleFunc("GET /", s.HandleIndex)

	return mux
}
