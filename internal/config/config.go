// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/woozymasta/geodesy/internal/geo"
	"github.com/woozymasta/geodesy/internal/geo/bearing"
	"github.com/woozymasta/geodesy/internal/geo/distance"
	"github.com/woozymasta/geodesy/internal/geo/vincenty"

	"gopkg.in/yaml.v3"
)

// Job kinds.
const (
	KindPolyline = "polyline"
	KindPolygon  = "polygon"
)

// Preview defaults.
const (
	DefaultPreviewSize    = 512
	DefaultPreviewQuality = 90
)

// Config represents the root configuration file structure.
type Config struct {
	Ellipsoids map[string]Ellipsoid `yaml:"ellipsoids,omitempty" json:"ellipsoids,omitempty"`
	Distance   string               `yaml:"distance,omitempty" json:"distance"`
	Bearing    string               `yaml:"bearing,omitempty" json:"bearing"`
	Iterations Iterations           `yaml:"iterations,omitempty" json:"iterations"`
	Preview    Preview              `yaml:"preview,omitempty" json:"preview"`
	Jobs       []Job                `yaml:"jobs,omitempty" json:"-"`
}

// Ellipsoid is a user defined reference ellipsoid.
type Ellipsoid struct {
	Name string  `yaml:"name" json:"name"`
	A    float64 `yaml:"a" json:"a"` // semi-major axis, meters
	F    float64 `yaml:"f" json:"f"` // inverse flattening
}

// Iterations caps the Vincenty solvers.
type Iterations struct {
	Distance int `yaml:"distance,omitempty" json:"distance"`
	Bearing  int `yaml:"bearing,omitempty" json:"bearing"`
}

// Preview configures rendered WebP shape previews.
type Preview struct {
	Size    int     `yaml:"size,omitempty" json:"size"`
	Quality float32 `yaml:"quality,omitempty" json:"quality"`
}

// Job is a single batch calculation.
type Job struct {
	Name      string `yaml:"name" json:"name"`
	Kind      string `yaml:"kind,omitempty" json:"kind,omitempty"`
	Ellipsoid string `yaml:"ellipsoid,omitempty" json:"ellipsoid,omitempty"`

	// "lat,lng" pairs; alternatively Source points to a GeoJSON geometry
	// (local file or http URL).
	Points []string `yaml:"points,omitempty" json:"points,omitempty"`
	Source string   `yaml:"source,omitempty" json:"source,omitempty"`

	Preview bool `yaml:"preview,omitempty" json:"preview,omitempty"`
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes a YAML document, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Distance == "" {
		c.Distance = distance.ModelVincenty
	}
	if c.Bearing == "" {
		c.Bearing = bearing.ModelEllipsoidal
	}
	if c.Iterations.Distance <= 0 {
		c.Iterations.Distance = vincenty.DefaultDistanceIterations
	}
	if c.Iterations.Bearing <= 0 {
		c.Iterations.Bearing = vincenty.DefaultBearingIterations
	}
	if c.Preview.Size <= 0 {
		c.Preview.Size = DefaultPreviewSize
	}
	if c.Preview.Quality <= 0 || c.Preview.Quality > 100 {
		c.Preview.Quality = DefaultPreviewQuality
	}

	for i := range c.Jobs {
		job := &c.Jobs[i]
		job.Kind = strings.ToLower(strings.TrimSpace(job.Kind))
		if job.Ellipsoid == "" {
			job.Ellipsoid = geo.KeyWGS84
		}
	}
}

// Validate checks model names, ellipsoids and jobs.
func (c *Config) Validate() error {
	var errs []error

	if _, err := distance.ByName(c.Distance, c.Iterations.Distance); err != nil {
		errs = append(errs, err)
	}
	if _, err := bearing.ByName(c.Bearing, c.Iterations.Bearing); err != nil {
		errs = append(errs, err)
	}

	registry, err := c.Registry()
	if err != nil {
		return errors.Join(append(errs, err)...)
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, job := range c.Jobs {
		if job.Name == "" {
			errs = append(errs, fmt.Errorf("job #%d: empty name", i+1))
			continue
		}
		if seen[job.Name] {
			errs = append(errs, fmt.Errorf("job %q: duplicate name", job.Name))
		}
		seen[job.Name] = true

		if _, ok := registry.Lookup(job.Ellipsoid); !ok {
			errs = append(errs, fmt.Errorf("job %q: unknown ellipsoid %q", job.Name, job.Ellipsoid))
		}

		switch {
		case job.Source != "" && len(job.Points) > 0:
			errs = append(errs, fmt.Errorf("job %q: points and source are exclusive", job.Name))
		case job.Source == "" && len(job.Points) == 0:
			errs = append(errs, fmt.Errorf("job %q: no points", job.Name))
		case job.Source == "" && job.Kind != KindPolyline && job.Kind != KindPolygon:
			errs = append(errs, fmt.Errorf("job %q: kind must be %s or %s, got %q", job.Name, KindPolyline, KindPolygon, job.Kind))
		}
	}

	return errors.Join(errs...)
}

// Registry builds the ellipsoid registry from the presets and user entries.
func (c *Config) Registry() (*geo.Registry, error) {
	extra := make(map[string]geo.Ellipsoid, len(c.Ellipsoids))
	for key, def := range c.Ellipsoids {
		name := def.Name
		if name == "" {
			name = key
		}

		e, err := geo.NewEllipsoid(name, def.A, def.F)
		if err != nil {
			return nil, fmt.Errorf("ellipsoid %q: %w", key, err)
		}
		extra[key] = e
	}

	return geo.NewRegistry(extra)
}

// DistanceCalculator returns the configured default distance calculator.
func (c *Config) DistanceCalculator() (geo.DistanceCalculator, error) {
	return distance.ByName(c.Distance, c.Iterations.Distance)
}

// BearingCalculator returns the configured default bearing calculator.
func (c *Config) BearingCalculator() (geo.BearingCalculator, error) {
	return bearing.ByName(c.Bearing, c.Iterations.Bearing)
}
