package geo

import (
	"math"
	"sort"
)

// Preset registry keys.
const (
	KeyWGS84 = "WGS-84"
	KeyGRS80 = "GRS-80"
)

// Ellipsoid is a reference surface defined by its semi-major axis and
// inverse flattening. The zero value is not usable; values are immutable.
type Ellipsoid struct {
	name string
	a    float64
	f    float64
}

// Well-known reference ellipsoids.
var (
	WGS84 = Ellipsoid{name: "World Geodetic System  1984", a: 6378137.0, f: 298.257223563}
	GRS80 = Ellipsoid{name: "Geodetic Reference System 1980", a: 6378137.0, f: 298.257222100}
)

// NewEllipsoid validates the parameters and returns an ellipsoid.
// a is the semi-major axis in meters, f the inverse flattening (1/f).
func NewEllipsoid(name string, a, f float64) (Ellipsoid, error) {
	if name == "" {
		return Ellipsoid{}, NewError(InvalidEllipsoid, "new ellipsoid", "empty name")
	}
	if !(a > 0) || math.IsInf(a, 0) {
		return Ellipsoid{}, NewError(InvalidEllipsoid, "new ellipsoid", "%q: semi-major axis must be positive, got %v", name, a)
	}
	if !(f > 1) || math.IsInf(f, 0) {
		return Ellipsoid{}, NewError(InvalidEllipsoid, "new ellipsoid", "%q: inverse flattening must be greater than 1, got %v", name, f)
	}

	return Ellipsoid{name: name, a: a, f: f}, nil
}

// Name returns the descriptive name used to compare ellipsoids.
func (e Ellipsoid) Name() string { return e.name }

// A returns the semi-major axis in meters.
func (e Ellipsoid) A() float64 { return e.a }

// F returns the inverse flattening.
func (e Ellipsoid) F() float64 { return e.f }

// Flattening returns 1/F.
func (e Ellipsoid) Flattening() float64 { return 1 / e.f }

// B returns the semi-minor axis in meters.
func (e Ellipsoid) B() float64 {
	return e.a * (1 - 1/e.f)
}

// ArithmeticMeanRadius returns (2a + b) / 3.
func (e Ellipsoid) ArithmeticMeanRadius() float64 {
	return e.a * (1 - 1/e.f/3)
}

// Same reports whether both ellipsoids carry the same name.
func (e Ellipsoid) Same(other Ellipsoid) bool {
	return e.name == other.name
}

// IsZero reports whether e is the zero value.
func (e Ellipsoid) IsZero() bool {
	return e.name == "" && e.a == 0 && e.f == 0
}

// Registry is a read-only table of ellipsoids keyed by short name.
type Registry struct {
	byKey map[string]Ellipsoid
}

var presets = &Registry{byKey: map[string]Ellipsoid{
	KeyWGS84: WGS84,
	KeyGRS80: GRS80,
}}

// Default returns the preset registry (WGS-84, GRS-80).
func Default() *Registry {
	return presets
}

// NewRegistry returns a registry with the presets plus extra entries.
// Overriding a preset key is rejected.
func NewRegistry(extra map[string]Ellipsoid) (*Registry, error) {
	byKey := make(map[string]Ellipsoid, len(presets.byKey)+len(extra))
	for k, e := range presets.byKey {
		byKey[k] = e
	}

	for k, e := range extra {
		if k == "" {
			return nil, NewError(InvalidEllipsoid, "new registry", "empty key")
		}
		if _, ok := presets.byKey[k]; ok {
			return nil, NewError(InvalidEllipsoid, "new registry", "key %q overrides a preset", k)
		}
		if e.IsZero() {
			return nil, NewError(InvalidEllipsoid, "new registry", "key %q has no parameters", k)
		}
		byKey[k] = e
	}

	return &Registry{byKey: byKey}, nil
}

// Lookup returns the ellipsoid registered under key.
func (r *Registry) Lookup(key string) (Ellipsoid, bool) {
	e, ok := r.byKey[key]
	return e, ok
}

// MustLookup is like Lookup but panics on unknown keys.
func (r *Registry) MustLookup(key string) Ellipsoid {
	e, ok := r.byKey[key]
	if !ok {
		panic("geo: unknown ellipsoid " + key)
	}

	return e
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.byKey))
	for k := range r.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Len returns the number of registered ellipsoids.
func (r *Registry) Len() int {
	return len(r.byKey)
}
