package geo

import (
	"errors"
	"math"
	"testing"
)

func TestEllipsoidDerivedAxes(t *testing.T) {
	if got, want := WGS84.B(), 6356752.314245; math.Abs(got-want) > 1e-6 {
		t.Errorf("WGS84.B() = %v, want %v", got, want)
	}
	if got, want := WGS84.ArithmeticMeanRadius(), 6371008.771415; math.Abs(got-want) > 1e-6 {
		t.Errorf("WGS84.ArithmeticMeanRadius() = %v, want %v", got, want)
	}
	if WGS84.Same(GRS80) {
		t.Error("WGS84 and GRS80 must not compare equal")
	}
}

func TestNewEllipsoidRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name string
		a, f float64
	}{
		{"", 6378137, 298},
		{"zero axis", 0, 298},
		{"negative flattening", 6378137, -1},
		{"sphere-like", 6378137, 0},
		{"nan", math.NaN(), 298},
	}

	for _, tc := range cases {
		if _, err := NewEllipsoid(tc.name, tc.a, tc.f); !errors.Is(err, ErrInvalidEllipsoid) {
			t.Errorf("NewEllipsoid(%q, %v, %v) error = %v, want ErrInvalidEllipsoid", tc.name, tc.a, tc.f, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	if e, ok := Default().Lookup(KeyGRS80); !ok || !e.Same(GRS80) {
		t.Fatalf("Lookup(%q) = %v, %v", KeyGRS80, e, ok)
	}

	intl, err := NewEllipsoid("International 1924", 6378388, 297)
	if err != nil {
		t.Fatalf("NewEllipsoid: %v", err)
	}

	reg, err := NewRegistry(map[string]Ellipsoid{"INT-24": intl})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
	if got := reg.Keys(); len(got) != 3 || got[0] != KeyGRS80 || got[1] != "INT-24" || got[2] != KeyWGS84 {
		t.Errorf("Keys() = %v", got)
	}
	if Default().Len() != 2 {
		t.Errorf("presets were modified: %v", Default().Keys())
	}

	if _, err := NewRegistry(map[string]Ellipsoid{KeyWGS84: intl}); !errors.Is(err, ErrInvalidEllipsoid) {
		t.Errorf("overriding a preset: got %v, want ErrInvalidEllipsoid", err)
	}
}
