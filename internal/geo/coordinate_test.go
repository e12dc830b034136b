package geo

import (
	"errors"
	"math"
	"testing"
)

func TestNewCoordinateValidatesBounds(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		ok       bool
	}{
		{"origin", 0, 0, true},
		{"north pole", 90, 0, true},
		{"south pole antimeridian", -90, -180, true},
		{"east edge", 10, 180, true},
		{"lat too high", 90.0001, 0, false},
		{"lat too low", -91, 0, false},
		{"lng too high", 0, 180.5, false},
		{"lng too low", 0, -181, false},
		{"nan lat", math.NaN(), 0, false},
		{"inf lng", 0, math.Inf(1), false},
	}

	for _, tc := range cases {
		_, err := NewCoordinate(tc.lat, tc.lng)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("%s: got %v, want ErrInvalidCoordinate", tc.name, err)
		}
	}
}

func TestNewCoordinateDefaultsToWGS84(t *testing.T) {
	c := MustCoordinate(52.5, 13.4)
	if !c.Ellipsoid().Same(WGS84) {
		t.Fatalf("ellipsoid = %q, want WGS-84", c.Ellipsoid().Name())
	}

	c, err := NewCoordinateOn(1, 2, Ellipsoid{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.Ellipsoid().Same(WGS84) {
		t.Errorf("zero ellipsoid should fall back to WGS-84, got %q", c.Ellipsoid().Name())
	}
}

func TestCoordinatePointsAndString(t *testing.T) {
	c := MustCoordinate(-33.5, 151.25)

	pts := c.Points()
	if len(pts) != 1 || pts[0] != c {
		t.Fatalf("Points() = %v, want [%v]", pts, c)
	}
	if got := c.String(); got != "-33.5 151.25" {
		t.Errorf("String() = %q, want %q", got, "-33.5 151.25")
	}
}

type fixedDistance float64

func (f fixedDistance) Distance(p1, p2 Coordinate) (float64, error) { return float64(f), nil }

func TestCoordinateDistanceDelegates(t *testing.T) {
	a := MustCoordinate(0, 0)
	b := MustCoordinate(1, 1)

	d, err := a.Distance(b, fixedDistance(42))
	if err != nil || d != 42 {
		t.Fatalf("Distance() = %v, %v, want 42, nil", d, err)
	}
}

func TestGeodesicErrorMatchesByKind(t *testing.T) {
	err := error(&GeodesicError{Kind: NonConvergent, Op: "vincenty inverse", Iterations: 200})

	if !errors.Is(err, ErrNonConvergent) {
		t.Fatal("expected errors.Is to match ErrNonConvergent")
	}
	if errors.Is(err, ErrCoincidentPoints) {
		t.Fatal("NonConvergent must not match ErrCoincidentPoints")
	}

	want := "vincenty inverse: non-convergent after 200 iterations"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
