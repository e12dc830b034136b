package geo

import (
	"math"
	"testing"
)

// planar treats degrees as meters, which keeps the expectations exact.
type planar struct{}

func (planar) Distance(p1, p2 Coordinate) (float64, error) {
	return math.Hypot(p2.Lat()-p1.Lat(), p2.Lng()-p1.Lng()), nil
}

func unitSquare() *Polygon {
	return NewPolygon(
		MustCoordinate(0, 0),
		MustCoordinate(0, 1),
		MustCoordinate(1, 1),
		MustCoordinate(1, 0),
	)
}

func TestPolygonContains(t *testing.T) {
	square := unitSquare()

	if !square.Contains(MustCoordinate(0.5, 0.5)) {
		t.Error("expected (0.5, 0.5) to be inside the unit square")
	}
	if square.Contains(MustCoordinate(2, 2)) {
		t.Error("expected (2, 2) to be outside the unit square")
	}
	if square.Contains(MustCoordinate(0.5, -0.5)) {
		t.Error("expected (0.5, -0.5) to be outside the unit square")
	}
	if NewPolygon().Contains(MustCoordinate(0, 0)) {
		t.Error("empty polygon must not contain anything")
	}
}

func TestPolygonContainsConcave(t *testing.T) {
	// U shape opening to the north
	u := NewPolygon(
		MustCoordinate(0, 0),
		MustCoordinate(3, 0),
		MustCoordinate(3, 1),
		MustCoordinate(1, 1),
		MustCoordinate(1, 2),
		MustCoordinate(3, 2),
		MustCoordinate(3, 3),
		MustCoordinate(0, 3),
	)

	if !u.Contains(MustCoordinate(0.5, 1.5)) {
		t.Error("expected base of the U to be inside")
	}
	if u.Contains(MustCoordinate(2, 1.5)) {
		t.Error("expected the notch of the U to be outside")
	}
}

func TestPolygonContainsGeometry(t *testing.T) {
	square := unitSquare()

	inside := NewPolyline(MustCoordinate(0.2, 0.2), MustCoordinate(0.8, 0.8))
	if !square.ContainsGeometry(inside) {
		t.Error("expected polyline inside the square to be contained")
	}

	crossing := NewLine(MustCoordinate(0.5, 0.5), MustCoordinate(1.5, 0.5))
	if square.ContainsGeometry(crossing) {
		t.Error("expected line leaving the square not to be contained")
	}

	if !square.ContainsGeometry(MustCoordinate(0.1, 0.9)) {
		t.Error("expected single coordinate to be contained")
	}
}

func TestPolygonSegmentsCloseTheRing(t *testing.T) {
	square := unitSquare()

	segments := square.Segments()
	if len(segments) != 4 {
		t.Fatalf("got %d segments, want 4", len(segments))
	}

	last := segments[3]
	if last.Point1() != MustCoordinate(1, 0) || last.Point2() != MustCoordinate(0, 0) {
		t.Errorf("closing segment = %v -> %v, want (1 0) -> (0 0)", last.Point1(), last.Point2())
	}

	if got := NewPolygon(MustCoordinate(0, 0)).Segments(); len(got) != 0 {
		t.Errorf("single point polygon has %d segments, want 0", len(got))
	}
}

func TestPolygonPerimeter(t *testing.T) {
	p, err := unitSquare().Perimeter(planar{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != 4 {
		t.Errorf("Perimeter() = %v, want 4", p)
	}

	p, err = NewPolygon(MustCoordinate(1, 1)).Perimeter(planar{})
	if err != nil || p != 0 {
		t.Errorf("single point Perimeter() = %v, %v, want 0, nil", p, err)
	}
}

func TestPolygonAreaEquatorSquare(t *testing.T) {
	area := unitSquare().Area()
	want := 111320.0 * 111320.0

	if diff := math.Abs(area-want) / want; diff > 0.01 {
		t.Errorf("Area() = %.0f, want within 1%% of %.0f (off by %.3f%%)", area, want, diff*100)
	}

	// orientation must not change the sign
	if rev := unitSquare().Reverse().Area(); math.Abs(rev-area) > 1e-3 {
		t.Errorf("reversed Area() = %v, want %v", rev, area)
	}

	if got := NewPolygon(MustCoordinate(0, 0), MustCoordinate(1, 1)).Area(); got != 0 {
		t.Errorf("two point Area() = %v, want 0", got)
	}
}

func TestPolygonReverse(t *testing.T) {
	square := unitSquare()
	original := square.Points()

	reversed := square.Reverse()
	rp := reversed.Points()
	if rp[0] != original[3] || rp[3] != original[0] {
		t.Errorf("Reverse() = %v, want reversed %v", rp, original)
	}

	// receiver untouched
	for i, p := range square.Points() {
		if p != original[i] {
			t.Fatalf("Reverse mutated the receiver at %d: %v", i, p)
		}
	}

	twice := reversed.Reverse().Points()
	for i := range original {
		if twice[i] != original[i] {
			t.Fatalf("double reverse differs at %d: got %v, want %v", i, twice[i], original[i])
		}
	}
}

func TestPolygonLatsLngsAndBounds(t *testing.T) {
	pg := NewPolygon(MustCoordinate(10, -5), MustCoordinate(12, 3), MustCoordinate(8, 1))

	lats, lngs := pg.Lats(), pg.Lngs()
	if len(lats) != 3 || lats[1] != 12 || lngs[0] != -5 {
		t.Errorf("Lats() = %v, Lngs() = %v", lats, lngs)
	}

	b, ok := pg.Bounds()
	if !ok {
		t.Fatal("Bounds() reported empty polygon")
	}
	if b.North() != 12 || b.South() != 8 || b.West() != -5 || b.East() != 3 {
		t.Errorf("Bounds() = N%v S%v W%v E%v", b.North(), b.South(), b.West(), b.East())
	}

	if _, ok := NewPolygon().Bounds(); ok {
		t.Error("empty polygon must report no bounds")
	}
}
