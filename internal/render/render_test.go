package render

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"

	xwebp "golang.org/x/image/webp"
)

func square() *geo.Polygon {
	return geo.NewPolygon(
		geo.MustCoordinate(0, 0),
		geo.MustCoordinate(0, 1),
		geo.MustCoordinate(1, 1),
		geo.MustCoordinate(1, 0),
	)
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestPolygon(t *testing.T) {
	p := NewPreview(64)
	img, err := p.Polygon(square())
	if err != nil {
		t.Fatal(err)
	}

	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if alphaAt(img, 32, 32) == 0 {
		t.Error("center pixel not filled")
	}
	if alphaAt(img, 0, 0) != 0 {
		t.Error("corner pixel inside padding is painted")
	}
}

func TestPolygonDegenerate(t *testing.T) {
	pg := geo.NewPolygon(geo.MustCoordinate(0, 0), geo.MustCoordinate(1, 1))
	if _, err := NewPreview(32).Polygon(pg); !errors.Is(err, format.ErrDegeneratePolygon) {
		t.Errorf("got %v", err)
	}
}

func TestPolyline(t *testing.T) {
	// horizontal line across the middle of the image
	pl := geo.NewPolyline(geo.MustCoordinate(10, 0), geo.MustCoordinate(10, 2))

	img, err := NewPreview(64).Polyline(pl)
	if err != nil {
		t.Fatal(err)
	}
	if alphaAt(img, 32, 32) == 0 {
		t.Error("line not drawn through the center")
	}
	if alphaAt(img, 32, 8) != 0 {
		t.Error("pixel away from the line is painted")
	}

	if _, err := NewPreview(64).Polyline(geo.NewPolyline(geo.MustCoordinate(0, 0))); !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("got %v, want ErrTooFewPoints", err)
	}
}

func TestEncodeWebP(t *testing.T) {
	img, err := NewPreview(48).Polygon(square())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeWebP(&buf, img, 80); err != nil {
		t.Fatal(err)
	}

	decoded, err := xwebp.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Bounds().Dx() != 48 {
		t.Errorf("decoded width = %d", decoded.Bounds().Dx())
	}
}
