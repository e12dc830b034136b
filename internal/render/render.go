// Package render draws small raster previews of polylines and polygons.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"

	"github.com/chai2010/webp"
	"golang.org/x/image/vector"
)

// ErrTooFewPoints is returned for polylines with fewer than two points.
var ErrTooFewPoints = errors.New("polyline needs at least 2 points")

// Preview holds the drawing options. Shapes are fitted into a Size x Size
// square with Padding pixels on each side.
type Preview struct {
	Fill        color.Color
	Stroke      color.Color
	Size        int
	Padding     int
	StrokeWidth float32
}

// NewPreview returns the default style for the given image size.
func NewPreview(size int) Preview {
	return Preview{
		Size:        size,
		Padding:     max(size/16, 1),
		StrokeWidth: max(float32(size)/128, 1),
		Fill:        color.NRGBA{R: 0x2b, G: 0x8c, B: 0xbe, A: 0x80},
		Stroke:      color.NRGBA{R: 0x08, G: 0x45, B: 0x94, A: 0xff},
	}
}

type point struct{ x, y float32 }

// project maps coordinates to pixels using an equirectangular projection
// around the middle latitude of the shape.
func (p Preview) project(pts []geo.Coordinate) []point {
	b, _ := geo.NewPolyline(pts...).Bounds()

	midLat := geo.Deg2Rad((b.North() + b.South()) / 2)
	kx := math.Cos(midLat)
	width := (b.East() - b.West()) * kx
	height := b.North() - b.South()

	inner := float64(p.Size - 2*p.Padding)
	scale := 1.0
	if span := math.Max(width, height); span > 0 {
		scale = inner / span
	}

	// center the shape on the shorter axis
	offX := float64(p.Padding) + (inner-width*scale)/2
	offY := float64(p.Padding) + (inner-height*scale)/2

	out := make([]point, len(pts))
	for i, c := range pts {
		out[i] = point{
			x: float32(offX + (c.Lng()-b.West())*kx*scale),
			y: float32(offY + (b.North()-c.Lat())*scale),
		}
	}

	return out
}

// Polygon draws a filled polygon with its outline.
func (p Preview) Polygon(pg *geo.Polygon) (*image.RGBA, error) {
	pts := pg.Points()
	if len(pts) < 3 {
		return nil, format.ErrDegeneratePolygon
	}

	img := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	px := p.project(pts)

	r := vector.NewRasterizer(p.Size, p.Size)
	r.MoveTo(px[0].x, px[0].y)
	for _, q := range px[1:] {
		r.LineTo(q.x, q.y)
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(p.Fill), image.Point{})

	p.outline(img, append(px, px[0]))

	return img, nil
}

// Polyline draws the line segments of pl.
func (p Preview) Polyline(pl *geo.Polyline) (*image.RGBA, error) {
	pts := pl.Points()
	if len(pts) < 2 {
		return nil, ErrTooFewPoints
	}

	img := image.NewRGBA(image.Rect(0, 0, p.Size, p.Size))
	p.outline(img, p.project(pts))

	return img, nil
}

// outline strokes consecutive points. Each segment is rasterized on its own
// so overlapping segments never cancel out.
func (p Preview) outline(img draw.Image, px []point) {
	src := image.NewUniform(p.Stroke)
	half := p.StrokeWidth / 2
	r := vector.NewRasterizer(p.Size, p.Size)

	for i := 1; i < len(px); i++ {
		a, b := px[i-1], px[i]
		dx, dy := b.x-a.x, b.y-a.y
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half

		r.Reset(p.Size, p.Size)
		r.MoveTo(a.x+nx, a.y+ny)
		r.LineTo(b.x+nx, b.y+ny)
		r.LineTo(b.x-nx, b.y-ny)
		r.LineTo(a.x-nx, a.y-ny)
		r.ClosePath()
		r.Draw(img, img.Bounds(), src, image.Point{})
	}
}

// EncodeWebP writes img as lossy WebP with the given quality (0-100).
func EncodeWebP(w io.Writer, img image.Image, quality float32) error {
	return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: quality})
}
