package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/woozymasta/geodesy/internal/config"
	"github.com/woozymasta/geodesy/internal/format"
	"github.com/woozymasta/geodesy/internal/geo"
)

// Result is the outcome of a single job. Err is set when the job failed;
// the remaining jobs are not affected.
type Result struct {
	Err       error
	Geometry  geo.Geometry
	Job       config.Job
	Kind      string
	Preview   string // preview file path, empty when not rendered
	Points    int
	Length    float64 // polylines
	Perimeter float64 // polygons
	Area      float64 // polygons, square meters
	Index     int
}

// Properties returns the GeoJSON feature properties for a successful result.
func (r Result) Properties() map[string]any {
	props := map[string]any{
		"name":      r.Job.Name,
		"kind":      r.Kind,
		"ellipsoid": r.Job.Ellipsoid,
		"points":    r.Points,
	}

	switch r.Kind {
	case config.KindPolyline:
		props["length"] = r.Length
	case config.KindPolygon:
		props["perimeter"] = r.Perimeter
		props["area"] = r.Area
	}
	if r.Preview != "" {
		props["preview"] = r.Preview
	}

	return props
}

// geometry builds the job shape from inline points or its source.
func (p *Processor) geometry(ctx context.Context, job config.Job) (geo.Geometry, string, error) {
	e, ok := p.registry.Lookup(job.Ellipsoid)
	if !ok {
		return nil, "", fmt.Errorf("unknown ellipsoid %q", job.Ellipsoid)
	}

	if job.Source != "" {
		g, err := loadSource(ctx, p.client, job.Source, e)
		if err != nil {
			return nil, "", fmt.Errorf("load %s: %w", job.Source, err)
		}

		kind := ""
		switch g.(type) {
		case *geo.Polyline:
			kind = config.KindPolyline
		case *geo.Polygon:
			kind = config.KindPolygon
		default:
			return nil, "", fmt.Errorf("load %s: want LineString or Polygon", job.Source)
		}
		if job.Kind != "" && job.Kind != kind {
			return nil, "", fmt.Errorf("load %s: job kind %s, source is a %s", job.Source, job.Kind, kind)
		}

		return g, kind, nil
	}

	pts := make([]geo.Coordinate, 0, len(job.Points))
	for i, text := range job.Points {
		c, err := format.ParseCoordinate(text, e)
		if err != nil {
			return nil, "", fmt.Errorf("point %d: %w", i, err)
		}
		pts = append(pts, c)
	}

	if job.Kind == config.KindPolygon {
		return geo.NewPolygon(pts...), config.KindPolygon, nil
	}

	return geo.NewPolyline(pts...), config.KindPolyline, nil
}

// evaluate measures a single job and renders its preview.
func (p *Processor) evaluate(ctx context.Context, index int, job config.Job) Result {
	res := Result{Index: index, Job: job}

	g, kind, err := p.geometry(ctx, job)
	if err != nil {
		res.Err = err
		return res
	}
	res.Geometry, res.Kind = g, kind
	res.Points = len(g.Points())

	started := time.Now()
	switch shape := g.(type) {
	case *geo.Polyline:
		if shape.NumberOfPoints() < 2 {
			err = fmt.Errorf("polyline needs at least 2 points, got %d", shape.NumberOfPoints())
			break
		}
		res.Length, err = shape.Length(p.distance)
		p.metrics.Observe("length", p.model, started, err)
	case *geo.Polygon:
		if shape.NumberOfPoints() < 3 {
			err = format.ErrDegeneratePolygon
			break
		}
		res.Perimeter, err = shape.Perimeter(p.distance)
		p.metrics.Observe("perimeter", p.model, started, err)
		res.Area = shape.Area()
	}
	if err != nil {
		res.Err = err
		return res
	}

	if job.Preview {
		res.Preview, res.Err = p.savePreview(job.Name, g)
	}

	return res
}
