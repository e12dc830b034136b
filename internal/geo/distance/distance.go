// Package distance implements geo.DistanceCalculator with a spherical
// (Haversine) and an ellipsoidal (Vincenty) model.
package distance

import (
	"fmt"
	"strings"

	"github.com/woozymasta/geodesy/internal/geo"
)

// Model names accepted by ByName.
const (
	ModelHaversine = "haversine"
	ModelVincenty  = "vincenty"
)

// ByName returns the calculator for a model name (case-insensitive).
// maxIterations only applies to Vincenty; <= 0 keeps the default.
func ByName(name string, maxIterations int) (geo.DistanceCalculator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModelHaversine:
		return Haversine{}, nil
	case ModelVincenty, "":
		return Vincenty{MaxIterations: maxIterations}, nil
	default:
		return nil, fmt.Errorf("unknown distance model %q", name)
	}
}

// Models lists the supported model names.
func Models() []string {
	return []string{ModelHaversine, ModelVincenty}
}

func checkEllipsoids(op string, p1, p2 geo.Coordinate) error {
	if geo.SameEllipsoid(p1, p2) {
		return nil
	}

	return geo.NewError(geo.EllipsoidMismatch, op, "%q vs %q", p1.Ellipsoid().Name(), p2.Ellipsoid().Name())
}
