// Package bearing implements geo.BearingCalculator on a sphere and on the
// reference ellipsoid.
package bearing

import (
	"fmt"
	"strings"

	"github.com/woozymasta/geodesy/internal/geo"
)

// Model names accepted by ByName.
const (
	ModelSpherical   = "spherical"
	ModelEllipsoidal = "ellipsoidal"
)

// ByName returns the calculator for a model name (case-insensitive).
// maxIterations only applies to the ellipsoidal model; <= 0 keeps the default.
func ByName(name string, maxIterations int) (geo.BearingCalculator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ModelSpherical:
		return Spherical{}, nil
	case ModelEllipsoidal, "":
		return Ellipsoidal{MaxIterations: maxIterations}, nil
	default:
		return nil, fmt.Errorf("unknown bearing model %q", name)
	}
}

// Models lists the supported model names.
func Models() []string {
	return []string{ModelSpherical, ModelEllipsoidal}
}
