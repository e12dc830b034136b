// Package format renders coordinates and shapes as text and GeoJSON.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/geodesy/internal/geo"
)

// Units selects the glyphs used for degrees, minutes and seconds.
type Units struct {
	Name    string
	Degrees string
	Minutes string
	Seconds string
}

// Supported unit sets.
var (
	UnitsUTF8  = Units{Name: "UTF-8", Degrees: "°", Minutes: "′", Seconds: "″"}
	UnitsASCII = Units{Name: "ASCII", Degrees: "°", Minutes: "'", Seconds: `"`}
)

// ParseUnits resolves a unit set by name ("UTF-8" or "ASCII").
func ParseUnits(name string) (Units, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "UTF-8", "UTF8", "":
		return UnitsUTF8, nil
	case "ASCII":
		return UnitsASCII, nil
	default:
		return Units{}, fmt.Errorf("unknown units %q", name)
	}
}

// ParseCoordinate reads "lat,lng", "lat, lng" or "lat lng" in decimal
// degrees on the given ellipsoid.
func ParseCoordinate(text string, e geo.Ellipsoid) (geo.Coordinate, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	if len(fields) != 2 {
		return geo.Coordinate{}, fmt.Errorf("parse coordinate %q: want two numbers", text)
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("parse coordinate %q: latitude: %w", text, err)
	}
	lng, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("parse coordinate %q: longitude: %w", text, err)
	}

	return geo.NewCoordinateOn(lat, lng, e)
}

// ParseCoordinates reads one coordinate per non-empty line; lines starting
// with '#' are skipped.
func ParseCoordinates(text string, e geo.Ellipsoid) ([]geo.Coordinate, error) {
	var out []geo.Coordinate
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		c, err := ParseCoordinate(line, e)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, c)
	}

	return out, nil
}

func pad(n int, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

func signPrefix(lat float64, cardinal bool) string {
	if cardinal || lat >= 0 {
		return ""
	}
	return "-"
}

func latSuffix(lat float64, cardinal bool) string {
	switch {
	case !cardinal:
		return ""
	case lat >= 0:
		return " N"
	default:
		return " S"
	}
}

func lngSuffix(lng float64, cardinal bool) string {
	switch {
	case !cardinal:
		return ""
	case lng >= 0:
		return " E"
	default:
		return " W"
	}
}
