package format

import (
	"math"
	"strings"

	"github.com/woozymasta/geodesy/internal/geo"
)

// DMS renders degrees, minutes and whole seconds, e.g.
// "52° 30′ 00″ 013° 24′ 00″".
type DMS struct {
	Separator       string
	Units           Units
	CardinalLetters bool
}

// NewDMS returns the default formatter (space separator, UTF-8 units).
func NewDMS() DMS {
	return DMS{Separator: " ", Units: UnitsUTF8}
}

// Format implements geo.CoordinateFormatter.
func (f DMS) Format(c geo.Coordinate) string {
	lat, lng := c.Lat(), c.Lng()

	var sb strings.Builder
	sb.WriteString(signPrefix(lat, f.CardinalLetters))
	sb.WriteString(f.part(lat, 2))
	sb.WriteString(latSuffix(lat, f.CardinalLetters))
	sb.WriteString(f.Separator)
	sb.WriteString(signPrefix(lng, f.CardinalLetters))
	sb.WriteString(f.part(lng, 3))
	sb.WriteString(lngSuffix(lng, f.CardinalLetters))

	return sb.String()
}

func (f DMS) part(value float64, width int) string {
	// whole seconds, so 59.6″ carries into the next minute
	total := int(math.Round(math.Abs(value) * 3600))
	deg := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	return pad(deg, width) + f.Units.Degrees + " " +
		pad(minutes, 2) + f.Units.Minutes + " " +
		pad(seconds, 2) + f.Units.Seconds
}
