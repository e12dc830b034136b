package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/woozymasta/geodesy/internal/geo"
)

// DecimalDegrees renders "lat<sep>lng" rounded to Digits decimals.
type DecimalDegrees struct {
	Separator string
	Digits    int
}

// NewDecimalDegrees returns the default formatter (space separator, 5 digits).
func NewDecimalDegrees() DecimalDegrees {
	return DecimalDegrees{Separator: " ", Digits: 5}
}

// Format implements geo.CoordinateFormatter.
func (f DecimalDegrees) Format(c geo.Coordinate) string {
	lat := geo.Round10(c.Lat(), -f.Digits)
	lng := geo.Round10(c.Lng(), -f.Digits)

	return strconv.FormatFloat(lat, 'f', -1, 64) + f.Separator + strconv.FormatFloat(lng, 'f', -1, 64)
}

// DecimalMinutes renders whole degrees and decimal minutes, e.g.
// "52° 30.000′ 013° 24.000′".
type DecimalMinutes struct {
	Separator       string
	DecimalPoint    string
	Units           Units
	Digits          int
	CardinalLetters bool
}

// NewDecimalMinutes returns the default formatter.
func NewDecimalMinutes() DecimalMinutes {
	return DecimalMinutes{
		Separator:    " ",
		DecimalPoint: ".",
		Units:        UnitsUTF8,
		Digits:       3,
	}
}

// Format implements geo.CoordinateFormatter.
func (f DecimalMinutes) Format(c geo.Coordinate) string {
	lat, lng := c.Lat(), c.Lng()

	latDeg, latMin := f.split(lat)
	lngDeg, lngMin := f.split(lng)

	var sb strings.Builder
	sb.WriteString(signPrefix(lat, f.CardinalLetters))
	sb.WriteString(pad(latDeg, 2) + f.Units.Degrees + " " + latMin + f.Units.Minutes)
	sb.WriteString(latSuffix(lat, f.CardinalLetters))
	sb.WriteString(f.Separator)
	sb.WriteString(signPrefix(lng, f.CardinalLetters))
	sb.WriteString(pad(lngDeg, 3) + f.Units.Degrees + " " + lngMin + f.Units.Minutes)
	sb.WriteString(lngSuffix(lng, f.CardinalLetters))

	return sb.String()
}

// split returns whole degrees and the formatted minutes, carrying a
// minutes value that rounds up to 60 into the degrees.
func (f DecimalMinutes) split(value float64) (int, string) {
	abs := math.Abs(value)
	deg := math.Trunc(abs)
	minutes := geo.Round10((abs-deg)*60, -f.Digits)
	if minutes >= 60 {
		deg++
		minutes = 0
	}

	text := strconv.FormatFloat(minutes, 'f', f.Digits, 64)
	if f.DecimalPoint != "" && f.DecimalPoint != "." {
		text = strings.Replace(text, ".", f.DecimalPoint, 1)
	}

	return int(deg), text
}
