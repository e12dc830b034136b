package geo

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(angle float64) float64 {
	return angle / 180 * math.Pi
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(angle float64) float64 {
	return angle / math.Pi * 180
}

// Round10 rounds value to the decimal position given by exp
// (e.g. exp = -3 keeps three decimals).
//
// Halves are rounded away from zero; negative values are mirrored so
// rounding is symmetric around zero.
func Round10(value float64, exp int) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	if exp == 0 {
		return math.Round(value)
	}
	if value < 0 {
		return -Round10(-value, exp)
	}

	scale := math.Pow10(-exp)
	return math.Floor(value*scale+0.5) / scale
}

// Fmod returns the floating point remainder of x/y with the sign of x.
func Fmod(x, y float64) float64 {
	return math.Mod(x, y)
}

// NormalizeBearing maps any angle in degrees into [0, 360).
func NormalizeBearing(deg float64) float64 {
	b := Fmod(deg, 360)
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b = 0
	}

	return b
}

// NormalizeLongitude maps any longitude in degrees into [-180, 180).
func NormalizeLongitude(deg float64) float64 {
	l := Fmod(deg+180, 360)
	if l < 0 {
		l += 360
	}

	return l - 180
}
