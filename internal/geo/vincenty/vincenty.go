// Package vincenty solves the direct and inverse geodesic problems on an
// oblate ellipsoid with Vincenty's iterative formulae.
//
// Both problems are reduced to the auxiliary sphere, where a single angle
// along the geodesic (σ) describes the position; series expansions in u²
// replace the elliptic integrals.
package vincenty

import (
	"math"

	"github.com/woozymasta/geodesy/internal/geo"
)

// Iteration caps and the convergence threshold.
const (
	DefaultDistanceIterations = 100
	DefaultBearingIterations  = 200
	Tolerance                 = 1e-12

	// sinσ below this is treated as coincident, which also covers two
	// longitudes of the same pole (cos U is ~6e-17 there, not 0).
	coincidentSigma = 1e-15
)

// InverseResult holds the geodesic between two known points.
type InverseResult struct {
	Distance       float64 // meters, rounded to millimeters
	InitialBearing float64 // degrees in [0, 360)
	FinalBearing   float64 // degrees in [0, 360)
	Iterations     int
}

// DirectResult holds the end of a geodesic of known start, bearing and length.
type DirectResult struct {
	Destination  geo.Coordinate
	FinalBearing float64 // degrees in [0, 360)
	Iterations   int
}

// reduced returns sin and cos of the reduced latitude for phi (radians).
func reduced(phi, f float64) (sinU, cosU float64) {
	tanU := (1 - f) * math.Tan(phi)
	cosU = 1 / math.Sqrt(1+tanU*tanU)
	sinU = tanU * cosU

	return sinU, cosU
}

// series returns Vincenty's A and B coefficients for cos²α.
func series(cosSqAlpha, a, b float64) (bigA, bigB float64) {
	uSq := cosSqAlpha * (a*a - b*b) / (b * b)
	bigA = 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB = uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	return bigA, bigB
}

// deltaSigma is the correction term Δσ.
func deltaSigma(bigB, sinSigma, cosSigma, cos2SigmaM float64) float64 {
	c2 := cos2SigmaM * cos2SigmaM
	return bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*c2)-
		bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*c2)))
}

// Inverse computes distance and bearings between p1 and p2.
//
// It fails with geo.ErrCoincidentPoints when the points coincide (bearing
// undefined) and with geo.ErrNonConvergent when λ does not settle within
// maxIterations, which happens for nearly antipodal points.
// maxIterations <= 0 selects DefaultBearingIterations.
func Inverse(p1, p2 geo.Coordinate, maxIterations int) (InverseResult, error) {
	const op = "vincenty inverse"

	if !geo.SameEllipsoid(p1, p2) {
		return InverseResult{}, geo.NewError(geo.EllipsoidMismatch, op,
			"%q vs %q", p1.Ellipsoid().Name(), p2.Ellipsoid().Name())
	}
	if maxIterations <= 0 {
		maxIterations = DefaultBearingIterations
	}

	e := p1.Ellipsoid()
	a, b, f := e.A(), e.B(), e.Flattening()

	L := geo.Deg2Rad(p2.Lng()) - geo.Deg2Rad(p1.Lng())
	sinU1, cosU1 := reduced(geo.Deg2Rad(p1.Lat()), f)
	sinU2, cosU2 := reduced(geo.Deg2Rad(p2.Lat()), f)

	var (
		sinLambda, cosLambda float64
		sinSigma, cosSigma   float64
		sigma, sinAlpha      float64
		cosSqAlpha           float64
		cos2SigmaM           float64
		iterations           int
	)

	lambda := L
	for {
		if iterations >= maxIterations {
			return InverseResult{}, &geo.GeodesicError{Kind: geo.NonConvergent, Op: op, Iterations: iterations}
		}
		iterations++

		sinLambda, cosLambda = math.Sin(lambda), math.Cos(lambda)
		t := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt((cosU2*sinLambda)*(cosU2*sinLambda) + t*t)
		if sinSigma < coincidentSigma {
			return InverseResult{}, &geo.GeodesicError{Kind: geo.CoincidentPoints, Op: op, Iterations: iterations}
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha

		// equatorial line: cos²α = 0
		cos2SigmaM = 0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
		prev := lambda
		lambda = L + (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) <= Tolerance {
			break
		}
	}

	bigA, bigB := series(cosSqAlpha, a, b)
	s := b * bigA * (sigma - deltaSigma(bigB, sinSigma, cosSigma, cos2SigmaM))

	alpha1 := math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
	alpha2 := math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)

	return InverseResult{
		Distance:       geo.Round10(s, -3),
		InitialBearing: geo.Rad2Deg(geo.Fmod(alpha1+2*math.Pi, 2*math.Pi)),
		FinalBearing:   geo.Rad2Deg(geo.Fmod(alpha2+2*math.Pi, 2*math.Pi)),
		Iterations:     iterations,
	}, nil
}

// Direct computes the destination reached from p after travelling distance
// meters on the initial bearing (degrees).
//
// Divergence is not expected for valid input; it is still reported as
// geo.ErrNonConvergent. maxIterations <= 0 selects DefaultBearingIterations.
func Direct(p geo.Coordinate, bearing, distance float64, maxIterations int) (DirectResult, error) {
	const op = "vincenty direct"

	if maxIterations <= 0 {
		maxIterations = DefaultBearingIterations
	}

	e := p.Ellipsoid()
	a, b, f := e.A(), e.B(), e.Flattening()

	phi1 := geo.Deg2Rad(p.Lat())
	lambda1 := geo.Deg2Rad(p.Lng())
	alpha1 := geo.Deg2Rad(bearing)

	sinAlpha1, cosAlpha1 := math.Sin(alpha1), math.Cos(alpha1)
	sinU1, cosU1 := reduced(phi1, f)
	tanU1 := (1 - f) * math.Tan(phi1)

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha
	bigA, bigB := series(cosSqAlpha, a, b)

	var (
		cos2SigmaM         float64
		sinSigma, cosSigma float64
		iterations         int
	)

	sigma := distance / (b * bigA)
	for {
		if iterations >= maxIterations {
			return DirectResult{}, &geo.GeodesicError{Kind: geo.NonConvergent, Op: op, Iterations: iterations}
		}
		iterations++

		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma, cosSigma = math.Sin(sigma), math.Cos(sigma)
		prev := sigma
		sigma = distance/(b*bigA) + deltaSigma(bigB, sinSigma, cosSigma, cos2SigmaM)

		if math.Abs(sigma-prev) <= Tolerance {
			break
		}
	}

	t := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1, (1-f)*math.Sqrt(sinAlpha*sinAlpha+t*t))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	C := f / 16 * cosSqAlpha * (4 + f*(4-3*cosSqAlpha))
	L := lambda - (1-C)*f*sinAlpha*(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	lambda2 := geo.Fmod(lambda1+L+3*math.Pi, 2*math.Pi) - math.Pi

	alpha2 := math.Atan2(sinAlpha, -t)
	alpha2 = geo.Fmod(alpha2+2*math.Pi, 2*math.Pi)

	dest, err := geo.NewCoordinateOn(geo.Rad2Deg(phi2), geo.NormalizeLongitude(geo.Rad2Deg(lambda2)), e)
	if err != nil {
		return DirectResult{}, err
	}

	return DirectResult{
		Destination:  dest,
		FinalBearing: geo.Rad2Deg(alpha2),
		Iterations:   iterations,
	}, nil
}
