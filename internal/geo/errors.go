package geo

import (
	"fmt"
)

// ErrorKind classifies a GeodesicError.
type ErrorKind int

const (
	// NonConvergent means an iterative solver hit its iteration cap.
	NonConvergent ErrorKind = iota + 1
	// EllipsoidMismatch means two coordinates reference different ellipsoids.
	EllipsoidMismatch
	// CoincidentPoints means the bearing between two identical points was requested.
	CoincidentPoints
	// InvalidCoordinate means latitude or longitude is outside its range.
	InvalidCoordinate
	// InvalidEllipsoid means ellipsoid parameters are not usable.
	InvalidEllipsoid
)

func (k ErrorKind) String() string {
	switch k {
	case NonConvergent:
		return "non-convergent"
	case EllipsoidMismatch:
		return "ellipsoid mismatch"
	case CoincidentPoints:
		return "coincident points"
	case InvalidCoordinate:
		return "invalid coordinate"
	case InvalidEllipsoid:
		return "invalid ellipsoid"
	default:
		return "unknown"
	}
}

// GeodesicError is returned by every calculation in this module.
// Op names the failing operation, Iterations is set for solver failures.
type GeodesicError struct {
	Err        error
	Op         string
	Kind       ErrorKind
	Iterations int
}

// Sentinels for errors.Is; any GeodesicError of the same kind matches.
var (
	ErrNonConvergent     = &GeodesicError{Kind: NonConvergent}
	ErrEllipsoidMismatch = &GeodesicError{Kind: EllipsoidMismatch}
	ErrCoincidentPoints  = &GeodesicError{Kind: CoincidentPoints}
	ErrInvalidCoordinate = &GeodesicError{Kind: InvalidCoordinate}
	ErrInvalidEllipsoid  = &GeodesicError{Kind: InvalidEllipsoid}
)

// Error implements the error interface.
func (e *GeodesicError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Kind == NonConvergent && e.Iterations > 0 {
		msg = fmt.Sprintf("%s after %d iterations", msg, e.Iterations)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Is reports whether target is a GeodesicError of the same kind.
func (e *GeodesicError) Is(target error) bool {
	t, ok := target.(*GeodesicError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *GeodesicError) Unwrap() error {
	return e.Err
}

// NewError builds a GeodesicError for op with an optional formatted detail.
func NewError(kind ErrorKind, op string, format string, args ...any) *GeodesicError {
	e := &GeodesicError{Kind: kind, Op: op}
	if format != "" {
		e.Err = fmt.Errorf(format, args...)
	}

	return e
}
