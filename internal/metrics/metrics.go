// Package metrics exposes Prometheus counters and latency histograms for
// geodesic calculations.
package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/woozymasta/geodesy/internal/geo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK                = "ok"
	OutcomeNonConvergent     = "non_convergent"
	OutcomeEllipsoidMismatch = "ellipsoid_mismatch"
	OutcomeCoincident        = "coincident"
	OutcomeInvalid           = "invalid"
	OutcomeError             = "error"
)

// Collector bundles the calculation metrics.
type Collector struct {
	gatherer prometheus.Gatherer

	Calculations *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
}

// New registers the metrics against reg, defaulting to the global registry when nil.
// Registering twice on the same registry returns the existing collectors.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	calculations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "geodesy",
		Name:      "calculations_total",
		Help:      "Geodesic calculations, labeled by operation, model and outcome.",
	}, []string{"op", "model", "outcome"})
	if err := reg.Register(calculations); err != nil {
		existing, err := alreadyRegistered[*prometheus.CounterVec](err, "geodesy_calculations_total")
		if err != nil {
			return nil, err
		}
		calculations = existing
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "geodesy",
		Name:      "calculation_duration_seconds",
		Help:      "Geodesic calculation latency in seconds.",
		Buckets:   []float64{1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 5e-4, 1e-3, 5e-3, 0.01, 0.05},
	}, []string{"op", "model"})
	if err := reg.Register(duration); err != nil {
		existing, err := alreadyRegistered[*prometheus.HistogramVec](err, "geodesy_calculation_duration_seconds")
		if err != nil {
			return nil, err
		}
		duration = existing
	}

	return &Collector{
		gatherer:     gatherer,
		Calculations: calculations,
		Duration:     duration,
	}, nil
}

func alreadyRegistered[T prometheus.Collector](err error, name string) (T, error) {
	var zero T

	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return zero, err
	}
	existing, ok := are.ExistingCollector.(T)
	if !ok {
		return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
	}

	return existing, nil
}

// Outcome maps a calculation error to its label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, geo.ErrNonConvergent):
		return OutcomeNonConvergent
	case errors.Is(err, geo.ErrEllipsoidMismatch):
		return OutcomeEllipsoidMismatch
	case errors.Is(err, geo.ErrCoincidentPoints):
		return OutcomeCoincident
	case errors.Is(err, geo.ErrInvalidCoordinate), errors.Is(err, geo.ErrInvalidEllipsoid):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// Observe records one calculation started at started. A nil collector is a no-op.
func (c *Collector) Observe(op, model string, started time.Time, err error) {
	if c == nil {
		return
	}

	c.Calculations.WithLabelValues(op, model, Outcome(err)).Inc()
	c.Duration.WithLabelValues(op, model).Observe(time.Since(started).Seconds())
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
