package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/woozymasta/geodesy/internal/geo"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, OutcomeOK},
		{&geo.GeodesicError{Kind: geo.NonConvergent, Iterations: 100}, OutcomeNonConvergent},
		{fmt.Errorf("segment 2: %w", geo.ErrEllipsoidMismatch), OutcomeEllipsoidMismatch},
		{geo.ErrCoincidentPoints, OutcomeCoincident},
		{geo.ErrInvalidCoordinate, OutcomeInvalid},
		{geo.ErrInvalidEllipsoid, OutcomeInvalid},
		{errors.New("boom"), OutcomeError},
	}

	for _, tc := range cases {
		if got := Outcome(tc.err); got != tc.want {
			t.Errorf("Outcome(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	started := time.Now()
	c.Observe("distance", "vincenty", started, nil)
	c.Observe("distance", "vincenty", started, nil)
	c.Observe("distance", "vincenty", started, geo.ErrNonConvergent)

	if got := testutil.ToFloat64(c.Calculations.WithLabelValues("distance", "vincenty", OutcomeOK)); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Calculations.WithLabelValues("distance", "vincenty", OutcomeNonConvergent)); got != 1 {
		t.Errorf("non_convergent count = %v, want 1", got)
	}

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	body, _ := io.ReadAll(rr.Body)
	want := `geodesy_calculation_duration_seconds_count{model="vincenty",op="distance"} 3`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics output missing %q:\n%s", want, body)
	}
}

func TestNewTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := New(reg)
	if err != nil {
		t.Fatal(err)
	}
	second, err := New(reg)
	if err != nil {
		t.Fatalf("second New: %v", err)
	}
	if first.Calculations != second.Calculations {
		t.Error("expected the existing counter to be reused")
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.Observe("bearing", "spherical", time.Now(), nil)
}
