package trend

import (
	"math"
	"testing"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

func linearSeries(t *testing.T, n int, step time.Duration, slopePerHour, intercept float64) *types.Series {
	t.Helper()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]types.Sample, n)
	for i := 0; i < n; i++ {
		ts := t0.Add(time.Duration(i) * step)
		samples[i] = types.Sample{
			Timestamp: ts,
			Value:     slopePerHour*ts.Sub(t0).Hours() + intercept,
		}
	}
	return &types.Series{Metric: "test.metric", Samples: samples}
}

func TestFitRecoversExactLine(t *testing.T) {
	s := linearSeries(t, 20, 5*time.Minute, 12.5, -3.0)

	m, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if math.Abs(m.Slope-12.5) > 1e-9 {
		t.Errorf("slope = %v, want 12.5", m.Slope)
	}
	if math.Abs(m.Intercept-(-3.0)) > 1e-9 {
		t.Errorf("intercept = %v, want -3", m.Intercept)
	}
	if math.Abs(m.RSquared-1.0) > 1e-9 {
		t.Errorf("r-squared = %v, want 1", m.RSquared)
	}
	if !m.Origin.Equal(s.Start()) {
		t.Errorf("origin = %v, want %v", m.Origin, s.Start())
	}
}

func TestFitConstantSeries(t *testing.T) {
	s := linearSeries(t, 10, time.Minute, 0, 7.0)

	m, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if m.Slope != 0 {
		t.Errorf("slope = %v, want exactly 0", m.Slope)
	}
	if math.Abs(m.Intercept-7.0) > 1e-9 {
		t.Errorf("intercept = %v, want 7", m.Intercept)
	}
}

func TestFitTooFewPoints(t *testing.T) {
	s := linearSeries(t, 1, time.Minute, 1, 0)
	if _, err := Fit(s); err == nil {
		t.Fatal("Fit with one point should fail")
	}
}
