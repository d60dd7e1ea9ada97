package trend

import (
	"math"
	"testing"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

func TestThresholdETAZeroSlope(t *testing.T) {
	m := &types.TrendModel{Slope: 0, Intercept: 5, Origin: time.Now()}
	eta := ThresholdETA(m, 100, time.Now())
	if eta.Reachable {
		t.Fatal("zero slope must be reported unreachable")
	}
}

func TestThresholdETARoundTrip(t *testing.T) {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &types.TrendModel{Slope: 60, Intercept: 0, Origin: origin}
	lastObserved := origin.Add(9 * time.Minute)

	eta := ThresholdETA(m, 600, lastObserved)
	if !eta.Reachable {
		t.Fatal("nonzero slope must be reachable")
	}
	if eta.AlreadyCrossed {
		t.Fatal("threshold 600 lies in the future, not already crossed")
	}

	// Evaluating the line at the reported ETA reproduces the threshold
	if got := m.ValueAt(eta.Time); math.Abs(got-600) > 1e-6 {
		t.Errorf("line at ETA = %v, want 600", got)
	}
	// slope 60/hour from 0: 600 is reached after 10 hours
	if want := origin.Add(10 * time.Hour); !eta.Time.Equal(want) {
		t.Errorf("ETA = %v, want %v", eta.Time, want)
	}
}

func TestThresholdETAAlreadyCrossed(t *testing.T) {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &types.TrendModel{Slope: 60, Intercept: 0, Origin: origin}
	lastObserved := origin.Add(2 * time.Hour)

	// Crossed one hour into the observed window
	eta := ThresholdETA(m, 60, lastObserved)
	if !eta.Reachable || !eta.AlreadyCrossed {
		t.Fatalf("want already-crossed result, got %+v", eta)
	}

	// Falling trend extrapolated into the past is reported at face value
	falling := &types.TrendModel{Slope: -10, Intercept: 100, Origin: origin}
	eta = ThresholdETA(falling, 200, lastObserved)
	if !eta.Reachable {
		t.Fatal("nonzero slope must be reachable")
	}
	if !eta.AlreadyCrossed {
		t.Error("crossing computed in the past must be reported as already crossed")
	}
}
