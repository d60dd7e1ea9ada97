package trend

import (
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// ETAResult is the projected crossing of a threshold under the fitted line
type ETAResult struct {
	// Reachable is false when the slope is exactly zero
	Reachable bool

	// Time is where the line crosses the threshold (valid when Reachable)
	Time time.Time

	// AlreadyCrossed means Time is not after the last observed sample:
	// under the linear model the threshold was passed inside (or before)
	// the observed window.
	AlreadyCrossed bool
}

// ThresholdETA solves slope*h + intercept = threshold for the absolute
// crossing time. The slope's direction of approach is deliberately not
// checked: a crossing computed in the past is reported as already crossed,
// whichever way the line points.
func ThresholdETA(m *types.TrendModel, threshold float64, lastObserved time.Time) ETAResult {
	if m.Slope == 0 {
		return ETAResult{Reachable: false}
	}

	hours := (threshold - m.Intercept) / m.Slope
	eta := m.Origin.Add(time.Duration(hours * float64(time.Hour)))

	return ETAResult{
		Reachable:      true,
		Time:           eta,
		AlreadyCrossed: !eta.After(lastObserved),
	}
}
