package trend

import (
	"math"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Steps returns how many grid points a forecast horizon covers:
// ceil(horizonHours*3600 / intervalSeconds), never less than 1.
func Steps(horizonHours float64, interval time.Duration) int {
	n := int(math.Ceil(horizonHours * 3600 / interval.Seconds()))
	if n < 1 {
		n = 1
	}
	return n
}

// Forecast extrapolates the fitted line past the last observed grid point.
// The returned samples start one interval after lastObserved and are spaced
// by the interval, values taken from the line with no uncertainty attached.
func Forecast(m *types.TrendModel, lastObserved time.Time, interval time.Duration, horizonHours float64) []types.Sample {
	n := Steps(horizonHours, interval)

	out := make([]types.Sample, n)
	for i := 0; i < n; i++ {
		ts := lastObserved.Add(time.Duration(i+1) * interval)
		out[i] = types.Sample{Timestamp: ts, Value: m.ValueAt(ts)}
	}
	return out
}

// Combine concatenates observed samples and forecast samples into one
// labeled record set, observed rows first.
func Combine(observed *types.Series, forecast []types.Sample) []types.LabeledSample {
	out := make([]types.LabeledSample, 0, len(observed.Samples)+len(forecast))
	for _, sm := range observed.Samples {
		out = append(out, types.LabeledSample{Timestamp: sm.Timestamp, Value: sm.Value, Label: types.LabelObserved})
	}
	for _, sm := range forecast {
		out = append(out, types.LabeledSample{Timestamp: sm.Timestamp, Value: sm.Value, Label: types.LabelPredicted})
	}
	return out
}
