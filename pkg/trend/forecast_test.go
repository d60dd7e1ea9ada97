package trend

import (
	"math"
	"testing"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

func TestStepsFormula(t *testing.T) {
	cases := []struct {
		horizonHours float64
		interval     time.Duration
		want         int
	}{
		{24, 5 * time.Minute, 288},
		{1, time.Minute, 60},
		{1, 7 * time.Minute, 9},     // ceil(3600/420) = 9
		{0.01, time.Hour, 1},        // minimum of 1
		{0, time.Minute, 1},         // minimum of 1
		{1, 90 * time.Second, 40},   // exact division
		{2, 45 * time.Minute, 3},    // ceil(7200/2700) = 3
	}

	for _, c := range cases {
		if got := Steps(c.horizonHours, c.interval); got != c.want {
			t.Errorf("Steps(%v, %v) = %d, want %d", c.horizonHours, c.interval, got, c.want)
		}
	}
}

func TestForecastGridAndValues(t *testing.T) {
	s := linearSeries(t, 10, time.Minute, 60, 0)
	m, err := Fit(s)
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	last := s.End()
	fc := Forecast(m, last, time.Minute, 1)

	if len(fc) != 60 {
		t.Fatalf("got %d forecast points, want 60", len(fc))
	}
	for i, sm := range fc {
		wantTS := last.Add(time.Duration(i+1) * time.Minute)
		if !sm.Timestamp.Equal(wantTS) {
			t.Fatalf("forecast[%d] timestamp = %v, want %v", i, sm.Timestamp, wantTS)
		}
		wantVal := m.ValueAt(wantTS)
		if math.Abs(sm.Value-wantVal) > 1e-9 {
			t.Errorf("forecast[%d] value = %v, want %v", i, sm.Value, wantVal)
		}
	}

	// Slope is 60 units/hour, so each 1min step adds one unit. The first
	// predicted value continues where the observations ended.
	if math.Abs(fc[0].Value-10) > 1e-6 {
		t.Errorf("first predicted value = %v, want 10", fc[0].Value)
	}
}

func TestCombineLabels(t *testing.T) {
	s := linearSeries(t, 3, time.Minute, 60, 0)
	fc := []types.Sample{{Timestamp: s.End().Add(time.Minute), Value: 3}}

	records := Combine(s, fc)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	for i := 0; i < 3; i++ {
		if records[i].Label != types.LabelObserved {
			t.Errorf("record %d label = %q, want observed", i, records[i].Label)
		}
	}
	if records[3].Label != types.LabelPredicted {
		t.Errorf("record 3 label = %q, want predicted", records[3].Label)
	}
}
