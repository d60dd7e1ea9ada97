package types

import "time"

// Sample represents a single time-series sample
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// Series represents a metric time-series loaded from a pmrep CSV export
type Series struct {
	Metric  string
	Samples []Sample
}

// Start returns the timestamp of the first sample
func (s *Series) Start() time.Time {
	if len(s.Samples) == 0 {
		return time.Time{}
	}
	return s.Samples[0].Timestamp
}

// End returns the timestamp of the last sample
func (s *Series) End() time.Time {
	if len(s.Samples) == 0 {
		return time.Time{}
	}
	return s.Samples[len(s.Samples)-1].Timestamp
}

// Values returns the sample values in order
func (s *Series) Values() []float64 {
	vals := make([]float64, len(s.Samples))
	for i, sm := range s.Samples {
		vals[i] = sm.Value
	}
	return vals
}

// Timestamps returns the sample timestamps in order
func (s *Series) Timestamps() []time.Time {
	ts := make([]time.Time, len(s.Samples))
	for i, sm := range s.Samples {
		ts[i] = sm.Timestamp
	}
	return ts
}

// Sample labels distinguishing historical rows from extrapolated ones
const (
	LabelObserved  = "observed"
	LabelPredicted = "predicted"
)

// LabeledSample is a sample tagged as observed or predicted
type LabeledSample struct {
	Timestamp time.Time
	Value     float64
	Label     string
}

// TrendModel is a least-squares line fitted to a resampled series.
// Slope is in metric units per hour; Intercept is the value at Origin.
type TrendModel struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	Origin    time.Time
}

// ValueAt evaluates the fitted line at t
func (m *TrendModel) ValueAt(t time.Time) float64 {
	hours := t.Sub(m.Origin).Hours()
	return m.Slope*hours + m.Intercept
}

// FitRecord is one trend run as recorded in the local history archive
type FitRecord struct {
	Metric     string     `json:"metric"`
	FittedAt   time.Time  `json:"fitted_at"`
	Interval   string     `json:"interval"`
	Points     int        `json:"points"`
	Slope      float64    `json:"slope"`
	Intercept  float64    `json:"intercept"`
	RSquared   float64    `json:"r_squared"`
	DataStart  time.Time  `json:"data_start"`
	DataEnd    time.Time  `json:"data_end"`
	Threshold  *float64   `json:"threshold,omitempty"`
	ETA        *time.Time `json:"eta,omitempty"`
	ETACrossed bool       `json:"eta_crossed,omitempty"`
}
