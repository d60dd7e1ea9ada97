package timeseries

import (
	"fmt"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Agg selects the per-bucket aggregation used when resampling
type Agg string

const (
	AggLast Agg = "last"
	AggSum  Agg = "sum"
	AggMean Agg = "mean"
	AggMax  Agg = "max"
	AggMin  Agg = "min"
)

// ParseAgg validates an aggregation mode string
func ParseAgg(s string) (Agg, error) {
	switch Agg(s) {
	case AggLast, AggSum, AggMean, AggMax, AggMin:
		return Agg(s), nil
	}
	return "", fmt.Errorf("unknown aggregation %q (want last, sum, mean, max or min)", s)
}

// Resample re-buckets a sorted series onto a fixed-interval grid anchored at
// the first sample's timestamp. Each grid point carries the aggregation of
// the observations falling in [point, point+interval); empty buckets inherit
// the previous grid point's value (forward-fill). The grid runs up to and
// including the bucket of the last observation.
func Resample(s *types.Series, interval time.Duration, agg Agg) (*types.Series, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrBadInterval, interval)
	}
	if len(s.Samples) == 0 {
		return nil, ErrEmptySeries
	}

	origin := s.Samples[0].Timestamp
	lastBucket := int(s.Samples[len(s.Samples)-1].Timestamp.Sub(origin) / interval)

	out := make([]types.Sample, lastBucket+1)
	i := 0
	for b := 0; b <= lastBucket; b++ {
		bucketStart := origin.Add(time.Duration(b) * interval)
		bucketEnd := bucketStart.Add(interval)

		var (
			sum   float64
			count int
			last  float64
			min   float64
			max   float64
		)
		for i < len(s.Samples) && s.Samples[i].Timestamp.Before(bucketEnd) {
			v := s.Samples[i].Value
			if count == 0 {
				min, max = v, v
			} else {
				if v < min {
					min = v
				}
				if v > max {
					max = v
				}
			}
			sum += v
			last = v
			count++
			i++
		}

		var v float64
		switch {
		case count == 0:
			// forward-fill; b == 0 never hits this since the grid is
			// anchored at the first observation
			v = out[b-1].Value
		case agg == AggSum:
			v = sum
		case agg == AggMean:
			v = sum / float64(count)
		case agg == AggMax:
			v = max
		case agg == AggMin:
			v = min
		default:
			v = last
		}
		out[b] = types.Sample{Timestamp: bucketStart, Value: v}
	}

	return &types.Series{Metric: s.Metric, Samples: out}, nil
}

// Rolling applies a trailing moving average over window samples. Positions
// with fewer than window preceding samples average what is available, so the
// output has the same length as the input.
func Rolling(s *types.Series, window int) *types.Series {
	if window <= 1 {
		return s
	}

	out := make([]types.Sample, len(s.Samples))
	var sum float64
	for i, sm := range s.Samples {
		sum += sm.Value
		if i >= window {
			sum -= s.Samples[i-window].Value
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = types.Sample{Timestamp: sm.Timestamp, Value: sum / float64(n)}
	}

	return &types.Series{Metric: s.Metric, Samples: out}
}
