// Package trend fits linear models to resampled metric series and
// extrapolates them: the Go side of capacity forecasting for PCP exports.
package trend

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Fit performs an ordinary least-squares fit of value against hours elapsed
// since the first sample. No regularization and no outlier handling: a
// literal best-fit line, slope in metric units per hour.
func Fit(s *types.Series) (*types.TrendModel, error) {
	if len(s.Samples) < 2 {
		return nil, fmt.Errorf("need at least 2 points to fit a line, have %d", len(s.Samples))
	}

	origin := s.Start()
	xs := make([]float64, len(s.Samples))
	ys := make([]float64, len(s.Samples))
	for i, sm := range s.Samples {
		xs[i] = sm.Timestamp.Sub(origin).Hours()
		ys[i] = sm.Value
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	estimates := make([]float64, len(xs))
	for i, x := range xs {
		estimates[i] = slope*x + intercept
	}
	r2 := stat.RSquaredFrom(estimates, ys, nil)

	return &types.TrendModel{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Origin:    origin,
	}, nil
}
