package trend

import (
	"fmt"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/timeseries"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// PipelineOptions configures one trend/forecast run
type PipelineOptions struct {
	CSVPath      string
	Metric       string // exact metric column name, required
	TimeColumn   string // optional override; auto-detected when empty
	Interval     string // resample interval, e.g. "5min"
	HorizonHours float64
	Threshold    *float64
	OutForecast  string // path of the observed+predicted CSV
}

// PipelineResult carries everything a caller needs to report on a run
type PipelineResult struct {
	Model    *types.TrendModel
	Observed *types.Series
	Forecast []types.Sample
	Records  []types.LabeledSample
	Interval time.Duration
	ETA      *ETAResult
	OutPath  string
}

// RunPipeline is the whole forecast pipeline: load CSV, resolve columns,
// clean, resample onto the interval grid with forward-fill, fit the line,
// extrapolate over the horizon, and write the observed+predicted CSV.
// Validation happens before anything is written; on error no output exists.
func RunPipeline(opts PipelineOptions) (*PipelineResult, error) {
	interval, err := timeseries.ParseInterval(opts.Interval)
	if err != nil {
		return nil, err
	}

	table, err := timeseries.LoadCSV(opts.CSVPath)
	if err != nil {
		return nil, err
	}

	timeCol := timeseries.ResolveTimeColumn(table, opts.TimeColumn)
	metricCol, err := timeseries.ResolveValueColumn(table, timeCol, opts.Metric)
	if err != nil {
		return nil, fmt.Errorf("resolving metric column: %w", err)
	}

	raw, err := timeseries.ExtractSeries(table, timeCol, metricCol)
	if err != nil {
		return nil, err
	}

	observed, err := timeseries.Resample(raw, interval, timeseries.AggLast)
	if err != nil {
		return nil, err
	}
	if len(observed.Samples) < timeseries.MinFitPoints {
		return nil, fmt.Errorf("%w: have %d, need >= %d",
			timeseries.ErrTooFewPoints, len(observed.Samples), timeseries.MinFitPoints)
	}

	model, err := Fit(observed)
	if err != nil {
		return nil, err
	}

	forecast := Forecast(model, observed.End(), interval, opts.HorizonHours)
	records := Combine(observed, forecast)

	if err := WriteForecastCSV(opts.OutForecast, records); err != nil {
		return nil, err
	}

	res := &PipelineResult{
		Model:    model,
		Observed: observed,
		Forecast: forecast,
		Records:  records,
		Interval: interval,
		OutPath:  opts.OutForecast,
	}

	if opts.Threshold != nil {
		eta := ThresholdETA(model, *opts.Threshold, observed.End())
		res.ETA = &eta
	}

	return res, nil
}
