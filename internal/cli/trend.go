package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/history"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/trend"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

var (
	trendCSV        string
	trendMetric     string
	trendTimeCol    string
	trendInterval   string
	trendHorizon    float64
	trendThreshold  float64
	trendOut        string
	trendNoStore    bool
	trendHistoryDir string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Fit a linear trend to a metric and forecast future values",
	Long: `Fit an ordinary least-squares line to a pmrep metric column and
extrapolate it over a forecast horizon. The observed and predicted samples
are written to a CSV with columns Time,value,label; slope, intercept and the
optional threshold ETA go to standard output.`,
	RunE: runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendCSV, "csv", "", "input CSV path from pmrep (required)")
	trendCmd.Flags().StringVar(&trendMetric, "metric", "", "exact metric column name, e.g. ds389.cn.opscompleted (required)")
	trendCmd.Flags().StringVar(&trendTimeCol, "time-col", "", "time column name if auto-detect fails")
	trendCmd.Flags().StringVar(&trendInterval, "interval", "5min", "resample interval (e.g. 1min, 5min, 30s)")
	trendCmd.Flags().Float64Var(&trendHorizon, "horizon-hours", 24, "forecast horizon in hours")
	trendCmd.Flags().Float64Var(&trendThreshold, "threshold", 0, "optional target value to compute ETA")
	trendCmd.Flags().StringVar(&trendOut, "out-forecast", "/tmp/forecast.csv", "output CSV for observed+predicted series")
	trendCmd.Flags().BoolVar(&trendNoStore, "no-store", false, "do not record this fit in the history archive")
	trendCmd.Flags().StringVar(&trendHistoryDir, "history-dir", "", "history archive directory override")

	trendCmd.MarkFlagRequired("csv")
	trendCmd.MarkFlagRequired("metric")
}

func runTrend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Config-file defaults apply only where the flag was not given
	if !cmd.Flags().Changed("interval") {
		trendInterval = cfg.Defaults.Interval
	}
	if !cmd.Flags().Changed("horizon-hours") {
		trendHorizon = cfg.Defaults.HorizonHours
	}
	if !cmd.Flags().Changed("out-forecast") {
		trendOut = cfg.Defaults.OutForecast
	}

	opts := trend.PipelineOptions{
		CSVPath:      trendCSV,
		Metric:       trendMetric,
		TimeColumn:   trendTimeCol,
		Interval:     trendInterval,
		HorizonHours: trendHorizon,
		OutForecast:  trendOut,
	}
	if cmd.Flags().Changed("threshold") {
		t := trendThreshold
		opts.Threshold = &t
	}

	res, err := trend.RunPipeline(opts)
	if err != nil {
		return err
	}

	fmt.Printf("Trend slope (per hour): %.6f\n", res.Model.Slope)
	fmt.Printf("Intercept: %.6f\n", res.Model.Intercept)
	if verbose {
		fmt.Printf("R-squared: %.4f\n", res.Model.RSquared)
		fmt.Printf("Observed points: %d, predicted points: %d\n",
			len(res.Observed.Samples), len(res.Forecast))
	}
	fmt.Printf("Saved forecast CSV -> %s\n", res.OutPath)

	if res.ETA != nil {
		printETA(*opts.Threshold, res.ETA)
	}

	if !trendNoStore {
		recordFit(cfg.ToHistoryConfig(), opts, res)
	}

	return nil
}

func printETA(threshold float64, eta *trend.ETAResult) {
	switch {
	case !eta.Reachable:
		fmt.Printf("ETA: slope=0, cannot reach threshold %g from a linear trend.\n", threshold)
	case eta.AlreadyCrossed:
		fmt.Printf("ETA: threshold %g would have been reached by %s (<= last observed).\n",
			threshold, eta.Time.Format(time.DateTime))
	default:
		fmt.Printf("ETA to %g: %s\n", threshold, eta.Time.Format(time.DateTime))
	}
}

// recordFit appends the run to the history archive. The forecast CSV is
// already on disk, so archive trouble is a warning rather than a failure.
func recordFit(cfg *history.Config, opts trend.PipelineOptions, res *trend.PipelineResult) {
	if trendHistoryDir != "" {
		cfg.Path = trendHistoryDir
	}

	store, err := history.Open(cfg)
	if err != nil {
		log.Printf("warning: history archive unavailable: %v", err)
		return
	}
	defer store.Close()

	rec := &types.FitRecord{
		Metric:    res.Observed.Metric,
		FittedAt:  time.Now().UTC(),
		Interval:  opts.Interval,
		Points:    len(res.Observed.Samples),
		Slope:     res.Model.Slope,
		Intercept: res.Model.Intercept,
		RSquared:  res.Model.RSquared,
		DataStart: res.Observed.Start(),
		DataEnd:   res.Observed.End(),
	}
	if opts.Threshold != nil {
		rec.Threshold = opts.Threshold
		if res.ETA != nil && res.ETA.Reachable {
			t := res.ETA.Time
			rec.ETA = &t
			rec.ETACrossed = res.ETA.AlreadyCrossed
		}
	}

	if err := store.Append(context.Background(), rec, res.Observed); err != nil {
		log.Printf("warning: failed to record fit in history archive: %v", err)
	}
}
