package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/render"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/timeseries"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

var (
	plotCSV      string
	plotOutDir   string
	plotPDF      string
	plotTimeCol  string
	plotMetric   string
	plotResample string
	plotAgg      string
	plotRolling  int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot one metric column from a pmrep CSV to PNG (and optional PDF)",
	Long: `Render a pmrep CSV metric as a line chart. The time column is
detected automatically (Time/Timestamp/Date/Datetime) and the metric
defaults to the first numeric column. Optional resampling and a trailing
rolling average smooth noisy captures.`,
	RunE: runPlot,
}

func init() {
	plotCmd.Flags().StringVar(&plotCSV, "csv", "", "path to pmrep --csv file (required)")
	plotCmd.Flags().StringVar(&plotOutDir, "out-dir", "", "directory to save outputs (default from config)")
	plotCmd.Flags().StringVar(&plotPDF, "pdf", "", "optional PDF path for the figure")
	plotCmd.Flags().StringVar(&plotTimeCol, "time-col", "", "time column name if auto-detect fails")
	plotCmd.Flags().StringVar(&plotMetric, "metric", "", "metric column to plot (defaults to first numeric)")
	plotCmd.Flags().StringVar(&plotResample, "resample", "", "optional resample interval (e.g. 1min, 30s)")
	plotCmd.Flags().StringVar(&plotAgg, "resample-agg", "sum", "per-bucket aggregation: sum, mean, max, min or last")
	plotCmd.Flags().IntVar(&plotRolling, "rolling", 0, "optional rolling window (in samples after resample)")

	plotCmd.MarkFlagRequired("csv")
}

func runPlot(cmd *cobra.Command, args []string) error {
	if plotOutDir == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		plotOutDir = cfg.Defaults.OutDir
	}

	table, err := timeseries.LoadCSV(plotCSV)
	if err != nil {
		return err
	}

	timeCol := timeseries.ResolveTimeColumn(table, plotTimeCol)
	metricCol, err := timeseries.ResolveValueColumn(table, timeCol, plotMetric)
	if err != nil {
		return fmt.Errorf("resolving metric column: %w", err)
	}

	series, err := timeseries.ExtractSeries(table, timeCol, metricCol)
	if err != nil {
		return err
	}

	series, err = shapeSeries(series, plotResample, plotAgg, plotRolling)
	if err != nil {
		return err
	}

	chart := render.New(metricCol, timeCol, metricCol)
	if err := chart.AddSeries("", series, nil); err != nil {
		return err
	}

	pngName := fmt.Sprintf("%s.%s.png", csvStem(plotCSV), strings.ReplaceAll(metricCol, "/", "_"))
	pngPath := filepath.Join(plotOutDir, pngName)
	if err := chart.SavePNG(pngPath); err != nil {
		return err
	}
	fmt.Printf("PNG saved: %s\n", pngPath)

	if plotPDF != "" {
		if err := render.SavePDF(plotPDF, chart); err != nil {
			return err
		}
		fmt.Printf("PDF saved: %s\n", plotPDF)
	}

	return nil
}

// shapeSeries applies the optional resample and rolling-average steps shared
// by the plotting commands
func shapeSeries(s *types.Series, interval, agg string, rolling int) (*types.Series, error) {
	if interval != "" {
		d, err := timeseries.ParseInterval(interval)
		if err != nil {
			return nil, err
		}
		mode, err := timeseries.ParseAgg(agg)
		if err != nil {
			return nil, err
		}
		if s, err = timeseries.Resample(s, d, mode); err != nil {
			return nil, err
		}
	}
	if rolling > 1 {
		s = timeseries.Rolling(s, rolling)
	}
	return s, nil
}

func csvStem(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".zst")
	return strings.TrimSuffix(base, filepath.Ext(base))
}
