package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/render"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/timeseries"
	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

var (
	splitCSV       string
	splitTimeCol   string
	splitValueCol  string
	splitLabelCol  string
	splitPredLabel string
	splitOut       string
	splitPDF       string
	splitResample  string
	splitAgg       string
	splitRolling   int
	splitObsColor  string
	splitPredColor string
)

var plotSplitCmd = &cobra.Command{
	Use:   "plotsplit",
	Short: "Plot observed vs predicted rows from a single labeled CSV",
	Long: `Render a CSV that holds both observed and forecasted rows,
distinguished by a label column (for example the Time,value,label output of
'pcptrend trend'). Observed and predicted get their own colors, a dashed
vertical line marks the first predicted timestamp, and lower/upper bound
columns, when present, are shaded as a confidence band.`,
	RunE: runPlotSplit,
}

func init() {
	plotSplitCmd.Flags().StringVar(&splitCSV, "csv", "", "input CSV path (required)")
	plotSplitCmd.Flags().StringVar(&splitTimeCol, "time-col", "", "time column name if auto-detect fails")
	plotSplitCmd.Flags().StringVar(&splitValueCol, "value-col", "", "value column (defaults to first numeric)")
	plotSplitCmd.Flags().StringVar(&splitLabelCol, "label-col", "", "column that marks observed/predicted rows (required)")
	plotSplitCmd.Flags().StringVar(&splitPredLabel, "predicted-label", "", "value in --label-col that denotes forecast rows (required)")
	plotSplitCmd.Flags().StringVar(&splitOut, "out", "", "output PNG path (required)")
	plotSplitCmd.Flags().StringVar(&splitPDF, "pdf", "", "optional PDF path for the figure")
	plotSplitCmd.Flags().StringVar(&splitResample, "resample", "", "optional resample interval (e.g. 1min, 30s)")
	plotSplitCmd.Flags().StringVar(&splitAgg, "resample-agg", "sum", "per-bucket aggregation: sum, mean, max, min or last")
	plotSplitCmd.Flags().IntVar(&splitRolling, "rolling", 0, "rolling mean window after resample")
	plotSplitCmd.Flags().StringVar(&splitObsColor, "observed-color", render.DefaultObservedColor, "line color for observed rows")
	plotSplitCmd.Flags().StringVar(&splitPredColor, "predicted-color", render.DefaultPredictedColor, "line color for predicted rows")

	plotSplitCmd.MarkFlagRequired("csv")
	plotSplitCmd.MarkFlagRequired("label-col")
	plotSplitCmd.MarkFlagRequired("predicted-label")
	plotSplitCmd.MarkFlagRequired("out")
}

func runPlotSplit(cmd *cobra.Command, args []string) error {
	table, err := timeseries.LoadCSV(splitCSV)
	if err != nil {
		return err
	}

	timeCol := timeseries.ResolveTimeColumn(table, splitTimeCol)
	valueCol, err := timeseries.ResolveValueColumn(table, timeCol, splitValueCol)
	if err != nil {
		return fmt.Errorf("resolving value column: %w", err)
	}

	labelIdx := table.ColumnIndex(splitLabelCol)
	if labelIdx < 0 {
		return fmt.Errorf("%w: label column %q (columns: %s)",
			timeseries.ErrColumnNotFound, splitLabelCol, strings.Join(table.Header, ", "))
	}

	obsTable, predTable := splitByLabel(table, labelIdx, splitPredLabel)

	observed, err := extractOptional(obsTable, timeCol, valueCol)
	if err != nil {
		return err
	}
	predicted, err := extractOptional(predTable, timeCol, valueCol)
	if err != nil {
		return err
	}
	if observed == nil && predicted == nil {
		return timeseries.ErrEmptySeries
	}

	if observed != nil {
		if observed, err = shapeSeries(observed, splitResample, splitAgg, splitRolling); err != nil {
			return err
		}
	}
	if predicted != nil {
		if predicted, err = shapeSeries(predicted, splitResample, splitAgg, splitRolling); err != nil {
			return err
		}
	}

	obsColor, err := render.ParseHexColor(splitObsColor)
	if err != nil {
		return err
	}
	predColor, err := render.ParseHexColor(splitPredColor)
	if err != nil {
		return err
	}

	chart := render.New(valueCol, timeCol, valueCol)
	if observed != nil {
		if err := chart.AddSeries("Observed", observed, obsColor); err != nil {
			return err
		}
	}
	if predicted != nil {
		if err := chart.AddSeries("Predicted", predicted, predColor); err != nil {
			return err
		}
	}

	// Confidence band, only when the CSV carries its own bound columns
	if lowerCol, upperCol, ok := findBandColumns(table, valueCol); ok {
		lower, lerr := extractOptional(predTable, timeCol, lowerCol)
		upper, uerr := extractOptional(predTable, timeCol, upperCol)
		if lerr == nil && uerr == nil && lower != nil && upper != nil {
			if lower, err = shapeSeries(lower, splitResample, splitAgg, splitRolling); err != nil {
				return err
			}
			if upper, err = shapeSeries(upper, splitResample, splitAgg, splitRolling); err != nil {
				return err
			}
			if err := chart.AddBand("Prediction CI", lower, upper, predColor); err != nil {
				return err
			}
		}
	}

	if predicted != nil && len(predicted.Samples) > 0 {
		if err := chart.AddVerticalRule(predicted.Samples[0].Timestamp); err != nil {
			return err
		}
	}

	if err := chart.SavePNG(splitOut); err != nil {
		return err
	}
	fmt.Printf("PNG saved: %s\n", splitOut)

	if splitPDF != "" {
		if err := render.SavePDF(splitPDF, chart); err != nil {
			return err
		}
		fmt.Printf("PDF saved: %s\n", splitPDF)
	}

	return nil
}

// splitByLabel partitions the table's rows on a case-insensitive match of
// the predicted label
func splitByLabel(t *timeseries.Table, labelIdx int, predictedLabel string) (observed, predicted *timeseries.Table) {
	observed = &timeseries.Table{Header: t.Header}
	predicted = &timeseries.Table{Header: t.Header}
	want := strings.ToLower(strings.TrimSpace(predictedLabel))

	for i, row := range t.Rows {
		if strings.ToLower(strings.TrimSpace(t.Cell(i, labelIdx))) == want {
			predicted.Rows = append(predicted.Rows, row)
		} else {
			observed.Rows = append(observed.Rows, row)
		}
	}
	return observed, predicted
}

// extractOptional is ExtractSeries but tolerant of an empty partition: a
// file of only-observed or only-predicted rows still plots.
func extractOptional(t *timeseries.Table, timeCol, valueCol string) (*types.Series, error) {
	if len(t.Rows) == 0 {
		return nil, nil
	}
	s, err := timeseries.ExtractSeries(t, timeCol, valueCol)
	if errors.Is(err, timeseries.ErrEmptySeries) {
		return nil, nil
	}
	return s, err
}

// Bound-column name pairs recognized as a confidence band, tried in order
func findBandColumns(t *timeseries.Table, valueCol string) (lower, upper string, ok bool) {
	candidates := [][2]string{
		{valueCol + "_lower", valueCol + "_upper"},
		{valueCol + ".lower", valueCol + ".upper"},
		{"yhat_lower", "yhat_upper"},
		{"lower", "upper"},
		{"lo", "hi"},
	}
	for _, cand := range candidates {
		if t.ColumnIndex(cand[0]) >= 0 && t.ColumnIndex(cand[1]) >= 0 {
			return cand[0], cand[1], true
		}
	}
	return "", "", false
}
