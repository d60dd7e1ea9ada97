package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/history"
)

var (
	histMetric      string
	histLimit       int
	histDir         string
	histListMetrics bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List trend fits recorded in the local history archive",
	Long: `Show past trend runs: when each fit ran, its slope and intercept,
how many points it was fitted on, and the threshold ETA if one was computed.
Comparing slopes across runs shows whether a trend is accelerating.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&histMetric, "metric", "", "only show fits for this metric")
	historyCmd.Flags().IntVar(&histLimit, "limit", 20, "maximum number of fits to show (0 = all)")
	historyCmd.Flags().StringVar(&histDir, "history-dir", "", "history archive directory override")
	historyCmd.Flags().BoolVar(&histListMetrics, "list-metrics", false, "list metrics with recorded fits and exit")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	hcfg := cfg.ToHistoryConfig()
	if histDir != "" {
		hcfg.Path = histDir
	}

	store, err := history.Open(hcfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()

	if histListMetrics {
		metrics, err := store.Metrics(ctx)
		if err != nil {
			return err
		}
		for _, m := range metrics {
			fmt.Println(m)
		}
		return nil
	}

	records, err := store.List(ctx, histMetric, histLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No recorded fits.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FITTED AT\tMETRIC\tPOINTS\tSLOPE/H\tINTERCEPT\tR2\tETA")
	for _, rec := range records {
		eta := "-"
		if rec.ETA != nil {
			eta = rec.ETA.Format(time.DateTime)
			if rec.ETACrossed {
				eta += " (crossed)"
			}
		} else if rec.Threshold != nil {
			eta = "unreachable"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%.3f\t%s\n",
			rec.FittedAt.Format(time.DateTime), rec.Metric, rec.Points,
			rec.Slope, rec.Intercept, rec.RSquared, eta)
	}
	return w.Flush()
}
