package timeseries

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

// Timestamp layouts tried in order. pmrep writes local time without a zone;
// exports that went through other tooling may carry RFC3339 stamps.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
}

// ParseTimestamp parses a cell from the time column
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ExtractSeries pulls (timestamp, value) pairs out of a table. Rows whose
// timestamp or value fail to parse are dropped, duplicate timestamps keep
// the last row in input order, and the result is sorted ascending. Dropping
// every row is a data error; a mere reduction in row count is not.
func ExtractSeries(t *Table, timeCol, valueCol string) (*types.Series, error) {
	ti := t.ColumnIndex(timeCol)
	if ti < 0 {
		return nil, fmt.Errorf("%w: time column %q", ErrColumnNotFound, timeCol)
	}
	vi := t.ColumnIndex(valueCol)
	if vi < 0 {
		return nil, fmt.Errorf("%w: value column %q", ErrColumnNotFound, valueCol)
	}

	byTime := make(map[int64]float64, len(t.Rows))
	for row := range t.Rows {
		ts, ok := ParseTimestamp(t.Cell(row, ti))
		if !ok {
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(t.Cell(row, vi)), 64)
		if err != nil {
			continue
		}
		byTime[ts.UnixNano()] = val // last write wins
	}

	if len(byTime) == 0 {
		return nil, ErrEmptySeries
	}

	keys := make([]int64, 0, len(byTime))
	for k := range byTime {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	samples := make([]types.Sample, len(keys))
	for i, k := range keys {
		samples[i] = types.Sample{Timestamp: time.Unix(0, k).UTC(), Value: byTime[k]}
	}

	return &types.Series{Metric: valueCol, Samples: samples}, nil
}
