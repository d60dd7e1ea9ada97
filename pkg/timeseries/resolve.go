package timeseries

import (
	"fmt"
	"strings"
)

// Column names that are recognized as the time axis, in priority order
var timeColumnCandidates = []string{"time", "timestamp", "date", "datetime"}

// ResolveTimeColumn picks the time column. A forced name wins when it is
// present in the header; otherwise the candidates are matched
// case-insensitively; otherwise the first column is assumed to be time,
// which is what pmrep emits.
func ResolveTimeColumn(t *Table, forced string) string {
	if forced != "" && t.ColumnIndex(forced) >= 0 {
		return forced
	}

	lower := make(map[string]string, len(t.Header))
	for _, h := range t.Header {
		if _, ok := lower[strings.ToLower(h)]; !ok {
			lower[strings.ToLower(h)] = h
		}
	}
	for _, cand := range timeColumnCandidates {
		if h, ok := lower[cand]; ok {
			return h
		}
	}

	if len(t.Header) > 0 {
		return t.Header[0]
	}
	return ""
}

// ResolveValueColumn picks the metric/value column. A forced name must exist
// in the header; otherwise the first non-time column whose values are all
// numeric is chosen.
func ResolveValueColumn(t *Table, timeCol, forced string) (string, error) {
	if forced != "" {
		if t.ColumnIndex(forced) < 0 {
			return "", fmt.Errorf("%w: %q (columns: %s)",
				ErrColumnNotFound, forced, strings.Join(t.Header, ", "))
		}
		return forced, nil
	}

	for i, h := range t.Header {
		if h == timeCol {
			continue
		}
		if t.IsNumericColumn(i) {
			return h, nil
		}
	}
	return "", ErrNoNumericColumn
}
