package timeseries

import (
	"errors"
	"testing"
	"time"
)

func TestExtractSeriesCleansRows(t *testing.T) {
	// One unparseable timestamp, one non-numeric value, one duplicate
	// timestamp where the later row must win
	tbl := tableFromCSV(t, `Time,ops
2024-01-01 00:00:00,1
garbage,2
2024-01-01 00:01:00,n/a
2024-01-01 00:02:00,3
2024-01-01 00:02:00,4
2024-01-01 00:01:30,2.5
`)

	s, err := ExtractSeries(tbl, "Time", "ops")
	if err != nil {
		t.Fatalf("ExtractSeries failed: %v", err)
	}

	if len(s.Samples) != 3 {
		t.Fatalf("got %d samples, want 3", len(s.Samples))
	}

	// Sorted ascending
	for i := 1; i < len(s.Samples); i++ {
		if !s.Samples[i].Timestamp.After(s.Samples[i-1].Timestamp) {
			t.Fatalf("samples not strictly increasing at %d", i)
		}
	}

	// Duplicate timestamp: last write wins
	last := s.Samples[len(s.Samples)-1]
	if last.Value != 4 {
		t.Errorf("duplicate timestamp kept value %v, want 4", last.Value)
	}
}

func TestExtractSeriesEmpty(t *testing.T) {
	tbl := tableFromCSV(t, "Time,ops\nnot-a-time,1\nalso-bad,2\n")
	_, err := ExtractSeries(tbl, "Time", "ops")
	if !errors.Is(err, ErrEmptySeries) {
		t.Fatalf("want ErrEmptySeries, got %v", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	cases := []string{
		"2024-01-02 15:04:05",
		"2024-01-02 15:04:05.5",
		"2024-01-02T15:04:05Z",
		"2024-01-02T15:04:05+02:00",
		"2024-01-02",
	}
	for _, c := range cases {
		if _, ok := ParseTimestamp(c); !ok {
			t.Errorf("ParseTimestamp(%q) should succeed", c)
		}
	}
	if _, ok := ParseTimestamp("yesterday"); ok {
		t.Error("ParseTimestamp should reject non-timestamps")
	}
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, ok := ParseTimestamp(s)
	if !ok {
		t.Fatalf("bad test timestamp %q", s)
	}
	return ts
}
