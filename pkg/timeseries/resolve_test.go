package timeseries

import (
	"errors"
	"strings"
	"testing"
)

func tableFromCSV(t *testing.T, data string) *Table {
	t.Helper()
	tbl, err := ReadTable(strings.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to parse test CSV: %v", err)
	}
	return tbl
}

func TestResolveTimeColumnAnyCase(t *testing.T) {
	for _, header := range []string{"time", "Time", "TIME", "TiMe"} {
		tbl := tableFromCSV(t, header+",ops\n2024-01-01 00:00:00,1\n")
		if got := ResolveTimeColumn(tbl, ""); got != header {
			t.Errorf("header %q: ResolveTimeColumn = %q, want %q", header, got, header)
		}
	}
}

func TestResolveTimeColumnCandidatesAndFallback(t *testing.T) {
	tbl := tableFromCSV(t, "ops,Datetime\n1,2024-01-01 00:00:00\n")
	if got := ResolveTimeColumn(tbl, ""); got != "Datetime" {
		t.Errorf("ResolveTimeColumn = %q, want Datetime", got)
	}

	// No candidate name: first column wins
	tbl = tableFromCSV(t, "when,ops\n2024-01-01 00:00:00,1\n")
	if got := ResolveTimeColumn(tbl, ""); got != "when" {
		t.Errorf("ResolveTimeColumn = %q, want when", got)
	}

	// Forced name wins when present, falls back when absent
	tbl = tableFromCSV(t, "when,Time\n2024-01-01 00:00:00,1\n")
	if got := ResolveTimeColumn(tbl, "when"); got != "when" {
		t.Errorf("forced: ResolveTimeColumn = %q, want when", got)
	}
	if got := ResolveTimeColumn(tbl, "nope"); got != "Time" {
		t.Errorf("forced-missing: ResolveTimeColumn = %q, want Time", got)
	}
}

func TestResolveValueColumnAuto(t *testing.T) {
	tbl := tableFromCSV(t, "Time,host,ops\n2024-01-01 00:00:00,web1,42\n2024-01-01 00:01:00,web1,43\n")
	got, err := ResolveValueColumn(tbl, "Time", "")
	if err != nil {
		t.Fatalf("ResolveValueColumn failed: %v", err)
	}
	if got != "ops" {
		t.Errorf("ResolveValueColumn = %q, want ops", got)
	}
}

func TestResolveValueColumnForcedMissing(t *testing.T) {
	tbl := tableFromCSV(t, "Time,ops\n2024-01-01 00:00:00,42\n")
	_, err := ResolveValueColumn(tbl, "Time", "nosuch.metric")
	if !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("want ErrColumnNotFound, got %v", err)
	}
}

func TestResolveValueColumnNoNumeric(t *testing.T) {
	tbl := tableFromCSV(t, "Time,host\n2024-01-01 00:00:00,web1\n")
	_, err := ResolveValueColumn(tbl, "Time", "")
	if !errors.Is(err, ErrNoNumericColumn) {
		t.Fatalf("want ErrNoNumericColumn, got %v", err)
	}
}
