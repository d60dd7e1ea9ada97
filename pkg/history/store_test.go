package history

import (
	"context"
	"testing"
	"time"

	"github.com/Marietto76/predictive-linuxops-pcp-aap/pkg/types"
)

func testSeries(n int) *types.Series {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	samples := make([]types.Sample, n)
	for i := 0; i < n; i++ {
		samples[i] = types.Sample{
			Timestamp: t0.Add(time.Duration(i) * 5 * time.Minute),
			Value:     float64(i) * 1.5,
		}
	}
	return &types.Series{Metric: "ds389.cn.opscompleted", Samples: samples}
}

func testRecord(metric string, at time.Time, slope float64) *types.FitRecord {
	return &types.FitRecord{
		Metric:    metric,
		FittedAt:  at,
		Interval:  "5min",
		Points:    12,
		Slope:     slope,
		Intercept: 3.5,
		RSquared:  0.98,
	}
}

func TestStoreAppendAndList(t *testing.T) {
	store, err := Open(&Config{Path: t.TempDir(), CompressionLevel: 3})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	series := testSeries(12)

	fits := []*types.FitRecord{
		testRecord("cpu.util", base, 1.0),
		testRecord("cpu.util", base.Add(time.Hour), 2.0),
		testRecord("mem.used", base.Add(30*time.Minute), 3.0),
	}
	for _, rec := range fits {
		if err := store.Append(ctx, rec, series); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	// Filtered by metric, newest first
	got, err := store.List(ctx, "cpu.util", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d fits for cpu.util, want 2", len(got))
	}
	if got[0].Slope != 2.0 || got[1].Slope != 1.0 {
		t.Errorf("fits not newest-first: slopes %v, %v", got[0].Slope, got[1].Slope)
	}

	// Limit applies after ordering
	got, err = store.List(ctx, "cpu.util", 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].Slope != 2.0 {
		t.Fatalf("limit 1 should keep only the newest fit, got %+v", got)
	}

	// Unfiltered sees all metrics
	got, err = store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("got %d total fits, want 3", len(got))
	}

	metrics, err := store.Metrics(ctx)
	if err != nil {
		t.Fatalf("Metrics failed: %v", err)
	}
	if len(metrics) != 2 || metrics[0] != "cpu.util" || metrics[1] != "mem.used" {
		t.Errorf("metrics = %v, want [cpu.util mem.used]", metrics)
	}
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store, err := Open(&Config{Path: t.TempDir(), CompressionLevel: 2})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	series := testSeries(50)

	if err := store.Append(ctx, testRecord(series.Metric, at, 1.0), series); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := store.Snapshot(ctx, series.Metric, at)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(got.Samples) != len(series.Samples) {
		t.Fatalf("got %d samples, want %d", len(got.Samples), len(series.Samples))
	}
	for i := range got.Samples {
		if !got.Samples[i].Timestamp.Equal(series.Samples[i].Timestamp) {
			t.Errorf("sample %d timestamp = %v, want %v",
				i, got.Samples[i].Timestamp, series.Samples[i].Timestamp)
		}
		if got.Samples[i].Value != series.Samples[i].Value {
			t.Errorf("sample %d value = %v, want %v",
				i, got.Samples[i].Value, series.Samples[i].Value)
		}
	}
}

func TestStoreSnapshotMissing(t *testing.T) {
	store, err := Open(&Config{Path: t.TempDir(), CompressionLevel: 1})
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	_, err = store.Snapshot(context.Background(), "no.such.metric", time.Now())
	if err == nil {
		t.Fatal("Snapshot of a missing fit should fail")
	}
}
