package pipeline

import (
	"testing"
	"time"
)

func TestStatsSnapshotPercentiles(t *testing.T) {
	stats := NewStats()
	stats.Record("outline", 100*time.Millisecond)
	stats.Record("outline", 200*time.Millisecond)
	stats.Record("outline", 300*time.Millisecond)
	stats.Record("outline", 400*time.Millisecond)
	stats.Record("outline", 500*time.Millisecond)

	snap, ok := stats.Snapshot()["outline"]
	if !ok {
		t.Fatal("expected outline stats to be present")
	}
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestStatsSeparatesOperations(t *testing.T) {
	stats := NewStats()
	stats.Record("outline", 100*time.Millisecond)
	stats.Record("relevance", 900*time.Millisecond)

	all := stats.Snapshot()
	if all["outline"].MaxMs != 100 {
		t.Fatalf("expected outline max=100, got %d", all["outline"].MaxMs)
	}
	if all["relevance"].MinMs != 900 {
		t.Fatalf("expected relevance min=900, got %d", all["relevance"].MinMs)
	}
}

func TestStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewStats()
	stats.maxAge = 10 * time.Millisecond
	stats.Record("outline", 100*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := stats.Snapshot()["outline"]; ok {
		t.Fatal("expected expired samples to be pruned")
	}

	stats.Record("outline", 200*time.Millisecond)
	snap := stats.Snapshot()["outline"]
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
}

func TestStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewStats()
	stats.Record("outline", -10*time.Millisecond)
	snap := stats.Snapshot()["outline"]
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
