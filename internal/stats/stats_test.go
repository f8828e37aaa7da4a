package stats

import (
	"math"
	"testing"
	"time"
)

func TestWindowSnapshotPercentiles(t *testing.T) {
	w := NewWindow(time.Hour)
	for _, ms := range []int{100, 200, 300, 400, 500} {
		w.Record(time.Duration(ms)*time.Millisecond, 10)
	}

	snap := w.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.Tokens != 50 {
		t.Fatalf("expected tokens=50, got %d", snap.Tokens)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"min", snap.MinMs, 100},
		{"max", snap.MaxMs, 500},
		{"avg", snap.AvgMs, 300},
		{"p50", snap.P50Ms, 300},
		{"p95", snap.P95Ms, 480},
		{"p99", snap.P99Ms, 496},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-9 {
			t.Errorf("expected %s=%v, got %v", c.name, c.want, c.got)
		}
	}
}

func TestWindowPrunesExpiredSamples(t *testing.T) {
	now := time.Now()
	w := NewWindow(10 * time.Minute)
	w.now = func() time.Time { return now }

	w.Record(100*time.Millisecond, 1)
	now = now.Add(11 * time.Minute)

	if snap := w.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	w.Record(200*time.Millisecond, 3)
	snap := w.Snapshot()
	if snap.Count != 1 || snap.Tokens != 3 {
		t.Fatalf("expected one fresh sample with 3 tokens, got %+v", snap)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%v max=%v", snap.MinMs, snap.MaxMs)
	}
}

func TestWindowRecordClampsNegativeDuration(t *testing.T) {
	w := NewWindow(time.Hour)
	w.Record(-10*time.Millisecond, 0)
	snap := w.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%v max=%v", snap.MinMs, snap.MaxMs)
	}
}

func TestWindowTime(t *testing.T) {
	w := NewWindow(time.Hour)
	if got := w.Time(func() int { return 22 }); got != 22 {
		t.Fatalf("expected Time to return fn result 22, got %d", got)
	}
	if snap := w.Snapshot(); snap.Count != 1 || snap.Tokens != 22 {
		t.Errorf("expected one sample with 22 tokens, got %+v", snap)
	}
}

func TestWindowEmptySnapshot(t *testing.T) {
	if snap := NewWindow(0).Snapshot(); snap != (Snapshot{}) {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}
