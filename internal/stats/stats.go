// Package stats keeps a rolling window of estimate timings.
package stats

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at       time.Time
	duration time.Duration
	tokens   int
}

// Snapshot aggregates the samples currently inside the window.
type Snapshot struct {
	Count  int     `json:"count"`
	Tokens int64   `json:"tokens"`
	MinMs  float64 `json:"min_ms"`
	MaxMs  float64 `json:"max_ms"`
	AvgMs  float64 `json:"avg_ms"`
	P50Ms  float64 `json:"p50_ms"`
	P95Ms  float64 `json:"p95_ms"`
	P99Ms  float64 `json:"p99_ms"`
}

// Window records how long estimates take and how many tokens they produce,
// forgetting samples older than maxAge. Safe for concurrent use.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one estimate. Negative durations are recorded as zero.
func (w *Window) Record(d time.Duration, tokens int) {
	if d < 0 {
		d = 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.pruneLocked(now)
	w.samples = append(w.samples, sample{at: now, duration: d, tokens: tokens})
}

// Time runs fn, records its duration and token result, and returns the result.
func (w *Window) Time(fn func() int) int {
	start := time.Now()
	tokens := fn()
	w.Record(time.Since(start), tokens)
	return tokens
}

func (w *Window) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(w.now())
	if len(w.samples) == 0 {
		return Snapshot{}
	}

	ms := make([]float64, len(w.samples))
	var sum float64
	var tokens int64
	for i, s := range w.samples {
		ms[i] = float64(s.duration) / float64(time.Millisecond)
		sum += ms[i]
		tokens += int64(s.tokens)
	}
	slices.Sort(ms)

	return Snapshot{
		Count:  len(ms),
		Tokens: tokens,
		MinMs:  ms[0],
		MaxMs:  ms[len(ms)-1],
		AvgMs:  sum / float64(len(ms)),
		P50Ms:  percentile(ms, 50),
		P95Ms:  percentile(ms, 95),
		P99Ms:  percentile(ms, 99),
	}
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	i := 0
	for _, s := range w.samples {
		if !s.at.Before(cutoff) {
			w.samples[i] = s
			i++
		}
	}
	w.samples = w.samples[:i]
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := float64(len(sorted)-1) * pct / 100
	lower := int(idx)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*frac
}
