// Package aggregate reduces per-endpoint status records into success-rate
// totals grouped by (application, version).
package aggregate

import (
	"sort"
	"sync"

	"github.com/arunsingh/query-tool-statuspage/internal/status"
)

// Key identifies an aggregation group. Both fields are compared as exact
// literals; no version normalization is applied.
type Key struct {
	Application string
	Version     string
}

// bucket is the running total for one key. Totals only ever grow during a
// run; nothing resets or subtracts from them.
type bucket struct {
	totalSuccess  uint64
	totalRequests uint64
}

// Result is a read-only view of one group, derived at snapshot time.
type Result struct {
	Application   string
	Version       string
	TotalRequests uint64
	TotalSuccess  uint64
	SuccessRate   float64
}

// Aggregator accumulates status records by (application, version).
//
// Add is safe to call from concurrently completing fetches; a single mutex
// guards the bucket map so no update is lost. Results is intended to be
// called once all ingestion has finished.
type Aggregator struct {
	mu      sync.Mutex
	buckets map[Key]*bucket
}

// New creates an empty [Aggregator].
func New() *Aggregator {
	return &Aggregator{buckets: make(map[Key]*bucket)}
}

// Add folds one record into the bucket for its (application, version) key,
// creating the bucket on first sight.
func (a *Aggregator) Add(rec status.Record) {
	key := Key{Application: rec.Application, Version: rec.Version}

	a.mu.Lock()
	defer a.mu.Unlock()

	b, ok := a.buckets[key]
	if !ok {
		b = &bucket{}
		a.buckets[key] = b
	}
	b.totalSuccess += rec.SuccessCount
	b.totalRequests += rec.RequestCount
}

// Results returns one [Result] per bucket, sorted by application then
// version so output is deterministic.
//
// A bucket whose request total is zero is still reported, with a success
// rate of exactly 0.0.
func (a *Aggregator) Results() []Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	results := make([]Result, 0, len(a.buckets))
	for key, b := range a.buckets {
		rate := 0.0
		if b.totalRequests > 0 {
			rate = float64(b.totalSuccess) / float64(b.totalRequests)
		}
		results = append(results, Result{
			Application:   key.Application,
			Version:       key.Version,
			TotalRequests: b.totalRequests,
			TotalSuccess:  b.totalSuccess,
			SuccessRate:   rate,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Application != results[j].Application {
			return results[i].Application < results[j].Application
		}
		return results[i].Version < results[j].Version
	})
	return results
}
