// Package session ties one loaded series, its preview cache and its
// result store into an explicit per-session context.
package session

import (
	"math"

	"github.com/FinnWang/device-power-analyzer/internal/models"
	"github.com/FinnWang/device-power-analyzer/internal/series"
	"github.com/FinnWang/device-power-analyzer/internal/stats"
)

// Preview is a cached range evaluation: the filtered rows and their
// statistics snapshot.
type Preview struct {
	Rows  []models.Row
	Stats models.StatisticsSnapshot
}

// keyScale fixes the cache-key precision at six fractional digits.
// Distinct float presentations of the same range must collide once
// they round to the same 1e-6 granularity; this is a contract, not an
// implementation detail.
const keyScale = 1e6

type cacheKey struct {
	start int64
	end   int64
}

func keyFor(r models.TimeRange) cacheKey {
	return cacheKey{
		start: int64(math.Round(r.StartTime * keyScale)),
		end:   int64(math.Round(r.EndTime * keyScale)),
	}
}

// PreviewCache memoizes range evaluations while the user drags a range
// selector. Entries never expire on their own; the cache is emptied
// only by an explicit Clear, which the session performs when a new
// series is loaded or the battery spec changes. Single-writer: the
// cache belongs to one session's thread of control and does no
// locking.
type PreviewCache struct {
	entries map[cacheKey]*Preview
	hits    int
	misses  int
}

// NewPreviewCache creates an empty cache.
func NewPreviewCache() *PreviewCache {
	return &PreviewCache{entries: make(map[cacheKey]*Preview)}
}

// GetOrCompute returns the cached preview for the range, or runs
// validate -> filter -> compute and stores the outcome. Failures
// short-circuit and are never cached, so a later retry re-evaluates.
// A hit returns the stored preview unchanged.
func (c *PreviewCache) GetOrCompute(store *series.Store, r models.TimeRange, battery models.BatterySpec) (*Preview, error) {
	key := keyFor(r)
	if p, ok := c.entries[key]; ok {
		c.hits++
		return p, nil
	}
	c.misses++

	if err := series.Validate(r, store.Metadata()); err != nil {
		return nil, err
	}

	rows, err := store.FilterRange(r)
	if err != nil {
		return nil, err
	}

	snap, err := stats.Compute(rows, battery)
	if err != nil {
		return nil, err
	}

	p := &Preview{Rows: rows, Stats: snap}
	c.entries[key] = p
	return p, nil
}

// Clear empties the cache and returns the number of entries dropped.
func (c *PreviewCache) Clear() int {
	n := len(c.entries)
	c.entries = make(map[cacheKey]*Preview)
	return n
}

// Len returns the number of cached previews.
func (c *PreviewCache) Len() int {
	return len(c.entries)
}

// HitRate returns cache hits and misses since construction.
func (c *PreviewCache) HitRate() (hits, misses int) {
	return c.hits, c.misses
}
