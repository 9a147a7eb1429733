package search

import (
	"context"
	"encoding/json"

	"github.com/ppiankov/claimguard/internal/cache"
	"github.com/ppiankov/claimguard/internal/model"
)

// SourceCache is reported when a query was answered from the cache
const SourceCache = "cache"

// Cached memoizes a Searcher with an exact-query-string cache. Population
// is single-flight-naive: concurrent callers on a cold key may both hit
// the network, which is tolerated because results are idempotent.
type Cached struct {
	inner Searcher
	store cache.Cache
}

// NewCached wraps a searcher with the given cache store
func NewCached(inner Searcher, store cache.Cache) *Cached {
	return &Cached{inner: inner, store: store}
}

type cachedEnvelope struct {
	Source  string               `json:"source"`
	Results []model.EvidenceItem `json:"results"`
}

// Search runs one query, consulting the cache first
func (c *Cached) Search(ctx context.Context, query string) []model.EvidenceItem {
	results, _ := c.SearchWithSource(ctx, query)
	return results
}

// SearchWithSource runs one query, reporting "cache" on a hit
func (c *Cached) SearchWithSource(ctx context.Context, query string) ([]model.EvidenceItem, string) {
	key := cache.QueryKey(query)

	if data, found := c.store.Get(key); found {
		var env cachedEnvelope
		if err := json.Unmarshal(data, &env); err == nil {
			return env.Results, SourceCache
		}
		// Corrupt entry: fall through and overwrite
	}

	results, source := c.inner.SearchWithSource(ctx, query)

	// Only cache answered queries so a transient outage is retried
	if source != SourceNone {
		if data, err := json.Marshal(cachedEnvelope{Source: source, Results: results}); err == nil {
			_ = c.store.Set(key, data)
		}
	}

	return results, source
}

// SearchAll runs a query set through the cache one query at a time, then
// merges, deduplicates, and caps like the underlying facade.
func (c *Cached) SearchAll(ctx context.Context, queries []string) []model.EvidenceItem {
	var merged []model.EvidenceItem
	for _, q := range queries {
		if ctx.Err() != nil {
			break
		}
		merged = append(merged, c.Search(ctx, q)...)
	}

	max := 5
	if m, ok := c.inner.(*Manager); ok {
		max = m.maxResults
	}
	return Dedupe(merged, max)
}
