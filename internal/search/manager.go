package search

import (
	"context"
	"sync"

	"github.com/ppiankov/claimguard/internal/model"
)

// Searcher is the retrieval facade consumed by the pipeline and the
// reflection controller. Implementations never return errors: total
// provider failure yields an empty sequence.
type Searcher interface {
	Search(ctx context.Context, query string) []model.EvidenceItem
	SearchWithSource(ctx context.Context, query string) ([]model.EvidenceItem, string)
	SearchAll(ctx context.Context, queries []string) []model.EvidenceItem
}

// SourceNone is reported when no provider produced evidence
const SourceNone = "none"

// Manager queries a priority-ordered provider chain. The first provider
// that yields results wins; every provider failure degrades to zero
// results and the next provider is attempted.
type Manager struct {
	providers  []Provider
	maxResults int
	fanOut     int
}

// NewManager creates a facade over the given provider chain
func NewManager(maxResults, fanOut int, providers ...Provider) *Manager {
	if maxResults <= 0 {
		maxResults = 5
	}
	if fanOut <= 0 {
		fanOut = 1
	}
	return &Manager{
		providers:  providers,
		maxResults: maxResults,
		fanOut:     fanOut,
	}
}

// Search runs one query through the provider chain
func (m *Manager) Search(ctx context.Context, query string) []model.EvidenceItem {
	results, _ := m.SearchWithSource(ctx, query)
	return results
}

// SearchWithSource runs one query and reports which provider answered
func (m *Manager) SearchWithSource(ctx context.Context, query string) ([]model.EvidenceItem, string) {
	for _, p := range m.providers {
		if !p.Available() {
			continue
		}

		results, err := p.Search(ctx, query)
		if err != nil || len(results) == 0 {
			continue
		}

		return Dedupe(results, m.maxResults), p.Name()
	}

	return nil, SourceNone
}

// SearchAll runs a query set, possibly concurrently, merges the results in
// query order, deduplicates by link-or-title, and caps the evidence set.
func (m *Manager) SearchAll(ctx context.Context, queries []string) []model.EvidenceItem {
	if len(queries) == 0 {
		return nil
	}

	perQuery := make([][]model.EvidenceItem, len(queries))
	semaphore := make(chan struct{}, m.fanOut)
	var wg sync.WaitGroup

	for i, q := range queries {
		wg.Add(1)
		go func(idx int, query string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			perQuery[idx] = m.Search(ctx, query)
		}(i, q)
	}
	wg.Wait()

	var merged []model.EvidenceItem
	for _, results := range perQuery {
		merged = append(merged, results...)
	}

	return Dedupe(merged, m.maxResults)
}
