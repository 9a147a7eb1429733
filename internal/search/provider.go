package search

import (
	"context"

	"github.com/ppiankov/claimguard/internal/model"
)

// Provider is a single external search backend
type Provider interface {
	// Name identifies the provider in results and traces
	Name() string

	// Available reports whether the provider can be attempted at all
	// (e.g. a keyed provider without a configured key is unavailable)
	Available() bool

	// Search runs one query. Errors are reported for logging only; the
	// facade treats any error as zero results.
	Search(ctx context.Context, query string) ([]model.EvidenceItem, error)
}

// Dedupe removes duplicate evidence by link-or-title identity, preserving
// order, and caps the result at max items (0 means no cap).
func Dedupe(items []model.EvidenceItem, max int) []model.EvidenceItem {
	seen := make(map[string]bool, len(items))
	out := make([]model.EvidenceItem, 0, len(items))

	for _, item := range items {
		key := item.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
		if max > 0 && len(out) >= max {
			break
		}
	}

	return out
}
