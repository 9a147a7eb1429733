package model

// EvidenceItem represents a single search result considered as evidence
type EvidenceItem struct {
	Title   string `json:"title"`          // Result title
	Snippet string `json:"snippet"`        // Result snippet text
	Link    string `json:"link,omitempty"` // Result URL (may be empty for lite providers)
}

// Key returns the identity used for deduplication: link, falling back to title
func (e EvidenceItem) Key() string {
	if e.Link != "" {
		return e.Link
	}
	return e.Title
}

// ScoredSource is an evidence item augmented with its per-item match score
type ScoredSource struct {
	EvidenceItem
	Score float64 `json:"score"` // Fraction of claim tokens present in title+snippet, 0-1
}

// EvidenceScore tallies evidence against a claim.
// Invariants: Matches <= Total, Contradictions <= Total.
// An item may count as both a match and a contradiction.
type EvidenceScore struct {
	Matches        int `json:"matches"`        // Items where enough claim keywords appear
	Contradictions int `json:"contradictions"` // Items containing debunking vocabulary
	Total          int `json:"total"`          // Number of evidence items examined
}
