package model

// PipelineResult is the outcome of a single-pass verification (no reflection)
type PipelineResult struct {
	Claim       string         `json:"claim"`
	Query       string         `json:"query"`
	Score       EvidenceScore  `json:"score"`
	Credibility float64        `json:"credibility"` // 0-1, from the credibility-bands policy
	Results     []EvidenceItem `json:"results"`
	Source      string         `json:"source"`          // Provider that produced the evidence: serper, duckduckgo, none
	Error       string         `json:"error,omitempty"` // Set on the invalid-claim path; never a raised fault
}

// VerificationReport is the outcome of the full bounded-retry flow
type VerificationReport struct {
	Verdict    string         `json:"verdict"`
	Confidence float64        `json:"confidence"`
	Claim      string         `json:"claim"`
	Queries    []string       `json:"search_queries"`
	TopSources []ScoredSource `json:"top_sources"` // At most 3, highest-scored first
	Reasoning  []string       `json:"reasoning"`
	Attempts   int            `json:"attempts"`
}
