package model

import "fmt"

// VerificationState is the mutable record threaded through one verification
// request. A single instance exists per call; it is never shared across
// concurrent requests, so no locking is needed.
type VerificationState struct {
	Text       string         `json:"text"`                 // Raw input
	Claim      string         `json:"claim,omitempty"`      // Normalized claim
	Queries    []string       `json:"queries,omitempty"`    // Most-recently-generated first
	Sources    []ScoredSource `json:"sources,omitempty"`    // Retrieved evidence with per-item scores
	Verdict    string         `json:"verdict,omitempty"`    // accurate, unverified, contradicted
	Confidence float64        `json:"confidence"`           // 0-1
	Reasoning  []string       `json:"reasoning,omitempty"`  // Append-only human-readable trace

	// Reflection loop control
	Attempts         int     `json:"attempts"`
	MaxAttempts      int     `json:"max_attempts"`
	ConfidenceTarget float64 `json:"confidence_target"`
	LastAction       string  `json:"last_action,omitempty"` // reflect or finish
}

// NewVerificationState constructs the state for a single request
func NewVerificationState(text string, maxAttempts int, confidenceTarget float64) *VerificationState {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	if confidenceTarget <= 0 {
		confidenceTarget = 0.60
	}

	return &VerificationState{
		Text:             text,
		MaxAttempts:      maxAttempts,
		ConfidenceTarget: confidenceTarget,
	}
}

// Trace appends a formatted entry to the reasoning log
func (s *VerificationState) Trace(format string, args ...interface{}) {
	s.Reasoning = append(s.Reasoning, fmt.Sprintf(format, args...))
}
