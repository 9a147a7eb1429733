package verdict

import "github.com/ppiankov/claimguard/internal/model"

// Verdict labels
const (
	VerdictAccurate     = "accurate"
	VerdictUnverified   = "unverified"
	VerdictContradicted = "contradicted"
)

// minConfidence is the floor reported when no evidence exists at all:
// deliberately low but non-zero, signaling "insufficient data" rather
// than "actively contradicted"
const minConfidence = 0.10

// Policy names the two verdict strategies. They are not reconciled on
// purpose: each mirrors the call site it serves.
type Policy string

const (
	// PolicyCredibilityBands maps match/contradiction ratios to a
	// credibility value. Used by the single-pass pipeline.
	PolicyCredibilityBands Policy = "credibility_bands"

	// PolicyMaxScore maps the best per-item score to a labeled verdict.
	// Used by the reflection controller.
	PolicyMaxScore Policy = "max_score"
)

// Credibility computes the credibility-bands verdict: a 0-1 value derived
// from contradiction and match ratios. Deterministic and pure.
func Credibility(score model.EvidenceScore) float64 {
	if score.Total == 0 {
		return 0.5 // neutral, no evidence
	}

	total := float64(score.Total)
	contradictions := float64(score.Contradictions)
	matches := float64(score.Matches)

	// Contradictions dominate
	if contradictions > total*0.5 {
		return 0.2
	}
	if contradictions > total*0.3 {
		return 0.4
	}

	if matches > total*0.7 {
		return 0.8
	}
	if matches > total*0.5 {
		return 0.6
	}

	return 0.5
}

// Bucket labels a credibility value for display. Not part of the scoring
// contract; callers may ignore it.
func Bucket(credibility float64) string {
	switch {
	case credibility < 0.3:
		return "suspicious"
	case credibility < 0.5:
		return "questionable"
	case credibility < 0.7:
		return "mixed"
	default:
		return "credible"
	}
}

// FromMaxScore computes the max-score verdict from per-item rated sources.
// Empty evidence yields an unverified verdict at the minimum confidence
// floor. Deterministic and pure.
func FromMaxScore(sources []model.ScoredSource) (string, float64) {
	if len(sources) == 0 {
		return VerdictUnverified, minConfidence
	}

	max := 0.0
	for _, s := range sources {
		if s.Score > max {
			max = s.Score
		}
	}

	switch {
	case max > 0.60:
		return VerdictAccurate, max
	case max > 0.35:
		return VerdictUnverified, max
	default:
		return VerdictContradicted, 1.0 - max
	}
}
