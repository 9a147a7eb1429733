package score

import (
	"regexp"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
)

// contradictionVocabulary marks an evidence item as debunking the claim
// when any member appears in its text
var contradictionVocabulary = []string{
	"false", "fake", "hoax", "debunked", "myth", "misleading",
	"misinformation", "disinformation", "untrue", "incorrect",
	"fabricated", "bogus", "conspiracy", "rumor", "unverified",
}

// stopWords are dropped during keyword extraction
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true,
	"with": true, "this": true, "but": true, "they": true, "have": true,
	"had": true, "what": true, "when": true, "where": true, "who": true,
	"which": true, "their": true, "said": true, "been": true, "were": true,
	"more": true, "some": true, "can": true,
}

var punctuationPattern = regexp.MustCompile(`[^\w\s]`)

// matchThreshold is the fraction of claim keywords that must appear in an
// item for it to count as a match (minimum one keyword)
const matchThreshold = 0.3

// Keywords extracts meaningful keywords from a claim: lowercased,
// punctuation stripped, stop words and tokens of length <= 2 dropped.
func Keywords(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.ToLower(text)
	text = punctuationPattern.ReplaceAllString(text, " ")

	var keywords []string
	for _, w := range strings.Fields(text) {
		if len(w) > 2 && !stopWords[w] {
			keywords = append(keywords, w)
		}
	}

	return keywords
}

// RawTokens returns the claim's first n whitespace tokens unfiltered. The
// reflection controller scores with these; the single-pass pipeline scores
// with Keywords. The scorer accepts either.
func RawTokens(claim string, n int) []string {
	tokens := strings.Fields(claim)
	if len(tokens) > n {
		tokens = tokens[:n]
	}
	return tokens
}

// Evidence tallies matches and contradictions over an evidence set. An item
// may count as both: the checks are independent.
func Evidence(keywords []string, evidence []model.EvidenceItem) model.EvidenceScore {
	score := model.EvidenceScore{Total: len(evidence)}

	for _, item := range evidence {
		combined := strings.ToLower(item.Title + " " + item.Snippet)

		if hasKeywordMatch(combined, keywords) {
			score.Matches++
		}
		if hasContradiction(combined) {
			score.Contradictions++
		}
	}

	return score
}

// hasKeywordMatch reports whether enough claim keywords appear as
// substrings of the item text
func hasKeywordMatch(text string, keywords []string) bool {
	if len(keywords) == 0 {
		return false
	}

	found := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found++
		}
	}

	threshold := float64(len(keywords)) * matchThreshold
	if threshold < 1 {
		threshold = 1
	}

	return float64(found) >= threshold
}

// hasContradiction reports whether the item text contains any debunking term
func hasContradiction(text string) bool {
	for _, kw := range contradictionVocabulary {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Rate attaches a per-item normalized score to each evidence item: the
// fraction of the supplied tokens literally present in its title+snippet.
// This ranking score is distinct from the match/contradiction tally.
func Rate(evidence []model.EvidenceItem, tokens []string) []model.ScoredSource {
	scored := make([]model.ScoredSource, 0, len(evidence))

	denom := len(tokens)
	if denom < 1 {
		denom = 1
	}

	for _, item := range evidence {
		text := strings.ToLower(item.Title + " " + item.Snippet)

		found := 0
		for _, tok := range tokens {
			if strings.Contains(text, strings.ToLower(tok)) {
				found++
			}
		}

		scored = append(scored, model.ScoredSource{
			EvidenceItem: item,
			Score:        float64(found) / float64(denom),
		})
	}

	return scored
}
