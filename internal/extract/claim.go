package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// maxClaimLength caps the claim when no sentence boundary is found
const maxClaimLength = 200

var (
	urlPattern        = regexp.MustCompile(`https?://\S+`)
	mentionPattern    = regexp.MustCompile(`@\w+`)
	hashtagPattern    = regexp.MustCompile(`#\w+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	sentencePattern   = regexp.MustCompile(`[.!?]+`)
)

// Claim extracts a clean factual claim from raw post text.
// It never fails: malformed input degrades to an empty claim, which
// IsValid rejects downstream.
func Claim(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = hashtagPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	// First non-empty sentence, falling back to the whole text
	claim := text
	for _, s := range sentencePattern.Split(text, -1) {
		s = strings.TrimSpace(s)
		if s != "" {
			claim = s
			break
		}
	}

	// Hard cap regardless of how the sentence split went
	if len(claim) > maxClaimLength {
		claim = strings.TrimSpace(claim[:maxClaimLength])
	}
	return claim
}

// IsValid reports whether a claim carries enough content to search for.
// Requires at least 3 words and at least one alphabetic character.
func IsValid(claim string) bool {
	if claim == "" {
		return false
	}

	if len(strings.Fields(claim)) < 3 {
		return false
	}

	for _, r := range claim {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
