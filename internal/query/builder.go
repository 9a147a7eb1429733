package query

import (
	"hash/fnv"
	"math/rand"
	"strings"
)

// Suffixes appended to claims when building verification queries
const (
	verificationSuffix = " news verification"
	factCheckSuffix    = " fact check"
)

// refinementModifiers are appended to the base claim during reflection
// passes. The order queries are actually issued in is shuffled per claim,
// see Refinements.
var refinementModifiers = []string{
	"official statement",
	"statement from government",
	"fact check",
	"analysis",
	"reported by news",
	"Reuters",
	"BBC",
	"The Hindu",
	"clarification",
}

// Build produces the canonical verification query for a claim
func Build(claim string) string {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return ""
	}
	return claim + verificationSuffix
}

// BuildAlternative produces the fallback query for a claim
func BuildAlternative(claim string) string {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return ""
	}
	return claim + factCheckSuffix
}

// Variants produces the initial query set for the reflection controller:
// the claim itself, a news-scoped variant, and a shortened head.
func Variants(claim string) []string {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil
	}

	variants := []string{claim, claim + " news"}

	words := strings.Fields(claim)
	if len(words) > 6 {
		variants = append(variants, strings.Join(words[:6], " "))
	}
	return variants
}

// Refinements produces the refined query set for a reflection pass. The
// modifier set is fixed; the ordering is shuffled with a PRNG seeded from
// the claim text, so repeated runs on the same claim issue refined queries
// in the same order.
func Refinements(base string) []string {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil
	}

	refined := make([]string, len(refinementModifiers))
	for i, mod := range refinementModifiers {
		refined[i] = base + " " + mod
	}

	r := rand.New(rand.NewSource(seed(base)))
	r.Shuffle(len(refined), func(i, j int) {
		refined[i], refined[j] = refined[j], refined[i]
	})

	return refined
}

// seed derives a stable shuffle seed from the claim text. FNV-1a is used
// rather than the runtime map hash, which is randomized per process.
func seed(text string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return int64(h.Sum32() & 0xFFFFFFFF)
}
