package score

import (
	"testing"

	"github.com/ppiankov/claimguard/internal/model"
)

func evidenceWith(texts ...string) []model.EvidenceItem {
	items := make([]model.EvidenceItem, len(texts))
	for i, txt := range texts {
		items[i] = model.EvidenceItem{Title: "title", Snippet: txt}
	}
	return items
}

func TestKeywords_FiltersStopWordsAndShortTokens(t *testing.T) {
	keywords := Keywords("The moon is made of green cheese, they said!")

	for _, kw := range keywords {
		if stopWords[kw] {
			t.Errorf("Stop word %q survived filtering", kw)
		}
		if len(kw) <= 2 {
			t.Errorf("Short token %q survived filtering", kw)
		}
	}

	want := map[string]bool{"moon": true, "made": true, "green": true, "cheese": true}
	for _, kw := range keywords {
		if !want[kw] {
			t.Errorf("Unexpected keyword %q", kw)
		}
	}
	if len(keywords) != len(want) {
		t.Errorf("Expected %d keywords, got %d: %v", len(want), len(keywords), keywords)
	}
}

func TestKeywords_Empty(t *testing.T) {
	if kws := Keywords(""); kws != nil {
		t.Errorf("Expected nil keywords for empty text, got %v", kws)
	}
}

func TestEvidence_EmptySet(t *testing.T) {
	score := Evidence([]string{"moon", "cheese"}, nil)

	if score.Matches != 0 || score.Contradictions != 0 || score.Total != 0 {
		t.Errorf("Expected zero score for empty evidence, got %+v", score)
	}
}

func TestEvidence_Invariants(t *testing.T) {
	evidence := evidenceWith(
		"the moon is made of cheese say scientists",
		"this claim is false and debunked",
		"unrelated article about weather",
		"moon cheese hoax exposed as fabricated",
	)

	score := Evidence([]string{"moon", "cheese"}, evidence)

	if score.Total != len(evidence) {
		t.Errorf("Expected total %d, got %d", len(evidence), score.Total)
	}
	if score.Matches > score.Total {
		t.Errorf("Invariant violated: matches %d > total %d", score.Matches, score.Total)
	}
	if score.Contradictions > score.Total {
		t.Errorf("Invariant violated: contradictions %d > total %d", score.Contradictions, score.Total)
	}
}

func TestEvidence_ItemCanBeMatchAndContradiction(t *testing.T) {
	evidence := evidenceWith("moon cheese claim debunked as false")

	score := Evidence([]string{"moon", "cheese"}, evidence)

	if score.Matches != 1 || score.Contradictions != 1 {
		t.Errorf("Expected item counted both ways, got %+v", score)
	}
}

func TestEvidence_MatchThreshold(t *testing.T) {
	// 10 keywords, item contains 3 of them: exactly the 30% floor
	keywords := []string{"alpha", "bravo", "charlie", "delta", "echo",
		"foxtrot", "golf", "hotel", "india", "juliet"}

	atThreshold := evidenceWith("alpha bravo charlie and nothing else")
	below := evidenceWith("alpha bravo and nothing else")

	if s := Evidence(keywords, atThreshold); s.Matches != 1 {
		t.Errorf("Expected match at 30%% threshold, got %+v", s)
	}
	if s := Evidence(keywords, below); s.Matches != 0 {
		t.Errorf("Expected no match below threshold, got %+v", s)
	}
}

func TestEvidence_SingleKeywordMinimum(t *testing.T) {
	// One keyword: minimum of one hit required
	score := Evidence([]string{"unicorn"}, evidenceWith("a unicorn was seen"))
	if score.Matches != 1 {
		t.Errorf("Expected single-keyword match, got %+v", score)
	}
}

func TestRawTokens(t *testing.T) {
	tokens := RawTokens("one two three four five six seven eight nine ten", 8)
	if len(tokens) != 8 {
		t.Errorf("Expected 8 tokens, got %d", len(tokens))
	}

	tokens = RawTokens("just three words", 8)
	if len(tokens) != 3 {
		t.Errorf("Expected 3 tokens, got %d", len(tokens))
	}
}

func TestRate_NormalizedPerItem(t *testing.T) {
	evidence := []model.EvidenceItem{
		{Title: "moon cheese confirmed", Snippet: "scientists agree"},
		{Title: "weather report", Snippet: "sunny tomorrow"},
	}

	scored := Rate(evidence, []string{"moon", "cheese", "landing", "anniversary"})

	if len(scored) != 2 {
		t.Fatalf("Expected 2 scored sources, got %d", len(scored))
	}
	if scored[0].Score != 0.5 {
		t.Errorf("Expected score 0.5 for first item, got %.2f", scored[0].Score)
	}
	if scored[1].Score != 0.0 {
		t.Errorf("Expected score 0 for unrelated item, got %.2f", scored[1].Score)
	}
}

func TestRate_EmptyTokens(t *testing.T) {
	scored := Rate(evidenceWith("anything"), nil)
	if len(scored) != 1 || scored[0].Score != 0 {
		t.Errorf("Expected zero score with no tokens, got %+v", scored)
	}
}
