package query

import (
	"reflect"
	"strings"
	"testing"
)

func TestBuild_AppendsSuffix(t *testing.T) {
	claim := "the prime minister resigned yesterday"

	q := Build("  " + claim + "  ")

	if !strings.HasSuffix(q, verificationSuffix) {
		t.Errorf("Expected query to end with %q, got %q", verificationSuffix, q)
	}
	if !strings.HasPrefix(q, claim) {
		t.Errorf("Expected query to start with trimmed claim, got %q", q)
	}
}

func TestBuild_EmptyClaim(t *testing.T) {
	if q := Build("   "); q != "" {
		t.Errorf("Expected empty query for empty claim, got %q", q)
	}
	if q := BuildAlternative(""); q != "" {
		t.Errorf("Expected empty alternative query for empty claim, got %q", q)
	}
}

func TestBuildAlternative_AppendsSuffix(t *testing.T) {
	q := BuildAlternative("vaccines cause autism")

	if q != "vaccines cause autism fact check" {
		t.Errorf("Unexpected alternative query: %q", q)
	}
}

func TestVariants(t *testing.T) {
	variants := Variants("one two three four five six seven eight")

	if len(variants) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(variants))
	}
	if variants[2] != "one two three four five six" {
		t.Errorf("Expected 6-word head variant, got %q", variants[2])
	}
	if !strings.HasSuffix(variants[1], " news") {
		t.Errorf("Expected news variant, got %q", variants[1])
	}
}

func TestVariants_ShortClaim(t *testing.T) {
	variants := Variants("moon is cheese")

	// No head variant when the claim is already short
	if len(variants) != 2 {
		t.Errorf("Expected 2 variants for short claim, got %d", len(variants))
	}
}

func TestRefinements_Deterministic(t *testing.T) {
	base := "aliens landed in nevada"

	first := Refinements(base)
	second := Refinements(base)

	if len(first) != len(refinementModifiers) {
		t.Fatalf("Expected %d refinements, got %d", len(refinementModifiers), len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical refinement ordering across runs for the same claim")
	}

	for _, q := range first {
		if !strings.HasPrefix(q, base+" ") {
			t.Errorf("Expected refinement to extend the base claim, got %q", q)
		}
	}
}

func TestRefinements_VariesByClaim(t *testing.T) {
	a := Refinements("claim number one for shuffling")
	b := Refinements("a completely different claim text")

	// Strip the base prefix to compare modifier orderings
	modsOf := func(base string, qs []string) []string {
		mods := make([]string, len(qs))
		for i, q := range qs {
			mods[i] = strings.TrimPrefix(q, base+" ")
		}
		return mods
	}

	if reflect.DeepEqual(modsOf("claim number one for shuffling", a), modsOf("a completely different claim text", b)) {
		t.Log("Different claims produced the same ordering; acceptable but unexpected")
	}
}

func TestRefinements_EmptyBase(t *testing.T) {
	if r := Refinements("  "); r != nil {
		t.Errorf("Expected nil refinements for empty base, got %v", r)
	}
}
