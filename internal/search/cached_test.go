package search

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/ppiankov/claimguard/internal/cache"
)

func TestCached_SecondCallHitsCache(t *testing.T) {
	p := &fakeProvider{name: "p", available: true, results: items("a", "b")}
	m := NewManager(5, 1, p)
	c := NewCached(m, cache.NewMemoryCache(time.Minute))

	first, firstSource := c.SearchWithSource(context.Background(), "identical query")
	second, secondSource := c.SearchWithSource(context.Background(), "identical query")

	if p.callCount() != 1 {
		t.Errorf("Expected exactly one underlying call, got %d", p.callCount())
	}
	if firstSource != "p" {
		t.Errorf("Expected provider source on cold call, got %q", firstSource)
	}
	if secondSource != SourceCache {
		t.Errorf("Expected cache source on warm call, got %q", secondSource)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical result sequences from both calls")
	}
}

func TestCached_KeyedByExactString(t *testing.T) {
	p := &fakeProvider{name: "p", available: true, results: items("a")}
	m := NewManager(5, 1, p)
	c := NewCached(m, cache.NewMemoryCache(time.Minute))

	c.Search(context.Background(), "a query")
	c.Search(context.Background(), "a query ") // trailing space: different key

	if p.callCount() != 2 {
		t.Errorf("Expected exact-string keying to miss, got %d calls", p.callCount())
	}
}

func TestCached_UnansweredQueriesNotCached(t *testing.T) {
	p := &fakeProvider{name: "p", available: false}
	m := NewManager(5, 1, p)
	c := NewCached(m, cache.NewMemoryCache(time.Minute))

	c.Search(context.Background(), "q")

	// Provider comes back: the retry must reach it
	p.available = true
	p.results = items("a")

	results := c.Search(context.Background(), "q")
	if len(results) != 1 {
		t.Errorf("Expected recovery after provider outage, got %d results", len(results))
	}
}

func TestCached_SearchAllDedupes(t *testing.T) {
	p := &fakeProvider{name: "p", available: true, results: items("a", "b")}
	m := NewManager(5, 1, p)
	c := NewCached(m, cache.NewMemoryCache(time.Minute))

	results := c.SearchAll(context.Background(), []string{"q1", "q2"})

	if len(results) != 2 {
		t.Errorf("Expected 2 deduplicated results, got %d", len(results))
	}
}
