package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/claimguard/internal/model"
)

const ddgPage = `<html><body>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://one.example/story">First Story</a></h2>
  <a class="result__snippet" href="https://one.example/story">Snippet about the <b>first</b> story.</a>
</div>
<div class="result results_links">
  <h2 class="result__title"><a class="result__a" href="https://two.example/post">Second Post</a></h2>
  <a class="result__snippet" href="https://two.example/post">Second snippet here.</a>
</div>
</body></html>`

func ddgConfig(url string) model.SearchConfig {
	return model.SearchConfig{
		DuckDuckGoURL:   url,
		UserAgent:       "test-agent",
		ProviderTimeout: 2 * time.Second,
		// robots disabled so httptest servers need no robots.txt route
		CheckRobots: false,
	}
}

func TestDuckDuckGo_ParsesResultsPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "some claim" {
			t.Errorf("Expected query param, got %q", got)
		}
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer server.Close()

	p := NewDuckDuckGoProvider(ddgConfig(server.URL), nil)

	results, err := p.Search(context.Background(), "some claim")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Title != "First Story" {
		t.Errorf("Unexpected title: %q", results[0].Title)
	}
	if !strings.Contains(results[0].Snippet, "first") {
		t.Errorf("Unexpected snippet: %q", results[0].Snippet)
	}
	if results[1].Link != "https://two.example/post" {
		t.Errorf("Unexpected link: %q", results[1].Link)
	}
}

func TestDuckDuckGo_SynthesizesPlaceholder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><title>DuckDuckGo</title><body>nothing parseable</body></html>"))
	}))
	defer server.Close()

	p := NewDuckDuckGoProvider(ddgConfig(server.URL), nil)

	results, err := p.Search(context.Background(), "mystery claim")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("Expected single placeholder result, got %d", len(results))
	}
	if !strings.Contains(results[0].Title, "mystery claim") {
		t.Errorf("Expected placeholder to name the query, got %q", results[0].Title)
	}
}

func TestDuckDuckGo_Non200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	p := NewDuckDuckGoProvider(ddgConfig(server.URL), nil)

	if _, err := p.Search(context.Background(), "query"); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

func TestDuckDuckGo_AlwaysAvailable(t *testing.T) {
	p := NewDuckDuckGoProvider(ddgConfig("https://unused.example"), nil)
	if !p.Available() {
		t.Error("Expected fallback provider to always be available")
	}
}
