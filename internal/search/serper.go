package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/util"
	"github.com/ppiankov/claimguard/internal/worker"
)

// serperMaxResults caps how many organic results one query contributes
const serperMaxResults = 5

// SerperProvider is the keyed primary provider (Google results via Serper)
type SerperProvider struct {
	url        string
	apiKey     string
	httpClient *http.Client
	limiter    *worker.Limiter
}

// NewSerperProvider creates the primary provider from config
func NewSerperProvider(cfg model.SearchConfig, limiter *worker.Limiter) *SerperProvider {
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	return &SerperProvider{
		url:    cfg.SerperURL,
		apiKey: cfg.SerperAPIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		limiter: limiter,
	}
}

// Name identifies the provider
func (p *SerperProvider) Name() string { return "serper" }

// Available reports whether an API key is configured
func (p *SerperProvider) Available() bool { return p.apiKey != "" }

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

// Search runs one query against the Serper API
func (p *SerperProvider) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	if !p.Available() {
		return nil, nil
	}
	if query == "" {
		return nil, nil
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.url); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	payload, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-KEY", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	var results []model.EvidenceItem
	for _, item := range parsed.Organic {
		if item.Title == "" && item.Snippet == "" {
			continue
		}
		results = append(results, model.EvidenceItem{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
		if len(results) >= serperMaxResults {
			break
		}
	}

	return results, nil
}
