package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/util"
	"github.com/ppiankov/claimguard/internal/worker"
)

// ddgMaxResults caps how many parsed results one query contributes
const ddgMaxResults = 10

// DuckDuckGoProvider is the keyless fallback provider. It scrapes the HTML
// results page, so it is best-effort by nature: any failure, including a
// markup change, degrades to zero results or a synthesized placeholder.
type DuckDuckGoProvider struct {
	url        string
	userAgent  string
	httpClient *http.Client
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewDuckDuckGoProvider creates the fallback provider from config
func NewDuckDuckGoProvider(cfg model.SearchConfig, limiter *worker.Limiter) *DuckDuckGoProvider {
	timeout := cfg.ProviderTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	var robots *util.RobotsChecker
	if cfg.CheckRobots {
		robots = util.NewRobotsChecker(cfg.UserAgent, timeout)
	}

	return &DuckDuckGoProvider{
		url:       cfg.DuckDuckGoURL,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		robots:  robots,
		limiter: limiter,
	}
}

// Name identifies the provider
func (p *DuckDuckGoProvider) Name() string { return "duckduckgo" }

// Available always reports true; the fallback needs no credential
func (p *DuckDuckGoProvider) Available() bool { return true }

// Search runs one query against the HTML results page
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string) ([]model.EvidenceItem, error) {
	if query == "" {
		return nil, nil
	}

	target := p.url + "?q=" + url.QueryEscape(query)

	if p.robots != nil && !p.robots.IsAllowed(ctx, target) {
		return nil, fmt.Errorf("disallowed by robots.txt: %s", p.url)
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, p.url); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	results := parseResultsPage(string(body))

	// The page answered but the markup yielded nothing: return a single
	// placeholder pointing at the query so downstream still has a lead
	if len(results) == 0 && len(body) > 0 {
		results = append(results, model.EvidenceItem{
			Title:   "DuckDuckGo result for: " + query,
			Snippet: "Fallback search result",
			Link:    "https://duckduckgo.com/?q=" + url.QueryEscape(query),
		})
	}

	return results, nil
}

// parseResultsPage extracts title/snippet/link records from the lite HTML
// results markup (anchors classed result__a, snippets classed
// result__snippet)
func parseResultsPage(page string) []model.EvidenceItem {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	var titles []model.EvidenceItem
	var snippets []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			class := attrValue(n, "class")
			switch {
			case n.Data == "a" && strings.Contains(class, "result__a"):
				titles = append(titles, model.EvidenceItem{
					Title: strings.TrimSpace(nodeText(n)),
					Link:  attrValue(n, "href"),
				})
			case strings.Contains(class, "result__snippet"):
				snippets = append(snippets, strings.TrimSpace(nodeText(n)))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var results []model.EvidenceItem
	for i, item := range titles {
		if i < len(snippets) {
			item.Snippet = snippets[i]
		}
		if item.Title == "" && item.Snippet == "" {
			continue
		}
		results = append(results, item)
		if len(results) >= ddgMaxResults {
			break
		}
	}

	return results
}

// attrValue returns the named attribute of a node, or ""
func attrValue(n *html.Node, name string) string {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// nodeText concatenates the text content under a node
func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(buf.String()), " ")
}
