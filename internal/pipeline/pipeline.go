package pipeline

import (
	"context"

	"github.com/ppiankov/claimguard/internal/cache"
	"github.com/ppiankov/claimguard/internal/extract"
	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/query"
	"github.com/ppiankov/claimguard/internal/score"
	"github.com/ppiankov/claimguard/internal/search"
	"github.com/ppiankov/claimguard/internal/verdict"
	"github.com/ppiankov/claimguard/internal/worker"
)

// invalidClaimNote is carried in results produced by the invalid-claim
// short circuit
const invalidClaimNote = "invalid or insufficient claim content"

// Pipeline orchestrates single-pass verification: extract -> build query ->
// retrieve -> score -> credibility. The reflection controller reuses its
// retrieval facade for the bounded-retry flow.
type Pipeline struct {
	searcher search.Searcher
	direct   search.Searcher // Uncached facade for probes that must not persist state
	serper   *search.SerperProvider
	cfg      *model.Config
}

// New wires the pipeline from configuration: rate limiter, provider chain,
// and optionally the cached retrieval facade.
func New(cfg *model.Config) *Pipeline {
	limiter := worker.NewLimiter(cfg.Search.RatePerSecond, cfg.Search.RateBurst)

	serper := search.NewSerperProvider(cfg.Search, limiter)
	ddg := search.NewDuckDuckGoProvider(cfg.Search, limiter)

	manager := search.NewManager(
		cfg.Search.MaxResults,
		cfg.Concurrency.SearchWorkers,
		serper, ddg,
	)

	var searcher search.Searcher = manager
	if cfg.Cache.Enabled {
		searcher = search.NewCached(manager, newStore(cfg.Cache))
	}

	return &Pipeline{
		searcher: searcher,
		direct:   manager,
		serper:   serper,
		cfg:      cfg,
	}
}

// newStore picks the cache layering from config
func newStore(cfg model.CacheConfig) cache.Cache {
	if cfg.DiskDir != "" {
		return cache.NewLayeredCache(cfg.MemoryTTL, cfg.DiskDir, cfg.DiskTTL)
	}
	return cache.NewMemoryCache(cfg.MemoryTTL)
}

// Searcher exposes the retrieval facade for the reflection controller
func (p *Pipeline) Searcher() search.Searcher {
	return p.searcher
}

// Run verifies one raw text in a single pass. It never fails: invalid
// claims and total retrieval failure both resolve to well-formed neutral
// results.
func (p *Pipeline) Run(ctx context.Context, text string) *model.PipelineResult {
	return p.run(ctx, text, p.searcher)
}

func (p *Pipeline) run(ctx context.Context, text string, searcher search.Searcher) *model.PipelineResult {
	claim := extract.Claim(text)

	if !extract.IsValid(claim) {
		return &model.PipelineResult{
			Claim:       claim,
			Credibility: 0.5,
			Results:     []model.EvidenceItem{},
			Source:      search.SourceNone,
			Error:       invalidClaimNote,
		}
	}

	q := query.Build(claim)
	results, source := searcher.SearchWithSource(ctx, q)

	// Fallback phrasing when the canonical query found nothing
	if len(results) == 0 {
		q = query.BuildAlternative(claim)
		results, source = searcher.SearchWithSource(ctx, q)
	}

	evidenceScore := score.Evidence(score.Keywords(claim), results)

	return &model.PipelineResult{
		Claim:       claim,
		Query:       q,
		Score:       evidenceScore,
		Credibility: verdict.Credibility(evidenceScore),
		Results:     results,
		Source:      source,
	}
}

// RunBatch verifies many texts with bounded parallelism, preserving input
// order in the results.
func (p *Pipeline) RunBatch(ctx context.Context, texts []string) []*model.PipelineResult {
	results := make([]*model.PipelineResult, len(texts))

	pool := worker.NewPool(ctx, p.cfg.Concurrency.BatchWorkers)
	pool.Start()

	for i, text := range texts {
		idx, t := i, text
		pool.Submit(func(taskCtx context.Context) {
			results[idx] = p.Run(taskCtx, t)
		})
	}
	pool.Wait()

	// Tasks skipped by cancellation still yield well-formed results
	for i, r := range results {
		if r == nil {
			results[i] = &model.PipelineResult{
				Claim:       extract.Claim(texts[i]),
				Credibility: 0.5,
				Results:     []model.EvidenceItem{},
				Source:      search.SourceNone,
				Error:       "verification cancelled",
			}
		}
	}

	return results
}

// Validate probes each component without mutating persisted state: static
// components report healthy, the keyed provider reports configuration, and
// a smoke verification exercises the whole path.
func (p *Pipeline) Validate(ctx context.Context) map[string]bool {
	status := map[string]bool{
		"claim_extractor": true,
		"query_builder":   true,
		"serper":          p.serper.Available(),
		"duckduckgo":      true,
		"scoring":         true,
	}

	// The smoke run bypasses the cache so probing never persists state
	smoke := p.run(ctx, "Breaking news: Scientists discover new planet", p.direct)
	status["pipeline"] = smoke != nil && smoke.Claim != ""

	return status
}
