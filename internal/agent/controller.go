package agent

import (
	"context"
	"sort"

	"github.com/ppiankov/claimguard/internal/extract"
	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/query"
	"github.com/ppiankov/claimguard/internal/score"
	"github.com/ppiankov/claimguard/internal/search"
	"github.com/ppiankov/claimguard/internal/verdict"
)

// State enumerates the verification machine's states
type State int

const (
	StateExtract State = iota
	StateBuildQuery
	StateSearch
	StateScore
	StateVerdict
	StateCheck
	StateReflect
	StateDone
)

func (s State) String() string {
	switch s {
	case StateExtract:
		return "extract"
	case StateBuildQuery:
		return "build_query"
	case StateSearch:
		return "search"
	case StateScore:
		return "score"
	case StateVerdict:
		return "verdict"
	case StateCheck:
		return "check"
	case StateReflect:
		return "reflect"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Check decisions recorded in the state's LastAction
const (
	actionReflect = "reflect"
	actionFinish  = "finish"
)

// rawTokenCount is how many leading claim tokens feed per-item scoring
const rawTokenCount = 8

// topSourceCount caps the sources returned in the report
const topSourceCount = 3

// Controller drives one verification request through the bounded-retry
// machine: extract -> build_query -> search -> score -> verdict -> check,
// looping check -> reflect -> search while evidence stays weak and the
// attempt budget lasts. No step fails on weak or missing evidence; those
// are expected outcomes that drive the retry decision.
type Controller struct {
	searcher         search.Searcher
	maxAttempts      int
	confidenceTarget float64
}

// NewController creates a controller over the given retrieval facade
func NewController(searcher search.Searcher, cfg model.ReflectionConfig) *Controller {
	return &Controller{
		searcher:         searcher,
		maxAttempts:      cfg.MaxAttempts,
		confidenceTarget: cfg.ConfidenceTarget,
	}
}

// Run executes the machine to completion and reports the outcome.
// Termination is guaranteed: attempts only grows and is bounded by
// the configured maximum, so check eventually forces done.
func (c *Controller) Run(ctx context.Context, text string) *model.VerificationReport {
	state := model.NewVerificationState(text, c.maxAttempts, c.confidenceTarget)

	for s := StateExtract; s != StateDone; s = next(s, state) {
		c.step(ctx, s, state)
	}

	return buildReport(state)
}

// next is the pure transition function over (state, verification state)
func next(s State, vs *model.VerificationState) State {
	switch s {
	case StateExtract:
		return StateBuildQuery
	case StateBuildQuery:
		return StateSearch
	case StateSearch:
		return StateScore
	case StateScore:
		return StateVerdict
	case StateVerdict:
		return StateCheck
	case StateCheck:
		if vs.LastAction == actionReflect {
			return StateReflect
		}
		return StateDone
	case StateReflect:
		return StateSearch
	default:
		return StateDone
	}
}

// step executes one state's side effects on the verification state
func (c *Controller) step(ctx context.Context, s State, vs *model.VerificationState) {
	switch s {
	case StateExtract:
		vs.Claim = extract.Claim(vs.Text)
		vs.Trace("Claim extracted.")

	case StateBuildQuery:
		vs.Queries = query.Variants(vs.Claim)
		vs.Trace("Generated %d queries.", len(vs.Queries))

	case StateSearch:
		items := c.searcher.SearchAll(ctx, vs.Queries)
		vs.Sources = make([]model.ScoredSource, len(items))
		for i, item := range items {
			vs.Sources[i] = model.ScoredSource{EvidenceItem: item}
		}
		vs.Trace("Searched %d queries, found %d sources.", len(vs.Queries), len(items))

	case StateScore:
		tokens := score.RawTokens(vs.Claim, rawTokenCount)
		items := make([]model.EvidenceItem, len(vs.Sources))
		for i, src := range vs.Sources {
			items[i] = src.EvidenceItem
		}
		vs.Sources = score.Rate(items, tokens)
		vs.Trace("Scored %d sources.", len(vs.Sources))

	case StateVerdict:
		v, conf := verdict.FromMaxScore(vs.Sources)
		vs.Verdict = v
		vs.Confidence = conf
		vs.Trace("Determined verdict: %s (conf=%.2f).", v, conf)

	case StateCheck:
		c.check(vs)

	case StateReflect:
		vs.Attempts++
		base := vs.Claim
		if base == "" {
			base = vs.Text
		}
		refined := query.Refinements(base)
		vs.Queries = append(refined, vs.Queries...)
		vs.Trace("Reflection pass %d: generated %d refined queries.", vs.Attempts, len(refined))
	}
}

// check decides between another reflection pass and termination
func (c *Controller) check(vs *model.VerificationState) {
	switch {
	case len(vs.Sources) < 2 && vs.Attempts < vs.MaxAttempts:
		vs.Trace("Reflection triggered: insufficient evidence.")
		vs.LastAction = actionReflect
	case vs.Confidence < vs.ConfidenceTarget && vs.Attempts < vs.MaxAttempts:
		vs.Trace("Reflection triggered: low confidence (%.2f < %.2f).", vs.Confidence, vs.ConfidenceTarget)
		vs.LastAction = actionReflect
	default:
		vs.Trace("No reflection needed; finishing.")
		vs.LastAction = actionFinish
	}
}

// buildReport consumes the terminal state
func buildReport(vs *model.VerificationState) *model.VerificationReport {
	top := make([]model.ScoredSource, len(vs.Sources))
	copy(top, vs.Sources)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Score > top[j].Score })
	if len(top) > topSourceCount {
		top = top[:topSourceCount]
	}

	return &model.VerificationReport{
		Verdict:    vs.Verdict,
		Confidence: vs.Confidence,
		Claim:      vs.Claim,
		Queries:    vs.Queries,
		TopSources: top,
		Reasoning:  vs.Reasoning,
		Attempts:   vs.Attempts,
	}
}
