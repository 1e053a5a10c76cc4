// Package heuristic is the in-process text adapter: it scores content
// against the embedded pattern pack with no network dependency, so a text
// verification always has at least one backend available
package heuristic

import (
	"context"
	"strings"

	"veracity/internal/adapters/providers"
	"veracity/internal/core/aggregate"
	"veracity/internal/core/content"
	"veracity/internal/core/heuristics"
)

// Name is the registry name
const Name = "heuristic"

const (
	baseLikelihood   = 0.1
	perCategory      = 0.2
	unsourcedPenalty = 0.2
	maxLikelihood    = 0.95
)

// SignalUnsourced flags long-form text with no recognizable citations
const SignalUnsourced = "no_cited_sources"

func init() {
	providers.Register(Name, func(providers.Config) (providers.Adapter, error) {
		return New()
	})
}

// Analyzer scans text with the compiled pattern pack
type Analyzer struct {
	pack *heuristics.Pack
}

// New loads the embedded pack and returns the adapter
func New() (*Analyzer, error) {
	p, err := heuristics.Load()
	if err != nil {
		return nil, err
	}
	return &Analyzer{pack: p}, nil
}

// Name implements providers.Adapter
func (a *Analyzer) Name() string { return Name }

// Supports implements providers.Adapter
func (a *Analyzer) Supports(t content.Type) bool { return t == content.TypeText }

// Analyze implements providers.Adapter
func (a *Analyzer) Analyze(ctx context.Context, req providers.Request) (aggregate.Finding, error) {
	if err := ctx.Err(); err != nil {
		return aggregate.Finding{}, providers.Classify(Name, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return aggregate.Finding{}, providers.Errorf(Name, providers.ReasonInvalidInput, "no text to scan")
	}

	scan := a.pack.Scan(req.Text)
	score, signals := Score(scan)
	return aggregate.Finding{Provider: Name, Score: score, Signals: signals}, nil
}

// Score converts a pack scan into an authenticity sub-score and signal list.
// Likelihood climbs 0.2 per distinct matched category from a 0.1 floor, plus
// 0.2 for long unsourced text, capped at 0.95; the score is its complement.
// Exported because the speech adapter applies the same scoring to transcripts
func Score(scan heuristics.Result) (float64, []string) {
	likelihood := baseLikelihood + perCategory*float64(len(scan.Categories))
	if scan.LacksSourcing {
		likelihood += unsourcedPenalty
	}
	if likelihood > maxLikelihood {
		likelihood = maxLikelihood
	}

	signals := make([]string, 0, len(scan.Categories)+1)
	signals = append(signals, scan.Categories...)
	if scan.LacksSourcing {
		signals = append(signals, SignalUnsourced)
	}
	return 1 - likelihood, signals
}
