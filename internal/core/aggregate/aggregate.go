// Package aggregate combines provider findings into one verdict.
// Aggregation is a pure function: the same findings always produce
// the same score, risk bucket and signal set
package aggregate

import (
	"sort"
	"time"
)

// SignalUnavailable marks a verdict produced with zero surviving findings
const SignalUnavailable = "analysis_unavailable"

// Finding is one provider's contribution for a single request
type Finding struct {
	// Provider names the adapter that produced this finding
	Provider string

	// Score is the authenticity sub-score in [0,1], 1 fully authentic
	Score float64

	// Signals are the flags the provider raised
	Signals []string

	// Latency is how long the provider call took
	Latency time.Duration
}

// Verdict is the combined outcome of one request
type Verdict struct {
	// Score is the equal-weight mean of finding scores.
	// Only meaningful when Determined
	Score float64

	// Risk is the bucketed severity, RiskUnknown when undetermined
	Risk RiskLevel

	// Signals is the deduplicated union of finding signals, sorted
	Signals []string

	// Determined is false when no finding survived
	Determined bool

	// Providers counts the findings that contributed
	Providers int
}

// Aggregate merges findings under the given cutpoints.
// Zero findings produce the undetermined sentinel, never a fabricated score
func Aggregate(findings []Finding, th Thresholds) Verdict {
	if len(findings) == 0 {
		return Verdict{
			Risk:    RiskUnknown,
			Signals: []string{SignalUnavailable},
		}
	}

	var sum float64
	seen := make(map[string]struct{})
	for _, f := range findings {
		sum += clamp01(f.Score)
		for _, s := range f.Signals {
			if s == "" {
				continue
			}
			seen[s] = struct{}{}
		}
	}
	score := sum / float64(len(findings))

	signals := make([]string, 0, len(seen))
	for s := range seen {
		signals = append(signals, s)
	}
	sort.Strings(signals)

	return Verdict{
		Score:      score,
		Risk:       th.Risk(score),
		Signals:    signals,
		Determined: true,
		Providers:  len(findings),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
