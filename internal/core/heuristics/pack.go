// Package heuristics loads and compiles the embedded misinformation
// pattern pack and scans text for the categories it trips.
// The pack is the baseline text provider; it never fabricates scores,
// it only reports which suspicious categories matched
package heuristics

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

//go:embed patterns.json
var embedded []byte

type rawCategory struct {
	ID       string   `json:"id"`
	Terms    []string `json:"terms"`
	Patterns []string `json:"patterns,omitempty"`
}

type rawPack struct {
	Version           int            `json:"version"`
	Meta              map[string]any `json:"meta"`
	MinLenForSourcing int            `json:"min_len_for_sourcing"`
	SourcingTerms     []string       `json:"sourcing_terms"`
	Categories        []rawCategory  `json:"categories"`
}

// rule is one compiled matcher bound to its category
type rule struct {
	category string
	term     string // source term or raw pattern, for reporting
	re       *regexp.Regexp
}

// Pack represents the compiled pattern pack
type Pack struct {
	Version int
	Meta    map[string]any

	// Categories lists distinct category ids, sorted
	Categories []string

	// MinLenForSourcing is the folded length above which unsourced
	// text earns the no-sources flag
	MinLenForSourcing int

	rules    []rule
	sourcing []rule
}

// Load returns the compiled pack from the embedded patterns.json
func Load() (*Pack, error) {
	return LoadBytes(embedded)
}

// LoadBytes compiles a pack from raw JSON, for preflight checks on
// candidate packs before they are embedded
func LoadBytes(b []byte) (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(b, &rp); err != nil {
		return nil, fmt.Errorf("heuristics: parse patterns.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("heuristics: unsupported patterns.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:           rp.Version,
		Meta:              rp.Meta,
		MinLenForSourcing: rp.MinLenForSourcing,
	}
	if p.MinLenForSourcing <= 0 {
		return nil, fmt.Errorf("heuristics: min_len_for_sourcing must be positive")
	}

	seen := make(map[string]struct{}, len(rp.Categories))
	for _, c := range rp.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("heuristics: category with empty id")
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("heuristics: duplicate category %q", id)
		}
		seen[id] = struct{}{}
		p.Categories = append(p.Categories, id)

		if len(c.Terms) == 0 && len(c.Patterns) == 0 {
			return nil, fmt.Errorf("heuristics: category %q has no terms or patterns", id)
		}

		for _, t := range c.Terms {
			term := strings.ToLower(strings.TrimSpace(t))
			if term == "" {
				continue
			}
			re, err := regexp.Compile(termPattern(term))
			if err != nil {
				return nil, fmt.Errorf("heuristics: term %q in %q: %w", term, id, err)
			}
			p.rules = append(p.rules, rule{category: id, term: term, re: re})
		}
		// Raw patterns are authored against folded text, so they are
		// lowercase already; compile them verbatim
		for _, raw := range c.Patterns {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			re, err := regexp.Compile(raw)
			if err != nil {
				return nil, fmt.Errorf("heuristics: pattern %q in %q: %w", raw, id, err)
			}
			p.rules = append(p.rules, rule{category: id, term: raw, re: re})
		}
	}

	for _, t := range rp.SourcingTerms {
		term := strings.ToLower(strings.TrimSpace(t))
		if term == "" {
			continue
		}
		re, err := regexp.Compile(termPattern(term))
		if err != nil {
			return nil, fmt.Errorf("heuristics: sourcing term %q: %w", term, err)
		}
		p.sourcing = append(p.sourcing, rule{category: "sourcing", term: term, re: re})
	}
	if len(p.sourcing) == 0 {
		return nil, fmt.Errorf("heuristics: sourcing_terms must not be empty")
	}

	// Deterministic iteration for tests/debug
	sort.Strings(p.Categories)
	sort.Slice(p.rules, func(i, j int) bool {
		if p.rules[i].category != p.rules[j].category {
			return p.rules[i].category < p.rules[j].category
		}
		return p.rules[i].term < p.rules[j].term
	})

	return p, nil
}

// RuleCounts reports compiled matcher counts, category rules then sourcing terms
func (p *Pack) RuleCounts() (rules, sourcing int) { return len(p.rules), len(p.sourcing) }

// termPattern compiles a literal term to a word-bounded regex.
// Spaces inside phrases match any whitespace run
func termPattern(term string) string {
	quoted := regexp.QuoteMeta(term)
	quoted = strings.ReplaceAll(quoted, ` `, `\s+`)
	return `\b` + quoted + `\b`
}
