package heuristics

import (
	"sort"
	"unicode/utf8"
)

// Match is one rule hit: the category it belongs to and the term or
// pattern that fired
type Match struct {
	Category string `json:"category"`
	Term     string `json:"term"`
}

// Result is the outcome of scanning one piece of text
type Result struct {
	// Categories lists distinct matched category ids, sorted
	Categories []string `json:"categories"`

	// Matches lists every distinct rule hit, sorted by category then term
	Matches []Match `json:"matches"`

	// Sourced is true when the text cites any recognized sourcing language
	Sourced bool `json:"sourced"`

	// LacksSourcing is true when the text is long enough to warrant
	// citations but has none
	LacksSourcing bool `json:"lacks_sourcing"`
}

// Scan folds text and runs every compiled rule against it.
// A rule matches when it hits in any projection, so light obfuscation
// (leetspeak, stretched runs) still trips the category.
// Empty or whitespace-only text returns a zero Result
func (p *Pack) Scan(text string) Result {
	var res Result

	pr := Fold(text)
	if pr.Base == "" {
		return res
	}
	views := pr.Views()

	type key struct{ cat, term string }
	seen := make(map[key]struct{})
	cats := make(map[string]struct{})

	for _, r := range p.rules {
		k := key{r.category, r.term}
		if _, dup := seen[k]; dup {
			continue
		}
		for _, v := range views {
			if r.re.MatchString(v) {
				seen[k] = struct{}{}
				cats[r.category] = struct{}{}
				res.Matches = append(res.Matches, Match{Category: r.category, Term: r.term})
				break
			}
		}
	}

	for _, r := range p.sourcing {
		if res.Sourced {
			break
		}
		for _, v := range views {
			if r.re.MatchString(v) {
				res.Sourced = true
				break
			}
		}
	}

	for c := range cats {
		res.Categories = append(res.Categories, c)
	}
	sort.Strings(res.Categories)
	sort.Slice(res.Matches, func(i, j int) bool {
		if res.Matches[i].Category != res.Matches[j].Category {
			return res.Matches[i].Category < res.Matches[j].Category
		}
		return res.Matches[i].Term < res.Matches[j].Term
	})

	res.LacksSourcing = utf8.RuneCountInString(pr.Base) > p.MinLenForSourcing && !res.Sourced

	return res
}
