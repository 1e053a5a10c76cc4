package heuristics

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if p.Version != 1 {
		t.Fatalf("version = %d, want 1", p.Version)
	}
	if p.MinLenForSourcing != 100 {
		t.Fatalf("min_len_for_sourcing = %d, want 100", p.MinLenForSourcing)
	}
	if len(p.rules) == 0 || len(p.sourcing) == 0 {
		t.Fatalf("expected compiled rules and sourcing terms")
	}

	want := []string{
		"conspiracy",
		"deepfake_indicators",
		"election_manipulation",
		"fabrication",
		"health_misinformation",
		"sensational",
		"urgency",
	}
	if len(p.Categories) != len(want) {
		t.Fatalf("categories = %v, want %v", p.Categories, want)
	}
	for i, id := range want {
		if p.Categories[i] != id {
			t.Fatalf("categories[%d] = %q, want %q (sorted)", i, p.Categories[i], id)
		}
	}

	// Rules are sorted by category then term
	for i := 1; i < len(p.rules); i++ {
		a, b := p.rules[i-1], p.rules[i]
		if a.category > b.category || (a.category == b.category && a.term > b.term) {
			t.Fatalf("rules out of order at %d: %s/%s before %s/%s", i, a.category, a.term, b.category, b.term)
		}
	}
}

func TestLoadBytes_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "malformed json",
			json: `{"version": 1,`,
			want: "parse",
		},
		{
			name: "wrong version",
			json: `{"version": 2, "min_len_for_sourcing": 100, "sourcing_terms": ["study"], "categories": [{"id": "x", "terms": ["y"]}]}`,
			want: "unsupported",
		},
		{
			name: "zero min len",
			json: `{"version": 1, "min_len_for_sourcing": 0, "sourcing_terms": ["study"], "categories": [{"id": "x", "terms": ["y"]}]}`,
			want: "min_len_for_sourcing",
		},
		{
			name: "empty category id",
			json: `{"version": 1, "min_len_for_sourcing": 100, "sourcing_terms": ["study"], "categories": [{"id": " ", "terms": ["y"]}]}`,
			want: "empty id",
		},
		{
			name: "duplicate category",
			json: `{"version": 1, "min_len_for_sourcing": 100, "sourcing_terms": ["study"], "categories": [{"id": "x", "terms": ["y"]}, {"id": "x", "terms": ["z"]}]}`,
			want: "duplicate",
		},
		{
			name: "category without rules",
			json: `{"version": 1, "min_len_for_sourcing": 100, "sourcing_terms": ["study"], "categories": [{"id": "x"}]}`,
			want: "no terms",
		},
		{
			name: "invalid pattern regex",
			json: `{"version": 1, "min_len_for_sourcing": 100, "sourcing_terms": ["study"], "categories": [{"id": "x", "patterns": ["(unclosed"]}]}`,
			want: "pattern",
		},
		{
			name: "no sourcing terms",
			json: `{"version": 1, "min_len_for_sourcing": 100, "sourcing_terms": [], "categories": [{"id": "x", "terms": ["y"]}]}`,
			want: "sourcing_terms",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tc.json))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestTermPattern_WordBoundaries(t *testing.T) {
	p, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	find := func(cat, term string) *rule {
		for i := range p.rules {
			if p.rules[i].category == cat && p.rules[i].term == term {
				return &p.rules[i]
			}
		}
		t.Fatalf("rule %s/%s not found", cat, term)
		return nil
	}

	breaking := find("urgency", "breaking")
	if breaking.re.MatchString("heartbreaking news") {
		t.Fatalf("'breaking' must not match inside 'heartbreaking'")
	}
	if !breaking.re.MatchString("breaking: live report") {
		t.Fatalf("'breaking' should match before punctuation")
	}

	// Phrase terms tolerate arbitrary whitespace runs between words
	var according *rule
	for i := range p.sourcing {
		if p.sourcing[i].term == "according to" {
			according = &p.sourcing[i]
		}
	}
	if according == nil {
		t.Fatalf("sourcing term 'according to' not found")
	}
	if !according.re.MatchString("according \t to officials") {
		t.Fatalf("phrase term should span whitespace runs")
	}
}
