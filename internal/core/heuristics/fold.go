// Text folding for pattern matching
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Curly quotes to ASCII apostrophe
// 7 Collapse whitespace to single spaces and trim
package heuristics

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Projections bundles alternate views of folded text so lightly
// obfuscated variants still hit the same patterns
type Projections struct {
	Base   string // folded text (what most rules hit)
	Leet   string // ASCII lookalikes mapped to letters ("sh0cking" -> "shocking")
	Squash string // long character runs capped at 2 ("shooocking" -> "shoocking")
}

// Views returns the projections in match order
func (p Projections) Views() [3]string { return [3]string{p.Base, p.Leet, p.Squash} }

// pool of fresh transformer chains
var foldPool = sync.Pool{
	New: func() any {
		// order matters: NFKD decomposes ligatures, fullwidth forms and
		// accented letters so the mark strip that follows can see them
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map halfwidth forms to their full shapes
		)
	},
}

// Fold produces the match projections for s
func Fold(s string) Projections {
	if s == "" {
		return Projections{}
	}

	s = strings.ToValidUTF8(s, "")

	tr := foldPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)

	ns = asciiQuotes(ns)
	base := collapseSpaces(ns)

	return Projections{
		Base:   base,
		Leet:   leetFold(base),
		Squash: squashRuns(base, 2),
	}
}

// asciiQuotes maps curly and modifier apostrophes to ASCII so
// "don't" written either way matches the same term
func asciiQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '‘', '’', 'ʼ', '`':
			return '\''
		}
		return r
	}, s)
}

// leetFold maps a tiny curated set of ASCII lookalikes to their letters
func leetFold(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '4', '@':
			b.WriteRune('a')
		case '0':
			b.WriteRune('o')
		case '1', '!':
			b.WriteRune('i')
		case '3':
			b.WriteRune('e')
		case '5', '$':
			b.WriteRune('s')
		case '7':
			b.WriteRune('t')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// squashRuns caps repeated rune runs at max occurrences
func squashRuns(s string, max int) string {
	if s == "" || max < 1 {
		return s
	}
	out := make([]rune, 0, len(s))
	var prev rune
	run := 0
	for i, r := range s {
		if i > 0 && r == prev {
			run++
			if run >= max {
				continue
			}
		} else {
			run = 0
		}
		prev = r
		out = append(out, r)
	}
	return string(out)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
