// Package langhint guesses the language of submitted text so analyzers
// can be told what they are reading
package langhint

import "unicode"

// minLetters is the letter count below which no language is emitted;
// shorter text is too easy to misread
const minLetters = 20

// buckets pairs a script with the language it settles, "" when the
// script spans several languages (Han covers zh and ja, Cyrillic covers
// ru/uk/bg/sr, Devanagari covers hi/mr/ne, Latin covers most of the rest).
// Order matters twice: the first positive decisive bucket picks the
// language, and earlier buckets win count ties for the script name
var buckets = []struct {
	table  *unicode.RangeTable
	script string
	lang   string
}{
	{unicode.Hiragana, "Hiragana", "ja"},
	{unicode.Katakana, "Katakana", "ja"},
	{unicode.Hangul, "Hangul", "ko"},
	{unicode.Han, "Han", ""},
	{unicode.Arabic, "Arabic", "ar"},
	{unicode.Hebrew, "Hebrew", "he"},
	{unicode.Thai, "Thai", "th"},
	{unicode.Greek, "Greek", "el"},
	{unicode.Cyrillic, "Cyrillic", ""},
	{unicode.Devanagari, "Devanagari", ""},
	{unicode.Latin, "Latin", ""},
}

// Detect reports the predominant script of s and, when the text is long
// enough and its script settles the question, a BCP-47 language code.
// Mixed, short, or ambiguous text yields lang ""; letters outside the
// known scripts yield script ""
func Detect(s string) (script, lang string) {
	counts := make([]int, len(buckets))
	letters := 0

	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		for i := range buckets {
			if unicode.In(r, buckets[i].table) {
				counts[i]++
				break
			}
		}
	}
	if letters == 0 {
		return "", ""
	}

	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	if counts[best] > 0 {
		script = buckets[best].script
	}

	if letters < minLetters {
		return script, ""
	}
	for i := range buckets {
		if counts[i] > 0 && buckets[i].lang != "" {
			return script, buckets[i].lang
		}
	}
	return script, ""
}
