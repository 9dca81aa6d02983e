// Package ranking scores document sections against a persona/job query and
// produces the final top-K ranking.
package ranking

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true, "on": true,
	"at": true, "to": true, "for": true, "of": true, "with": true, "by": true,
	"from": true, "up": true, "about": true, "into": true, "over": true,
	"after": true, "this": true, "that": true, "these": true, "those": true,
	"can": true, "will": true, "should": true, "would": true, "could": true,
	"may": true, "might": true, "must": true, "shall": true, "have": true,
	"has": true, "had": true, "be": true, "been": true, "being": true,
	"is": true, "are": true, "was": true, "were": true, "do": true,
	"does": true, "did": true, "get": true, "got": true, "make": true,
	"made": true, "take": true, "took": true, "come": true, "came": true,
	"go": true, "went": true, "see": true, "saw": true,
}

// ExtractKeywords pulls meaningful keywords from text: lowercase alphabetic
// runs of at least 3 letters, with stop words and short survivors dropped.
func ExtractKeywords(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !stopWords[w] && len(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

// KeywordSet is ExtractKeywords as a set.
func KeywordSet(text string) map[string]bool {
	set := map[string]bool{}
	for _, w := range ExtractKeywords(text) {
		set[w] = true
	}
	return set
}

// jaccard is intersection-over-union of two keyword sets.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// overlapFraction is the fraction of reference keywords present in target.
func overlapFraction(reference, target map[string]bool) float64 {
	if len(reference) == 0 || len(target) == 0 {
		return 0
	}
	matches := 0
	for w := range reference {
		if target[w] {
			matches++
		}
	}
	return float64(matches) / float64(len(reference))
}
