package summarize

import (
	"regexp"
	"strings"
)

const (
	minSentenceLen = 10
	maxSentenceLen = 500
	// minAlphaFraction rejects sentences that are mostly digits,
	// punctuation, or table debris.
	minAlphaFraction = 0.5
)

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// ExtractSentences splits text on terminal punctuation and keeps the
// pieces that look like prose.
func ExtractSentences(text string) []string {
	var out []string
	for _, raw := range sentenceBoundary.Split(text, -1) {
		s := strings.TrimSpace(raw)
		if len(s) < minSentenceLen || len(s) > maxSentenceLen {
			continue
		}
		if alphaFraction(s) < minAlphaFraction {
			continue
		}
		out = append(out, s)
	}
	return out
}

func alphaFraction(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	alpha := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			alpha++
		}
	}
	return float64(alpha) / float64(len(s))
}

var wordPattern = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

// tokenize lowercases and keeps alphabetic words of three or more
// characters, the same token shape the ranking layer scores on.
func tokenize(s string) []string {
	return wordPattern.FindAllString(strings.ToLower(s), -1)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range tokenize(s) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
