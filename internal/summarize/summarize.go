// Package summarize condenses section content into a few representative
// sentences for the refined-text report field.
package summarize

import (
	"fmt"
	"sort"
	"strings"
)

// Method selects the sentence scoring strategy.
type Method string

const (
	MethodFrequency  Method = "frequency"
	MethodPositional Method = "positional"
	MethodTextRank   Method = "textrank"
	MethodHybrid     Method = "hybrid"
)

const (
	DefaultMaxSentences = 3
	// shortContentLen is the length under which text is always returned
	// as-is, regardless of sentence count.
	shortContentLen = 500
)

// ParseMethod validates a method name, defaulting empty to hybrid.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return MethodHybrid, nil
	case MethodFrequency:
		return MethodFrequency, nil
	case MethodPositional:
		return MethodPositional, nil
	case MethodTextRank:
		return MethodTextRank, nil
	case MethodHybrid:
		return MethodHybrid, nil
	default:
		return "", fmt.Errorf("unknown summary method %q", s)
	}
}

// Summarizer extracts the highest-signal sentences from prose.
type Summarizer struct {
	Method       Method
	MaxSentences int
}

func New(method Method, maxSentences int) *Summarizer {
	if method == "" {
		method = MethodHybrid
	}
	if maxSentences <= 0 {
		maxSentences = DefaultMaxSentences
	}
	return &Summarizer{Method: method, MaxSentences: maxSentences}
}

// Summarize returns up to MaxSentences sentences joined with ". " and a
// trailing period. Text under shortContentLen, or already within the
// sentence budget, passes through unchanged.
func (s *Summarizer) Summarize(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= shortContentLen {
		return text
	}
	sentences := ExtractSentences(text)
	if len(sentences) <= s.MaxSentences {
		return text
	}

	var picked []int
	switch s.Method {
	case MethodFrequency:
		picked = topIndices(frequencyScores(sentences), s.MaxSentences)
	case MethodPositional:
		picked = topIndices(positionalScores(sentences), s.MaxSentences)
	case MethodTextRank:
		picked = topIndices(textRankScores(sentences), s.MaxSentences)
	default:
		picked = hybridIndices(sentences, s.MaxSentences)
	}

	parts := make([]string, len(picked))
	for i, idx := range picked {
		parts[i] = sentences[idx]
	}
	return strings.Join(parts, ". ") + "."
}

// hybridIndices merges the positional and TextRank picks: sentences both
// methods chose come first, then the remainders of each alternate until
// the budget is filled. The result keeps original document order.
func hybridIndices(sentences []string, k int) []int {
	pos := topIndices(positionalScores(sentences), k)
	tr := topIndices(textRankScores(sentences), k)

	inTR := make(map[int]bool, len(tr))
	for _, i := range tr {
		inTR[i] = true
	}
	chosen := make(map[int]bool)
	var out []int
	for _, i := range pos {
		if inTR[i] && len(out) < k {
			chosen[i] = true
			out = append(out, i)
		}
	}

	pi, ti := 0, 0
	for len(out) < k && (pi < len(pos) || ti < len(tr)) {
		for pi < len(pos) && chosen[pos[pi]] {
			pi++
		}
		if pi < len(pos) && len(out) < k {
			chosen[pos[pi]] = true
			out = append(out, pos[pi])
		}
		for ti < len(tr) && chosen[tr[ti]] {
			ti++
		}
		if ti < len(tr) && len(out) < k {
			chosen[tr[ti]] = true
			out = append(out, tr[ti])
		}
	}

	sort.Ints(out)
	return out
}
