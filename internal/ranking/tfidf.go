package ranking

import (
	"context"
	"math"

	"github.com/dgallion1/sectify/internal/doc"
)

// TFIDFScorer scores sections by term frequency of query terms weighted by
// inverse document frequency. Document frequencies are computed across the
// sections of the current batch, not a global corpus, and rebuilt fresh on
// every call.
type TFIDFScorer struct{}

func (TFIDFScorer) Name() string { return "tfidf" }

func (TFIDFScorer) Score(_ context.Context, sections []doc.Section, q doc.Query) ([]float64, error) {
	scores := make([]float64, len(sections))

	queryTerms := ExtractKeywords(q.Combined())
	if len(queryTerms) == 0 {
		return scores, nil
	}

	sectionTerms := make([][]string, len(sections))
	df := map[string]int{}
	for i, sec := range sections {
		sectionTerms[i] = ExtractKeywords(sec.Content)
		seen := map[string]bool{}
		for _, t := range sectionTerms[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}
	total := float64(len(sections))

	for i := range sections {
		terms := sectionTerms[i]
		if len(terms) == 0 {
			continue
		}
		counts := map[string]int{}
		for _, t := range terms {
			counts[t]++
		}

		var score float64
		for _, qt := range queryTerms {
			n, ok := counts[qt]
			if !ok {
				continue
			}
			tf := float64(n) / float64(len(terms))
			idf := 0.0
			if df[qt] > 0 {
				idf = math.Log(total / float64(df[qt]))
			}
			score += tf * idf
		}
		scores[i] = score
	}

	return scores, nil
}
