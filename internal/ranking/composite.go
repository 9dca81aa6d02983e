package ranking

import (
	"context"

	"github.com/dgallion1/sectify/internal/doc"
)

const (
	contentRelevanceWeight = 0.5
	titleRelevanceWeight   = 0.3
	positionWeight         = 0.2

	// Position decay: a section on the last page loses at most 30%.
	maxPositionPenalty = 0.3
)

// CompositeScorer blends content relevance, title relevance, and page
// position into one signal. Relevance terms are keyword-overlap fractions
// against the union of persona and job keywords.
type CompositeScorer struct{}

func (CompositeScorer) Name() string { return "composite" }

func (CompositeScorer) Score(_ context.Context, sections []doc.Section, q doc.Query) ([]float64, error) {
	relevant := KeywordSet(q.Persona)
	for w := range KeywordSet(q.Job) {
		relevant[w] = true
	}
	contextKW := KeywordSet(q.Combined())

	totalPages := 1
	for _, sec := range sections {
		if sec.Page > totalPages {
			totalPages = sec.Page
		}
	}

	scores := make([]float64, len(sections))
	for i, sec := range sections {
		contentScore := overlapFraction(relevant, KeywordSet(sec.Content))
		titleScore := overlapFraction(contextKW, KeywordSet(sec.Title))
		position := positionScore(sec.Page, totalPages)

		scores[i] = contentRelevanceWeight*contentScore +
			titleRelevanceWeight*titleScore +
			positionWeight*position
	}
	return scores, nil
}

// positionScore decays linearly from the front of the batch to the back.
func positionScore(page, totalPages int) float64 {
	if totalPages <= 1 {
		return 1.0
	}
	return 1.0 - float64(page-1)/float64(totalPages-1)*maxPositionPenalty
}
