package ranking

import (
	"context"

	"github.com/dgallion1/sectify/internal/doc"
)

// Blend weights for the keyword-Jaccard scorer. Persona keywords carry
// more weight than job keywords, and content similarity outweighs title
// similarity in the final blend.
const (
	personaWeight = 0.6
	jobWeight     = 0.4

	titleBlendWeight   = 0.3
	contentBlendWeight = 0.7
)

// SemanticScorer approximates semantic similarity with Jaccard overlap of
// extracted-keyword sets, blended across title and content against both
// halves of the query.
type SemanticScorer struct{}

func (SemanticScorer) Name() string { return "semantic" }

func (SemanticScorer) Score(_ context.Context, sections []doc.Section, q doc.Query) ([]float64, error) {
	personaKW := KeywordSet(q.Persona)
	jobKW := KeywordSet(q.Job)

	scores := make([]float64, len(sections))
	for i, sec := range sections {
		contentKW := KeywordSet(sec.Content)
		titleKW := KeywordSet(sec.Title)

		contentScore := personaWeight*jaccard(contentKW, personaKW) + jobWeight*jaccard(contentKW, jobKW)
		titleScore := personaWeight*jaccard(titleKW, personaKW) + jobWeight*jaccard(titleKW, jobKW)

		scores[i] = titleBlendWeight*titleScore + contentBlendWeight*contentScore
	}
	return scores, nil
}
