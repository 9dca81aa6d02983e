package ranking

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/dgallion1/sectify/internal/doc"
	"github.com/philippgille/chromem-go"
)

// EmbeddingScorer is the drop-in semantic strategy backed by a vector
// store: sections are embedded into an in-memory chromem-go collection and
// scored by cosine similarity against the embedded query. It must be
// constructed explicitly and passed in; there is no ambient model state.
type EmbeddingScorer struct {
	db    *chromem.DB
	embed chromem.EmbeddingFunc
	runs  atomic.Int64
}

// NewEmbeddingScorer builds a scorer around an embedding function, e.g.
// chromem.NewEmbeddingFuncOpenAICompat for any OpenAI-compatible endpoint.
func NewEmbeddingScorer(embed chromem.EmbeddingFunc) *EmbeddingScorer {
	return &EmbeddingScorer{
		db:    chromem.NewDB(),
		embed: embed,
	}
}

func (e *EmbeddingScorer) Name() string { return "embedding" }

func (e *EmbeddingScorer) Score(ctx context.Context, sections []doc.Section, q doc.Query) ([]float64, error) {
	scores := make([]float64, len(sections))
	if len(sections) == 0 {
		return scores, nil
	}

	name := fmt.Sprintf("run-%d", e.runs.Add(1))
	col, err := e.db.GetOrCreateCollection(name, nil, e.embed)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	defer e.db.DeleteCollection(name)

	docs := make([]chromem.Document, 0, len(sections))
	for i, sec := range sections {
		content := sec.Title + " " + sec.Content
		docs = append(docs, chromem.Document{
			ID:      strconv.Itoa(i),
			Content: content,
		})
	}
	if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("embed sections: %w", err)
	}

	results, err := col.Query(ctx, q.Combined(), len(docs), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}

	for _, res := range results {
		idx, err := strconv.Atoi(res.ID)
		if err != nil || idx < 0 || idx >= len(scores) {
			continue
		}
		sim := float64(res.Similarity)
		if sim < 0 {
			sim = 0
		}
		scores[idx] = sim
	}
	return scores, nil
}

// Close releases the scorer. The store is in-memory, so there is nothing
// to flush; collections are already deleted per run.
func (e *EmbeddingScorer) Close() error {
	return e.db.Reset()
}
