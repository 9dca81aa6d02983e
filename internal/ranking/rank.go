package ranking

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/sectify/internal/doc"
)

// DefaultTopSections caps how many ranked sections survive to output.
const DefaultTopSections = 5

// Weighted pairs a scorer with its share of the final score.
type Weighted struct {
	Scorer Scorer
	Weight float64
}

// Scorer produces one raw relevance score per section for the whole batch.
// Scores are normalized by the ranker; implementations only need relative
// ordering to be meaningful.
type Scorer interface {
	Name() string
	Score(ctx context.Context, sections []doc.Section, q doc.Query) ([]float64, error)
}

// DefaultScorers is the system-of-record scoring mix: TF-IDF, keyword
// Jaccard, and the composite signal.
func DefaultScorers() []Weighted {
	return []Weighted{
		{Scorer: TFIDFScorer{}, Weight: 0.3},
		{Scorer: SemanticScorer{}, Weight: 0.3},
		{Scorer: CompositeScorer{}, Weight: 0.4},
	}
}

// Ranker combines scorer signals into a composite ranking and applies the
// relevance filter and top-K cut.
type Ranker struct {
	scorers []Weighted
	filter  Filter
	topK    int
	log     *slog.Logger
}

func NewRanker(log *slog.Logger, scorers []Weighted, topK int) *Ranker {
	if len(scorers) == 0 {
		scorers = DefaultScorers()
	}
	if topK <= 0 {
		topK = DefaultTopSections
	}
	return &Ranker{
		scorers: scorers,
		filter:  DefaultFilter(),
		topK:    topK,
		log:     log,
	}
}

// Rank scores sections against the query, sorts them (stable, so score
// ties keep batch acquisition order), filters, and assigns importance
// ranks 1..N to the at most topK survivors.
func (r *Ranker) Rank(ctx context.Context, sections []doc.Section, q doc.Query) ([]doc.ScoredSection, error) {
	if len(sections) == 0 {
		return nil, nil
	}

	final := make([]float64, len(sections))
	for _, ws := range r.scorers {
		raw, err := ws.Scorer.Score(ctx, sections, q)
		if err != nil {
			return nil, fmt.Errorf("scorer %s: %w", ws.Scorer.Name(), err)
		}
		if len(raw) != len(sections) {
			return nil, fmt.Errorf("scorer %s: %d scores for %d sections", ws.Scorer.Name(), len(raw), len(sections))
		}
		for i, v := range normalize(raw) {
			final[i] += ws.Weight * v
		}
	}

	scored := make([]doc.ScoredSection, len(sections))
	for i, sec := range sections {
		scored[i] = doc.ScoredSection{Section: sec, Score: final[i]}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	kept := scored[:0]
	for _, s := range scored {
		if r.filter.Keep(s.Section, s.Score) {
			kept = append(kept, s)
		}
	}
	if len(kept) > r.topK {
		kept = kept[:r.topK]
	}
	for i := range kept {
		kept[i].Rank = i + 1
	}

	r.log.Info("ranked sections", "total", len(sections), "kept", len(kept))
	return kept, nil
}

// normalize rescales raw scores into [0,1] by the batch maximum. A zero or
// negative maximum leaves everything at 0.
func normalize(raw []float64) []float64 {
	max := 0.0
	for _, v := range raw {
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(raw))
	if max <= 0 {
		return out
	}
	for i, v := range raw {
		out[i] = v / max
	}
	return out
}

var (
	digitsOnly = regexp.MustCompile(`^[\d\s\-.,]+$`)
	alphaChar  = regexp.MustCompile(`[a-zA-Z]`)
	alphaWord  = regexp.MustCompile(`\b[a-zA-Z]+\b`)
)

// Filter drops low-signal sections after ranking.
type Filter struct {
	// MinScore is exclusive: a section scoring exactly MinScore is kept.
	MinScore         float64
	MinContentLength int
	MinAlphaWords    int
}

func DefaultFilter() Filter {
	return Filter{
		MinScore:         0.1,
		MinContentLength: 50,
		MinAlphaWords:    5,
	}
}

// Keep reports whether a scored section passes the relevance and content
// quality thresholds.
func (f Filter) Keep(sec doc.Section, score float64) bool {
	if score < f.MinScore {
		return false
	}
	content := strings.TrimSpace(sec.Content)
	if len(content) < f.MinContentLength {
		return false
	}
	if digitsOnly.MatchString(content) {
		return false
	}
	if !alphaChar.MatchString(content) {
		return false
	}
	if len(alphaWord.FindAllString(content, -1)) < f.MinAlphaWords {
		return false
	}
	return true
}
