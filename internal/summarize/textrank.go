package summarize

const (
	textRankDamping     = 0.85
	textRankIterations  = 50
	textRankConvergence = 0.001
)

// textRankScores runs the sentence-graph PageRank variant. Edges are
// Jaccard similarities between sentence token sets; iteration stops once
// the per-node delta falls under the convergence threshold.
func textRankScores(sentences []string) []float64 {
	n := len(sentences)
	scores := make([]float64, n)
	if n == 0 {
		return scores
	}

	sets := make([]map[string]struct{}, n)
	for i, s := range sentences {
		sets[i] = tokenSet(s)
	}

	sim := make([][]float64, n)
	outSum := make([]float64, n)
	for i := range sim {
		sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := jaccard(sets[i], sets[j])
			sim[i][j] = v
			sim[j][i] = v
			outSum[i] += v
			outSum[j] += v
		}
	}

	for i := range scores {
		scores[i] = 1.0
	}
	for iter := 0; iter < textRankIterations; iter++ {
		next := make([]float64, n)
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			rank := 0.0
			for j := 0; j < n; j++ {
				if j == i || sim[j][i] == 0 || outSum[j] == 0 {
					continue
				}
				rank += sim[j][i] / outSum[j] * scores[j]
			}
			next[i] = (1 - textRankDamping) + textRankDamping*rank
			if d := abs(next[i] - scores[i]); d > maxDelta {
				maxDelta = d
			}
		}
		scores = next
		if maxDelta < textRankConvergence {
			break
		}
	}
	return scores
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
