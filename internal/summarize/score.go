package summarize

import "sort"

// frequencyScores rates each sentence by the mean corpus frequency of its
// tokens. Sentences built from words the text keeps repeating score high.
func frequencyScores(sentences []string) []float64 {
	freq := make(map[string]int)
	tokens := make([][]string, len(sentences))
	for i, s := range sentences {
		tokens[i] = tokenize(s)
		for _, w := range tokens[i] {
			freq[w]++
		}
	}

	scores := make([]float64, len(sentences))
	for i, ts := range tokens {
		if len(ts) == 0 {
			continue
		}
		sum := 0
		for _, w := range ts {
			sum += freq[w]
		}
		scores[i] = float64(sum) / float64(len(ts))
	}
	return scores
}

// positionalScores blends frequency with document position. Opening and
// closing sentences carry more weight than the middle.
func positionalScores(sentences []string) []float64 {
	freq := frequencyScores(sentences)
	maxFreq := 0.0
	for _, v := range freq {
		if v > maxFreq {
			maxFreq = v
		}
	}

	n := len(sentences)
	scores := make([]float64, n)
	for i := range sentences {
		norm := 0.0
		if maxFreq > 0 {
			norm = freq[i] / maxFreq
		}
		scores[i] = 0.7*norm + 0.3*positionWeight(i, n)
	}
	return scores
}

func positionWeight(i, n int) float64 {
	switch {
	case i == 0:
		return 1.0
	case i == n-1:
		return 0.8
	case float64(i) < float64(n)*0.3:
		return 0.7
	default:
		return 0.5
	}
}

// topIndices returns the indices of the k highest-scoring sentences,
// reordered to their original document positions.
func topIndices(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	if k > len(idx) {
		k = len(idx)
	}
	picked := append([]int(nil), idx[:k]...)
	sort.Ints(picked)
	return picked
}
