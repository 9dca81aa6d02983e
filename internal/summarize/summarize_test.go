package summarize

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func longText(sentences int) string {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		fmt.Fprintf(&sb, "Sentence number %d talks about document processing and ranking in some depth. ", i)
	}
	return strings.TrimSpace(sb.String())
}

func TestExtractSentences(t *testing.T) {
	text := "This is a proper sentence about documents. Short. " +
		"Another reasonable sentence follows here! Is this a question too?"
	got := ExtractSentences(text)
	require.Len(t, got, 3)
	assert.Equal(t, "This is a proper sentence about documents", got[0])
	assert.Equal(t, "Another reasonable sentence follows here", got[1])
	assert.Equal(t, "Is this a question too", got[2])
}

func TestExtractSentences_RejectsNonProse(t *testing.T) {
	assert.Empty(t, ExtractSentences("12345 678 90123 456. 11 - 22 - 33 44."),
		"mostly numeric fragments are dropped")
	assert.Empty(t, ExtractSentences("tiny. x. ok."))

	tooLong := strings.Repeat("word ", 120) + "."
	assert.Empty(t, ExtractSentences(tooLong))
}

func TestSummarize_ShortTextUnchanged(t *testing.T) {
	s := New(MethodHybrid, 3)
	text := "First sentence stays as written. Second sentence also stays."
	assert.Equal(t, text, s.Summarize(text))
}

func TestSummarize_ShortTextUnchangedOverSentenceBudget(t *testing.T) {
	s := New(MethodHybrid, 3)
	text := "The catering plan covers starters first. Main courses follow the starters. " +
		"Desserts round out the dinner menu. Drinks are ordered separately. " +
		"Staffing is confirmed a week ahead. Cleanup is handled by the venue."
	require.LessOrEqual(t, len(text), shortContentLen)
	require.Greater(t, len(ExtractSentences(text)), 3)

	assert.Equal(t, text, s.Summarize(text))
}

func TestSummarize_LongTextWithinSentenceBudgetUnchanged(t *testing.T) {
	s := New(MethodHybrid, 3)
	text := "Does the venue provide tables and seating for all two hundred guests attending the corporate gala dinner in March" +
		strings.Repeat(" along with linens and place settings", 8) + "? " +
		"Confirm the final headcount with the caterer at least ten business days before the event so the kitchen can plan portions!"
	require.Greater(t, len(text), shortContentLen)
	require.LessOrEqual(t, len(ExtractSentences(text)), 3)

	assert.Equal(t, text, s.Summarize(text), "punctuation and separators stay intact")
}

func TestSummarize_LimitsSentenceCount(t *testing.T) {
	s := New(MethodHybrid, 3)
	out := s.Summarize(longText(12))

	assert.True(t, strings.HasSuffix(out, "."))
	parts := ExtractSentences(out)
	assert.LessOrEqual(t, len(parts), 3)
	assert.Less(t, len(out), len(longText(12)))
}

func TestSummarize_Idempotent(t *testing.T) {
	s := New(MethodHybrid, 3)
	once := s.Summarize(longText(12))
	if len(once) <= shortContentLen {
		assert.Equal(t, once, s.Summarize(once))
	}
}

func TestSummarize_AllMethods(t *testing.T) {
	text := longText(10)
	for _, m := range []Method{MethodFrequency, MethodPositional, MethodTextRank, MethodHybrid} {
		t.Run(string(m), func(t *testing.T) {
			out := New(m, 2).Summarize(text)
			assert.NotEmpty(t, out)
			assert.LessOrEqual(t, len(ExtractSentences(out)), 2)
		})
	}
}

func TestSummarize_KeepsOriginalOrder(t *testing.T) {
	s := New(MethodPositional, 2)
	out := s.Summarize(longText(10))

	first := strings.Index(out, "Sentence number 0")
	if first == -1 {
		t.Skip("first sentence not selected")
	}
	for i := 1; i < 10; i++ {
		if idx := strings.Index(out, fmt.Sprintf("Sentence number %d ", i)); idx >= 0 {
			assert.Greater(t, idx, first, "selected sentences keep document order")
		}
	}
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodHybrid, m)

	m, err = ParseMethod("TextRank")
	require.NoError(t, err)
	assert.Equal(t, MethodTextRank, m)

	_, err = ParseMethod("magic")
	assert.Error(t, err)
}

func TestPositionWeight(t *testing.T) {
	assert.Equal(t, 1.0, positionWeight(0, 10))
	assert.Equal(t, 0.8, positionWeight(9, 10))
	assert.Equal(t, 0.7, positionWeight(2, 10))
	assert.Equal(t, 0.5, positionWeight(5, 10))
}

func TestTextRankScores_FavorsCentralSentence(t *testing.T) {
	sentences := []string{
		"buffet menu planning for events",
		"buffet menu planning with vegetarian dishes",
		"totally unrelated quarterly finance report",
	}
	scores := textRankScores(sentences)
	require.Len(t, scores, 3)
	assert.Greater(t, scores[0], scores[2])
	assert.Greater(t, scores[1], scores[2])
}
