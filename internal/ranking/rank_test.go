package ranking

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sectify/internal/doc"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func foodQuery() doc.Query {
	return doc.Query{
		Persona: "Food Contractor",
		Job:     "Prepare a vegetarian buffet menu for a corporate gathering",
	}
}

func TestRanker_RelevantSectionRanksFirst(t *testing.T) {
	sections := []doc.Section{
		{
			Document: "menus.pdf",
			Title:    "Vegetarian Buffet Options",
			Content: "The vegetarian buffet menu includes roasted vegetable platters, " +
				"falafel wraps, lentil salads, and seasonal fruit. Contractors can scale " +
				"each buffet dish for corporate gatherings of any size.",
			Page: 1,
			Seq:  0,
		},
		{
			Document: "finance.pdf",
			Title:    "Quarterly Budget Review",
			Content: "The quarterly budget review covers departmental spending, revenue " +
				"projections, and cost allocations across all business units this year.",
			Page: 2,
			Seq:  1,
		},
	}

	r := NewRanker(testLogger(), nil, 0)
	ranked, err := r.Rank(context.Background(), sections, foodQuery())
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	assert.Equal(t, "Vegetarian Buffet Options", ranked[0].Title)
	assert.Equal(t, 1, ranked[0].Rank)
	for i := 1; i < len(ranked); i++ {
		assert.Equal(t, i+1, ranked[i].Rank, "ranks are contiguous from 1")
		assert.LessOrEqual(t, ranked[i].Score, ranked[i-1].Score)
	}
}

func TestRanker_TopKCap(t *testing.T) {
	var sections []doc.Section
	for i := 0; i < 12; i++ {
		sections = append(sections, doc.Section{
			Document: "menus.pdf",
			Title:    "Vegetarian Buffet Options",
			Content: "Vegetarian buffet dishes with roasted vegetables, salads, grains, " +
				"and falafel suit corporate gatherings catered by a food contractor.",
			Page: i + 1,
			Seq:  i,
		})
	}

	r := NewRanker(testLogger(), nil, 0)
	ranked, err := r.Rank(context.Background(), sections, foodQuery())
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ranked), DefaultTopSections)

	r = NewRanker(testLogger(), nil, 2)
	ranked, err = r.Rank(context.Background(), sections, foodQuery())
	require.NoError(t, err)
	assert.Len(t, ranked, 2, "configured cap overrides the default")
}

func TestRanker_EmptyInput(t *testing.T) {
	r := NewRanker(testLogger(), nil, 0)
	ranked, err := r.Rank(context.Background(), nil, foodQuery())
	require.NoError(t, err)
	assert.Nil(t, ranked)
}

func TestRanker_StableOrderOnTies(t *testing.T) {
	content := "Identical vegetarian buffet content for the corporate gathering menu " +
		"prepared by the food contractor with seasonal dishes."
	sections := []doc.Section{
		{Document: "a.pdf", Title: "Menu", Content: content, Page: 1, Seq: 0},
		{Document: "b.pdf", Title: "Menu", Content: content, Page: 1, Seq: 1},
	}

	r := NewRanker(testLogger(), nil, 0)
	ranked, err := r.Rank(context.Background(), sections, foodQuery())
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a.pdf", ranked[0].Document, "ties keep acquisition order")
	assert.Equal(t, "b.pdf", ranked[1].Document)
}

func TestNormalize(t *testing.T) {
	got := normalize([]float64{2, 1, 0})
	assert.Equal(t, []float64{1, 0.5, 0}, got)

	got = normalize([]float64{0, 0})
	assert.Equal(t, []float64{0, 0}, got, "zero max leaves scores at zero")
}

func TestFilter_ScoreBoundary(t *testing.T) {
	f := DefaultFilter()
	sec := doc.Section{
		Content: "This section carries enough meaningful prose words to pass every content check easily.",
	}
	assert.True(t, f.Keep(sec, 0.1), "exact threshold is kept")
	assert.False(t, f.Keep(sec, 0.0999))
}

func TestFilter_ContentQuality(t *testing.T) {
	f := DefaultFilter()

	assert.False(t, f.Keep(doc.Section{Content: "too short"}, 0.9))
	assert.False(t, f.Keep(doc.Section{
		Content: strings.Repeat("12345 678.90, 11-22 ", 4),
	}, 0.9), "digits and punctuation only")
	assert.False(t, f.Keep(doc.Section{
		Content: "one two three four 11111 22222 33333 44444 55555 66666 77777 88888",
	}, 0.9), "fewer than five alphabetic words")

	assert.True(t, f.Keep(doc.Section{
		Content: "A proper paragraph with plenty of alphabetic words describing buffet preparation.",
	}, 0.9))
}
