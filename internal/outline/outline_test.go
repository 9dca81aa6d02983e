package outline

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sectify/internal/doc"
)

func TestBuild_EmptyDocument(t *testing.T) {
	d := &doc.Document{Name: "empty.pdf"}
	o := Build(d)
	assert.Equal(t, "No text found", o.Title)
	assert.NotNil(t, o.Outline)
	assert.Empty(t, o.Outline)
}

func TestBuild_PrebuiltOutline(t *testing.T) {
	want := doc.Outline{
		Title:   "Structured Doc",
		Outline: []doc.Heading{{Level: doc.H1, Text: "Intro", Page: 1}},
	}
	d := &doc.Document{Name: "doc.md", Outline: &want}
	assert.Equal(t, want, Build(d))
}

func TestBuild_EndToEnd(t *testing.T) {
	d := &doc.Document{
		Name:        "report.pdf",
		Pages:       2,
		AvgFontSize: 12.0,
		Spans: []doc.Span{
			span("Introduction", 1, 20, true),
			span("This chapter introduces the system and its design goals.", 1, 12, false),
			span("1.1 Background", 2, 16, true),
			span("Earlier approaches are reviewed and compared in this part.", 2, 12, false),
		},
	}

	o := Build(d)
	assert.Equal(t, "Introduction", o.Title)
	require.Len(t, o.Outline, 2)
	assert.Equal(t, doc.H1, o.Outline[0].Level)
	assert.Equal(t, doc.H2, o.Outline[1].Level)
}

func TestErrorOutline(t *testing.T) {
	o := ErrorOutline(errors.New("file is encrypted"))
	assert.Equal(t, "Error opening file: file is encrypted", o.Title)
	assert.NotNil(t, o.Outline)
	assert.Empty(t, o.Outline)
}

func TestExtractTitle_SingleLargest(t *testing.T) {
	spans := []doc.Span{
		span("Annual Report", 1, 24, true),
		span("2024", 1, 24, true),
		span("prepared by the finance team", 1, 12, false),
	}
	assert.Equal(t, "Annual Report", ExtractTitle(spans),
		"short and undersized spans never join the title")
}

func TestExtractTitle_JoinsTwoParts(t *testing.T) {
	spans := []doc.Span{
		span("Annual Report", 1, 24, true),
		span("Fiscal Year Overview", 1, 23, true),
		span("a third large heading", 1, 23, true),
	}
	assert.Equal(t, "Annual Report Fiscal Year Overview", ExtractTitle(spans),
		"at most two distinct parts join")
}

func TestExtractTitle_SkipsOverlappingText(t *testing.T) {
	spans := []doc.Span{
		span("Annual Report", 1, 24, true),
		span("Report", 1, 24, true),
		span("Complete Annual Report", 1, 23, true),
	}
	assert.Equal(t, "Annual Report", ExtractTitle(spans))
}

func TestExtractTitle_IgnoresLaterPages(t *testing.T) {
	spans := []doc.Span{
		span("First Page Title", 1, 18, true),
		span("Huge Second Page Banner", 2, 40, true),
	}
	assert.Equal(t, "First Page Title", ExtractTitle(spans))
}

func TestExtractTitle_NoFirstPageText(t *testing.T) {
	spans := []doc.Span{
		span("Appendix", 2, 20, true),
	}
	assert.Equal(t, "No text found", ExtractTitle(spans))
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	headings := []doc.Heading{
		{Level: doc.H1, Text: "Overview", Page: 1},
		{Level: doc.H2, Text: "Details", Page: 2},
		{Level: doc.H2, Text: "Overview", Page: 3},
		{Level: doc.H2, Text: " Overview ", Page: 4},
	}
	out := Dedupe(headings)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Page)
	assert.Equal(t, "Details", out[1].Text)
}

func TestDedupe_CaseSensitive(t *testing.T) {
	headings := []doc.Heading{
		{Level: doc.H1, Text: "Overview", Page: 1},
		{Level: doc.H1, Text: "OVERVIEW", Page: 2},
	}
	assert.Len(t, Dedupe(headings), 2, "dedup compares exact case")
}

func TestCleanHeadingText(t *testing.T) {
	assert.Equal(t, "Hello World", CleanHeadingText("  Hello \t World  "))
	assert.Equal(t, "Results", CleanHeadingText("Results ."))
	assert.Equal(t, "Rsum Review", CleanHeadingText("Résumé Review"))

	long := strings.Repeat("x", 250)
	got := CleanHeadingText(long)
	assert.Len(t, got, 203)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "plain text", CleanText("plain\n\ntext"))
	assert.Equal(t, "caf latte", CleanText("café latte"))
	assert.Equal(t, "", CleanText("   \n\t "))
}
