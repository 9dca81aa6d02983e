package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/sectify/internal/doc"
)

func span(text string, page int, size float64, bold bool) doc.Span {
	return doc.Span{Text: text, Page: page, Y0: 100, FontSize: size, Bold: bold}
}

func pdfDoc(spans ...doc.Span) *doc.Document {
	pages := 1
	for _, s := range spans {
		if s.Page > pages {
			pages = s.Page
		}
	}
	return &doc.Document{
		Name:        "report.pdf",
		Pages:       pages,
		Spans:       spans,
		AvgFontSize: 12.0,
	}
}

func TestSegment_SplitsAtHeadings(t *testing.T) {
	d := pdfDoc(
		span("Introduction", 1, 20, true),
		span("The system extracts outlines from documents.", 1, 12, false),
		span("It also ranks sections by relevance.", 1, 12, false),
		span("Methods", 2, 20, true),
		span("Font size heuristics drive the classifier.", 2, 12, false),
	)

	secs := Segment(d)
	require.Len(t, secs, 2)

	assert.Equal(t, "Introduction", secs[0].Title)
	assert.Equal(t, 1, secs[0].Page)
	assert.Contains(t, secs[0].Content, "extracts outlines")
	assert.Contains(t, secs[0].Content, "ranks sections")
	assert.Equal(t, "report.pdf", secs[0].Document)

	assert.Equal(t, "Methods", secs[1].Title)
	assert.Equal(t, 2, secs[1].Page)
}

func TestSegment_SectionPageIsHeadingPage(t *testing.T) {
	// Heading on page 1, all of its content on page 2.
	d := pdfDoc(
		span("Overview", 1, 20, true),
		span("Content that flows onto the following page entirely.", 2, 12, false),
	)
	secs := Segment(d)
	require.Len(t, secs, 1)
	assert.Equal(t, 1, secs[0].Page)
}

func TestSegment_LeadingContentBeforeFirstHeadingDropped(t *testing.T) {
	d := pdfDoc(
		span("Preamble text before any heading appears.", 1, 12, false),
		span("First Heading", 1, 20, true),
		span("Body of the first titled section.", 1, 12, false),
	)
	secs := Segment(d)
	require.Len(t, secs, 1)
	assert.Equal(t, "First Heading", secs[0].Title)
}

func TestSegment_TrailingHeadingWithoutContentDropped(t *testing.T) {
	d := pdfDoc(
		span("Has Content", 1, 20, true),
		span("Some body text for the section.", 1, 12, false),
		span("Dangling Heading", 1, 20, true),
	)
	secs := Segment(d)
	require.Len(t, secs, 1)
	assert.Equal(t, "Has Content", secs[0].Title)
}

func TestSegment_NoHeadingsFallsBackToPages(t *testing.T) {
	d := pdfDoc(
		span("plain body text on the first page", 1, 12, false),
		span("more body text on the second page", 2, 12, false),
	)
	secs := Segment(d)
	require.Len(t, secs, 2)
	assert.Equal(t, "Page 1", secs[0].Title)
	assert.Equal(t, 1, secs[0].Page)
	assert.Equal(t, "Page 2", secs[1].Title)
	assert.Equal(t, 2, secs[1].Page)
}

func TestSegment_EmptyDocument(t *testing.T) {
	d := &doc.Document{Name: "empty.pdf"}
	assert.Nil(t, Segment(d))
}

func TestSegment_StructuredDocumentPassThrough(t *testing.T) {
	want := []doc.Section{
		{Document: "doc.md", Title: "Intro", Content: "hello", Page: 1},
	}
	d := &doc.Document{
		Name:     "doc.md",
		Outline:  &doc.Outline{Title: "Doc"},
		Sections: want,
	}
	assert.Equal(t, want, Segment(d))
}
