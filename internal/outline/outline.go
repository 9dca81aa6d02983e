package outline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/sectify/internal/doc"
)

const maxHeadingTextLen = 200

// titleSizeRatio keeps only first-page spans whose font size is within 90%
// of the page maximum when picking title lines.
const titleSizeRatio = 0.9

var (
	nonASCII       = regexp.MustCompile(`[^\x00-\x7F]+`)
	trailingPeriod = regexp.MustCompile(`\s*\.\s*$`)
)

// Build derives the document title and attaches classified headings,
// producing the canonical outline. A document with no spans yields the
// "No text found" sentinel rather than an error.
func Build(d *doc.Document) doc.Outline {
	if d.Outline != nil {
		return *d.Outline
	}
	if len(d.Spans) == 0 {
		return doc.Outline{Title: "No text found", Outline: []doc.Heading{}}
	}

	title := ExtractTitle(d.Spans)
	headings := Classify(d.Spans, d.AvgFontSize)

	return doc.Outline{
		Title:   title,
		Outline: Dedupe(headings),
	}
}

// ErrorOutline is the error-shaped result for a document that failed to
// open. Title extraction never aborts a run.
func ErrorOutline(err error) doc.Outline {
	return doc.Outline{
		Title:   fmt.Sprintf("Error opening file: %v", err),
		Outline: []doc.Heading{},
	}
}

// ExtractTitle picks the title from first-page spans: sort by font size
// descending then vertical position ascending, keep spans near the page's
// maximum size, and join up to the first two distinct, non-overlapping
// texts longer than 5 characters.
func ExtractTitle(spans []doc.Span) string {
	var firstPage []doc.Span
	maxSize := 0.0
	for _, s := range spans {
		if s.Page == 1 {
			firstPage = append(firstPage, s)
			if s.FontSize > maxSize {
				maxSize = s.FontSize
			}
		}
	}
	if len(firstPage) == 0 {
		return "No text found"
	}

	sort.SliceStable(firstPage, func(i, j int) bool {
		if firstPage[i].FontSize != firstPage[j].FontSize {
			return firstPage[i].FontSize > firstPage[j].FontSize
		}
		return firstPage[i].Y0 < firstPage[j].Y0
	})

	var parts []string
	for _, s := range firstPage {
		if s.FontSize < maxSize*titleSizeRatio {
			break
		}
		text := normalizeSpace(s.Text)
		if len(text) <= 5 || overlapsAny(text, parts) {
			continue
		}
		parts = append(parts, text)
		if len(parts) == 2 {
			break
		}
	}
	if len(parts) == 0 {
		return "No text found"
	}
	return normalizeSpace(strings.Join(parts, " "))
}

// overlapsAny reports whether text duplicates or is contained in an
// already chosen title part.
func overlapsAny(text string, parts []string) bool {
	for _, p := range parts {
		if strings.Contains(p, text) || strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Dedupe drops headings whose normalized text was already emitted anywhere
// earlier in the document. First occurrence wins.
func Dedupe(headings []doc.Heading) []doc.Heading {
	out := make([]doc.Heading, 0, len(headings))
	seen := map[string]bool{}
	for _, h := range headings {
		key := normalizeSpace(h.Text)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, h)
	}
	return out
}

// CleanHeadingText applies the full heading cleanup: collapse whitespace,
// strip non-ASCII bytes, strip a single trailing period, and truncate to
// 200 characters with an ellipsis marker.
func CleanHeadingText(text string) string {
	text = CleanText(text)
	text = trailingPeriod.ReplaceAllString(text, "")
	if len(text) > maxHeadingTextLen {
		text = text[:maxHeadingTextLen] + "..."
	}
	return text
}

// CleanText collapses whitespace runs and strips non-ASCII bytes. Used for
// both heading text and section content.
func CleanText(text string) string {
	text = nonASCII.ReplaceAllString(text, "")
	return normalizeSpace(text)
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
