// Package section groups a document's span sequence into titled content
// sections at heading boundaries.
package section

import (
	"fmt"
	"strings"

	"github.com/dgallion1/sectify/internal/doc"
	"github.com/dgallion1/sectify/internal/outline"
)

// Segment walks the ordered span sequence and flushes accumulated content
// whenever a heading-likelihood span starts a new section. Boundary
// detection reuses the font/bold likelihood test only, so spans that never
// earned an outline level still split sections.
//
// A document with headings but no trailing heading flushes its tail as the
// final section. A document with zero headings falls back to one section
// per page. A document with no text at all contributes zero sections.
func Segment(d *doc.Document) []doc.Section {
	if d.Outline != nil {
		// Structured formats arrive pre-segmented.
		return d.Sections
	}
	if len(d.Spans) == 0 {
		return nil
	}

	var sections []doc.Section
	var title string
	var titlePage int
	var content []string

	flush := func() {
		if title == "" || len(content) == 0 {
			return
		}
		body := outline.CleanText(strings.Join(content, " "))
		if body == "" {
			return
		}
		sections = append(sections, doc.Section{
			Document: d.Name,
			Title:    title,
			Content:  body,
			Page:     titlePage,
		})
	}

	for _, s := range d.Spans {
		if outline.FontLikely(s, d.AvgFontSize) {
			flush()
			title = outline.CleanHeadingText(s.Text)
			titlePage = s.Page
			content = content[:0]
			continue
		}
		content = append(content, s.Text)
	}
	flush()

	if len(sections) == 0 {
		return pageSections(d)
	}
	return sections
}

// pageSections is the zero-heading fallback: one section per page, titled
// "Page N", holding the page's full text.
func pageSections(d *doc.Document) []doc.Section {
	byPage := map[int][]string{}
	for _, s := range d.Spans {
		byPage[s.Page] = append(byPage[s.Page], s.Text)
	}

	var sections []doc.Section
	for page := 1; page <= d.Pages; page++ {
		text := outline.CleanText(strings.Join(byPage[page], " "))
		if text == "" {
			continue
		}
		sections = append(sections, doc.Section{
			Document: d.Name,
			Title:    fmt.Sprintf("Page %d", page),
			Content:  text,
			Page:     page,
		})
	}
	return sections
}
