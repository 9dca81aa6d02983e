package parser

import (
	"path/filepath"
	"strings"

	"github.com/dgallion1/sectify/internal/doc"
	"github.com/dgallion1/sectify/internal/outline"
)

// sectionBuilder accumulates explicit-structure documents (Markdown, HTML,
// DOCX) into an outline plus sections. These formats carry their heading
// levels directly, so the font heuristics never run; levels deeper than H3
// are clamped.
type sectionBuilder struct {
	name     string
	title    string
	headings []doc.Heading
	sections []doc.Section
	seen     map[string]bool

	current string
	page    int
	content []string
}

func newSectionBuilder(filename string) *sectionBuilder {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return &sectionBuilder{
		name: filename,
		title: base,
		seen: map[string]bool{},
		page: 1,
	}
}

// SetTitle overrides the filename-derived title (e.g. from an HTML <title>).
func (b *sectionBuilder) SetTitle(title string) {
	title = outline.CleanText(title)
	if title != "" {
		b.title = title
	}
}

// Heading flushes the running section and starts a new one. Duplicate
// normalized heading texts are kept as section boundaries but dropped from
// the outline, first occurrence winning.
func (b *sectionBuilder) Heading(level int, text string) {
	text = outline.CleanHeadingText(text)
	if text == "" {
		return
	}
	b.flush()
	b.current = text
	b.content = b.content[:0]

	if !b.seen[text] {
		b.seen[text] = true
		b.headings = append(b.headings, doc.Heading{
			Level: doc.LevelForDepth(level),
			Text:  text,
			Page:  b.page,
		})
	}
}

// Text appends body content to the running section.
func (b *sectionBuilder) Text(text string) {
	text = strings.TrimSpace(text)
	if text != "" {
		b.content = append(b.content, text)
	}
}

func (b *sectionBuilder) flush() {
	if b.current == "" || len(b.content) == 0 {
		return
	}
	body := outline.CleanText(strings.Join(b.content, " "))
	if body == "" {
		return
	}
	b.sections = append(b.sections, doc.Section{
		Document: b.name,
		Title:    b.current,
		Content:  body,
		Page:     b.page,
	})
}

// Document finalizes the accumulated state. A document without any heading
// falls back to a single page-titled section, matching the segmenter's
// zero-heading behavior.
func (b *sectionBuilder) Document() *doc.Document {
	b.flush()

	if len(b.sections) == 0 && len(b.content) > 0 {
		body := outline.CleanText(strings.Join(b.content, " "))
		if body != "" {
			b.sections = append(b.sections, doc.Section{
				Document: b.name,
				Title:    "Page 1",
				Content:  body,
				Page:     1,
			})
		}
	}

	title := b.title
	if len(b.headings) == 0 && len(b.sections) == 0 {
		title = "No text found"
	}

	headings := outline.RepairHierarchy(b.headings)
	if headings == nil {
		headings = []doc.Heading{}
	}

	return &doc.Document{
		Name:  b.name,
		Pages: 1,
		Outline: &doc.Outline{
			Title:   title,
			Outline: headings,
		},
		Sections: b.sections,
	}
}
