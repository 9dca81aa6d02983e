// Package outline holds the heading detection and hierarchy classification
// logic: candidate filtering, font-size level assignment, lexical refinement,
// and hierarchy repair.
package outline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/dgallion1/sectify/internal/doc"
)

const (
	maxHeadingChars = 120
	maxHeadingWords = 20
	minHeadingChars = 3

	// Spans below this page-relative y position are footer territory.
	footerCutoff = 700.0
)

var bannedHeadingWords = map[string]bool{
	"page":   true,
	"figure": true,
	"table":  true,
}

var (
	chapterPattern  = regexp.MustCompile(`(?i)^(chapter|section|part)\s+\d+`)
	numberedH1      = regexp.MustCompile(`^\d+\.\s`)
	numberedH2      = regexp.MustCompile(`^\d+\.\d+\s`)
	numberedH3      = regexp.MustCompile(`^\d+\.\d+\.\d+\s`)
	letterUpperEnum = regexp.MustCompile(`^[A-Z]\.\s`)
	letterLowerEnum = regexp.MustCompile(`^[a-z]\.\s`)
)

// FontLikely is the font-size/boldness heading-likelihood test. The span
// must exceed the document average by ratio > 1.2, be bold with ratio > 1.1,
// or exceed ratio 1.5 regardless of boldness. The section segmenter reuses
// this test directly for boundary detection.
func FontLikely(s doc.Span, avgFontSize float64) bool {
	ratio := 1.0
	if avgFontSize > 0 {
		ratio = s.FontSize / avgFontSize
	}
	return ratio > 1.2 || (s.Bold && ratio > 1.1) || ratio > 1.5
}

// IsCandidate reports whether a span qualifies as a heading candidate.
// Every predicate must hold; the list rejects body text, footers, captions,
// and running-header artifacts.
func IsCandidate(s doc.Span, avgFontSize float64) bool {
	text := normalizeSpace(s.Text)
	if text == "" || len(text) < minHeadingChars || len(text) > maxHeadingChars {
		return false
	}
	words := strings.Fields(text)
	if len(words) > maxHeadingWords {
		return false
	}
	if strings.HasSuffix(text, ".") || strings.HasSuffix(text, ":") || strings.HasSuffix(text, ";") {
		return false
	}
	if bannedHeadingWords[strings.ToLower(text)] {
		return false
	}
	// Mostly-lowercase non-bold runs are body text, not headings.
	if !s.Bold && lowercaseCount(text) > float64(len(text))*0.7 {
		return false
	}
	if s.Y0 > footerCutoff {
		return false
	}
	// A single all-caps word is a running-header artifact.
	if len(words) == 1 && uppercaseRatio(text) > 0.7 {
		return false
	}
	return FontLikely(s, avgFontSize)
}

// Classify filters spans down to heading candidates and assigns hierarchy
// levels. The returned headings are ordered by (page, vertical position),
// cleaned, and hierarchy-repaired.
func Classify(spans []doc.Span, avgFontSize float64) []doc.Heading {
	var candidates []doc.Span
	for _, s := range spans {
		if IsCandidate(s, avgFontSize) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Page != candidates[j].Page {
			return candidates[i].Page < candidates[j].Page
		}
		return candidates[i].Y0 < candidates[j].Y0
	})

	sizeLevels := mapSizesToLevels(candidates)

	var headings []doc.Heading
	for _, c := range candidates {
		level := levelForSize(c.FontSize, sizeLevels)
		level = refineLevel(c, level, avgFontSize)

		text := CleanHeadingText(c.Text)
		if text == "" {
			continue
		}
		headings = append(headings, doc.Heading{
			Level: level,
			Text:  text,
			Page:  c.Page,
		})
	}

	return RepairHierarchy(headings)
}

// sizeLevel pairs a distinct font size with its assigned level.
type sizeLevel struct {
	size  float64
	level doc.Level
}

// mapSizesToLevels maps the largest two or three distinct candidate font
// sizes onto H1/H2/H3. Fewer distinct sizes collapse the mapping.
func mapSizesToLevels(candidates []doc.Span) []sizeLevel {
	seen := map[float64]bool{}
	var sizes []float64
	for _, c := range candidates {
		if !seen[c.FontSize] {
			seen[c.FontSize] = true
			sizes = append(sizes, c.FontSize)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	levels := []doc.Level{doc.H1, doc.H2, doc.H3}
	n := len(sizes)
	if n > 3 {
		n = 3
	}
	mapping := make([]sizeLevel, 0, n)
	for i := 0; i < n; i++ {
		mapping = append(mapping, sizeLevel{size: sizes[i], level: levels[i]})
	}
	return mapping
}

func levelForSize(size float64, mapping []sizeLevel) doc.Level {
	for _, m := range mapping {
		if size >= m.size {
			return m.level
		}
	}
	return doc.H3
}

// refineLevel adjusts a font-size-derived level using the ratio to the
// document average and explicit lexical patterns. First match wins.
func refineLevel(s doc.Span, initial doc.Level, avgFontSize float64) doc.Level {
	ratio := 1.0
	if avgFontSize > 0 {
		ratio = s.FontSize / avgFontSize
	}

	switch {
	case ratio > 2.0:
		return doc.H1
	case ratio > 1.5 && s.Bold:
		return doc.H1
	case ratio > 1.3:
		if initial == doc.H1 {
			return doc.H1
		}
		return doc.H2
	case ratio > 1.1 && s.Bold:
		if initial == doc.H3 {
			return doc.H2
		}
		return initial
	}

	text := strings.TrimSpace(s.Text)
	switch {
	case chapterPattern.MatchString(text):
		return doc.H1
	case numberedH3.MatchString(text):
		return doc.H3
	case numberedH2.MatchString(text):
		return doc.H2
	case numberedH1.MatchString(text):
		return doc.H1
	case letterUpperEnum.MatchString(text):
		return doc.H2
	case letterLowerEnum.MatchString(text):
		return doc.H3
	}

	return initial
}

// RepairHierarchy clamps level skips in a single forward pass: a heading
// more than one step deeper than its predecessor is pulled up to exactly
// one step deeper. The first heading is never adjusted, and the pass does
// not look ahead or re-balance later headings.
func RepairHierarchy(headings []doc.Heading) []doc.Heading {
	if len(headings) == 0 {
		return headings
	}
	prev := headings[0].Level.Depth()
	for i := 1; i < len(headings); i++ {
		depth := headings[i].Level.Depth()
		if depth > prev+1 {
			headings[i].Level = doc.LevelForDepth(prev + 1)
			depth = prev + 1
		}
		prev = depth
	}
	return headings
}

func lowercaseCount(s string) float64 {
	n := 0.0
	for _, r := range s {
		if unicode.IsLower(r) {
			n++
		}
	}
	return n
}

func uppercaseRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0.0
	for _, r := range s {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n / float64(len(s))
}
