package parser

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dgallion1/sectify/internal/doc"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser turns a PDF into an ordered sequence of positioned text spans
// with formatting metadata, grouped by page in natural draw order.
type PDFParser struct{}

// rowTolerance is the Y distance (in points) within which two text
// fragments are considered part of the same line.
const rowTolerance = 2.0

// wordSpaceRatio is the X gap, as a fraction of font size, beyond which a
// space is inserted between merged fragments.
const wordSpaceRatio = 0.3

func (p *PDFParser) Parse(r io.Reader, filename string) (*doc.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "sectify-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, &OpenError{Name: filename, Err: err}
	}
	defer f.Close()

	d := &doc.Document{
		Name:  filename,
		Pages: reader.NumPage(),
	}

	for i := 1; i <= d.Pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		spans, err := extractPageSpans(page, i)
		if err != nil {
			// Malformed content streams fail per page, not per document.
			continue
		}
		d.Spans = append(d.Spans, spans...)
	}

	d.AvgFontSize = averageFontSize(d.Spans)
	return d, nil
}

// extractPageSpans merges the page's raw text fragments into line-level
// spans sharing one font, size, and row.
func extractPageSpans(page pdflib.Page, pageNum int) (spans []doc.Span, err error) {
	// The underlying reader panics on malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			spans = nil
			err = fmt.Errorf("page %d: %v", pageNum, r)
		}
	}()

	texts := page.Content().Text
	if len(texts) == 0 {
		return nil, nil
	}

	height := pageHeight(page)

	// Top of page first, then left to right.
	sort.SliceStable(texts, func(i, j int) bool {
		if math.Abs(texts[i].Y-texts[j].Y) > rowTolerance {
			return texts[i].Y > texts[j].Y
		}
		return texts[i].X < texts[j].X
	})

	var (
		cur   strings.Builder
		start pdflib.Text
		endX  float64
	)

	flush := func() {
		text := normalizeSpace(cur.String())
		cur.Reset()
		if text == "" {
			return
		}
		size := math.Round(start.FontSize*10) / 10
		y0 := height - start.Y - start.FontSize
		spans = append(spans, doc.Span{
			Text:     text,
			Page:     pageNum,
			X0:       start.X,
			Y0:       y0,
			X1:       endX,
			Y1:       y0 + start.FontSize,
			FontSize: size,
			FontName: start.Font,
			Bold:     isBoldFont(start.Font),
		})
	}

	for i, t := range texts {
		sameRun := i > 0 &&
			t.Font == start.Font &&
			t.FontSize == start.FontSize &&
			math.Abs(t.Y-start.Y) <= rowTolerance

		if !sameRun {
			flush()
			start = t
		} else if t.X-endX > wordSpaceRatio*t.FontSize {
			cur.WriteByte(' ')
		}
		cur.WriteString(t.S)
		endX = t.X + t.W
	}
	flush()

	return spans, nil
}

// pageHeight resolves the page MediaBox height, walking up the page tree
// for inherited boxes. Falls back to US Letter.
func pageHeight(page pdflib.Page) float64 {
	v := page.V
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); !mb.IsNull() && mb.Len() == 4 {
			h := mb.Index(3).Float64() - mb.Index(1).Float64()
			if h > 0 {
				return h
			}
		}
		v = v.Key("Parent")
	}
	return 792
}

func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy")
}

// averageFontSize is the character-count-weighted mean of span font sizes.
// Weighting by text length keeps short large-font titles from dominating:
// the long small-font body defines the baseline.
func averageFontSize(spans []doc.Span) float64 {
	if len(spans) == 0 {
		return 12.0
	}
	var total float64
	var chars int
	for _, s := range spans {
		total += s.FontSize * float64(len(s.Text))
		chars += len(s.Text)
	}
	if chars == 0 {
		return 12.0
	}
	return total / float64(chars)
}
