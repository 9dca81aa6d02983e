// Package report assembles the relevance run output document.
package report

import (
	"strings"
	"time"

	"github.com/dgallion1/sectify/internal/doc"
	"github.com/dgallion1/sectify/internal/summarize"
)

// refinedTextLimit caps refined text length before the ellipsis is added.
const refinedTextLimit = 500

type Metadata struct {
	InputDocuments      []string `json:"input_documents"`
	Persona             string   `json:"persona"`
	JobToBeDone         string   `json:"job_to_be_done"`
	ProcessingTimestamp string   `json:"processing_timestamp"`
}

type ExtractedSection struct {
	Document       string `json:"document"`
	SectionTitle   string `json:"section_title"`
	ImportanceRank int    `json:"importance_rank"`
	PageNumber     int    `json:"page_number"`
}

type SubsectionAnalysis struct {
	Document    string `json:"document"`
	RefinedText string `json:"refined_text"`
	PageNumber  int    `json:"page_number"`
}

type Relevance struct {
	Metadata           Metadata             `json:"metadata"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

// BuildRelevance renders ranked sections into the output document. Both
// result arrays follow rank order, and both are always present even when
// empty.
func BuildRelevance(inputs []string, q doc.Query, ranked []doc.ScoredSection, sum *summarize.Summarizer, now time.Time) *Relevance {
	rel := &Relevance{
		Metadata: Metadata{
			InputDocuments:      inputs,
			Persona:             q.Persona,
			JobToBeDone:         q.Job,
			ProcessingTimestamp: now.UTC().Format(time.RFC3339),
		},
		ExtractedSections:  make([]ExtractedSection, 0, len(ranked)),
		SubsectionAnalysis: make([]SubsectionAnalysis, 0, len(ranked)),
	}
	for _, s := range ranked {
		rel.ExtractedSections = append(rel.ExtractedSections, ExtractedSection{
			Document:       s.Document,
			SectionTitle:   s.Title,
			ImportanceRank: s.Rank,
			PageNumber:     s.Page,
		})
		rel.SubsectionAnalysis = append(rel.SubsectionAnalysis, SubsectionAnalysis{
			Document:    s.Document,
			RefinedText: refineText(s.Content, sum),
			PageNumber:  s.Page,
		})
	}
	return rel
}

func refineText(content string, sum *summarize.Summarizer) string {
	text := strings.TrimSpace(content)
	if sum != nil {
		text = sum.Summarize(text)
	}
	if len(text) > refinedTextLimit {
		text = text[:refinedTextLimit] + "..."
	}
	return text
}
