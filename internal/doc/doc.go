package doc

// Span is a contiguous run of text sharing one font, size, and style,
// as emitted by the layout pass of a parser. Coordinates are page-relative
// with the origin at the top-left corner.
type Span struct {
	Text     string
	Page     int // 1-indexed
	X0, Y0   float64
	X1, Y1   float64
	FontSize float64
	FontName string
	Bold     bool
}

// Level is a heading hierarchy level.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Depth returns the numeric depth of a level (H1=1 .. H3=3).
func (l Level) Depth() int {
	switch l {
	case H1:
		return 1
	case H2:
		return 2
	case H3:
		return 3
	}
	return 0
}

// LevelForDepth maps a depth back to a level, clamping to H3.
func LevelForDepth(d int) Level {
	switch {
	case d <= 1:
		return H1
	case d == 2:
		return H2
	default:
		return H3
	}
}

// Heading is one outline entry.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the canonical per-document result: a title plus the ordered
// heading list. Headings are ordered by (page, vertical position) and are
// unique by normalized text.
type Outline struct {
	Title   string    `json:"title"`
	Outline []Heading `json:"outline"`
}

// Section is a titled slice of document content between two heading
// boundaries. Seq records batch-wide acquisition order and is what keeps
// score ties deterministic.
type Section struct {
	Document string
	Title    string
	Content  string
	Page     int // 1-indexed page the section starts on
	Seq      int
}

// ScoredSection is a Section with its final relevance score and rank.
// Rank is assigned only after the final sort.
type ScoredSection struct {
	Section
	Score float64
	Rank  int
}

// Query is the persona/job pair driving a relevance run. Immutable input;
// every scorer derives its keyword sets from it.
type Query struct {
	Persona string
	Job     string
}

// Combined returns the persona and job joined into one query string.
func (q Query) Combined() string {
	return q.Persona + " " + q.Job
}

// Document is a parsed document ready for classification and segmentation.
// Span-bearing formats (PDF) fill Spans and AvgFontSize; structured formats
// (Markdown, HTML, DOCX) carry an explicit outline and pre-segmented
// sections instead.
type Document struct {
	Name        string
	Pages       int
	Spans       []Span
	AvgFontSize float64

	Outline  *Outline
	Sections []Section
}

// HasSpans reports whether this document went through span extraction and
// needs the font-heuristic classifier.
func (d *Document) HasSpans() bool {
	return len(d.Spans) > 0
}
