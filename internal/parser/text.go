package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/sectify/internal/doc"
)

// TextParser handles plain text files. There is no structure to recover,
// so the whole file becomes one page-titled section.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doc.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	b := newSectionBuilder(filename)

	var current strings.Builder
	flushPara := func() {
		if current.Len() > 0 {
			b.Text(current.String())
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flushPara()
			continue
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(line)
	}
	flushPara()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b.Document(), nil
}
