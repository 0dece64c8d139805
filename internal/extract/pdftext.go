package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	rpdf "rsc.io/pdf"
)

// Document is the raw text of one solicitation: the full concatenated text
// for pattern searches plus the per-line view the table parsers slice.
type Document struct {
	Lines []string
	Text  string
}

// TextExtractor is the only contract the pipeline requires from a PDF
// library; any implementation producing lines and text is interchangeable.
type TextExtractor interface {
	ExtractDocument(content []byte) (*Document, error)
}

// PDFExtractor reads PDFs with rsc.io/pdf.
type PDFExtractor struct{}

// ExtractDocument parses the PDF and reconstructs reading-order lines by
// grouping text fragments on their vertical position per page. The pdf
// package panics on some malformed files, so the panic is converted into an
// error here rather than taking down the batch.
func (PDFExtractor) ExtractDocument(content []byte) (doc *Document, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			doc = nil
			err = fmt.Errorf("pdf parser panic: %v", recovered)
		}
	}()

	reader, err := rpdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	var lines []string
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, assembleLines(page.Content().Text)...)
	}

	return &Document{Lines: lines, Text: strings.Join(lines, "\n")}, nil
}

// assembleLines groups fragments that share a baseline (within half a point)
// into one line, ordered top-to-bottom then left-to-right.
func assembleLines(fragments []rpdf.Text) []string {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]rpdf.Text, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y // PDF origin is bottom-left
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []string
	var builder strings.Builder
	currentY := sorted[0].Y
	var lastEnd float64

	flush := func() {
		line := strings.TrimRight(builder.String(), " ")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
		builder.Reset()
	}

	for _, frag := range sorted {
		if abs(frag.Y-currentY) > 0.5 {
			flush()
			currentY = frag.Y
			lastEnd = 0
		}
		if builder.Len() > 0 && frag.X-lastEnd > frag.FontSize*0.25 {
			builder.WriteString(" ")
		}
		builder.WriteString(frag.S)
		lastEnd = frag.X + frag.W
	}
	flush()

	return lines
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
