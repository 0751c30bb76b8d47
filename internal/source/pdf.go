package source

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dgallion1/doclayout/internal/layout"
	pdflib "github.com/ledongthuc/pdf"
)

// Default page size when a page carries no MediaBox (US letter at 72dpi).
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// rowTolerance is the max baseline difference (points) for two glyphs to
// sit on the same line.
const rowTolerance = 2.0

// PDFProvider extracts positioned spans from PDF files.
type PDFProvider struct{}

func (p *PDFProvider) Extract(r io.Reader, filename string) (*Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "doclayout-pdf-*.pdf")
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
		return nil, &SourceError{Format: "pdf", Err: err}
	}
	defer f.Close()

	doc := &Document{
		Title: strings.TrimSuffix(filename, ".pdf"),
	}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		width, height := pageDimensions(page)
		spans := spansFromTexts(page.Content().Text, height)

		doc.Pages = append(doc.Pages, layout.PageInput{
			Number: i,
			Width:  width,
			Height: height,
			Spans:  spans,
		})
	}

	return doc, nil
}

// pageDimensions reads the page MediaBox, falling back to letter size.
func pageDimensions(page pdflib.Page) (float64, float64) {
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() == pdflib.Array && mediaBox.Len() >= 4 {
		width := mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64()
		height := mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64()
		if width > 0 && height > 0 {
			return width, height
		}
	}
	return defaultPageWidth, defaultPageHeight
}

// spansFromTexts merges per-glyph text elements into line-level spans.
// Glyphs join the current span while they share a baseline and font and
// the horizontal gap stays small; a wide gap starts a new span so text in
// separate columns on the same line is never merged.
//
// PDF y grows upward from the page bottom; spans come out top-origin.
func spansFromTexts(texts []pdflib.Text, pageHeight float64) []layout.Span {
	filtered := make([]pdflib.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	// Top of page first (higher Y), then left to right.
	sort.SliceStable(filtered, func(i, j int) bool {
		if math.Abs(filtered[i].Y-filtered[j].Y) > rowTolerance {
			return filtered[i].Y > filtered[j].Y
		}
		return filtered[i].X < filtered[j].X
	})

	var spans []layout.Span
	var run []pdflib.Text
	var buf strings.Builder

	flush := func() {
		if len(run) == 0 {
			return
		}
		first, last := run[0], run[len(run)-1]
		spans = append(spans, layout.Span{
			Text: buf.String(),
			BBox: layout.BBox{
				X0: first.X,
				Y0: pageHeight - first.Y - first.FontSize,
				X1: last.X + last.W,
				Y1: pageHeight - first.Y,
			},
			FontSize: first.FontSize,
			FontName: first.Font,
		})
		run = run[:0]
		buf.Reset()
	}

	for _, t := range filtered {
		if len(run) > 0 {
			prev := run[len(run)-1]
			sameRow := math.Abs(t.Y-prev.Y) <= rowTolerance
			sameFont := t.Font == prev.Font && math.Abs(t.FontSize-prev.FontSize) < 0.1
			gap := t.X - (prev.X + prev.W)

			// A gap past one em is likely a column boundary or table cell.
			if !sameRow || !sameFont || gap > maxGlyphGap(prev.FontSize) {
				flush()
			} else if gap > prev.FontSize*0.3 {
				buf.WriteByte(' ')
			}
		}
		run = append(run, t)
		buf.WriteString(t.S)
	}
	flush()

	return spans
}

func maxGlyphGap(fontSize float64) float64 {
	if fontSize <= 0 {
		return 12
	}
	return fontSize
}
