package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/doclayout/internal/layout"
	"github.com/fumiama/go-docx"
)

// DOCX files carry no page geometry, so the provider lays paragraphs out
// on synthetic letter-size pages: heading styles get larger bold fonts,
// body text 12pt, with y advancing per paragraph. That keeps the layout
// pipeline format-agnostic — the classifier rediscovers the heading
// levels from the synthetic font sizes.
const (
	docxMargin   = 72.0
	docxBodySize = 12.0
)

var docxHeadingSizes = map[int]float64{1: 24, 2: 18, 3: 14}

// DOCXProvider extracts synthetic spans from .docx files.
type DOCXProvider struct{}

func (p *DOCXProvider) Extract(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "doclayout-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, &SourceError{Format: "docx", Err: err}
	}

	out := &Document{
		Title: strings.TrimSuffix(filename, ".docx"),
	}

	pageNum := 1
	y := docxMargin
	var spans []layout.Span

	flushPage := func() {
		if len(spans) == 0 {
			return
		}
		out.Pages = append(out.Pages, layout.PageInput{
			Number: pageNum,
			Width:  defaultPageWidth,
			Height: defaultPageHeight,
			Spans:  spans,
		})
		pageNum++
		y = docxMargin
		spans = nil
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		fontSize := docxBodySize
		fontName := "Calibri"
		if level := docxHeadingLevel(para); level > 0 {
			if s, ok := docxHeadingSizes[level]; ok {
				fontSize = s
			} else {
				fontSize = docxHeadingSizes[3]
			}
			fontName = "Calibri-Bold"
		}

		lineHeight := fontSize * 1.5
		if y+lineHeight > defaultPageHeight-docxMargin {
			flushPage()
		}

		spans = append(spans, layout.Span{
			Text: text,
			BBox: layout.BBox{
				X0: docxMargin,
				Y0: y,
				X1: defaultPageWidth - docxMargin,
				Y1: y + fontSize,
			},
			FontSize: fontSize,
			FontName: fontName,
		})
		y += lineHeight
	}
	flushPage()

	return out, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := para.Properties.Style.Val
	for level := 1; level <= 3; level++ {
		if strings.EqualFold(style, fmt.Sprintf("Heading%d", level)) ||
			strings.EqualFold(style, fmt.Sprintf("heading %d", level)) {
			return level
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
