// Package layout reconstructs human reading order and heading structure
// from positioned text spans: column detection, column assignment,
// reading-order sequencing, and heading classification.
package layout

import (
	"encoding/json"
	"strings"
)

// LayoutType describes the column layout of a page or document.
type LayoutType int

const (
	SingleColumn LayoutType = iota
	TwoColumn
	ThreeColumn
	// Mixed means different layouts on different pages (document level),
	// or a noisy page where more than three column bands survived.
	Mixed
)

func (t LayoutType) String() string {
	switch t {
	case SingleColumn:
		return "single_column"
	case TwoColumn:
		return "two_column"
	case ThreeColumn:
		return "three_column"
	case Mixed:
		return "mixed"
	}
	return "single_column"
}

func (t LayoutType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *LayoutType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "two_column":
		*t = TwoColumn
	case "three_column":
		*t = ThreeColumn
	case "mixed":
		*t = Mixed
	default:
		*t = SingleColumn
	}
	return nil
}

// HeadingLevel is a block's role in the document hierarchy.
// Body is 0; H1..H3 match their numeric levels so the value serializes
// directly as the outline depth.
type HeadingLevel int

const (
	Body HeadingLevel = 0
	H1   HeadingLevel = 1
	H2   HeadingLevel = 2
	H3   HeadingLevel = 3
)

// FontWeight is the coarse weight classification of a span's font.
type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

// boldKeywords are matched case-insensitively against font names.
var boldKeywords = []string{"bold", "heavy", "black", "semibold"}

// WeightFromFontName classifies a font as bold or normal from its name.
func WeightFromFontName(fontName string) FontWeight {
	lower := strings.ToLower(fontName)
	for _, kw := range boldKeywords {
		if strings.Contains(lower, kw) {
			return WeightBold
		}
	}
	return WeightNormal
}

// BBox is a bounding box in page units, top-origin (y0 is the top edge).
// It serializes as the array [x0, y0, x1, y1].
type BBox struct {
	X0, Y0, X1, Y1 float64
}

func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X0, b.Y0, b.X1, b.Y1})
}

func (b *BBox) UnmarshalJSON(data []byte) error {
	var arr [4]float64
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	b.X0, b.Y0, b.X1, b.Y1 = arr[0], arr[1], arr[2], arr[3]
	return nil
}

// CenterX returns the horizontal midpoint of the box.
func (b BBox) CenterX() float64 {
	return (b.X0 + b.X1) / 2
}

// Span is a contiguous run of text sharing one font and bounding box,
// as delivered by a span provider.
type Span struct {
	Text     string  `json:"text"`
	BBox     BBox    `json:"bbox"`
	FontSize float64 `json:"font_size"`
	FontName string  `json:"font_name"`
}

// TextBlock is a span carrying layout analysis state. Column and
// ReadingOrder are -1 until the corresponding stage assigns them; stages
// return new values rather than mutating shared blocks.
type TextBlock struct {
	Text         string       `json:"text"`
	Page         int          `json:"page"`
	BBox         BBox         `json:"bbox"`
	FontSize     float64      `json:"font_size"`
	FontName     string       `json:"font_name"`
	FontWeight   FontWeight   `json:"font_weight"`
	IsHeading    bool         `json:"is_heading"`
	HeadingLevel HeadingLevel `json:"heading_level"`
	Column       int          `json:"column"`
	ReadingOrder int          `json:"reading_order"`
}

// BlocksFromSpans builds fresh text blocks for one page. Column and
// reading order start unassigned; weight is classified from the font name.
func BlocksFromSpans(spans []Span, page int) []TextBlock {
	blocks := make([]TextBlock, 0, len(spans))
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		blocks = append(blocks, TextBlock{
			Text:         text,
			Page:         page,
			BBox:         s.BBox,
			FontSize:     s.FontSize,
			FontName:     s.FontName,
			FontWeight:   WeightFromFontName(s.FontName),
			HeadingLevel: Body,
			Column:       -1,
			ReadingOrder: -1,
		})
	}
	return blocks
}

// ColumnBand is a horizontal interval identified as one reading column.
// Bands on a page are disjoint and sorted ascending by Left.
type ColumnBand struct {
	Left  float64 `json:"x_left"`
	Right float64 `json:"x_right"`
}

// Contains reports whether x falls inside the band (inclusive).
func (b ColumnBand) Contains(x float64) bool {
	return x >= b.Left && x <= b.Right
}

// PageLayout is the analysis result for one page.
type PageLayout struct {
	Page         int          `json:"page"`
	Layout       LayoutType   `json:"layout"`
	Columns      int          `json:"columns"`
	ColumnBounds []ColumnBand `json:"column_bounds"`
	Blocks       []TextBlock  `json:"blocks"`
	Headings     []TextBlock  `json:"headings"`
}
