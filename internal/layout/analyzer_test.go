package layout

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dgallion1/doclayout/internal/structure"
)

func span(text string, x0, y0, x1, y1, fontSize float64, fontName string) Span {
	return Span{
		Text:     text,
		BBox:     BBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
		FontSize: fontSize,
		FontName: fontName,
	}
}

// twoColumnPage builds a page whose spans arrive in scrambled order: a
// title, then interleaved left and right column text.
func twoColumnPage(number int) PageInput {
	spans := []Span{
		span("right body", 320, 200, 560, 212, 10, "Times"),
		span("Title", 50, 40, 200, 64, 20, "Times-Bold"),
		span("left body one", 50, 120, 280, 132, 10, "Times"),
		span("right more", 320, 300, 560, 312, 10, "Times"),
		span("left body two", 50, 220, 280, 232, 10, "Times"),
	}
	// Pad both columns so left-edge clusters are unambiguous.
	for y := 340.0; y < 520; y += 20 {
		spans = append(spans, span("left fill", 50, y, 280, y+12, 10, "Times"))
		spans = append(spans, span("right fill", 322, y, 560, y+12, 10, "Times"))
	}
	return PageInput{Number: number, Width: 612, Height: 792, Spans: spans}
}

func singleColumnPage(number int) PageInput {
	return PageInput{
		Number: number,
		Width:  612,
		Height: 792,
		Spans: []Span{
			span("Heading", 72, 40, 300, 64, 18, "Times-Bold"),
			span("paragraph one", 72, 100, 540, 112, 12, "Times"),
			span("paragraph two", 72, 140, 540, 152, 12, "Times"),
			span("paragraph three", 72, 180, 540, 192, 12, "Times"),
			span("paragraph four", 72, 220, 540, 232, 12, "Times"),
		},
	}
}

func TestAnalyze_EmptyDocument(t *testing.T) {
	res := NewAnalyzer().Analyze(nil)

	if res.LayoutType != SingleColumn {
		t.Errorf("expected single_column, got %s", res.LayoutType)
	}
	if res.TotalPages != 0 || res.TotalHeadings != 0 {
		t.Errorf("expected empty result, got %d pages, %d headings", res.TotalPages, res.TotalHeadings)
	}
	if res.Structure == nil || len(res.Structure.Sections) != 0 {
		t.Errorf("expected empty structure, got %+v", res.Structure)
	}
}

func TestAnalyze_EmptyPage(t *testing.T) {
	res := NewAnalyzer().Analyze([]PageInput{{Number: 1, Width: 612, Height: 792}})

	if res.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", res.TotalPages)
	}
	page := res.Pages[0]
	if page.Layout != SingleColumn || page.Columns != 1 {
		t.Errorf("empty page should be single-column, got %s with %d columns", page.Layout, page.Columns)
	}
	if len(page.Blocks) != 0 || len(page.Headings) != 0 {
		t.Errorf("empty page should carry no blocks or headings")
	}
}

func TestAnalyze_TwoColumnReadingOrder(t *testing.T) {
	res := NewAnalyzer().Analyze([]PageInput{twoColumnPage(1)})

	page := res.Pages[0]
	if page.Layout != TwoColumn {
		t.Fatalf("expected two_column, got %s (bounds %v)", page.Layout, page.ColumnBounds)
	}

	// All column-0 blocks come before any column-1 block.
	seenRight := false
	for _, b := range page.Blocks {
		if b.Column == 1 {
			seenRight = true
		} else if seenRight {
			t.Fatalf("column 0 block %q after column 1 started", b.Text)
		}
	}

	// Reading order is a strict 0..n-1 sequence.
	for i, b := range page.Blocks {
		if b.ReadingOrder != i {
			t.Errorf("block %d: reading order %d", i, b.ReadingOrder)
		}
	}
}

func TestAnalyze_MixedDocument(t *testing.T) {
	res := NewAnalyzer().Analyze([]PageInput{
		singleColumnPage(1),
		twoColumnPage(2),
	})

	// Any non-uniform mix is mixed, not a majority vote.
	if res.LayoutType != Mixed {
		t.Errorf("expected mixed, got %s", res.LayoutType)
	}
}

func TestAnalyze_UniformDocument(t *testing.T) {
	res := NewAnalyzer().Analyze([]PageInput{
		singleColumnPage(1),
		singleColumnPage(2),
		singleColumnPage(3),
	})
	if res.LayoutType != SingleColumn {
		t.Errorf("expected single_column, got %s", res.LayoutType)
	}
}

func TestAnalyze_PagesSortedByNumber(t *testing.T) {
	// Input pages arrive out of order; the result is sorted.
	res := NewAnalyzer().Analyze([]PageInput{
		singleColumnPage(3),
		singleColumnPage(1),
		singleColumnPage(2),
	})

	for i, p := range res.Pages {
		if p.Page != i+1 {
			t.Fatalf("position %d: expected page %d, got %d", i, i+1, p.Page)
		}
	}

	// Document headings follow page order.
	for i := 1; i < len(res.Headings); i++ {
		if res.Headings[i].Page < res.Headings[i-1].Page {
			t.Fatalf("headings out of page order: %d before %d",
				res.Headings[i-1].Page, res.Headings[i].Page)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	pages := []PageInput{singleColumnPage(1), twoColumnPage(2)}

	a := NewAnalyzer()
	first, err := json.Marshal(a.Analyze(pages))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(a.Analyze(pages))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("repeated analysis produced different output")
	}
}

func TestAnalyze_StructureRoundTrip(t *testing.T) {
	page := PageInput{
		Number: 1,
		Width:  612,
		Height: 792,
		Spans: []Span{
			span("Chapter One", 72, 20, 300, 44, 20, "Times-Bold"), // ratio vs 12 median
			span("Background", 72, 80, 300, 98, 16, "Times-Bold"),
			span("body a", 72, 120, 540, 132, 12, "Times"),
			span("body b", 72, 160, 540, 172, 12, "Times"),
			span("body c", 72, 200, 540, 212, 12, "Times"),
			span("body d", 72, 240, 540, 252, 12, "Times"),
			span("body e", 72, 280, 540, 292, 12, "Times"),
		},
	}

	res := NewAnalyzer().Analyze([]PageInput{page})
	if res.TotalHeadings == 0 {
		t.Fatal("expected headings")
	}

	// Pre-order traversal of the tree reproduces the heading stream.
	var titles []string
	res.Structure.Walk(func(n *structure.Node) { titles = append(titles, n.Title) })
	if len(titles) != len(res.Headings) {
		t.Fatalf("tree has %d nodes, heading stream has %d", len(titles), len(res.Headings))
	}
	for i, h := range res.Headings {
		if titles[i] != h.Text {
			t.Errorf("position %d: tree %q, stream %q", i, titles[i], h.Text)
		}
	}
}
