package render

import (
	"strings"
	"testing"

	"github.com/dgallion1/doclayout/internal/layout"
	"github.com/dgallion1/doclayout/internal/structure"
)

func heading(text string, level layout.HeadingLevel, page int) layout.TextBlock {
	return layout.TextBlock{
		Text:         text,
		Page:         page,
		IsHeading:    true,
		HeadingLevel: level,
	}
}

func body(text string, page int) layout.TextBlock {
	return layout.TextBlock{Text: text, Page: page}
}

func sampleResult() *layout.Result {
	return &layout.Result{
		LayoutType: layout.SingleColumn,
		Pages: []layout.PageLayout{
			{
				Page:   1,
				Layout: layout.SingleColumn,
				Blocks: []layout.TextBlock{
					heading("Chapter 1", layout.H1, 1),
					body("First paragraph.", 1),
					body("Still first paragraph.", 1),
					heading("Background", layout.H2, 1),
					body("Second paragraph.", 1),
				},
			},
			{
				Page:   2,
				Layout: layout.SingleColumn,
				Blocks: []layout.TextBlock{
					body("Continued text.", 2),
				},
			},
		},
		TotalPages: 2,
	}
}

func TestMarkdown_HeadingsAndParagraphs(t *testing.T) {
	got := Markdown(sampleResult(), Options{})

	want := "# Chapter 1\n\nFirst paragraph. Still first paragraph.\n\n## Background\n\nSecond paragraph.\n\nContinued text.\n"
	if got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestMarkdown_Title(t *testing.T) {
	got := Markdown(sampleResult(), Options{Title: "My Doc"})
	if !strings.HasPrefix(got, "# My Doc\n\n") {
		t.Errorf("missing title heading: %q", got)
	}
}

func TestMarkdown_PageBreaks(t *testing.T) {
	got := Markdown(sampleResult(), Options{PageBreaks: true})
	if !strings.Contains(got, "<!-- page 2 -->") {
		t.Errorf("missing page break comment: %q", got)
	}
	if strings.Contains(got, "<!-- page 1 -->") {
		t.Errorf("page break before first page: %q", got)
	}
}

func TestMarkdown_CleanNoise(t *testing.T) {
	res := &layout.Result{
		Pages: []layout.PageLayout{
			{
				Page: 1,
				Blocks: []layout.TextBlock{
					heading("Intro", layout.H1, 1),
					body("42", 1),
					body("Real content.", 1),
				},
			},
		},
	}
	// Noise stripping removes the bare page number but keeps content.
	// The two body blocks share a paragraph, so the page number is inline
	// here and survives; cleaning acts on rendered lines.
	got := Markdown(res, Options{CleanNoise: true})
	if !strings.Contains(got, "Real content.") {
		t.Errorf("content lost: %q", got)
	}
	if !strings.Contains(got, "# Intro") {
		t.Errorf("heading lost: %q", got)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	got := Markdown(&layout.Result{}, Options{})
	if got != "\n" {
		t.Errorf("Markdown() on empty result = %q", got)
	}
}

func TestOutline(t *testing.T) {
	tree := structure.Build([]structure.Heading{
		{Title: "Chapter 1", Level: 1, Page: 1},
		{Title: "Section 1.1", Level: 2, Page: 2},
		{Title: "Chapter 2", Level: 1, Page: 5},
	})

	got := Outline(tree)
	want := "- Chapter 1 (p.1)\n  - Section 1.1 (p.2)\n- Chapter 2 (p.5)\n"
	if got != want {
		t.Errorf("Outline() = %q, want %q", got, want)
	}
}

func TestOutline_Empty(t *testing.T) {
	if got := Outline(nil); got != "" {
		t.Errorf("Outline(nil) = %q", got)
	}
	if got := Outline(&structure.Tree{}); got != "" {
		t.Errorf("Outline(empty) = %q", got)
	}
}

func TestHTML(t *testing.T) {
	out, err := HTML("# Title\n\nbody text\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Errorf("missing h1: %q", out)
	}
	if !strings.Contains(out, "<p>body text</p>") {
		t.Errorf("missing paragraph: %q", out)
	}
}
