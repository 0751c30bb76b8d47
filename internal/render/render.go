// Package render serializes layout analysis results to markdown-like
// output for downstream consumers.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dgallion1/doclayout/internal/layout"
	"github.com/dgallion1/doclayout/internal/noise"
	"github.com/dgallion1/doclayout/internal/structure"
	"github.com/yuin/goldmark"
)

// Options controls markdown rendering.
type Options struct {
	// Title is emitted as a leading H1 when set.
	Title string

	// PageBreaks inserts an HTML comment between pages.
	PageBreaks bool

	// CleanNoise strips boilerplate from the rendered output.
	CleanNoise bool
}

// Markdown renders the analyzed document in reading order. Headings map
// to #/##/### by level; body blocks become paragraphs.
func Markdown(res *layout.Result, opts Options) string {
	var b strings.Builder

	if opts.Title != "" {
		b.WriteString("# " + opts.Title + "\n\n")
	}

	for i, page := range res.Pages {
		if opts.PageBreaks && i > 0 {
			fmt.Fprintf(&b, "<!-- page %d -->\n\n", page.Page)
		}
		writePage(&b, page)
	}

	out := strings.TrimRight(b.String(), "\n") + "\n"
	if opts.CleanNoise {
		out = noise.Clean(out) + "\n"
	}
	return out
}

func writePage(b *strings.Builder, page layout.PageLayout) {
	var para []string
	flushPara := func() {
		if len(para) > 0 {
			b.WriteString(strings.Join(para, " ") + "\n\n")
			para = nil
		}
	}

	for _, block := range page.Blocks {
		if block.IsHeading {
			flushPara()
			b.WriteString(strings.Repeat("#", int(block.HeadingLevel)) + " " + block.Text + "\n\n")
		} else {
			para = append(para, block.Text)
		}
	}
	flushPara()
}

// Outline renders the structure tree as a nested markdown list with page
// references.
func Outline(tree *structure.Tree) string {
	if tree == nil || len(tree.Sections) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range tree.Sections {
		writeOutlineNode(&b, n, 0)
	}
	return b.String()
}

func writeOutlineNode(b *strings.Builder, n *structure.Node, depth int) {
	fmt.Fprintf(b, "%s- %s (p.%d)\n", strings.Repeat("  ", depth), n.Title, n.Page)
	for _, child := range n.Subsections {
		writeOutlineNode(b, child, depth+1)
	}
}

// HTML converts rendered markdown to HTML.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
