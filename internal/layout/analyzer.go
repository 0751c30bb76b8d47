package layout

import (
	"sort"
	"sync"

	"github.com/dgallion1/doclayout/internal/structure"
)

// Config holds configuration for the whole analyzer.
type Config struct {
	Column  ColumnConfig
	Heading HeadingConfig

	// PageWorkers bounds how many pages are analyzed concurrently.
	PageWorkers int
}

// DefaultConfig returns standard thresholds and 4 page workers.
func DefaultConfig() Config {
	return Config{
		Column:      DefaultColumnConfig(),
		Heading:     DefaultHeadingConfig(),
		PageWorkers: 4,
	}
}

// PageInput is one page of spans from the extraction collaborator.
type PageInput struct {
	Number int
	Width  float64
	Height float64
	Spans  []Span
}

// Result is the document-level analysis output.
type Result struct {
	LayoutType    LayoutType      `json:"layout_type"`
	Pages         []PageLayout    `json:"pages"`
	Headings      []TextBlock     `json:"headings"`
	Structure     *structure.Tree `json:"structure"`
	TotalPages    int             `json:"total_pages"`
	TotalHeadings int             `json:"total_headings"`
}

// Blocks returns every block of the document in reading order.
func (r *Result) Blocks() []TextBlock {
	var blocks []TextBlock
	for _, p := range r.Pages {
		blocks = append(blocks, p.Blocks...)
	}
	return blocks
}

// Analyzer runs the per-page layout pipeline and aggregates the document
// result. It holds no mutable state across calls; repeated calls on the
// same input produce identical results.
type Analyzer struct {
	config   Config
	columns  *ColumnDetector
	headings *HeadingClassifier
}

// NewAnalyzer creates an analyzer with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration.
func NewAnalyzerWithConfig(config Config) *Analyzer {
	if config.PageWorkers <= 0 {
		config.PageWorkers = 4
	}
	return &Analyzer{
		config:   config,
		columns:  NewColumnDetectorWithConfig(config.Column),
		headings: NewHeadingClassifierWithConfig(config.Heading),
	}
}

// Analyze runs the full pipeline over a document's pages. Pages are
// analyzed concurrently (bounded by PageWorkers) and aggregated sorted by
// page number, so the output is deterministic regardless of scheduling.
// Degenerate input yields a minimal single-column result, never an error.
//
// The work is pure CPU; cancellation and timeouts belong to the caller.
func (a *Analyzer) Analyze(pages []PageInput) *Result {
	layouts := make([]PageLayout, len(pages))

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.config.PageWorkers)
	for i, page := range pages {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, page PageInput) {
			defer wg.Done()
			defer func() { <-sem }()
			layouts[i] = a.AnalyzePage(page)
		}(i, page)
	}
	wg.Wait()

	sort.SliceStable(layouts, func(i, j int) bool {
		return layouts[i].Page < layouts[j].Page
	})

	var headings []TextBlock
	for _, pl := range layouts {
		headings = append(headings, pl.Headings...)
	}

	return &Result{
		LayoutType:    aggregateLayout(layouts),
		Pages:         layouts,
		Headings:      headings,
		Structure:     buildStructure(headings),
		TotalPages:    len(layouts),
		TotalHeadings: len(headings),
	}
}

// AnalyzePage runs column detection, column assignment, reading-order
// sequencing, and heading classification for a single page. The heading
// median is page-local.
func (a *Analyzer) AnalyzePage(page PageInput) PageLayout {
	blocks := BlocksFromSpans(page.Spans, page.Number)

	layoutType, bands := a.columns.Detect(blocks, page.Width)
	assigned := AssignColumns(blocks, bands)
	ordered := OrderBlocks(assigned)
	classified, headings := a.headings.Classify(ordered)

	columns := 1
	if len(bands) > 0 {
		columns = len(bands)
	}

	return PageLayout{
		Page:         page.Number,
		Layout:       layoutType,
		Columns:      columns,
		ColumnBounds: bands,
		Blocks:       classified,
		Headings:     headings,
	}
}

// aggregateLayout reduces per-page layout types to one document type. A
// uniform document keeps its type; any mix at all is Mixed, deliberately
// not a majority vote.
func aggregateLayout(pages []PageLayout) LayoutType {
	if len(pages) == 0 {
		return SingleColumn
	}
	first := pages[0].Layout
	for _, p := range pages[1:] {
		if p.Layout != first {
			return Mixed
		}
	}
	return first
}

// buildStructure folds the document-wide heading stream into the outline.
func buildStructure(headings []TextBlock) *structure.Tree {
	hs := make([]structure.Heading, 0, len(headings))
	for _, h := range headings {
		hs = append(hs, structure.Heading{
			Title: h.Text,
			Level: int(h.HeadingLevel),
			Page:  h.Page,
		})
	}
	return structure.Build(hs)
}
