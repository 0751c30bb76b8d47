// Package chunker produces structure-aware text chunks from a layout
// analysis result, sized for retrieval pipelines. Body blocks attach to
// the nearest preceding heading, so every chunk carries its section
// breadcrumb and page range.
package chunker

import (
	"strings"

	"github.com/dgallion1/doclayout/internal/layout"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // Target chunk size in tokens.
	ChunkOverlap int // Overlap between consecutive chunks in tokens.
	MinChunk     int // Minimum chunk size to emit.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1500,
		ChunkOverlap: 200,
		MinChunk:     100,
	}
}

// Chunk is a sized text segment with structural context.
type Chunk struct {
	Text       string   `json:"text"`
	Index      int      `json:"index"`
	Breadcrumb []string `json:"breadcrumb"` // Heading hierarchy, e.g. ["Results", "Revenue"]
	PageStart  int      `json:"page_start"`
	PageEnd    int      `json:"page_end"`
}

// ChunkResult walks the document blocks in reading order and produces
// chunks grouped by section.
func ChunkResult(res *layout.Result, cfg Config) []Chunk {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1500
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = 200
	}
	if cfg.MinChunk <= 0 {
		cfg.MinChunk = 100
	}

	var chunks []Chunk
	index := 0

	// trail holds the open ancestor headings, innermost last. Popping by
	// level (not slice position) keeps sibling headings at the same depth
	// even when a level was skipped, matching the outline tree.
	var trail []crumb
	var parts []string
	pageStart, pageEnd := 0, 0

	flush := func() {
		if len(parts) == 0 {
			return
		}
		text := strings.Join(parts, "\n\n")
		parts = nil

		bc := breadcrumbTitles(trail)
		if EstimateTokens(text) <= cfg.ChunkSize {
			if EstimateTokens(text) >= cfg.MinChunk {
				chunks = append(chunks, Chunk{
					Text:       text,
					Index:      index,
					Breadcrumb: bc,
					PageStart:  pageStart,
					PageEnd:    pageEnd,
				})
				index++
			}
			return
		}

		for _, part := range splitText(text, cfg.ChunkSize, cfg.ChunkOverlap) {
			if EstimateTokens(part) >= cfg.MinChunk {
				chunks = append(chunks, Chunk{
					Text:       part,
					Index:      index,
					Breadcrumb: bc,
					PageStart:  pageStart,
					PageEnd:    pageEnd,
				})
				index++
			}
		}
	}

	for _, block := range res.Blocks() {
		if block.IsHeading {
			flush()
			level := int(block.HeadingLevel)
			if level < 1 {
				level = 1
			}
			for len(trail) > 0 && trail[len(trail)-1].level >= level {
				trail = trail[:len(trail)-1]
			}
			trail = append(trail, crumb{title: block.Text, level: level})
			pageStart, pageEnd = block.Page, block.Page
			continue
		}

		if len(parts) == 0 {
			pageStart = block.Page
		}
		pageEnd = block.Page
		parts = append(parts, block.Text)
	}
	flush()

	return chunks
}

// splitText breaks text into chunks of approximately targetTokens, with overlap.
func splitText(text string, targetTokens, overlapTokens int) []string {
	paragraphs := splitByParagraphs(text)

	var result []string
	var current strings.Builder
	currentTokens := 0

	for _, para := range paragraphs {
		paraTokens := EstimateTokens(para)

		// A single oversized paragraph is split further by sentences.
		if paraTokens > targetTokens {
			if currentTokens > 0 {
				result = append(result, current.String())
				current.Reset()
				currentTokens = 0
			}
			result = append(result, splitBySentences(para, targetTokens, overlapTokens)...)
			continue
		}

		if currentTokens+paraTokens > targetTokens && currentTokens > 0 {
			result = append(result, current.String())

			overlap := getOverlapText(current.String(), overlapTokens)
			current.Reset()
			currentTokens = 0
			if overlap != "" {
				current.WriteString(overlap)
				currentTokens = EstimateTokens(overlap)
			}
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
		currentTokens += paraTokens
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}

	return result
}

func splitByParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitBySentences breaks a large paragraph into sentence-based chunks.
func splitBySentences(text string, targetTokens, overlapTokens int) []string {
	sentences := splitSentences(text)

	var result []string
	var current strings.Builder
	currentTokens := 0

	for _, sent := range sentences {
		sentTokens := EstimateTokens(sent)

		if currentTokens+sentTokens > targetTokens && currentTokens > 0 {
			result = append(result, current.String())
			overlap := getOverlapText(current.String(), overlapTokens)
			current.Reset()
			currentTokens = 0
			if overlap != "" {
				current.WriteString(overlap)
				currentTokens = EstimateTokens(overlap)
			}
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentTokens += sentTokens
	}

	if currentTokens > 0 {
		result = append(result, current.String())
	}

	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && text[i+1] == ' ' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, strings.TrimSpace(current.String()))
	}

	return sentences
}

// getOverlapText extracts the last N tokens worth of text for overlap.
func getOverlapText(text string, targetTokens int) string {
	words := strings.Fields(text)
	// Approximate: 1.33 tokens per word.
	targetWords := int(float64(targetTokens) / 1.33)
	if targetWords <= 0 || len(words) <= targetWords {
		return ""
	}
	return strings.Join(words[len(words)-targetWords:], " ")
}

// crumb is one open ancestor heading on the breadcrumb trail.
type crumb struct {
	title string
	level int
}

func breadcrumbTitles(trail []crumb) []string {
	if len(trail) == 0 {
		return nil
	}
	out := make([]string, len(trail))
	for i, c := range trail {
		out[i] = c.title
	}
	return out
}
