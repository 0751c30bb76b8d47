package layout

import (
	"math"
	"sort"
)

// HeadingConfig holds thresholds for heading classification.
type HeadingConfig struct {
	// SizeRatio is the minimum font-size / median ratio for a block to
	// qualify as a heading on size alone.
	SizeRatio float64

	// MinSize is the minimum absolute font size for the size path.
	MinSize float64

	// BoldRatio is the minimum ratio for bold blocks to qualify.
	BoldRatio float64
}

// DefaultHeadingConfig returns the standard thresholds: headings are 20%
// larger than the body median and at least 12pt, or bold and 10% larger.
func DefaultHeadingConfig() HeadingConfig {
	return HeadingConfig{
		SizeRatio: 1.2,
		MinSize:   12,
		BoldRatio: 1.1,
	}
}

// HeadingClassifier flags blocks as headings from font-size and weight
// signals, relative to the median body size of its input scope.
type HeadingClassifier struct {
	config HeadingConfig
}

// NewHeadingClassifier creates a classifier with default thresholds.
func NewHeadingClassifier() *HeadingClassifier {
	return NewHeadingClassifierWithConfig(DefaultHeadingConfig())
}

// NewHeadingClassifierWithConfig creates a classifier with custom thresholds.
func NewHeadingClassifierWithConfig(config HeadingConfig) *HeadingClassifier {
	if config.SizeRatio <= 0 {
		config.SizeRatio = 1.2
	}
	if config.MinSize <= 0 {
		config.MinSize = 12
	}
	if config.BoldRatio <= 0 {
		config.BoldRatio = 1.1
	}
	return &HeadingClassifier{config: config}
}

// Classify returns the blocks with heading flags set plus the heading
// subset, preserving input order. The median is computed over the given
// blocks; the caller chooses the scope (the analyzer uses one page).
//
// Blocks with zero, negative, or non-finite font sizes are left out of
// the median but stay in the output as body text. No usable sizes means
// no median and no headings.
func (c *HeadingClassifier) Classify(blocks []TextBlock) ([]TextBlock, []TextBlock) {
	if len(blocks) == 0 {
		return nil, nil
	}

	median := medianFontSize(blocks)

	out := make([]TextBlock, len(blocks))
	var headings []TextBlock
	for i, b := range blocks {
		if median > 0 {
			level := c.classify(b, median)
			if level != Body {
				b.IsHeading = true
				b.HeadingLevel = level
			}
		}
		out[i] = b
		if b.IsHeading {
			headings = append(headings, b)
		}
	}

	return out, headings
}

// classify returns the heading level for a block, or Body.
func (c *HeadingClassifier) classify(b TextBlock, median float64) HeadingLevel {
	if !isUsableSize(b.FontSize) {
		return Body
	}
	ratio := b.FontSize / median

	isHeading := (ratio >= c.config.SizeRatio && b.FontSize >= c.config.MinSize) ||
		(b.FontWeight == WeightBold && ratio >= c.config.BoldRatio)
	if !isHeading {
		return Body
	}

	// Level comes from the ratio regardless of which path qualified, so a
	// bold block only modestly larger than the body lands at H3.
	switch {
	case ratio >= 1.5:
		return H1
	case ratio >= 1.3:
		return H2
	default:
		return H3
	}
}

// medianFontSize returns the median of the usable font sizes, picking the
// upper-middle element for even counts (no interpolation). Returns 0 when
// no block has a usable size.
func medianFontSize(blocks []TextBlock) float64 {
	var sizes []float64
	for _, b := range blocks {
		if isUsableSize(b.FontSize) {
			sizes = append(sizes, b.FontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

func isUsableSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 0) && !math.IsNaN(size)
}
