package layout

import "sort"

// ColumnConfig holds thresholds for column detection.
type ColumnConfig struct {
	// GapThreshold is the minimum horizontal gap (page units) between
	// left-edge clusters for them to count as separate columns.
	GapThreshold float64

	// MinColumnWidth discards bands narrower than this outright.
	MinColumnWidth float64
}

// DefaultColumnConfig returns the standard thresholds: 30pt gap, 100pt
// minimum column width.
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		GapThreshold:   30,
		MinColumnWidth: 100,
	}
}

// ColumnDetector clusters block left edges into column bands.
type ColumnDetector struct {
	config ColumnConfig
}

// NewColumnDetector creates a detector with default thresholds.
func NewColumnDetector() *ColumnDetector {
	return NewColumnDetectorWithConfig(DefaultColumnConfig())
}

// NewColumnDetectorWithConfig creates a detector with custom thresholds.
func NewColumnDetectorWithConfig(config ColumnConfig) *ColumnDetector {
	if config.GapThreshold <= 0 {
		config.GapThreshold = 30
	}
	if config.MinColumnWidth <= 0 {
		config.MinColumnWidth = 100
	}
	return &ColumnDetector{config: config}
}

// Detect determines the column layout of a page. Bands are nil for a
// single-column page. More than three surviving bands is a noisy page and
// maps to Mixed; the caller keeps going.
func (d *ColumnDetector) Detect(blocks []TextBlock, pageWidth float64) (LayoutType, []ColumnBand) {
	if len(blocks) == 0 {
		return SingleColumn, nil
	}

	coords := make([]float64, len(blocks))
	for i, b := range blocks {
		coords[i] = b.BBox.X0
	}
	sort.Float64s(coords)

	clusters := clusterCoords(coords, d.config.GapThreshold)
	if len(clusters) <= 1 {
		return SingleColumn, nil
	}

	var bands []ColumnBand
	for i, cluster := range clusters {
		left := cluster[0] // clusters keep sorted order, first is the min
		var right float64
		if i+1 < len(clusters) {
			right = clusters[i+1][0] - d.config.GapThreshold/2
		} else {
			right = pageWidth
		}
		if right-left >= d.config.MinColumnWidth {
			bands = append(bands, ColumnBand{Left: left, Right: right})
		}
	}

	switch len(bands) {
	case 0, 1:
		return SingleColumn, nil
	case 2:
		return TwoColumn, bands
	case 3:
		return ThreeColumn, bands
	default:
		return Mixed, bands
	}
}

// clusterCoords groups sorted coordinates into clusters, starting a new
// cluster whenever the gap to the previous value exceeds the threshold.
func clusterCoords(coords []float64, threshold float64) [][]float64 {
	if len(coords) == 0 {
		return nil
	}

	clusters := [][]float64{{coords[0]}}
	for _, c := range coords[1:] {
		current := clusters[len(clusters)-1]
		if c-current[len(current)-1] <= threshold {
			clusters[len(clusters)-1] = append(current, c)
		} else {
			clusters = append(clusters, []float64{c})
		}
	}
	return clusters
}

// AssignColumns maps each block to the band containing its horizontal
// center. Without bands every block lands in column 0. A center inside an
// inter-column gap falls back to column 0; that is expected, not an error.
func AssignColumns(blocks []TextBlock, bands []ColumnBand) []TextBlock {
	out := make([]TextBlock, len(blocks))
	for i, b := range blocks {
		b.Column = 0
		for idx, band := range bands {
			if band.Contains(b.BBox.CenterX()) {
				b.Column = idx
				break
			}
		}
		out[i] = b
	}
	return out
}
