package layout

import "sort"

// OrderBlocks computes the reading order for one page of column-assigned
// blocks: columns left to right, top to bottom within a column. A column
// is fully exhausted before the next one starts, so a block low on the
// page in column 0 still precedes everything in column 1.
//
// The returned slice is in reading order with ReadingOrder set from 0;
// the counter restarts on every page.
func OrderBlocks(blocks []TextBlock) []TextBlock {
	if len(blocks) == 0 {
		return nil
	}

	groups := make(map[int][]TextBlock)
	for _, b := range blocks {
		groups[b.Column] = append(groups[b.Column], b)
	}

	columns := make([]int, 0, len(groups))
	for col := range groups {
		columns = append(columns, col)
	}
	sort.Ints(columns)

	ordered := make([]TextBlock, 0, len(blocks))
	for _, col := range columns {
		group := groups[col]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].BBox.Y0 < group[j].BBox.Y0
		})
		for _, b := range group {
			b.ReadingOrder = len(ordered)
			ordered = append(ordered, b)
		}
	}

	return ordered
}
