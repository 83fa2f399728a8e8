package world

import (
	"math"

	"github.com/jakecoffman/cp"
)

// DefaultRegionSize is the side of one grid cell in arena units.
const DefaultRegionSize = 128.0

// grid maps arena coordinates to region indices.
// Region (0, 0) starts at the bottom-left corner of the bounds.
type grid struct {
	bounds     cp.BB
	regionSize float64
	cols, rows int
}

func newGrid(bounds cp.BB, regionSize float64) grid {
	if regionSize <= 0 {
		regionSize = DefaultRegionSize
	}
	cols := max(1, int(math.Ceil((bounds.R-bounds.L)/regionSize)))
	rows := max(1, int(math.Ceil((bounds.T-bounds.B)/regionSize)))
	return grid{bounds: bounds, regionSize: regionSize, cols: cols, rows: rows}
}

// coordToIndex converts a position to a region index, clamping positions
// outside the bounds to the border cells.
func (g grid) coordToIndex(p cp.Vector) (rx, ry int) {
	rx = int(math.Floor((p.X - g.bounds.L) / g.regionSize))
	ry = int(math.Floor((p.Y - g.bounds.B) / g.regionSize))
	return clampIndex(rx, g.cols), clampIndex(ry, g.rows)
}

func (g grid) isValidIndex(rx, ry int) bool {
	return rx >= 0 && rx < g.cols && ry >= 0 && ry < g.rows
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
