package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a bounded field.
// Items are inserted by the top-left corner of their bounding box, then candidates
// overlapping a query rectangle can be enumerated without scanning every item.
//
// Cell size must be >= the largest width/height of any inserted item so that
// every candidate is found by QueryRect.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of items whose top-left corner falls within the cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a spatial grid covering the given field dimensions.
// Positions outside the field are clamped onto the border cells.
func NewSpatialGrid(fieldW, fieldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(fieldW / cellSize))
	rows := int(math.Ceil(fieldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) with the given bounding box.
func (g *SpatialGrid) Insert(r Rect, index int) {
	col, row := g.posToCell(r.X, r.Y)
	idx := row*g.cols + col
	g.cells[idx].items = append(g.cells[idx].items, index)
}

// QueryRect calls fn for each item index that may overlap r.
// Candidates are a superset of the real overlaps; callers still run the exact test.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryRect(r Rect, fn func(index int) bool) {
	minCol, minRow := g.posToCell(r.X-g.cellSize, r.Y-g.cellSize)
	maxCol, maxRow := g.posToCell(r.Right(), r.Bottom())

	for row := minRow; row <= maxRow; row++ {
		rowOffset := row * g.cols
		for col := minCol; col <= maxCol; col++ {
			for _, itemIdx := range g.cells[rowOffset+col].items {
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// posToCell converts field coordinates to grid cell coordinates.
// Clamps to valid range so off-field items land in the border cells.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
