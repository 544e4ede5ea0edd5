package systems

// maxGridAxis bounds the cell count per axis. Cells wider than the query
// radius still return a superset of the neighbors.
const maxGridAxis = 128

// SpatialGrid buckets point indices into square cells so proximity queries
// only visit the surrounding block of cells instead of every point.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	width    float32
	height   float32
	cells    [][]int32 // flat grid of point indices
}

// NewSpatialGrid creates a spatial grid covering the given surface size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	g := &SpatialGrid{}
	g.Reset(width, height, cellSize)
	return g
}

// Reset resizes the grid when the surface or cell size changed and empties it.
func (g *SpatialGrid) Reset(width, height, cellSize float32) {
	cellSize = max(cellSize, width/maxGridAxis, height/maxGridAxis, 1)
	if width == g.width && height == g.height && cellSize == g.cellSize {
		g.Clear()
		return
	}

	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int32, cols*rows)
	for i := range cells {
		cells[i] = make([]int32, 0, 8)
	}

	g.cellSize = cellSize
	g.cols = cols
	g.rows = rows
	g.width = width
	g.height = height
	g.cells = cells
}

// Clear removes all points from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds point i at the given position.
func (g *SpatialGrid) Insert(i int, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], int32(i))
}

// NeighborsInto appends the indices stored in the cell holding (x, y) and
// its eight neighbors to dst. With a cell size at least the query radius this
// is a superset of every point within that radius. The surface does not
// wrap, so edge cells have fewer neighbors.
func (g *SpatialGrid) NeighborsInto(dst []int32, x, y float32) []int32 {
	col, row := g.cellCoords(x, y)
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cols {
				continue
			}
			dst = append(dst, g.cells[r*g.cols+c]...)
		}
	}
	return dst
}

// cellCoords returns the clamped column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
