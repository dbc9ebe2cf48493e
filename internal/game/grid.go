package game

import "errors"

// ErrInvalidDimensions is returned by NewGrid for non-positive sizes.
var ErrInvalidDimensions = errors.New("game: grid dimensions must be positive")

// Grid is the playfield matrix. It is owned by the snapshot that
// contains it; transitions clone it before writing so that previously
// returned snapshots never change underneath a caller.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

// NewGrid returns an all-empty width x height grid.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, ErrInvalidDimensions
	}
	cells := make([][]Cell, height)
	for r := range cells {
		cells[r] = make([]Cell, width)
	}
	return &Grid{cells: cells, width: width, height: height}, nil
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height.
func (g *Grid) Height() int { return g.height }

// At returns the cell at (row, col). Rows above the top read as empty.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0
	}
	return g.cells[row][col]
}

// Collides reports whether the shape at (row, col) overlaps a wall,
// the floor, or an occupied cell. Cells above row 0 are allowed so a
// piece can enter the field from above. This is the per-frame hot
// path: it never errors, and malformed input reads as a collision.
func (g *Grid) Collides(s Shape, row, col int) bool {
	if g == nil || s.Rows() == 0 {
		return true
	}
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			if s.At(r, c) == 0 {
				continue
			}
			gr := row + r
			gc := col + c
			if gc < 0 || gc >= g.width || gr >= g.height {
				return true
			}
			if gr >= 0 && g.cells[gr][gc] != 0 {
				return true
			}
		}
	}
	return false
}

// Place commits the shape's filled cells into the grid at (row, col),
// writing each cell's own value. Cells mapping outside the grid are
// dropped silently. Only called once Collides has confirmed the
// resting position.
func (g *Grid) Place(s Shape, row, col int) {
	for r := 0; r < s.Rows(); r++ {
		for c := 0; c < s.Cols(); c++ {
			v := s.At(r, c)
			if v == 0 {
				continue
			}
			gr := row + r
			gc := col + c
			if gr >= 0 && gr < g.height && gc >= 0 && gc < g.width {
				g.cells[gr][gc] = v
			}
		}
	}
}

// ClearLines removes every full row, inserting a zero row at the top
// for each, and returns how many were removed. The scan runs bottom to
// top and re-examines the same index after a removal, since the rows
// above shift down into it.
func (g *Grid) ClearLines() int {
	cleared := 0
	for row := g.height - 1; row >= 0; {
		full := true
		for col := 0; col < g.width; col++ {
			if g.cells[row][col] == 0 {
				full = false
				break
			}
		}
		if !full {
			row--
			continue
		}
		copy(g.cells[1:row+1], g.cells[:row])
		g.cells[0] = make([]Cell, g.width)
		cleared++
	}
	return cleared
}

// Reset zeroes every cell in place, keeping the dimensions.
func (g *Grid) Reset() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = 0
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, g.height)
	for r := range cells {
		cells[r] = make([]Cell, g.width)
		copy(cells[r], g.cells[r])
	}
	return &Grid{cells: cells, width: g.width, height: g.height}
}

// Flat returns the grid as a flat array of cell ids (0 = empty),
// row-major, for snapshot streaming.
func (g *Grid) Flat() []int {
	flat := make([]int, g.height*g.width)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			flat[r*g.width+c] = int(g.cells[r][c])
		}
	}
	return flat
}
