package game

import "errors"

// Cell is one playfield cell. 0 means empty; 1..7 is the id of the
// piece occupying it, which doubles as the palette index.
type Cell int

// ErrMalformedShape is returned when a shape matrix is empty or ragged.
var ErrMalformedShape = errors.New("game: shape must be a non-empty rectangular matrix")

// Shape is one rotation of one piece: a rectangular matrix of cells.
// Immutable once constructed.
type Shape struct {
	cells [][]Cell
}

// NewShape validates and deep-copies the given matrix. Rectangularity
// is enforced here, once, so the per-frame collision path can skip it.
func NewShape(cells [][]Cell) (Shape, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return Shape{}, ErrMalformedShape
	}
	width := len(cells[0])
	copied := make([][]Cell, len(cells))
	for r, row := range cells {
		if len(row) != width {
			return Shape{}, ErrMalformedShape
		}
		copied[r] = make([]Cell, width)
		copy(copied[r], row)
	}
	return Shape{cells: copied}, nil
}

// mustShape is for the static piece catalog, where a bad matrix is a
// programming defect.
func mustShape(cells [][]Cell) Shape {
	s, err := NewShape(cells)
	if err != nil {
		panic(err)
	}
	return s
}

// Rows returns the shape height.
func (s Shape) Rows() int { return len(s.cells) }

// Cols returns the shape width, 0 for the zero Shape.
func (s Shape) Cols() int {
	if len(s.cells) == 0 {
		return 0
	}
	return len(s.cells[0])
}

// At returns the cell at (r, c).
func (s Shape) At(r, c int) Cell { return s.cells[r][c] }

// RotateCW returns the clockwise rotation of s: an RxC shape becomes
// CxR with out[c][R-1-r] = in[r][c].
func RotateCW(s Shape) Shape {
	rows, cols := s.Rows(), s.Cols()
	rotated := make([][]Cell, cols)
	for i := range rotated {
		rotated[i] = make([]Cell, rows)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rotated[c][rows-1-r] = s.cells[r][c]
		}
	}
	return Shape{cells: rotated}
}

// Rotations returns the four 90-degree variants of base, starting with
// base itself. Computed once per piece at catalog build time.
func Rotations(base Shape) [4]Shape {
	var out [4]Shape
	out[0] = base
	for i := 1; i < 4; i++ {
		out[i] = RotateCW(out[i-1])
	}
	return out
}
