package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, width, height int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	require.NoError(t, err)
	return g
}

func TestNewGridDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{name: "standard", width: 10, height: 20},
		{name: "minimal", width: 1, height: 1},
		{name: "zero width", width: 0, height: 20, wantErr: true},
		{name: "zero height", width: 10, height: 0, wantErr: true},
		{name: "negative", width: -3, height: 20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimensions)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, g.Width())
			assert.Equal(t, tt.height, g.Height())
			for r := 0; r < tt.height; r++ {
				for c := 0; c < tt.width; c++ {
					assert.Equal(t, Cell(0), g.At(r, c))
				}
			}
		})
	}
}

func TestCollides(t *testing.T) {
	g := mustGrid(t, 10, 20)
	g.Place(RotationsFor(PieceO)[0], 18, 0) // occupy bottom-left 2x2

	square := RotationsFor(PieceO)[0]

	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{name: "open field", row: 5, col: 4, want: false},
		{name: "above top is allowed", row: -1, col: 4, want: false},
		{name: "past left wall", row: 5, col: -1, want: true},
		{name: "past right wall", row: 5, col: 9, want: true},
		{name: "through floor", row: 19, col: 4, want: true},
		{name: "resting on floor", row: 18, col: 4, want: false},
		{name: "onto occupied cells", row: 18, col: 0, want: true},
		{name: "overlapping occupied edge", row: 17, col: 1, want: true},
		{name: "beside occupied cells", row: 18, col: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Collides(square, tt.row, tt.col))
		})
	}
}

func TestCollidesDefensiveDefaults(t *testing.T) {
	var nilGrid *Grid
	assert.True(t, nilGrid.Collides(RotationsFor(PieceO)[0], 0, 0))

	g := mustGrid(t, 10, 20)
	assert.True(t, g.Collides(Shape{}, 0, 0), "zero shape reads as blocked")
}

func TestCollidesNeverMutates(t *testing.T) {
	g := mustGrid(t, 4, 4)
	g.Collides(RotationsFor(PieceO)[0], 1, 1)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			assert.Equal(t, Cell(0), g.At(r, c))
		}
	}
}

func TestPlaceWritesCellValues(t *testing.T) {
	g := mustGrid(t, 10, 20)
	g.Place(RotationsFor(PieceT)[0], 18, 3)

	// T base layout: row 0 = .X., row 1 = XXX, tinted with id 6.
	assert.Equal(t, Cell(0), g.At(18, 3))
	assert.Equal(t, PieceT.Cell(), g.At(18, 4))
	assert.Equal(t, Cell(0), g.At(18, 5))
	assert.Equal(t, PieceT.Cell(), g.At(19, 3))
	assert.Equal(t, PieceT.Cell(), g.At(19, 4))
	assert.Equal(t, PieceT.Cell(), g.At(19, 5))
}

func TestPlaceDropsOutOfBoundsCells(t *testing.T) {
	g := mustGrid(t, 10, 20)
	// Partially above the top: only the bottom row lands.
	g.Place(RotationsFor(PieceO)[0], -1, 4)

	assert.Equal(t, PieceO.Cell(), g.At(0, 4))
	assert.Equal(t, PieceO.Cell(), g.At(0, 5))
	for c := 0; c < 10; c++ {
		assert.Equal(t, Cell(0), g.At(1, c))
	}
}

func fillRow(g *Grid, row int, except ...int) {
	skip := make(map[int]bool, len(except))
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < g.Width(); c++ {
		if !skip[c] {
			g.cells[row][c] = 7
		}
	}
}

func TestClearLines(t *testing.T) {
	t.Run("no full rows", func(t *testing.T) {
		g := mustGrid(t, 10, 20)
		fillRow(g, 19, 0)
		assert.Equal(t, 0, g.ClearLines())
		assert.Equal(t, Cell(7), g.At(19, 1))
	})

	t.Run("single row", func(t *testing.T) {
		g := mustGrid(t, 10, 20)
		fillRow(g, 19)
		g.cells[18][3] = 2

		assert.Equal(t, 1, g.ClearLines())
		// The survivor shifts down into row 19.
		assert.Equal(t, Cell(2), g.At(19, 3))
		for c := 0; c < 10; c++ {
			assert.Equal(t, Cell(0), g.At(18, c))
		}
	})

	t.Run("consecutive full rows are all counted", func(t *testing.T) {
		g := mustGrid(t, 10, 20)
		fillRow(g, 16)
		fillRow(g, 17)
		fillRow(g, 18)
		fillRow(g, 19)
		g.cells[15][0] = 3

		assert.Equal(t, 4, g.ClearLines())
		assert.Equal(t, Cell(3), g.At(19, 0))
		for r := 0; r < 19; r++ {
			for c := 0; c < 10; c++ {
				assert.Equal(t, Cell(0), g.At(r, c), "row %d col %d", r, c)
			}
		}
	})

	t.Run("dimensions preserved", func(t *testing.T) {
		g := mustGrid(t, 6, 8)
		fillRow(g, 7)
		fillRow(g, 5)
		assert.Equal(t, 2, g.ClearLines())
		assert.Equal(t, 6, g.Width())
		assert.Equal(t, 8, g.Height())
	})
}

func TestCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, 10, 20)
	g.Place(RotationsFor(PieceO)[0], 18, 0)

	c := g.Clone()
	c.Place(RotationsFor(PieceO)[0], 18, 4)

	assert.Equal(t, Cell(0), g.At(18, 4), "placing into the clone must not touch the original")
	assert.Equal(t, PieceO.Cell(), c.At(18, 0), "clone keeps the original's cells")
}

func TestResetZeroesInPlace(t *testing.T) {
	g := mustGrid(t, 5, 5)
	fillRow(g, 4)
	g.Reset()
	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 5, g.Height())
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			assert.Equal(t, Cell(0), g.At(r, c))
		}
	}
}

func TestFlat(t *testing.T) {
	g := mustGrid(t, 3, 2)
	g.cells[1][2] = 5
	assert.Equal(t, []int{0, 0, 0, 0, 0, 5}, g.Flat())
}
