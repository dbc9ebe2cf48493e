package game

// PieceID identifies one of the seven piece types. The numeric value
// is the non-zero cell id written into the grid, so it also selects
// the render color.
type PieceID int

const (
	PieceI PieceID = iota + 1
	PieceJ
	PieceL
	PieceO
	PieceS
	PieceT
	PieceZ
)

// Cell returns the grid cell value for this piece type.
func (id PieceID) Cell() Cell { return Cell(id) }

func (id PieceID) String() string {
	switch id {
	case PieceI:
		return "I"
	case PieceJ:
		return "J"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceS:
		return "S"
	case PieceT:
		return "T"
	case PieceZ:
		return "Z"
	}
	return "?"
}

// baseLayouts are the canonical 0/1 matrices, trimmed to their
// bounding box. Tinting replaces every 1 with the piece's cell id.
var baseLayouts = map[PieceID][][]int{
	PieceI: {
		{1, 1, 1, 1},
	},
	PieceJ: {
		{1, 0, 0},
		{1, 1, 1},
	},
	PieceL: {
		{0, 0, 1},
		{1, 1, 1},
	},
	PieceO: {
		{1, 1},
		{1, 1},
	},
	PieceS: {
		{0, 1, 1},
		{1, 1, 0},
	},
	PieceT: {
		{0, 1, 0},
		{1, 1, 1},
	},
	PieceZ: {
		{1, 1, 0},
		{0, 1, 1},
	},
}

// catalog maps each piece id to its four precomputed rotations.
var catalog = buildCatalog()

func buildCatalog() map[PieceID][4]Shape {
	out := make(map[PieceID][4]Shape, len(baseLayouts))
	for id, layout := range baseLayouts {
		tinted := make([][]Cell, len(layout))
		for r, row := range layout {
			tinted[r] = make([]Cell, len(row))
			for c, v := range row {
				if v != 0 {
					tinted[r][c] = id.Cell()
				}
			}
		}
		out[id] = Rotations(mustShape(tinted))
	}
	return out
}

// RotationsFor returns the four precomputed rotations of a piece.
func RotationsFor(id PieceID) [4]Shape { return catalog[id] }

// AllPieces returns the seven piece ids in catalog order.
func AllPieces() []PieceID {
	return []PieceID{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}
}
