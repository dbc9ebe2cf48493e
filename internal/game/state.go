package game

// ActivePiece is the falling piece. Row/Col locate the shape's
// top-left corner on the grid; Row is -1 while the piece is still
// entering from above the visible field. Replaced wholesale on every
// transition, never mutated in place.
type ActivePiece struct {
	ID       PieceID
	Rotation int
	Shape    Shape
	Row      int
	Col      int
}

// Snapshot is one complete game state. Transitions treat it as
// copy-on-write: a snapshot handed to a transition is never modified,
// and the grids of previously returned snapshots never change.
// Active is nil only before the first spawn or once GameOver is set.
type Snapshot struct {
	Grid     *Grid
	Active   *ActivePiece
	NextKey  PieceID
	Score    int
	Level    int
	Lines    int
	Combo    int
	Paused   bool
	GameOver bool
}

// FlatGrid returns the snapshot's grid as a flat row-major id array
// for streaming and persistence collaborators.
func (s *Snapshot) FlatGrid() []int { return s.Grid.Flat() }

// clone copies the snapshot and its active piece. The grid is shared;
// transitions that write clone it separately first.
func (s *Snapshot) clone() *Snapshot {
	next := *s
	if s.Active != nil {
		active := *s.Active
		next.Active = &active
	}
	return &next
}

// Result is the outcome of a transition. Changed is false when the
// intent had no effect, so callers can skip repaint and stream work;
// State is then the input snapshot itself.
type Result struct {
	Changed bool
	State   *Snapshot
}

func unchanged(s *Snapshot) Result { return Result{Changed: false, State: s} }

// Engine applies player intents and gravity ticks to snapshots. It is
// single-threaded and call-driven: the caller's event loop invokes one
// transition per discrete intent. The only state the engine itself
// holds is the injected piece randomizer.
type Engine struct {
	rand Randomizer
}

// NewEngine creates an engine drawing pieces from r.
func NewEngine(r Randomizer) *Engine {
	return &Engine{rand: r}
}

// NewGame creates a fresh snapshot with an empty grid, draws the first
// piece, and spawns it.
func (e *Engine) NewGame(width, height int) (*Snapshot, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Grid:    grid,
		Level:   1,
		NextKey: e.rand.Next(),
	}
	e.spawn(snap)
	return snap, nil
}

// spawn instantiates the piece for snap.NextKey one row above the
// visible top, horizontally centered, and draws the next key. If the
// fresh piece immediately collides the game tops out; that is the
// sole game-ending rule. Mutates snap, so it is only called on
// snapshots still under construction.
func (e *Engine) spawn(snap *Snapshot) {
	shape := RotationsFor(snap.NextKey)[0]
	piece := &ActivePiece{
		ID:    snap.NextKey,
		Shape: shape,
		Row:   -1,
		Col:   (snap.Grid.Width() - shape.Cols()) / 2,
	}
	snap.NextKey = e.rand.Next()
	if snap.Grid.Collides(piece.Shape, piece.Row, piece.Col) {
		snap.GameOver = true
		snap.Active = nil
		return
	}
	snap.Active = piece
}

// Move relocates the active piece by (dx, dy). A blocked downward
// step locks the piece instead: it is committed to the grid, full
// rows are cleared and folded into score/level/lines/combo, and the
// next piece spawns. A blocked horizontal step is a no-op.
func (e *Engine) Move(s *Snapshot, dx, dy int) Result {
	if s == nil || s.Active == nil || s.Paused || s.GameOver {
		return unchanged(s)
	}
	row := s.Active.Row + dy
	col := s.Active.Col + dx
	if !s.Grid.Collides(s.Active.Shape, row, col) {
		next := s.clone()
		next.Active.Row = row
		next.Active.Col = col
		return Result{Changed: true, State: next}
	}
	if dy > 0 {
		return Result{Changed: true, State: e.lock(s)}
	}
	return unchanged(s)
}

// Rotate advances the active piece to its next clockwise rotation at
// the unchanged position. A rotation that collides is discarded; no
// wall-kick positions are tried.
func (e *Engine) Rotate(s *Snapshot) Result {
	if s == nil || s.Active == nil || s.Paused || s.GameOver {
		return unchanged(s)
	}
	rotation := (s.Active.Rotation + 1) % 4
	shape := RotationsFor(s.Active.ID)[rotation]
	if s.Grid.Collides(shape, s.Active.Row, s.Active.Col) {
		return unchanged(s)
	}
	next := s.clone()
	next.Active.Rotation = rotation
	next.Active.Shape = shape
	return Result{Changed: true, State: next}
}

// HardDrop sends the active piece straight to its lowest legal row
// and locks it there in a single transition.
func (e *Engine) HardDrop(s *Snapshot) Result {
	if s == nil || s.Active == nil || s.Paused || s.GameOver {
		return unchanged(s)
	}
	row := s.Active.Row
	for !s.Grid.Collides(s.Active.Shape, row+1, s.Active.Col) {
		row++
	}
	dropped := s.clone()
	dropped.Active.Row = row
	return Result{Changed: true, State: e.lock(dropped)}
}

// TogglePause flips the pause flag and nothing else. It works even
// after game over so an end screen can be frozen.
func (e *Engine) TogglePause(s *Snapshot) Result {
	if s == nil {
		return unchanged(s)
	}
	next := s.clone()
	next.Paused = !next.Paused
	return Result{Changed: true, State: next}
}

// Restart zeroes the grid, resets every counter, clears game over and
// pause, and spawns a fresh piece. Equivalent to a brand-new game
// reusing the grid's dimensions; the pending next key carries over so
// the preview the player saw stays honest.
func (e *Engine) Restart(s *Snapshot) Result {
	if s == nil {
		return unchanged(s)
	}
	next := s.clone()
	next.Grid = s.Grid.Clone()
	next.Grid.Reset()
	next.Score = 0
	next.Lines = 0
	next.Combo = 0
	next.Level = 1
	next.Paused = false
	next.GameOver = false
	e.spawn(next)
	return Result{Changed: true, State: next}
}

// lock commits the active piece at its current position, clears lines,
// applies scoring, and spawns the next piece. The grid is cloned so
// the input snapshot stays intact.
func (e *Engine) lock(s *Snapshot) *Snapshot {
	next := s.clone()
	next.Grid = s.Grid.Clone()
	next.Grid.Place(next.Active.Shape, next.Active.Row, next.Active.Col)
	cleared := next.Grid.ClearLines()
	points, streak := ScoreForLines(cleared, next.Level, next.Combo)
	next.Score += points
	next.Combo = streak
	next.Lines += cleared
	next.Level = LevelForLines(next.Lines)
	e.spawn(next)
	return next
}
