package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/gammazero/deque"
)

var Log *slog.Logger = slog.Default()

type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

type CellUpdate struct {
	Point
	Cell
}

// BoardUpdate lists the cells changed by one action, in the order they
// changed. An empty update means nothing happened.
type BoardUpdate []CellUpdate

// Game is one board: its cells, the flag budget and the outcome. A Game is
// not safe for concurrent use; it belongs to whoever dispatches input.
type Game struct {
	params    GameParams
	dims      Dims
	cells     []Cell
	status    Status
	flagsLeft int
	safeLeft  int /* safe cells not yet revealed */
}

func newGame(params GameParams) *Game {
	dims := params.Dims()
	return &Game{
		params:    params,
		dims:      dims,
		cells:     make([]Cell, dims.Len()),
		status:    InProgress,
		flagsLeft: params.MineCount,
		safeLeft:  dims.Len() - params.MineCount,
	}
}

// NewGame validates params and deals a fresh board with mines placed at
// random. No board is created when params are invalid.
func NewGame(params GameParams, r *rand.Rand) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := newGame(params)
	g.placeRandomMines(r)
	Log.Debug("new game", slog.String("seed", params.Seed()))
	return g, nil
}

// NewGameWithMines deals a board with mines at exactly the given points.
func NewGameWithMines(params GameParams, mines []Point) (*Game, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	g := newGame(params)
	if err := g.placeMines(mines); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Params() GameParams {
	return g.params
}

func (g *Game) Dims() Dims {
	return g.dims
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) FlagsRemaining() int {
	return g.flagsLeft
}

func (g *Game) Cell(row, col int) (Cell, bool) {
	p := Point{Row: row, Col: col}
	if !g.dims.Contains(p) {
		return Cell{}, false
	}
	return g.cells[g.dims.Index(p)], true
}

// Symbol tells a renderer what to draw at (row, col). It panics if the
// point is outside the board.
func (g *Game) Symbol(row, col int) Symbol {
	p := Point{Row: row, Col: col}
	if !g.dims.Contains(p) {
		panic(fmt.Sprintf("mines: symbol for %s outside %dx%d board", p, g.dims.Rows, g.dims.Cols))
	}
	return g.cells[g.dims.Index(p)].symbol(g.status)
}

func (g *Game) cellAt(row, col int) (int, error) {
	if g.status != InProgress {
		return 0, ErrGameOver
	}
	p := Point{Row: row, Col: col}
	if !g.dims.Contains(p) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return g.dims.Index(p), nil
}

// Reveal opens a covered cell. Opening a mine loses the game; opening an
// empty cell also opens the surrounding region. Flagged cells have to be
// unflagged first.
func (g *Game) Reveal(row, col int) (BoardUpdate, error) {
	i, err := g.cellAt(row, col)
	if err != nil {
		return nil, err
	}

	switch g.cells[i].Cover {
	case Flagged:
		return nil, ErrCellFlagged
	case Revealed:
		return nil, ErrAlreadyRevealed
	}

	update := g.reveal(nil, i)

	switch g.cells[i].Content {
	case Mine:
		g.status = Lost
		Log.Debug("mine revealed", slog.Any("point", g.dims.Point(i)))
		return update, nil
	case Empty:
		update = g.floodFill(update, g.dims.Point(i))
	}

	if g.safeLeft == 0 {
		g.status = Won
		Log.Debug("game won", slog.String("seed", g.params.Seed()))
	}

	return update, nil
}

func (g *Game) reveal(update BoardUpdate, i int) BoardUpdate {
	if g.cells[i].Cover != Covered {
		panic(AssertionError{"revealing a cell that is not covered"})
	}
	g.cells[i].Cover = Revealed
	if g.cells[i].Content != Mine {
		g.safeLeft--
	}
	return append(update, CellUpdate{g.dims.Point(i), g.cells[i]})
}

// floodFill opens everything reachable from the empty cell at start through
// other empty cells. Flags block the fill. Every cell is revealed at most
// once, which bounds the work list by the size of the board.
func (g *Game) floodFill(update BoardUpdate, start Point) BoardUpdate {
	var todo deque.Deque[Point]
	todo.PushBack(start)

	for todo.Len() != 0 {
		p := todo.PopFront()
		for n := range g.dims.Neighbors(p) {
			j := g.dims.Index(n)
			if g.cells[j].Cover != Covered || g.cells[j].Content == Mine {
				continue
			}
			update = g.reveal(update, j)
			if g.cells[j].Content == Empty {
				todo.PushBack(n)
			}
		}
	}

	return update
}

// ToggleFlag flags a covered cell or unflags a flagged one. Flagging needs
// a mark left in the budget; the budget knows nothing about where the mines
// really are.
func (g *Game) ToggleFlag(row, col int) (BoardUpdate, error) {
	i, err := g.cellAt(row, col)
	if err != nil {
		return nil, err
	}

	switch g.cells[i].Cover {
	case Revealed:
		return nil, ErrAlreadyRevealed
	case Covered:
		if g.flagsLeft == 0 {
			return nil, ErrNoFlagsLeft
		}
		g.cells[i].Cover = Flagged
		g.flagsLeft--
	case Flagged:
		g.cells[i].Cover = Covered
		g.flagsLeft++
	}

	return BoardUpdate{{g.dims.Point(i), g.cells[i]}}, nil
}
