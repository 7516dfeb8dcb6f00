package session

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestSession starts a session and swaps its random board for a fixed
// layout.
func newTestSession(t *testing.T, rows, cols int, layout ...mines.Point) *Session {
	t.Helper()
	params := mines.GameParams{Rows: rows, Cols: cols, MineCount: len(layout)}
	s, err := New(discard, params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	s.game, err = mines.NewGameWithMines(params, layout)
	require.NoError(t, err)
	return s
}

func TestNewRejectsInvalidParams(t *testing.T) {
	s, err := New(
		discard,
		mines.GameParams{Rows: 2, Cols: 2, MineCount: 4},
		rand.New(rand.NewPCG(1, 2)),
	)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, mines.ErrInvalidConfig)
}

func TestStatusTextShowsFlags(t *testing.T) {
	s := newTestSession(t, 3, 3, mines.Point{Row: 0, Col: 0}, mines.Point{Row: 2, Col: 2})

	assert.Equal(t, "2", s.StatusText())
	assert.True(t, s.OnSecondaryAction(1, 1))
	assert.Equal(t, "1", s.StatusText())
	assert.True(t, s.OnSecondaryAction(1, 1))
	assert.Equal(t, strconv.Itoa(s.FlagsRemaining()), s.StatusText())
}

func TestNoMarksLeft(t *testing.T) {
	s := newTestSession(t, 1, 3, mines.Point{Row: 0, Col: 2})

	assert.True(t, s.OnSecondaryAction(0, 0))
	assert.True(t, s.OnSecondaryAction(0, 1))
	assert.Equal(t, MessageNoMarksLeft, s.StatusText())
	assert.Equal(t, mines.SymbolCover, s.Symbol(0, 1))

	// the message lasts until the next action
	assert.True(t, s.OnSecondaryAction(0, 0))
	assert.Equal(t, "1", s.StatusText())
}

func TestWinThenRestart(t *testing.T) {
	s := newTestSession(t, 1, 3)
	id := s.ID()

	assert.True(t, s.OnPrimaryAction(0, 0))
	assert.Equal(t, mines.Won, s.Status())
	assert.Equal(t, MessageWon, s.StatusText())
	assert.False(t, s.OnSecondaryAction(0, 1))
	assert.Equal(t, mines.Won, s.Status())

	assert.True(t, s.OnPrimaryAction(0, 0))
	assert.Equal(t, mines.InProgress, s.Status())
	assert.NotEqual(t, id, s.ID())
	assert.Equal(t, s.Params(), mines.GameParams{Rows: 1, Cols: 3, MineCount: 0})
	assert.Equal(t, "# # #\n", s.Board())
}

func TestLoss(t *testing.T) {
	s := newTestSession(t, 2, 2, mines.Point{Row: 0, Col: 0})

	assert.True(t, s.OnPrimaryAction(0, 0))
	assert.Equal(t, mines.Lost, s.Status())
	assert.Equal(t, MessageLost, s.StatusText())
	assert.Equal(t, mines.SymbolMine, s.Symbol(0, 0))
	for _, p := range []mines.Point{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}} {
		assert.Equal(t, mines.SymbolCover, s.Symbol(p.Row, p.Col))
	}

	playtime := s.Playtime()
	assert.Equal(t, playtime, s.Playtime())
}

func TestIgnoredMovesDoNotRedraw(t *testing.T) {
	s := newTestSession(t, 2, 2, mines.Point{Row: 1, Col: 1})

	assert.True(t, s.OnPrimaryAction(0, 0))
	assert.False(t, s.OnPrimaryAction(0, 0))
	assert.False(t, s.OnSecondaryAction(0, 0))
	assert.False(t, s.OnPrimaryAction(5, 5))

	assert.True(t, s.OnSecondaryAction(0, 1))
	assert.False(t, s.OnPrimaryAction(0, 1))
	assert.Equal(t, mines.InProgress, s.Status())
}
