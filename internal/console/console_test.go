package console

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestSession(t *testing.T, params mines.GameParams) *session.Session {
	t.Helper()
	s, err := session.New(discard, params, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return s
}

func TestRender(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})

	want := "" +
		"    0 1 2\n" +
		" 0  # # #\n" +
		"[0]\n"
	assert.Equal(t, want, render(s))
}

func TestRunWins(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 2, Cols: 3})
	var out bytes.Buffer

	c := New(discard, s, strings.NewReader("o 1 2\nq\n"), &out)
	require.NoError(t, c.Run())

	assert.Equal(t, mines.Won, s.Status())
	assert.Contains(t, out.String(), " 1  . . .\n[Game won]\n")
}

func TestRunStopsAtQuit(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
	var out bytes.Buffer

	c := New(discard, s, strings.NewReader("q\no 0 0\n"), &out)
	require.NoError(t, c.Run())

	assert.Equal(t, mines.InProgress, s.Status())
}

func TestRunSeveralCommandsPerLine(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
	var out bytes.Buffer

	c := New(discard, s, strings.NewReader("f 0 1; o 0 0; p\n"), &out)
	require.NoError(t, c.Run())

	assert.Equal(t, mines.Won, s.Status())
	// one board for the start, one for the line
	assert.Equal(t, 2, strings.Count(out.String(), "    0 1 2\n"))
}

func TestRunReportsBadCommands(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 2, Cols: 2})
	var out bytes.Buffer

	input := strings.Join([]string{
		"x",
		"o 1",
		"o a 1",
		"f 1 b",
		"o 2 0",
		"n 1",
	}, "\n")
	c := New(discard, s, strings.NewReader(input), &out)
	require.NoError(t, c.Run())

	got := out.String()
	assert.Contains(t, got, `error: unknown command "x"`)
	assert.Equal(t, 2, strings.Count(got, "error: invalid number of arguments"))
	assert.Contains(t, got, "error: row must be an int")
	assert.Contains(t, got, "error: col must be an int")
	assert.Contains(t, got, "error: invalid cell coordinates")
	assert.Equal(t, mines.InProgress, s.Status())
}

func TestNoMarksLeft(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})

	res, err := executeCommand(s, "f 0 0")
	require.NoError(t, err)
	assert.Equal(t, redraw, res)
	assert.Equal(t, session.MessageNoMarksLeft, s.StatusText())
}

func TestNewGameCommand(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
	id := s.ID()

	res, err := executeCommand(s, "n")
	require.NoError(t, err)
	assert.Equal(t, redraw, res)
	assert.NotEqual(t, id, s.ID())

	res, err = executeCommand(s, "   ")
	require.NoError(t, err)
	assert.Equal(t, unchanged, res)
}

type closingReader struct {
	io.Reader
	closed bool
}

func (r *closingReader) Close() error {
	r.closed = true
	return nil
}

func TestStopClosesInput(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
	in := &closingReader{Reader: strings.NewReader("")}

	c := New(discard, s, in, io.Discard)
	c.Stop()

	assert.True(t, in.closed)
	assert.NoError(t, c.Run())
}

func TestStopUnblocksRun(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
	r, w := io.Pipe()
	defer w.Close()

	c := New(discard, s, r, io.Discard)
	errc := make(chan error, 1)
	go func() { errc <- c.Run() }()

	_, err := io.WriteString(w, "f 0 0\n")
	require.NoError(t, err)
	c.Stop()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

// stopWriter stops the console from inside a redraw, while more input is
// still waiting to be handed over.
type stopWriter struct {
	c      *Console
	writes int
}

func (w *stopWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes == 3 {
		w.c.Stop()
		time.Sleep(20 * time.Millisecond)
	}
	return len(p), nil
}

func TestStopDuringRedraw(t *testing.T) {
	for range 40 {
		s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
		w := &stopWriter{}
		c := New(discard, s, strings.NewReader("p\np\np\np\n"), w)
		w.c = c

		errc := make(chan error, 1)
		go func() { errc <- c.Run() }()

		select {
		case err := <-errc:
			require.NoError(t, err)
		case <-time.After(500 * time.Millisecond):
			t.Fatal("Run did not return after Stop")
		}
	}
}

func TestOpenRestartsFinishedGame(t *testing.T) {
	s := newTestSession(t, mines.GameParams{Rows: 1, Cols: 3})
	_, err := executeCommand(s, "o 0 0")
	require.NoError(t, err)
	require.Equal(t, mines.Won, s.Status())
	id := s.ID()

	res, err := executeCommand(s, "o 99 99")
	require.NoError(t, err)
	assert.Equal(t, redraw, res)
	assert.Equal(t, mines.InProgress, s.Status())
	assert.NotEqual(t, id, s.ID())

	// flags still have to be on the board
	_, err = executeCommand(s, "f 99 99")
	assert.EqualError(t, err, "invalid cell coordinates")
}
