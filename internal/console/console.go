package console

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"github.com/vancomm/minesweeper-engine/internal/session"
)

const usage = "commands: o <row> <col> (open), f <row> <col> (flag), n (new game), p (print), q (quit)"

// Console plays a session over a line protocol: one or more commands per
// line, separated by ';'. The board is printed after every change.
type Console struct {
	logger  *slog.Logger
	session *session.Session
	in      io.Reader
	out     io.Writer

	done     chan struct{}
	stopOnce sync.Once
}

func New(logger *slog.Logger, s *session.Session, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger:  logger,
		session: s,
		in:      in,
		out:     out,
		done:    make(chan struct{}),
	}
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

// scan feeds input lines to the returned channel until end of input or
// [Console.Stop]. errc always receives the read error, possibly nil, before
// lines is closed.
func (c *Console) scan() (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		defer func() { errc <- scanner.Err() }()
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-c.done:
				return
			}
		}
	}()
	return lines, errc
}

// Run reads commands until "q", end of input or [Console.Stop].
func (c *Console) Run() error {
	fmt.Fprintln(c.out, usage)
	if err := c.print(); err != nil {
		return err
	}

	lines, errc := c.scan()
	for {
		select {
		case <-c.done:
			return nil
		case line, ok := <-lines:
			if !ok {
				return c.readErr(errc)
			}
			stop, err := c.handleLine(line)
			if stop || err != nil {
				return err
			}
		}
	}
}

func (c *Console) readErr(errc <-chan error) error {
	select {
	case <-c.done:
		return nil
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("unable to read commands: %w", err)
		}
		return nil
	}
}

// handleLine runs every command on the line and reports whether one of
// them was "q".
func (c *Console) handleLine(line string) (bool, error) {
	text := strings.TrimSpace(line)
	c.logger.Debug("command line", slog.String("text", text))

	draw := false
	for _, cmd := range byPiece(text, ";") {
		res, err := executeCommand(c.session, cmd)
		if err != nil {
			fmt.Fprintf(c.out, "error: %s\n", err)
			continue
		}
		switch res {
		case quit:
			return true, nil
		case redraw:
			draw = true
		}
	}
	if draw {
		return false, c.print()
	}
	return false, nil
}

// Stop makes Run return. It also closes the input if it can be closed.
func (c *Console) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
		if closer, ok := c.in.(io.Closer); ok {
			closer.Close()
		}
	})
}

func (c *Console) print() error {
	_, err := io.WriteString(c.out, render(c.session))
	return err
}

// render draws the board with row and column numbers, followed by the
// status line.
func render(s *session.Session) string {
	var b strings.Builder
	rows, cols := s.Params().Rows, s.Params().Cols

	b.WriteString("   ")
	for col := range cols {
		fmt.Fprintf(&b, "%2d", col%100)
	}
	b.WriteByte('\n')

	for row := range rows {
		fmt.Fprintf(&b, "%2d ", row%100)
		for col := range cols {
			fmt.Fprintf(&b, " %s", s.Symbol(row, col))
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "[%s]\n", s.StatusText())
	return b.String()
}
