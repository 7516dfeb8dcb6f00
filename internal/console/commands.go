package console

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type result int

const (
	unchanged result = iota
	redraw
	quit
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"o": 2, // open (reveal)
	"f": 2, // flag
	"n": 0, // new game
	"p": 0, // print
	"q": 0, // quit
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("col must be an int")
		return
	}
	return
}

func executeCommand(s *session.Session, c string) (result, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return unchanged, nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return unchanged, errors.New("unknown command " + strconv.Quote(parts[0]))
	}
	if nargs != len(parts)-1 {
		return unchanged, errors.New("invalid number of arguments")
	}
	switch parts[0] {
	case "o", "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return unchanged, err
		}
		// any open on a finished game starts a new one
		restart := parts[0] == "o" && s.Status() != mines.InProgress
		if !restart && !s.Params().Dims().Contains(mines.Point{Row: row, Col: col}) {
			return unchanged, errors.New("invalid cell coordinates")
		}
		var changed bool
		if parts[0] == "o" {
			changed = s.OnPrimaryAction(row, col)
		} else {
			changed = s.OnSecondaryAction(row, col)
		}
		if changed {
			return redraw, nil
		}
		return unchanged, nil
	case "n":
		if err := s.OnRestartRequest(); err != nil {
			return unchanged, err
		}
		return redraw, nil
	case "p":
		return redraw, nil
	case "q":
		return quit, nil
	}
	return unchanged, errors.New("invalid command")
}
