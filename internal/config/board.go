package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// DefaultBoard is a 16x16 board with 40 mines.
var DefaultBoard = mines.GameParams{Rows: 16, Cols: 16, MineCount: 40}

func lookupInt(key string) (int, bool, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0, false, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return v, true, nil
}

// Board overrides base with MINES_ROWS, MINES_COLS and MINES_MINE_COUNT
// where they are set.
func Board(base mines.GameParams) (mines.GameParams, error) {
	params := base
	for key, dst := range map[string]*int{
		"MINES_ROWS":       &params.Rows,
		"MINES_COLS":       &params.Cols,
		"MINES_MINE_COUNT": &params.MineCount,
	} {
		v, ok, err := lookupInt(key)
		if err != nil {
			return base, err
		}
		if ok {
			*dst = v
		}
	}
	if err := params.Validate(); err != nil {
		return base, err
	}
	return params, nil
}

// ParseBoard reads board params from either a query string such as
// "rows=9&cols=9&mine_count=10" or a seed such as "9:9:10".
func ParseBoard(s string) (mines.GameParams, error) {
	var params mines.GameParams

	if !strings.Contains(s, "=") {
		p, err := mines.ParseSeed(s)
		if err != nil {
			return params, err
		}
		params = *p
	} else {
		query, err := url.ParseQuery(s)
		if err != nil {
			return params, fmt.Errorf("unable to parse board %q: %w", s, err)
		}
		dec := schema.NewDecoder()
		dec.IgnoreUnknownKeys(true)
		if err := dec.Decode(&params, query); err != nil {
			return params, fmt.Errorf("unable to decode board %q: %w", s, err)
		}
	}

	if err := params.Validate(); err != nil {
		return params, err
	}
	return params, nil
}
