package mines

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type GameParams struct {
	Rows      int `json:"rows" schema:"rows,required"`
	Cols      int `json:"cols" schema:"cols,required"`
	MineCount int `json:"mine_count" schema:"mine_count,required"`
}

func (p GameParams) Unpack() (rows int, cols int, mc int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Dims() Dims {
	return Dims{Rows: p.Rows, Cols: p.Cols}
}

func (p GameParams) Validate() error {
	rows, cols, mineCount := p.Unpack()
	switch {
	case rows <= 0 || cols <= 0:
		return &InvalidConfigError{p, "rows and cols must be positive"}
	case rows > math.MaxInt/cols:
		return &InvalidConfigError{p, "board is too large"}
	case mineCount < 0:
		return &InvalidConfigError{p, "mine count must not be negative"}
	case mineCount >= rows*cols:
		return &InvalidConfigError{p, "mine count must be less than rows*cols"}
	}
	return nil
}

// Seed is the compact "rows:cols:mines" form of p.
func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	fields := strings.Split(seed, ":")
	if len(fields) != 3 {
		return nil, fmt.Errorf(
			`invalid game params seed "%s": want rows:cols:mines, got %d fields`,
			seed, len(fields),
		)
	}
	var values [3]int
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf(`invalid game params seed "%s": %w`, seed, err)
		}
		values[i] = v
	}
	return &GameParams{Rows: values[0], Cols: values[1], MineCount: values[2]}, nil
}
