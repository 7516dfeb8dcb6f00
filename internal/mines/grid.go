package mines

import (
	"strconv"
	"strings"
)

// Content is what a cell hides: 0 for empty, 1 to 8 for the number of
// neighbouring mines, or [Mine]. It never changes once mines are placed.
type Content int8

const (
	Empty Content = 0
	Mine  Content = -1
)

func (c Content) IsMine() bool {
	return c == Mine
}

func (c Content) Symbol() Symbol {
	if c == Mine {
		return SymbolMine
	}
	return Symbol(c)
}

// Cover is what the player has done to a cell.
type Cover uint8

const (
	Covered Cover = iota
	Flagged
	Revealed
)

func (c Cover) String() string {
	switch c {
	case Covered:
		return "covered"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "cover(" + strconv.Itoa(int(c)) + ")"
	}
}

type Cell struct {
	Content Content
	Cover   Cover
}

func (c Cell) symbol(status Status) Symbol {
	if status == Lost {
		switch {
		case c.Cover == Covered && c.Content == Mine:
			return SymbolMine
		case c.Cover == Flagged && c.Content != Mine:
			return SymbolWrongFlag
		}
	}
	switch c.Cover {
	case Flagged:
		return SymbolFlag
	case Covered:
		return SymbolCover
	}
	return c.Content.Symbol()
}

// Symbol is the presentation state of a cell. Values 0 to 8 are revealed
// hints, so a renderer can index an image table with it directly.
type Symbol uint8

const (
	SymbolEmpty     Symbol = 0
	SymbolMine      Symbol = 9
	SymbolCover     Symbol = 10
	SymbolFlag      Symbol = 11
	SymbolWrongFlag Symbol = 12
)

// Hint reports the neighbouring mine count of a revealed safe cell.
func (s Symbol) Hint() (int, bool) {
	if s <= 8 {
		return int(s), true
	}
	return 0, false
}

func (s Symbol) String() string {
	switch {
	case s == SymbolEmpty:
		return "."
	case s <= 8:
		return strconv.Itoa(int(s))
	case s == SymbolMine:
		return "*"
	case s == SymbolCover:
		return "#"
	case s == SymbolFlag:
		return "F"
	case s == SymbolWrongFlag:
		return "X"
	default:
		return "?"
	}
}

// String draws the board as it should currently be displayed, one row per
// line.
func (g *Game) String() string {
	var b strings.Builder
	for row := range g.dims.Rows {
		for col := range g.dims.Cols {
			if col > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g.Symbol(row, col).String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
