package screen

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

// cellWidth is the number of terminal columns one board cell takes.
const cellWidth = 2

const help = "click/space: open  right click/f: flag  n: new  q: quit"

// Screen plays a session in a full-screen terminal UI. The left mouse
// button (or space/enter at the cursor) opens a cell, the right button (or
// f) toggles its flag.
type Screen struct {
	logger  *slog.Logger
	session *session.Session
	screen  tcell.Screen
	cursor  mines.Point
	buttons tcell.ButtonMask
}

func New(logger *slog.Logger, s *session.Session, screen tcell.Screen) *Screen {
	return &Screen{
		logger:  logger,
		session: s,
		screen:  screen,
	}
}

// Run initializes the terminal and handles events until the player quits or
// [Screen.Stop] is called.
func (u *Screen) Run() error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("unable to init screen: %w", err)
	}
	defer u.screen.Fini()

	u.screen.EnableMouse()
	u.screen.Clear()
	u.draw()

	for {
		switch ev := u.screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return nil
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			if u.handleKey(ev) {
				return nil
			}
		case *tcell.EventMouse:
			u.handleMouse(ev)
		}
		u.draw()
	}
}

func (u *Screen) Stop() {
	if err := u.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
		u.logger.Warn("unable to post interrupt", slog.Any("error", err))
	}
}

// cellAt maps a terminal position to a board cell.
func (u *Screen) cellAt(x, y int) (mines.Point, bool) {
	p := mines.Point{Row: y, Col: x / cellWidth}
	return p, x >= 0 && u.session.Params().Dims().Contains(p)
}

// handleKey reports whether the player asked to quit.
func (u *Screen) handleKey(ev *tcell.EventKey) bool {
	dims := u.session.Params().Dims()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		u.cursor.Row = max(u.cursor.Row-1, 0)
	case tcell.KeyDown:
		u.cursor.Row = min(u.cursor.Row+1, dims.Rows-1)
	case tcell.KeyLeft:
		u.cursor.Col = max(u.cursor.Col-1, 0)
	case tcell.KeyRight:
		u.cursor.Col = min(u.cursor.Col+1, dims.Cols-1)
	case tcell.KeyEnter:
		u.session.OnPrimaryAction(u.cursor.Row, u.cursor.Col)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case ' ':
			u.session.OnPrimaryAction(u.cursor.Row, u.cursor.Col)
		case 'f':
			u.session.OnSecondaryAction(u.cursor.Row, u.cursor.Col)
		case 'n':
			if err := u.session.OnRestartRequest(); err != nil {
				u.logger.Error("unable to restart game", slog.Any("error", err))
			}
		}
	}
	return false
}

// handleMouse acts on buttons that went down with this event; tcell repeats
// the held buttons on every motion event.
func (u *Screen) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ u.buttons
	u.buttons = buttons

	p, ok := u.cellAt(ev.Position())
	if !ok {
		return
	}
	u.cursor = p

	switch {
	case pressed&tcell.Button1 != 0:
		u.session.OnPrimaryAction(p.Row, p.Col)
	case pressed&tcell.Button2 != 0:
		u.session.OnSecondaryAction(p.Row, p.Col)
	}
}

var (
	styleCover = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMine  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFlag  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleWrong = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleHints = [9]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
		tcell.StyleDefault.Foreground(tcell.ColorBlue),
		tcell.StyleDefault.Foreground(tcell.ColorGreen),
		tcell.StyleDefault.Foreground(tcell.ColorRed),
		tcell.StyleDefault.Foreground(tcell.ColorNavy),
		tcell.StyleDefault.Foreground(tcell.ColorMaroon),
		tcell.StyleDefault.Foreground(tcell.ColorTeal),
		tcell.StyleDefault.Foreground(tcell.ColorWhite),
		tcell.StyleDefault.Foreground(tcell.ColorSilver),
	}
)

func symbolStyle(s mines.Symbol) tcell.Style {
	if n, ok := s.Hint(); ok {
		return styleHints[n]
	}
	switch s {
	case mines.SymbolMine:
		return styleMine
	case mines.SymbolFlag:
		return styleFlag
	case mines.SymbolWrongFlag:
		return styleWrong
	default:
		return styleCover
	}
}

func (u *Screen) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (u *Screen) draw() {
	u.screen.Clear()

	params := u.session.Params()
	for row := range params.Rows {
		for col := range params.Cols {
			symbol := u.session.Symbol(row, col)
			style := symbolStyle(symbol)
			if u.cursor == (mines.Point{Row: row, Col: col}) {
				style = style.Reverse(true)
			}
			u.screen.SetContent(col*cellWidth, row, []rune(symbol.String())[0], nil, style)
		}
	}

	u.drawText(0, params.Rows+1, u.session.StatusText(), tcell.StyleDefault.Bold(true))
	u.drawText(0, params.Rows+2, help, tcell.StyleDefault.Dim(true))
	u.screen.Show()
}
