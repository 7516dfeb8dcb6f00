package session

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const (
	MessageWon         = "Game won"
	MessageLost        = "Game lost"
	MessageNoMarksLeft = "No marks left"
)

// Session is the glue between input/rendering layers and a [mines.Game].
// It remembers the params so a finished game can be replaced by a fresh
// one. Like the game it wraps, it is confined to one goroutine.
type Session struct {
	logger    *slog.Logger
	params    mines.GameParams
	rnd       *rand.Rand
	game      *mines.Game
	id        string
	startedAt time.Time
	endedAt   time.Time
	message   string
}

func newSessionId() string {
	u := [16]byte(uuid.New())
	return base64.RawURLEncoding.EncodeToString(u[:])
}

func New(logger *slog.Logger, params mines.GameParams, rnd *rand.Rand) (*Session, error) {
	s := &Session{
		logger: logger,
		params: params,
		rnd:    rnd,
	}
	if err := s.OnRestartRequest(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Params() mines.GameParams {
	return s.params
}

func (s *Session) Status() mines.Status {
	return s.game.Status()
}

func (s *Session) FlagsRemaining() int {
	return s.game.FlagsRemaining()
}

func (s *Session) Symbol(row, col int) mines.Symbol {
	return s.game.Symbol(row, col)
}

func (s *Session) Board() string {
	return s.game.String()
}

// Playtime is the time since the game started, or its total length once
// it is over.
func (s *Session) Playtime() time.Duration {
	if !s.endedAt.IsZero() {
		return s.endedAt.Sub(s.startedAt)
	}
	return time.Since(s.startedAt)
}

// StatusText is the status-bar line: flags left while playing, the outcome
// once the game is over, or the message left by the last rejected action.
func (s *Session) StatusText() string {
	switch s.game.Status() {
	case mines.Won:
		return MessageWon
	case mines.Lost:
		return MessageLost
	}
	if s.message != "" {
		return s.message
	}
	return strconv.Itoa(s.game.FlagsRemaining())
}

// OnRestartRequest throws the current board away and deals a new one with
// the same params.
func (s *Session) OnRestartRequest() error {
	game, err := mines.NewGame(s.params, s.rnd)
	if err != nil {
		return err
	}
	s.game = game
	s.id = newSessionId()
	s.startedAt = time.Now().UTC()
	s.endedAt = time.Time{}
	s.message = ""
	s.logger.Info(
		"new game",
		slog.String("session", s.id),
		slog.String("seed", s.params.Seed()),
	)
	return nil
}

// OnPrimaryAction reveals (row, col), or starts over if the game has
// already ended. It reports whether the display needs to be redrawn.
func (s *Session) OnPrimaryAction(row, col int) bool {
	s.message = ""
	if s.game.Status() != mines.InProgress {
		if err := s.OnRestartRequest(); err != nil {
			s.logger.Error("unable to restart game", slog.Any("error", err))
			return false
		}
		return true
	}
	update, err := s.game.Reveal(row, col)
	return s.afterMove("reveal", row, col, update, err)
}

// OnSecondaryAction toggles the flag on (row, col) and reports whether the
// display needs to be redrawn.
func (s *Session) OnSecondaryAction(row, col int) bool {
	s.message = ""
	update, err := s.game.ToggleFlag(row, col)
	if errors.Is(err, mines.ErrNoFlagsLeft) {
		s.message = MessageNoMarksLeft
		return true
	}
	return s.afterMove("flag", row, col, update, err)
}

func (s *Session) afterMove(
	move string, row, col int, update mines.BoardUpdate, err error,
) bool {
	if err != nil {
		s.logger.Debug(
			"move ignored",
			slog.String("session", s.id),
			slog.String("move", move),
			slog.Int("row", row),
			slog.Int("col", col),
			slog.Any("reason", err),
		)
		return false
	}
	s.logger.Debug(
		"move",
		slog.String("session", s.id),
		slog.String("move", move),
		slog.Int("row", row),
		slog.Int("col", col),
		slog.Int("changed", len(update)),
	)
	if status := s.game.Status(); status != mines.InProgress {
		s.endedAt = time.Now().UTC()
		s.logger.Info(
			"game over",
			slog.String("session", s.id),
			slog.String("status", status.String()),
			slog.Int64("playtime_ms", s.Playtime().Milliseconds()),
		)
	}
	return len(update) > 0
}
