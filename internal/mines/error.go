package mines

import (
	"errors"
	"fmt"
)

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

var (
	ErrInvalidConfig = errors.New("invalid game params")
	ErrIllegalAction = errors.New("illegal action")

	ErrGameOver        = fmt.Errorf("%w: game is over", ErrIllegalAction)
	ErrAlreadyRevealed = fmt.Errorf("%w: cell is already revealed", ErrIllegalAction)
	ErrCellFlagged     = fmt.Errorf("%w: cell is flagged", ErrIllegalAction)
	ErrNoFlagsLeft     = fmt.Errorf("%w: no marks left", ErrIllegalAction)
	ErrOutOfBounds     = fmt.Errorf("%w: cell out of bounds", ErrIllegalAction)
)

// InvalidConfigError is returned when game params cannot describe a board.
// It matches [ErrInvalidConfig] with [errors.Is].
type InvalidConfigError struct {
	Params GameParams
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf(
		"invalid game params %dx%d (%d mines): %s",
		e.Params.Rows, e.Params.Cols, e.Params.MineCount, e.Reason,
	)
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}
