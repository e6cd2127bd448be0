package bot

import (
	"errors"

	"coloretto/internal/domain"
)

// ErrUnknownSeat is returned when a brain is asked to act for a name that
// holds no seat in the game.
var ErrUnknownSeat = errors.New("bot: unknown seat")

// ActionKind is the kind of turn action an AI decided on.
type ActionKind string

const (
	// ActionReveal draws the top deck card into a column.
	ActionReveal ActionKind = "reveal"
	// ActionTake drafts the full contents of a column.
	ActionTake ActionKind = "take"
)

// Decision is a single resolved AI action.
type Decision struct {
	Kind   ActionKind
	Column int
}

// Brain decides turn actions for an AI seat. Implementations use the same
// reveal/take primitives as human players and must never mutate the game.
type Brain interface {
	Decide(g *domain.GameState, seatName string) (Decision, error)
}
