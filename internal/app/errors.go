package app

import "errors"

// Validation errors surfaced to callers. The match adapter maps these to
// client-facing rejection codes via KindOf.
var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found in game")
	ErrAINotFound     = errors.New("ai player not found in game")

	ErrGameFinished      = errors.New("game already finished")
	ErrGamePaused        = errors.New("game is paused")
	ErrGameNotPrepared   = errors.New("game not prepared")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrInvalidColumn     = errors.New("column index out of range")
	ErrColumnFull        = errors.New("column is at capacity")
	ErrEmptyColumnTake   = errors.New("cannot take an empty column while another column holds cards")
	ErrAlreadyTookColumn = errors.New("player already took a column this round")
	ErrRoundCardRevealed = errors.New("end-round card revealed, no further reveals this round")
	ErrRoundNotOver      = errors.New("round is not over")
	ErrDeckEmpty         = errors.New("draw deck is empty")
	ErrReplacementLocked = errors.New("replacement not allowed at round end")

	ErrGameFull        = errors.New("game is full")
	ErrNameTaken       = errors.New("name already taken in this game")
	ErrAlreadyJoined   = errors.New("player already joined this game")
	ErrAlreadyPrepared = errors.New("game already prepared")
	ErrGameInProgress  = errors.New("game already in progress")
	ErrTooFewPlayers   = errors.New("not enough players")
	ErrInvalidPlayers  = errors.New("player count must be between 2 and 5")

	ErrScoringFailed = errors.New("score computation failed")
)

// ErrorKind buckets errors for transport-level reporting.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindInvalidMove
	KindConflict
)

// KindOf classifies an error into the reporting taxonomy. Unknown errors
// are internal.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrGameNotFound),
		errors.Is(err, ErrPlayerNotFound),
		errors.Is(err, ErrAINotFound):
		return KindNotFound
	case errors.Is(err, ErrGameFinished),
		errors.Is(err, ErrGamePaused),
		errors.Is(err, ErrGameNotPrepared),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrInvalidColumn),
		errors.Is(err, ErrColumnFull),
		errors.Is(err, ErrEmptyColumnTake),
		errors.Is(err, ErrAlreadyTookColumn),
		errors.Is(err, ErrRoundCardRevealed),
		errors.Is(err, ErrRoundNotOver),
		errors.Is(err, ErrDeckEmpty),
		errors.Is(err, ErrReplacementLocked):
		return KindInvalidMove
	case errors.Is(err, ErrGameFull),
		errors.Is(err, ErrNameTaken),
		errors.Is(err, ErrAlreadyJoined),
		errors.Is(err, ErrAlreadyPrepared),
		errors.Is(err, ErrGameInProgress),
		errors.Is(err, ErrTooFewPlayers),
		errors.Is(err, ErrInvalidPlayers):
		return KindConflict
	default:
		return KindInternal
	}
}
