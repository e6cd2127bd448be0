package app

import "coloretto/internal/domain"

// EventKind identifies emitted app events for transport dispatch.
type EventKind string

const (
	EventPlayerJoined      EventKind = "player_joined"
	EventPlayerLeft        EventKind = "player_left"
	EventGamePrepared      EventKind = "game_prepared"
	EventCardRevealed      EventKind = "card_revealed"
	EventRoundCardRevealed EventKind = "round_card_revealed"
	EventColumnTaken       EventKind = "column_taken"
	EventRoundEnding       EventKind = "round_ending"
	EventRoundStarted      EventKind = "round_started"
	EventGameEnded         EventKind = "game_ended"
	EventRosterChanged     EventKind = "roster_changed"
	EventStateSnapshot     EventKind = "state_snapshot"
)

// Event is an app-level event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player names; empty means broadcast
}

type PlayerJoinedPayload struct {
	Name string `json:"name"`
	Seat int    `json:"seat"`
}

type PlayerLeftPayload struct {
	Name string `json:"name"`
}

type GamePreparedPayload struct {
	Snapshot Snapshot `json:"snapshot"`
}

type CardRevealedPayload struct {
	Player string      `json:"player"`
	Column int         `json:"column"`
	Card   domain.Card `json:"card"`
}

type RoundCardRevealedPayload struct {
	Player string `json:"player"`
	Round  int    `json:"round"`
}

type ColumnTakenPayload struct {
	Player        string        `json:"player"`
	Column        int           `json:"column"`
	Cards         []domain.Card `json:"cards"`
	NextPlayer    string        `json:"nextPlayer"`
	RoundComplete bool          `json:"roundComplete"`
}

type RoundEndingPayload struct {
	Round int `json:"round"`
}

type RoundStartedPayload struct {
	Round       int    `json:"round"`
	FirstPlayer string `json:"firstPlayer"`
}

type GameEndedPayload struct {
	Result ScoreResult `json:"result"`
}

type RosterChangedPayload struct {
	OriginalName string   `json:"originalName"`
	NewName      string   `json:"newName"`
	NewIsAI      bool     `json:"newIsAI"`
	Snapshot     Snapshot `json:"snapshot"`
}

type StateSnapshotPayload struct {
	Snapshot Snapshot `json:"snapshot"`
}
