package app

import "coloretto/internal/domain"

// NamedCards is the transport form of one entry in a name-to-cards map.
// Map fields are converted to these ordered lists exactly once, here, so
// clients always receive deterministic key order (seating order).
type NamedCards struct {
	Name  string        `json:"name"`
	Cards []domain.Card `json:"cards"`
}

// NameScore is the transport form of one entry in the final-scores map.
type NameScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Snapshot is the sanitized view of a game broadcast to observers. The draw
// deck is reduced to a count so clients cannot learn the reveal order.
type Snapshot struct {
	GameName            string                `json:"gameName"`
	Owner               string                `json:"owner"`
	MaxPlayers          int                   `json:"maxPlayers"`
	Players             []string              `json:"players"`
	AIPlayers           []domain.AIPlayer     `json:"aiPlayers"`
	DifficultyLevel     domain.Difficulty     `json:"difficultyLevel"`
	IsPrepared          bool                  `json:"isPrepared"`
	IsFinished          bool                  `json:"isFinished"`
	IsPaused            bool                  `json:"isPaused"`
	IsRoundCardRevealed bool                  `json:"isRoundCardRevealed"`
	Columns             []domain.Column       `json:"columns"`
	DeckRemaining       int                   `json:"deckRemaining"`
	PlayerCollections   []NamedCards          `json:"playerCollections"`
	WildCards           []NamedCards          `json:"wildCards"`
	SummaryCards        []NamedCards          `json:"summaryCards"`
	CurrentPlayerIndex  int                   `json:"currentPlayerIndex"`
	CurrentPlayer       string                `json:"currentPlayer"`
	CurrentRound        int                   `json:"currentRound"`
	PlayersTakenColumn  []string              `json:"playersTakenColumn"`
	FinalScores         []NameScore           `json:"finalScores"`
	Winner              []string              `json:"winner"`
}

// BuildSnapshot converts the aggregate into its sanitized transport view.
func BuildSnapshot(g *domain.GameState) Snapshot {
	seats := g.SeatOrder()
	toNamed := func(m map[string][]domain.Card) []NamedCards {
		out := make([]NamedCards, 0, len(seats))
		for _, seat := range seats {
			out = append(out, NamedCards{Name: seat, Cards: m[seat]})
		}
		return out
	}

	scores := make([]NameScore, 0, len(g.FinalScores))
	for _, seat := range seats {
		if score, ok := g.FinalScores[seat]; ok {
			scores = append(scores, NameScore{Name: seat, Score: score})
		}
	}

	return Snapshot{
		GameName:            g.GameName,
		Owner:               g.Owner,
		MaxPlayers:          g.MaxPlayers,
		Players:             append([]string(nil), g.Players...),
		AIPlayers:           append([]domain.AIPlayer(nil), g.AIPlayers...),
		DifficultyLevel:     g.DifficultyLevel,
		IsPrepared:          g.IsPrepared,
		IsFinished:          g.IsFinished,
		IsPaused:            g.IsPaused,
		IsRoundCardRevealed: g.IsRoundCardRevealed,
		Columns:             append([]domain.Column(nil), g.Columns...),
		DeckRemaining:       len(g.Deck),
		PlayerCollections:   toNamed(g.PlayerCollections),
		WildCards:           toNamed(g.WildCards),
		SummaryCards:        toNamed(g.SummaryCards),
		CurrentPlayerIndex:  g.CurrentPlayerIndex,
		CurrentPlayer:       g.CurrentPlayerName(),
		CurrentRound:        g.CurrentRound,
		PlayersTakenColumn:  append([]string(nil), g.PlayersTakenColumn...),
		FinalScores:         scores,
		Winner:              append([]string(nil), g.Winner...),
	}
}
