package domain

import "time"

// Difficulty selects the scoring table and the AI behavior pool.
type Difficulty string

const (
	// DifficultyBasic uses the brown summary card and the escalating score table.
	DifficultyBasic Difficulty = "Basic"
	// DifficultyExpert uses the violet summary card and the peaked score table.
	DifficultyExpert Difficulty = "Expert"
)

// SummaryCardColor returns the summary card matching the difficulty.
func (d Difficulty) SummaryCardColor() ColorTag {
	if d == DifficultyExpert {
		return ColorSummaryViolet
	}
	return ColorSummaryBrown
}

// Strategy tunes how an AI seat weighs taking against revealing.
type Strategy string

const (
	StrategyConservative Strategy = "conservative"
	StrategyBalanced     Strategy = "balanced"
	StrategyAggressive   Strategy = "aggressive"
)

// AIPlayer is a computer-controlled seat.
type AIPlayer struct {
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	Strategy   Strategy   `json:"strategy"`
}

// ReplacementRecord is the audit entry kept when a seat changes hands.
type ReplacementRecord struct {
	OriginalAIName string    `json:"originalAIName"`
	ReplacedBy     string    `json:"replacedBy"`
	ReplacedAt     time.Time `json:"replacedAt"`
}

// GameState is the root aggregate for a single game. All mutation is
// serialized by the owning match loop; readers outside it only ever see
// whole persisted documents.
type GameState struct {
	GameName        string     `json:"gameName"`
	Owner           string     `json:"owner"`
	MaxPlayers      int        `json:"maxPlayers"`
	Players         []string   `json:"players"`
	AIPlayers       []AIPlayer `json:"aiPlayers"`
	DifficultyLevel Difficulty `json:"difficultyLevel"`

	IsPrepared          bool `json:"isPrepared"`
	IsFinished          bool `json:"isFinished"`
	IsPaused            bool `json:"isPaused"`
	IsRoundCardRevealed bool `json:"isRoundCardRevealed"`

	Columns []Column `json:"columns"`
	Deck    []Card   `json:"deck"`

	PlayerCollections map[string][]Card `json:"playerCollections"`
	WildCards         map[string][]Card `json:"wildCards"`
	SummaryCards      map[string][]Card `json:"summaryCards"`

	CurrentPlayerIndex int      `json:"currentPlayerIndex"`
	CurrentRound       int      `json:"currentRound"`
	PlayersTakenColumn []string `json:"playersTakenColumn"`
	LastColumnTaker    string   `json:"lastColumnTaker,omitempty"`

	FinalScores map[string]int               `json:"finalScores"`
	Winner      []string                     `json:"winner"`
	Replaced    map[string]ReplacementRecord `json:"replacedPlayers"`
}

// NewGameState creates an empty, unprepared game document.
func NewGameState(name, owner string, maxPlayers int, difficulty Difficulty) *GameState {
	return &GameState{
		GameName:           name,
		Owner:              owner,
		MaxPlayers:         maxPlayers,
		Players:            []string{owner},
		AIPlayers:          []AIPlayer{},
		DifficultyLevel:    difficulty,
		PlayerCollections:  map[string][]Card{},
		WildCards:          map[string][]Card{},
		SummaryCards:       map[string][]Card{},
		PlayersTakenColumn: []string{},
		FinalScores:        map[string]int{},
		Replaced:           map[string]ReplacementRecord{},
	}
}

// SeatOrder returns every seat name in fixed seating order: humans in join
// order followed by AI players in creation order.
func (g *GameState) SeatOrder() []string {
	seats := make([]string, 0, len(g.Players)+len(g.AIPlayers))
	seats = append(seats, g.Players...)
	for _, ai := range g.AIPlayers {
		seats = append(seats, ai.Name)
	}
	return seats
}

// SeatCount returns the number of occupied seats, human and AI.
func (g *GameState) SeatCount() int {
	return len(g.Players) + len(g.AIPlayers)
}

// SeatIndexOf returns the seat index of the named player, or -1.
func (g *GameState) SeatIndexOf(name string) int {
	for i, seat := range g.SeatOrder() {
		if seat == name {
			return i
		}
	}
	return -1
}

// CurrentPlayerName returns the name occupying the active seat, or "" when
// the index is transiently invalid.
func (g *GameState) CurrentPlayerName() string {
	seats := g.SeatOrder()
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(seats) {
		return ""
	}
	return seats[g.CurrentPlayerIndex]
}

// HasPlayer reports whether the name occupies a human seat.
func (g *GameState) HasPlayer(name string) bool {
	for _, p := range g.Players {
		if p == name {
			return true
		}
	}
	return false
}

// AIPlayerByName returns the AI seat with the given name, or nil.
func (g *GameState) AIPlayerByName(name string) *AIPlayer {
	for i := range g.AIPlayers {
		if g.AIPlayers[i].Name == name {
			return &g.AIPlayers[i]
		}
	}
	return nil
}

// HasSeat reports whether any seat, human or AI, uses the name.
func (g *GameState) HasSeat(name string) bool {
	return g.HasPlayer(name) || g.AIPlayerByName(name) != nil
}

// HasTakenColumn reports whether the named seat already took a column this round.
func (g *GameState) HasTakenColumn(name string) bool {
	for _, p := range g.PlayersTakenColumn {
		if p == name {
			return true
		}
	}
	return false
}

// AllSeatsTaken reports whether every seat has taken a column this round.
func (g *GameState) AllSeatsTaken() bool {
	return len(g.PlayersTakenColumn) >= g.SeatCount()
}

// AdvanceTurn moves the current player index to the next seat that has not
// yet taken a column this round. When every seat has taken, the index is
// left unchanged and the caller is expected to end the round.
func (g *GameState) AdvanceTurn() {
	seats := g.SeatOrder()
	if len(seats) == 0 || g.AllSeatsTaken() {
		return
	}
	idx := g.CurrentPlayerIndex
	for range seats {
		idx = (idx + 1) % len(seats)
		if !g.HasTakenColumn(seats[idx]) {
			g.CurrentPlayerIndex = idx
			return
		}
	}
}

// CardCount returns the total number of cards held across the deck, all
// columns, all collections and all wild piles. Used to verify conservation.
func (g *GameState) CardCount() int {
	n := len(g.Deck)
	for i := range g.Columns {
		n += len(g.Columns[i].Cards)
	}
	for _, cards := range g.PlayerCollections {
		n += len(cards)
	}
	for _, cards := range g.WildCards {
		n += len(cards)
	}
	return n
}
