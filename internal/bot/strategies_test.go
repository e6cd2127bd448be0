package bot

import (
	"testing"

	"coloretto/internal/domain"
)

func botGame() *domain.GameState {
	g := domain.NewGameState("g1", "ana", 3, domain.DifficultyBasic)
	g.Players = []string{"ana"}
	g.AIPlayers = []domain.AIPlayer{
		{Name: "Rex", Difficulty: domain.DifficultyBasic, Strategy: domain.StrategyBalanced},
	}
	g.IsPrepared = true
	g.Columns = make([]domain.Column, 3)
	g.Deck = []domain.Card{
		{Color: domain.ColorRed},
		{Color: domain.ColorBlue},
		{Color: domain.ColorGreen},
	}
	for _, seat := range g.SeatOrder() {
		g.PlayerCollections[seat] = []domain.Card{}
		g.WildCards[seat] = []domain.Card{}
	}
	return g
}

func TestBrainRevealsOnEmptyTable(t *testing.T) {
	// Nothing on the table is worth taking, so the only sensible move
	// is to reveal.
	g := botGame()
	brain := NewBrain(domain.DifficultyBasic, domain.StrategyBalanced)

	d, err := brain.Decide(g, "Rex")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Kind != ActionReveal {
		t.Fatalf("expected reveal on empty columns, got %v", d.Kind)
	}
	if d.Column < 0 || d.Column >= len(g.Columns) {
		t.Fatalf("reveal column %d out of range", d.Column)
	}
}

func TestBrainTakesWhenNoRevealPossible(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(g *domain.GameState)
	}{
		{"deck exhausted", func(g *domain.GameState) { g.Deck = nil }},
		{"trigger card revealed", func(g *domain.GameState) { g.IsRoundCardRevealed = true }},
		{"all columns full", func(g *domain.GameState) {
			for i := range g.Columns {
				g.Columns[i].Cards = []domain.Card{
					{Color: domain.ColorRed}, {Color: domain.ColorBlue}, {Color: domain.ColorGreen},
				}
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := botGame()
			g.Columns[0].Cards = []domain.Card{{Color: domain.ColorRed}}
			tt.mutate(g)

			brain := NewBrain(domain.DifficultyBasic, domain.StrategyConservative)
			d, err := brain.Decide(g, "Rex")
			if err != nil {
				t.Fatalf("Decide failed: %v", err)
			}
			if d.Kind != ActionTake {
				t.Fatalf("expected forced take, got %v", d.Kind)
			}
			if len(g.Columns[d.Column].Cards) == 0 && anyNonEmpty(g) {
				t.Fatalf("took empty column %d while others had cards", d.Column)
			}
		})
	}
}

func anyNonEmpty(g *domain.GameState) bool {
	for i := range g.Columns {
		if len(g.Columns[i].Cards) > 0 {
			return true
		}
	}
	return false
}

func TestBrainPrefersLoadedColumnMatchingCollection(t *testing.T) {
	g := botGame()
	g.PlayerCollections["Rex"] = []domain.Card{
		{Color: domain.ColorRed}, {Color: domain.ColorRed},
	}
	// Column 1 is a full pile of the color Rex is collecting plus a wild.
	g.Columns[1].Cards = []domain.Card{
		{Color: domain.ColorRed}, {Color: domain.ColorRed}, {Color: domain.ColorWild},
	}
	g.Columns[2].Cards = []domain.Card{{Color: domain.ColorYellow}}

	brain := NewBrain(domain.DifficultyBasic, domain.StrategyConservative)
	d, err := brain.Decide(g, "Rex")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Kind != ActionTake || d.Column != 1 {
		t.Fatalf("expected take of column 1, got %v column %d", d.Kind, d.Column)
	}
}

func TestExpertBrainUsesScoringDelta(t *testing.T) {
	g := botGame()
	g.DifficultyLevel = domain.DifficultyExpert
	g.AIPlayers[0].Difficulty = domain.DifficultyExpert
	// Rex holds three reds: a fourth red is worth less than a second blue
	// on the Expert table (8 -> 7 vs 1 -> 4).
	g.PlayerCollections["Rex"] = []domain.Card{
		{Color: domain.ColorRed}, {Color: domain.ColorRed}, {Color: domain.ColorRed},
		{Color: domain.ColorBlue},
	}
	g.Columns[0].Cards = []domain.Card{{Color: domain.ColorRed}}
	g.Columns[1].Cards = []domain.Card{{Color: domain.ColorBlue}}
	g.Deck = nil // force a take so only column choice is under test

	brain := NewBrain(domain.DifficultyExpert, domain.StrategyBalanced)
	d, err := brain.Decide(g, "Rex")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Column != 1 {
		t.Fatalf("expert brain picked column %d, wanted the higher-delta blue column", d.Column)
	}
}

func TestBrainNeverMutatesState(t *testing.T) {
	g := botGame()
	g.PlayerCollections["Rex"] = []domain.Card{{Color: domain.ColorRed}}
	g.WildCards["Rex"] = []domain.Card{{Color: domain.ColorWild}}
	g.Columns[0].Cards = []domain.Card{{Color: domain.ColorRed}, {Color: domain.ColorWild}}

	before := g.CardCount()
	deckLen := len(g.Deck)
	collLen := len(g.PlayerCollections["Rex"])

	brain := NewBrain(domain.DifficultyExpert, domain.StrategyAggressive)
	if _, err := brain.Decide(g, "Rex"); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	if g.CardCount() != before || len(g.Deck) != deckLen || len(g.PlayerCollections["Rex"]) != collLen {
		t.Fatal("Decide mutated the game state")
	}
}

func TestBrainRejectsUnknownSeat(t *testing.T) {
	g := botGame()
	brain := NewBrain(domain.DifficultyBasic, domain.StrategyBalanced)
	if _, err := brain.Decide(g, "ghost"); err != ErrUnknownSeat {
		t.Fatalf("expected ErrUnknownSeat, got %v", err)
	}
}

func TestConservativeTakesEarlierThanAggressive(t *testing.T) {
	// Same moderately attractive pile: the conservative brain should lock
	// it in while the aggressive one keeps revealing.
	setup := func() *domain.GameState {
		g := botGame()
		g.PlayerCollections["Rex"] = []domain.Card{{Color: domain.ColorRed}}
		g.Columns[0].Cards = []domain.Card{{Color: domain.ColorRed}, {Color: domain.ColorRed}}
		return g
	}

	conservative := NewBrain(domain.DifficultyBasic, domain.StrategyConservative)
	d, err := conservative.Decide(setup(), "Rex")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Kind != ActionTake {
		t.Fatalf("conservative brain revealed on a 3-point pile")
	}

	aggressive := NewBrain(domain.DifficultyBasic, domain.StrategyAggressive)
	d, err = aggressive.Decide(setup(), "Rex")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if d.Kind != ActionReveal {
		t.Fatalf("aggressive brain took a 3-point pile it should wait out")
	}
}
