package domain

import (
	"math/rand"
	"testing"
)

func newTestGame() *GameState {
	g := NewGameState("g1", "ana", 4, DifficultyBasic)
	g.Players = append(g.Players, "bo")
	g.AIPlayers = append(g.AIPlayers, AIPlayer{Name: "Rex", Difficulty: DifficultyBasic, Strategy: StrategyBalanced})
	return g
}

func TestSeatOrder(t *testing.T) {
	g := newTestGame()
	want := []string{"ana", "bo", "Rex"}
	got := g.SeatOrder()
	if len(got) != len(want) {
		t.Fatalf("seat count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("seat %d = %s, want %s", i, got[i], want[i])
		}
	}
	if g.SeatIndexOf("Rex") != 2 {
		t.Errorf("SeatIndexOf(Rex) = %d, want 2", g.SeatIndexOf("Rex"))
	}
	if g.SeatIndexOf("nobody") != -1 {
		t.Errorf("SeatIndexOf(nobody) = %d, want -1", g.SeatIndexOf("nobody"))
	}
}

func TestAdvanceTurnSkipsTakenSeats(t *testing.T) {
	g := newTestGame()
	g.CurrentPlayerIndex = 0
	g.PlayersTakenColumn = []string{"bo"}

	g.AdvanceTurn()
	if got := g.CurrentPlayerName(); got != "Rex" {
		t.Fatalf("current player = %s, want Rex (bo already took a column)", got)
	}
}

func TestAdvanceTurnAllTakenLeavesIndex(t *testing.T) {
	g := newTestGame()
	g.CurrentPlayerIndex = 1
	g.PlayersTakenColumn = []string{"ana", "bo", "Rex"}

	g.AdvanceTurn()
	if g.CurrentPlayerIndex != 1 {
		t.Fatalf("index moved to %d with all seats taken", g.CurrentPlayerIndex)
	}
	if !g.AllSeatsTaken() {
		t.Fatalf("AllSeatsTaken should report true")
	}
}

func TestCardCountConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := newTestGame()
	deck := ShuffleDeck(rng, NewDeck(g.SeatCount()))
	g.Columns, g.Deck = SetupColumnsAndDeck(deck, g.SeatCount())

	total := g.CardCount()

	// Move cards around: reveal into a column, take a column.
	card := g.Deck[0]
	g.Deck = g.Deck[1:]
	g.Columns[0].Cards = append(g.Columns[0].Cards, card)
	if g.CardCount() != total {
		t.Fatalf("card count changed after reveal: %d != %d", g.CardCount(), total)
	}

	taken := g.Columns[1].Cards
	g.Columns[1].Cards = nil
	g.PlayerCollections["ana"] = append(g.PlayerCollections["ana"], taken...)
	if g.CardCount() != total {
		t.Fatalf("card count changed after take: %d != %d", g.CardCount(), total)
	}
}

func TestSummaryCardColor(t *testing.T) {
	if DifficultyBasic.SummaryCardColor() != ColorSummaryBrown {
		t.Errorf("Basic summary card should be brown")
	}
	if DifficultyExpert.SummaryCardColor() != ColorSummaryViolet {
		t.Errorf("Expert summary card should be violet")
	}
}
