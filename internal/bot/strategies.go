package bot

import "coloretto/internal/domain"

// heuristicBrain is the shared decision engine. Difficulty switches the
// column evaluation (Basic counts cards, Expert scores with the real
// scoring tables) and the strategy weights shift the take threshold.
type heuristicBrain struct {
	difficulty domain.Difficulty
	weights    StrategyWeights
}

// Decide picks reveal-or-take for the seat. The brain takes when the best
// column's gain clears the strategy threshold, when no reveal is possible,
// or when the table has filled up enough that waiting risks leftovers.
func (b *heuristicBrain) Decide(g *domain.GameState, seatName string) (Decision, error) {
	if g.SeatIndexOf(seatName) < 0 {
		return Decision{}, ErrUnknownSeat
	}

	bestColumn, bestGain := b.bestTakeColumn(g, seatName)

	if !b.canReveal(g) {
		return Decision{Kind: ActionTake, Column: bestColumn}, nil
	}

	// The threshold drops as columns fill: waiting past a full table only
	// lets opponents pick first.
	threshold := b.weights.TakeGainThreshold * (1.0 + b.weights.RevealBias - b.weights.FillPressure*b.fillRatio(g))
	if bestGain >= threshold && len(g.Columns[bestColumn].Cards) > 0 {
		return Decision{Kind: ActionTake, Column: bestColumn}, nil
	}

	return Decision{Kind: ActionReveal, Column: b.revealColumn(g, seatName)}, nil
}

// canReveal reports whether any reveal is legal for the seat right now.
func (b *heuristicBrain) canReveal(g *domain.GameState) bool {
	if g.IsRoundCardRevealed || len(g.Deck) == 0 {
		return false
	}
	for i := range g.Columns {
		if !g.Columns[i].IsFull() {
			return true
		}
	}
	return false
}

// fillRatio is the average fullness of all columns, 0..1.
func (b *heuristicBrain) fillRatio(g *domain.GameState) float64 {
	if len(g.Columns) == 0 {
		return 1
	}
	total := 0.0
	for i := range g.Columns {
		col := &g.Columns[i]
		total += float64(len(col.Cards)) / float64(col.Capacity())
	}
	return total / float64(len(g.Columns))
}

// bestTakeColumn returns the column with the highest gain for the seat and
// that gain. Empty columns only win when every column is empty.
func (b *heuristicBrain) bestTakeColumn(g *domain.GameState, seatName string) (int, float64) {
	bestColumn, bestGain, found := 0, 0.0, false
	for i := range g.Columns {
		if len(g.Columns[i].Cards) == 0 {
			continue
		}
		gain := b.columnGain(g, seatName, i)
		if !found || gain > bestGain {
			bestColumn, bestGain, found = i, gain, true
		}
	}
	if !found {
		// All columns empty: take the first one to let the round close.
		return 0, 0
	}
	return bestColumn, bestGain
}

// columnGain evaluates what taking a column is worth to the seat.
func (b *heuristicBrain) columnGain(g *domain.GameState, seatName string, columnIdx int) float64 {
	switch b.difficulty {
	case domain.DifficultyExpert:
		return b.scoreGain(g, seatName, columnIdx)
	default:
		return b.countGain(g, seatName, columnIdx)
	}
}

// countGain is the Basic evaluation: favor cards of colors already owned,
// value wilds highly and cotton mildly, shy away from brand-new colors.
func (b *heuristicBrain) countGain(g *domain.GameState, seatName string, columnIdx int) float64 {
	owned := domain.ColorCounts(g.PlayerCollections[seatName])
	gain := 0.0
	for _, card := range g.Columns[columnIdx].Cards {
		switch {
		case card.IsWild():
			gain += 2
		case card.Color == domain.ColorCotton:
			gain += 1
		case card.IsScorableColor() && owned[card.Color] > 0:
			gain += 1.5
		case card.IsScorableColor():
			gain += 0.5
		}
	}
	return gain
}

// scoreGain is the Expert evaluation: the real scoring delta of drafting
// the column, using the same engine that settles the game.
func (b *heuristicBrain) scoreGain(g *domain.GameState, seatName string, columnIdx int) float64 {
	collection := g.PlayerCollections[seatName]
	wilds := g.WildCards[seatName]
	before := domain.CalculatePlayerScore(collection, wilds, g.DifficultyLevel).Total

	afterCollection := append([]domain.Card{}, collection...)
	afterWilds := append([]domain.Card{}, wilds...)
	for _, card := range g.Columns[columnIdx].Cards {
		if card.IsWild() {
			afterWilds = append(afterWilds, card)
			continue
		}
		afterCollection = append(afterCollection, card)
	}
	after := domain.CalculatePlayerScore(afterCollection, afterWilds, g.DifficultyLevel).Total

	return float64(after - before)
}

// revealColumn picks where to reveal: the non-full column currently worth
// the most to the seat, so its own target pile grows. Falls back to the
// emptiest non-full column.
func (b *heuristicBrain) revealColumn(g *domain.GameState, seatName string) int {
	best, bestGain := -1, -1.0
	for i := range g.Columns {
		if g.Columns[i].IsFull() {
			continue
		}
		gain := b.columnGain(g, seatName, i)
		if gain > bestGain {
			best, bestGain = i, gain
		}
	}
	if best < 0 {
		return 0
	}
	return best
}
