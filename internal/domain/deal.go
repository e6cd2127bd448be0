package domain

import "math/rand"

// StarterCardsPerPlayer returns how many starter chameleons each seat
// receives at preparation time.
func StarterCardsPerPlayer(numberOfPlayers int) int {
	if numberOfPlayers == 2 {
		return 2
	}
	return 1
}

// AssignStarterCards deals each seat its starter chameleon cards. All
// starters are drawn from one shared shuffled color pool so no two seats
// begin with the same color while the pool lasts.
func AssignStarterCards(rng *rand.Rand, g *GameState) {
	seats := g.SeatOrder()
	perPlayer := StarterCardsPerPlayer(g.SeatCount())
	pool := UniqueChameleonColors(rng, len(seats)*perPlayer)

	i := 0
	for _, seat := range seats {
		for c := 0; c < perPlayer; c++ {
			color := pool[i%len(pool)]
			i++
			g.PlayerCollections[seat] = append(g.PlayerCollections[seat], Card{Color: color})
		}
	}
}

// AssignSummaryCards hands every seat exactly one summary card matching the
// game's difficulty. Summary cards are indicators only and never scored.
func AssignSummaryCards(g *GameState) {
	color := g.DifficultyLevel.SummaryCardColor()
	for _, seat := range g.SeatOrder() {
		g.SummaryCards[seat] = []Card{{Color: color}}
	}
}
