package domain

import "math/rand"

const (
	cardsPerColor  = 9
	cottonCards    = 10
	wildCards      = 2
	goldenWilds    = 1
	endRoundCards  = 1
	// EndRoundPosition is where the end-round trigger card is re-inserted
	// after shuffling, clamped to the deck length. It keeps the trigger out
	// of the opening draws without pushing it to the very bottom.
	EndRoundPosition = 15
)

// ColumnCountFor returns how many columns are in play. The two-player
// variant always runs three columns, seeded by the numbered green cards.
func ColumnCountFor(numberOfPlayers int) int {
	if numberOfPlayers == 2 {
		return 3
	}
	return numberOfPlayers
}

// NewDeck returns the ordered full deck for the given player count:
// 9 cards of each of the 7 colors, 10 cotton, 2 wild, 1 golden wild,
// 1 end-round trigger, plus the variant's column seed cards.
func NewDeck(numberOfPlayers int) []Card {
	deck := make([]Card, 0, 7*cardsPerColor+cottonCards+wildCards+goldenWilds+endRoundCards+ColumnCountFor(numberOfPlayers))
	for _, color := range BaseColors {
		for i := 0; i < cardsPerColor; i++ {
			deck = append(deck, Card{Color: color})
		}
	}
	for i := 0; i < cottonCards; i++ {
		deck = append(deck, Card{Color: ColorCotton})
	}
	for i := 0; i < wildCards; i++ {
		deck = append(deck, Card{Color: ColorWild})
	}
	deck = append(deck, Card{Color: ColorGoldenWild})
	deck = append(deck, Card{Color: ColorEndRound, IsEndRound: true})

	if numberOfPlayers == 2 {
		deck = append(deck,
			Card{Color: ColorGreenColumn0},
			Card{Color: ColorGreenColumn1},
			Card{Color: ColorGreenColumn2},
		)
	} else {
		for i := 0; i < numberOfPlayers; i++ {
			deck = append(deck, Card{Color: ColorBrownColumn})
		}
	}
	return deck
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// UniqueChameleonColors draws n distinct base colors uniformly without
// replacement. The shuffle is independent of any deck shuffle.
func UniqueChameleonColors(rng *rand.Rand, n int) []ColorTag {
	if n > len(BaseColors) {
		n = len(BaseColors)
	}
	pool := make([]ColorTag, len(BaseColors))
	copy(pool, BaseColors)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}

// UniqueChameleonColor draws a single base color uniformly.
func UniqueChameleonColor(rng *rand.Rand) ColorTag {
	return UniqueChameleonColors(rng, 1)[0]
}

// ReducedColorCount returns how many colors are removed from the deck to
// rebalance scarcity at small tables.
func ReducedColorCount(numberOfPlayers int) int {
	switch numberOfPlayers {
	case 2:
		return 2
	case 3:
		return 1
	default:
		return 0
	}
}

// FilterReducedColors removes the small-table colors from the deck before
// column setup and returns the filtered deck plus the removed colors.
func FilterReducedColors(rng *rand.Rand, deck []Card, numberOfPlayers int) ([]Card, []ColorTag) {
	n := ReducedColorCount(numberOfPlayers)
	if n == 0 {
		return deck, nil
	}
	removed := UniqueChameleonColors(rng, n)
	drop := make(map[ColorTag]bool, n)
	for _, color := range removed {
		drop[color] = true
	}
	out := make([]Card, 0, len(deck))
	for _, card := range deck {
		if drop[card.Color] {
			continue
		}
		out = append(out, card)
	}
	return out, removed
}

// SetupColumnsAndDeck partitions a shuffled deck into the initial columns
// and the draw deck. Column seed cards are routed into the columns: for two
// players the three numbered green seeds fill columns 0..2 in fixed order,
// otherwise the brown seeds fill columns in shuffle order. The end-round
// card is set aside and re-inserted at the clamped trigger position.
func SetupColumnsAndDeck(deck []Card, numberOfPlayers int) ([]Column, []Card) {
	columnCount := ColumnCountFor(numberOfPlayers)
	columns := make([]Column, columnCount)
	remaining := make([]Card, 0, len(deck))

	var endRound *Card
	seeded := 0
	for _, card := range deck {
		switch {
		case card.IsEndRound:
			c := card
			endRound = &c
		case card.IsColumnSeed():
			idx := seedColumnIndex(card, seeded, columnCount)
			if idx >= 0 {
				columns[idx].Cards = append(columns[idx].Cards, card)
				seeded++
			}
		default:
			remaining = append(remaining, card)
		}
	}

	if endRound != nil {
		remaining = InsertEndRoundCard(remaining, *endRound)
	}
	return columns, remaining
}

// seedColumnIndex resolves which column a seed card belongs to. Numbered
// green seeds carry their own column index; brown seeds fill in draw order.
func seedColumnIndex(card Card, seeded, columnCount int) int {
	switch card.Color {
	case ColorGreenColumn0:
		return 0
	case ColorGreenColumn1:
		return 1
	case ColorGreenColumn2:
		return 2
	case ColorBrownColumn:
		if seeded < columnCount {
			return seeded
		}
	}
	return -1
}

// InsertEndRoundCard places the trigger card at the fixed bounded position
// in the draw deck (position 15, clamped to the last index).
func InsertEndRoundCard(deck []Card, card Card) []Card {
	pos := EndRoundPosition
	if pos > len(deck) {
		pos = len(deck)
	}
	if len(deck) > 0 && pos > len(deck)-1 {
		pos = len(deck) - 1
	}
	out := make([]Card, 0, len(deck)+1)
	out = append(out, deck[:pos]...)
	out = append(out, card)
	out = append(out, deck[pos:]...)
	return out
}

// ContainsEndRound reports whether the deck still holds the trigger card.
func ContainsEndRound(deck []Card) bool {
	for _, card := range deck {
		if card.IsEndRound {
			return true
		}
	}
	return false
}

// StartingPlayerIndex picks the opening seat uniformly at random.
func StartingPlayerIndex(rng *rand.Rand, seatCount int) int {
	if seatCount <= 0 {
		return 0
	}
	return rng.Intn(seatCount)
}
