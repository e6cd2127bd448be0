package domain

import "sort"

// Score tables index by capped color count (1..6). Counts above six score
// as six. The Basic table rewards deep sets; the Expert table peaks at
// three and punishes hoarding.
var (
	basicScoreTable  = [7]int{0, 1, 3, 6, 10, 15, 21}
	expertScoreTable = [7]int{0, 1, 4, 8, 7, 6, 5}
)

const (
	// TopColorLimit is how many color sets score positively.
	TopColorLimit = 3
	// CottonBonusPerCard is the flat bonus for each cotton card owned.
	CottonBonusPerCard = 2
	scoreTableCap      = 6
)

// ScoreTableValue maps a color count through the difficulty's table.
func ScoreTableValue(d Difficulty, count int) int {
	if count <= 0 {
		return 0
	}
	if count > scoreTableCap {
		count = scoreTableCap
	}
	switch d {
	case DifficultyExpert:
		return expertScoreTable[count]
	default:
		return basicScoreTable[count]
	}
}

// ColorCounts tallies the scorable color cards in a collection, ignoring
// wilds, cotton, seeds, summary and trigger cards.
func ColorCounts(cards []Card) map[ColorTag]int {
	counts := make(map[ColorTag]int)
	for _, card := range cards {
		if card.IsScorableColor() {
			counts[card.Color]++
		}
	}
	return counts
}

// CottonCount returns the number of cotton cards in a collection.
func CottonCount(cards []Card) int {
	n := 0
	for _, card := range cards {
		if card.Color == ColorCotton {
			n++
		}
	}
	return n
}

// SortedColorsByCount orders colors by count descending. Equal counts break
// alphabetically by color name so the ordering is fully deterministic.
func SortedColorsByCount(counts map[ColorTag]int) []ColorTag {
	colors := make([]ColorTag, 0, len(counts))
	for color := range counts {
		colors = append(colors, color)
	}
	sort.Slice(colors, func(i, j int) bool {
		if counts[colors[i]] != counts[colors[j]] {
			return counts[colors[i]] > counts[colors[j]]
		}
		return colors[i] < colors[j]
	})
	return colors
}

// OptimizeWildCards distributes wildCount chameleons round-robin across the
// top three most populous colors, padding strong sets rather than
// diversifying. A copy of the counts is returned; the input is not mutated.
func OptimizeWildCards(counts map[ColorTag]int, wildCount int) map[ColorTag]int {
	out := make(map[ColorTag]int, len(counts))
	for color, count := range counts {
		out[color] = count
	}
	if wildCount <= 0 || len(out) == 0 {
		return out
	}

	top := SortedColorsByCount(counts)
	if len(top) > TopColorLimit {
		top = top[:TopColorLimit]
	}
	for i := 0; i < wildCount; i++ {
		out[top[i%len(top)]]++
	}
	return out
}

// ScoreBreakdown is the per-player scoring projection shown at game end.
type ScoreBreakdown struct {
	Positive     int              `json:"positive"`
	CottonBonus  int              `json:"cottonBonus"`
	Penalty      int              `json:"penalty"`
	Total        int              `json:"total"`
	Distribution map[ColorTag]int `json:"distribution"`
	TopColors    []ColorTag       `json:"topColors"`
	ExcessColors []ColorTag       `json:"excessColors"`
	CottonCards  int              `json:"cottonCards"`
	WildCards    int              `json:"wildCards"`
	SummaryCard  ColorTag         `json:"summaryCard"`
}

// CalculatePlayerScore computes the final score for one collection plus its
// wild pile. Pure: identical inputs always produce identical output.
func CalculatePlayerScore(collection, wilds []Card, d Difficulty) ScoreBreakdown {
	counts := ColorCounts(collection)
	optimized := OptimizeWildCards(counts, len(wilds))
	ordered := SortedColorsByCount(optimized)

	breakdown := ScoreBreakdown{
		Distribution: optimized,
		CottonCards:  CottonCount(collection),
		WildCards:    len(wilds),
		SummaryCard:  d.SummaryCardColor(),
	}

	for i, color := range ordered {
		if i < TopColorLimit {
			breakdown.TopColors = append(breakdown.TopColors, color)
			breakdown.Positive += ScoreTableValue(d, optimized[color])
			continue
		}
		breakdown.ExcessColors = append(breakdown.ExcessColors, color)
		breakdown.Penalty -= optimized[color]
	}

	breakdown.CottonBonus = breakdown.CottonCards * CottonBonusPerCard
	breakdown.Total = breakdown.Positive + breakdown.CottonBonus + breakdown.Penalty
	if breakdown.Total < 0 {
		breakdown.Total = 0
	}
	return breakdown
}

// DetermineWinners returns every player whose score equals the maximum,
// sorted by name for stable output. Ties all win.
func DetermineWinners(finalScores map[string]int) []string {
	max := 0
	first := true
	for _, score := range finalScores {
		if first || score > max {
			max = score
			first = false
		}
	}
	winners := make([]string, 0, len(finalScores))
	for name, score := range finalScores {
		if score == max {
			winners = append(winners, name)
		}
	}
	sort.Strings(winners)
	return winners
}
