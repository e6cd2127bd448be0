package bot

import (
	"fmt"
	"math/rand"

	"coloretto/internal/domain"
)

// Display name pools per difficulty. Basic seats read friendly, Expert
// seats read sharper so players can tell what they are up against.
var (
	basicNames  = []string{"Rex", "Iris", "Milo", "Pip", "Sunny", "Coco"}
	expertNames = []string{"Vega", "Onyx", "Raven", "Blitz", "Sable", "Nova"}
)

func namePool(difficulty domain.Difficulty) []string {
	if difficulty == domain.DifficultyExpert {
		return expertNames
	}
	return basicNames
}

// GenerateNames returns count unique AI names for a difficulty, skipping
// anything already used at the table. When the pool runs dry the names get
// an index suffix.
func GenerateNames(rng *rand.Rand, difficulty domain.Difficulty, count int, used []string) []string {
	taken := make(map[string]bool, len(used))
	for _, name := range used {
		taken[name] = true
	}

	pool := namePool(difficulty)
	order := rng.Perm(len(pool))

	names := make([]string, 0, count)
	for _, i := range order {
		if len(names) == count {
			return names
		}
		if taken[pool[i]] {
			continue
		}
		taken[pool[i]] = true
		names = append(names, pool[i])
	}
	for suffix := 2; len(names) < count; suffix++ {
		name := fmt.Sprintf("%s %d", pool[rng.Intn(len(pool))], suffix)
		if taken[name] {
			continue
		}
		taken[name] = true
		names = append(names, name)
	}
	return names
}

// RandomStrategy draws a strategy fitting the difficulty. Basic seats never
// play aggressive, Expert seats never play conservative.
func RandomStrategy(rng *rand.Rand, difficulty domain.Difficulty) domain.Strategy {
	if difficulty == domain.DifficultyExpert {
		if rng.Intn(2) == 0 {
			return domain.StrategyBalanced
		}
		return domain.StrategyAggressive
	}
	if rng.Intn(2) == 0 {
		return domain.StrategyConservative
	}
	return domain.StrategyBalanced
}

// BuildRoster creates count AI seats with unique names and randomized
// strategies, avoiding the names already at the table.
func BuildRoster(rng *rand.Rand, difficulty domain.Difficulty, count int, used []string) []domain.AIPlayer {
	names := GenerateNames(rng, difficulty, count, used)
	roster := make([]domain.AIPlayer, 0, count)
	for _, name := range names {
		roster = append(roster, domain.AIPlayer{
			Name:       name,
			Difficulty: difficulty,
			Strategy:   RandomStrategy(rng, difficulty),
		})
	}
	return roster
}
