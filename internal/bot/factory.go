package bot

import "coloretto/internal/domain"

// NewBrain builds the decision engine for a difficulty and strategy pair.
// Unknown strategies fall back to balanced weights.
func NewBrain(difficulty domain.Difficulty, strategy domain.Strategy) Brain {
	weights := balancedWeights
	switch strategy {
	case domain.StrategyConservative:
		weights = conservativeWeights
	case domain.StrategyAggressive:
		weights = aggressiveWeights
	}
	return &heuristicBrain{difficulty: difficulty, weights: weights}
}
