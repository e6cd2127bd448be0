package bot

import "coloretto/internal/domain"

// Agent binds an AI seat to its decision engine. One agent lives per AI
// seat for the lifetime of the match and is driven by the match loop.
type Agent struct {
	Name       string
	Difficulty domain.Difficulty
	Strategy   domain.Strategy

	brain Brain
}

// NewAgent builds an agent for the given AI seat.
func NewAgent(ai domain.AIPlayer) *Agent {
	return &Agent{
		Name:       ai.Name,
		Difficulty: ai.Difficulty,
		Strategy:   ai.Strategy,
		brain:      NewBrain(ai.Difficulty, ai.Strategy),
	}
}

// Decide resolves the agent's next action for the current game state.
func (a *Agent) Decide(g *domain.GameState) (Decision, error) {
	return a.brain.Decide(g, a.Name)
}
