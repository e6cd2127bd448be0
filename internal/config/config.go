package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the runtime tunables for match orchestration. Values come
// from the Nakama runtime environment, with defaults suitable for play.
type Options struct {
	// AIMinThinkDelay and AIMaxThinkDelay bound the simulated thinking
	// pause before an AI seat acts.
	AIMinThinkDelay time.Duration `env:"COLORETTO_AI_MIN_THINK_DELAY" envDefault:"800ms"`
	AIMaxThinkDelay time.Duration `env:"COLORETTO_AI_MAX_THINK_DELAY" envDefault:"2500ms"`

	// AutoFillDelay is how long a solo human lobby waits before AI seats
	// are added to reach the minimum table size.
	AutoFillDelay time.Duration `env:"COLORETTO_AUTO_FILL_DELAY" envDefault:"15s"`

	// ReassignDelay is the pause between the last column being taken and
	// cards being dealt for the next round.
	ReassignDelay time.Duration `env:"COLORETTO_REASSIGN_DELAY" envDefault:"3s"`

	// MaxRounds caps the number of rounds before the game is force-scored.
	// Zero means no cap; the deck running out ends the game regardless.
	MaxRounds int `env:"COLORETTO_MAX_ROUNDS" envDefault:"0"`

	// EmptyMatchShutdownTicks is how many loop ticks a match survives with
	// no connected humans before it terminates itself.
	EmptyMatchShutdownTicks int `env:"COLORETTO_EMPTY_SHUTDOWN_TICKS" envDefault:"120"`
}

// Load parses Options from the given environment map, typically the one
// Nakama exposes through its runtime context.
func Load(environment map[string]string) (Options, error) {
	var opts Options
	err := env.ParseWithOptions(&opts, env.Options{Environment: environment})
	if err != nil {
		return Options{}, fmt.Errorf("parsing match options: %w", err)
	}
	if opts.AIMaxThinkDelay < opts.AIMinThinkDelay {
		return Options{}, fmt.Errorf("ai think delay range inverted: min %s max %s",
			opts.AIMinThinkDelay, opts.AIMaxThinkDelay)
	}
	return opts, nil
}
