package bot

// StrategyWeights tune how a brain trades off taking against revealing.
type StrategyWeights struct {
	// TakeGainThreshold is the minimum column gain that makes taking
	// attractive while columns still have room.
	TakeGainThreshold float64
	// FillPressure scales how strongly filling columns push the brain
	// toward taking before the good piles are gone.
	FillPressure float64
	// RevealBias is subtracted from the effective take threshold
	// reduction; higher values keep the brain revealing longer.
	RevealBias float64
}

// Default weights per strategy. Conservative locks in small safe gains,
// aggressive holds out for big piles and keeps loading columns.
var (
	conservativeWeights = StrategyWeights{
		TakeGainThreshold: 2.0,
		FillPressure:      1.6,
		RevealBias:        0.2,
	}
	balancedWeights = StrategyWeights{
		TakeGainThreshold: 3.0,
		FillPressure:      1.2,
		RevealBias:        0.5,
	}
	aggressiveWeights = StrategyWeights{
		TakeGainThreshold: 4.5,
		FillPressure:      0.8,
		RevealBias:        0.9,
	}
)
