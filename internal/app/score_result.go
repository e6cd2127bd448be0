package app

import "coloretto/internal/domain"

// ColorCount is the transport form of one color-count map entry.
type ColorCount struct {
	Color domain.ColorTag `json:"color"`
	Count int             `json:"count"`
}

// PlayerScoreDetail is the per-player breakdown shown on the final screen.
// It is a projection of game state, never stored back into it.
type PlayerScoreDetail struct {
	Name         string            `json:"name"`
	Total        int               `json:"total"`
	Positive     int               `json:"positive"`
	CottonBonus  int               `json:"cottonBonus"`
	Penalty      int               `json:"penalty"`
	Distribution []ColorCount      `json:"distribution"`
	TopColors    []domain.ColorTag `json:"topColors"`
	ExcessColors []domain.ColorTag `json:"excessColors"`
	CottonCards  int               `json:"cottonCards"`
	WildCards    int               `json:"wildCards"`
	SummaryCard  domain.ColorTag   `json:"summaryCard"`
}

// ScoreResult carries the outcome of the game-end scoring sequence. Callers
// must check Success before reading any other field: a failed result has
// empty collections and means scoring did not run to completion, not that
// everyone scored zero.
type ScoreResult struct {
	Success     bool                `json:"success"`
	FinalScores []NameScore         `json:"finalScores"`
	Winners     []string            `json:"winners"`
	Details     []PlayerScoreDetail `json:"scoreDetails"`
}

// FailedScoreResult is the sentinel returned when scoring aborts.
func FailedScoreResult() ScoreResult {
	return ScoreResult{Success: false}
}

func toScoreDetail(name string, b domain.ScoreBreakdown) PlayerScoreDetail {
	dist := make([]ColorCount, 0, len(b.Distribution))
	for _, color := range domain.SortedColorsByCount(b.Distribution) {
		dist = append(dist, ColorCount{Color: color, Count: b.Distribution[color]})
	}
	return PlayerScoreDetail{
		Name:         name,
		Total:        b.Total,
		Positive:     b.Positive,
		CottonBonus:  b.CottonBonus,
		Penalty:      b.Penalty,
		Distribution: dist,
		TopColors:    b.TopColors,
		ExcessColors: b.ExcessColors,
		CottonCards:  b.CottonCards,
		WildCards:    b.WildCards,
		SummaryCard:  b.SummaryCard,
	}
}
