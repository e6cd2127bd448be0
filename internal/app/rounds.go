package app

import "coloretto/internal/domain"

// RoundOver reports whether the current round has run its course: every
// seat took a column, or the trigger card is out and no reveals remain.
func (s *Service) RoundOver(g *domain.GameState) bool {
	if g.AllSeatsTaken() {
		return true
	}
	return g.IsRoundCardRevealed && !s.anyColumnNonEmpty(g)
}

// canSeedNextRound reports whether the deck can still feed a round: at
// least one drawable card per column beyond the trigger card.
func (s *Service) canSeedNextRound(g *domain.GameState) bool {
	drawable := 0
	for _, card := range g.Deck {
		if !card.IsEndRound {
			drawable++
		}
	}
	return drawable > len(g.Columns)
}

// EndRound closes the current round: either sets up the next round or, when
// the deck is exhausted or the round cap is hit, runs the game-end scoring
// sequence. The caller is expected to have held the reassignment pacing
// window before invoking it.
func (s *Service) EndRound(g *domain.GameState) ([]Event, error) {
	if g.IsFinished {
		return nil, ErrGameFinished
	}
	if !g.IsPrepared {
		return nil, ErrGameNotPrepared
	}
	if !s.RoundOver(g) {
		return nil, ErrRoundNotOver
	}

	roundCapHit := s.MaxRounds > 0 && g.CurrentRound >= s.MaxRounds
	if roundCapHit || !s.canSeedNextRound(g) {
		_, events, err := s.finishGame(g)
		return events, err
	}

	g.CurrentRound++
	g.PlayersTakenColumn = g.PlayersTakenColumn[:0]
	g.IsRoundCardRevealed = false
	s.reseedColumns(g)

	// Rotation resumes at the seat after whoever took last.
	if idx := g.SeatIndexOf(g.LastColumnTaker); idx >= 0 {
		g.CurrentPlayerIndex = (idx + 1) % g.SeatCount()
	}

	return []Event{{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{Round: g.CurrentRound, FirstPlayer: g.CurrentPlayerName()},
	}}, nil
}

// reseedColumns prepares the columns for the next round. Seed cards still
// in the deck (none, in the usual flow, since they all route into round one
// columns) are placed first; remaining columns start empty. Exactly one
// trigger card is re-inserted at the clamped trigger position.
func (s *Service) reseedColumns(g *domain.GameState) {
	columnCount := len(g.Columns)

	seeds := make([]domain.Card, 0, columnCount)
	deck := make([]domain.Card, 0, len(g.Deck))
	for _, card := range g.Deck {
		if card.IsColumnSeed() && len(seeds) < columnCount {
			seeds = append(seeds, card)
			continue
		}
		deck = append(deck, card)
	}

	columns := make([]domain.Column, columnCount)
	for i, seed := range seeds {
		columns[i].Cards = append(columns[i].Cards, seed)
	}
	g.Columns = columns

	if !domain.ContainsEndRound(deck) {
		deck = domain.InsertEndRoundCard(deck, domain.Card{Color: domain.ColorEndRound, IsEndRound: true})
	}
	g.Deck = deck
}

// FinalizeScores runs the game-end sequence and returns the score result.
// On an already finished game it rebuilds the result from the stored state.
func (s *Service) FinalizeScores(g *domain.GameState) (ScoreResult, []Event, error) {
	if g.IsFinished {
		return s.storedResult(g), nil, nil
	}
	if !g.IsPrepared {
		return FailedScoreResult(), nil, ErrGameNotPrepared
	}
	return s.finishGame(g)
}

// finishGame discards all column contents, scores every seat and marks the
// game finished. All scoring runs before the first mutation so a failure
// leaves the aggregate untouched and yields the failure sentinel.
func (s *Service) finishGame(g *domain.GameState) (result ScoreResult, events []Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = FailedScoreResult()
			events = nil
			err = ErrScoringFailed
		}
	}()

	seats := g.SeatOrder()
	finalScores := make(map[string]int, len(seats))
	details := make([]PlayerScoreDetail, 0, len(seats))
	for _, seat := range seats {
		breakdown := domain.CalculatePlayerScore(g.PlayerCollections[seat], g.WildCards[seat], g.DifficultyLevel)
		finalScores[seat] = breakdown.Total
		details = append(details, toScoreDetail(seat, breakdown))
	}
	winners := domain.DetermineWinners(finalScores)

	// Cards left in columns score nothing and are discarded for good.
	for i := range g.Columns {
		g.Columns[i].Cards = nil
	}
	g.FinalScores = finalScores
	g.Winner = winners
	g.IsFinished = true

	result = ScoreResult{Success: true, Winners: winners, Details: details}
	for _, seat := range seats {
		result.FinalScores = append(result.FinalScores, NameScore{Name: seat, Score: finalScores[seat]})
	}

	events = []Event{{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{Result: result},
	}}
	return result, events, nil
}

// storedResult projects the result of a game that already finished.
func (s *Service) storedResult(g *domain.GameState) ScoreResult {
	result := ScoreResult{Success: true, Winners: append([]string(nil), g.Winner...)}
	for _, seat := range g.SeatOrder() {
		if score, ok := g.FinalScores[seat]; ok {
			result.FinalScores = append(result.FinalScores, NameScore{Name: seat, Score: score})
		}
	}
	for _, seat := range g.SeatOrder() {
		breakdown := domain.CalculatePlayerScore(g.PlayerCollections[seat], g.WildCards[seat], g.DifficultyLevel)
		result.Details = append(result.Details, toScoreDetail(seat, breakdown))
	}
	return result
}
