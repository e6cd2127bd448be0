package app

import "coloretto/internal/domain"

// guardTurnAction validates the common preconditions of reveal and take.
func (s *Service) guardTurnAction(g *domain.GameState, player string, columnIdx int) error {
	if g.IsFinished {
		return ErrGameFinished
	}
	if !g.IsPrepared {
		return ErrGameNotPrepared
	}
	if g.IsPaused {
		return ErrGamePaused
	}
	if !g.HasSeat(player) {
		return ErrPlayerNotFound
	}
	if g.CurrentPlayerName() != player {
		return ErrNotYourTurn
	}
	if g.HasTakenColumn(player) {
		return ErrAlreadyTookColumn
	}
	if columnIdx < 0 || columnIdx >= len(g.Columns) {
		return ErrInvalidColumn
	}
	return nil
}

// RevealCard draws the top deck card into the chosen column. Revealing the
// end-round trigger flags the round instead of placing the card. The turn
// does not advance: a player may keep revealing until they take a column.
func (s *Service) RevealCard(g *domain.GameState, player string, columnIdx int) ([]Event, error) {
	if err := s.guardTurnAction(g, player, columnIdx); err != nil {
		return nil, err
	}
	if g.IsRoundCardRevealed {
		return nil, ErrRoundCardRevealed
	}
	if g.Columns[columnIdx].IsFull() {
		return nil, ErrColumnFull
	}
	if len(g.Deck) == 0 {
		return nil, ErrDeckEmpty
	}

	card := g.Deck[0]
	g.Deck = g.Deck[1:]

	if card.IsEndRound {
		g.IsRoundCardRevealed = true
		return []Event{{
			Kind:    EventRoundCardRevealed,
			Payload: RoundCardRevealedPayload{Player: player, Round: g.CurrentRound},
		}}, nil
	}

	g.Columns[columnIdx].Cards = append(g.Columns[columnIdx].Cards, card)
	return []Event{{
		Kind:    EventCardRevealed,
		Payload: CardRevealedPayload{Player: player, Column: columnIdx, Card: card},
	}}, nil
}

// TakeColumn moves the full contents of a column into the player's
// collections and ends the player's participation in the round. Wild cards
// are routed to the wild pile; everything else, seed cards included, joins
// the collection (seeds never score). An empty column may only be taken
// when every column is empty.
func (s *Service) TakeColumn(g *domain.GameState, player string, columnIdx int) ([]Event, error) {
	if err := s.guardTurnAction(g, player, columnIdx); err != nil {
		return nil, err
	}
	if len(g.Columns[columnIdx].Cards) == 0 && s.anyColumnNonEmpty(g) {
		return nil, ErrEmptyColumnTake
	}

	taken := g.Columns[columnIdx].Cards
	g.Columns[columnIdx].Cards = nil
	for _, card := range taken {
		if card.IsWild() {
			g.WildCards[player] = append(g.WildCards[player], card)
			continue
		}
		g.PlayerCollections[player] = append(g.PlayerCollections[player], card)
	}

	g.PlayersTakenColumn = append(g.PlayersTakenColumn, player)
	g.LastColumnTaker = player

	roundComplete := g.AllSeatsTaken()
	if !roundComplete {
		g.AdvanceTurn()
	}

	return []Event{{
		Kind: EventColumnTaken,
		Payload: ColumnTakenPayload{
			Player:        player,
			Column:        columnIdx,
			Cards:         taken,
			NextPlayer:    g.CurrentPlayerName(),
			RoundComplete: roundComplete,
		},
	}}, nil
}

func (s *Service) anyColumnNonEmpty(g *domain.GameState) bool {
	for i := range g.Columns {
		if len(g.Columns[i].Cards) > 0 {
			return true
		}
	}
	return false
}
