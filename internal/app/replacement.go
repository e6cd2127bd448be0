package app

import (
	"time"

	"coloretto/internal/domain"
)

// guardReplacement validates the shared preconditions for swapping a seat.
// Replacements lock once the round is closing: after the trigger card is
// revealed or when every seat already took a column.
func (s *Service) guardReplacement(g *domain.GameState) error {
	if g.IsFinished {
		return ErrGameFinished
	}
	if g.IsRoundCardRevealed {
		return ErrReplacementLocked
	}
	if g.IsPrepared && g.AllSeatsTaken() {
		return ErrReplacementLocked
	}
	return nil
}

// ReplaceAIWithPlayer hands an AI seat over to a human. The card
// collections move with the seat, the turn pointer and taken-column marker
// follow the rename, and an audit record is kept. All checks run before the
// first mutation so a rejection leaves the game untouched.
func (s *Service) ReplaceAIWithPlayer(g *domain.GameState, aiName, newName string) ([]Event, error) {
	if err := s.guardReplacement(g); err != nil {
		return nil, err
	}
	if g.AIPlayerByName(aiName) == nil {
		return nil, ErrAINotFound
	}
	if g.HasSeat(newName) {
		return nil, ErrNameTaken
	}

	currentName := g.CurrentPlayerName()

	ais := make([]domain.AIPlayer, 0, len(g.AIPlayers))
	for _, ai := range g.AIPlayers {
		if ai.Name != aiName {
			ais = append(ais, ai)
		}
	}
	g.AIPlayers = ais
	g.Players = append(g.Players, newName)

	s.transplantSeat(g, aiName, newName)

	// Seat indices shift when a seat moves between the rosters, so the
	// pointer is re-resolved by name.
	if currentName == aiName {
		currentName = newName
	}
	if idx := g.SeatIndexOf(currentName); idx >= 0 {
		g.CurrentPlayerIndex = idx
	}

	g.Replaced[newName] = domain.ReplacementRecord{
		OriginalAIName: aiName,
		ReplacedBy:     newName,
		ReplacedAt:     time.Now().UTC(),
	}

	return []Event{{
		Kind: EventRosterChanged,
		Payload: RosterChangedPayload{
			OriginalName: aiName,
			NewName:      newName,
			NewIsAI:      false,
			Snapshot:     BuildSnapshot(g),
		},
	}}, nil
}

// ReplacePlayerWithAI hands a human seat over to a computer player. The
// caller supplies the generated AI seat (fresh unique name, strategy drawn
// for the game's difficulty).
func (s *Service) ReplacePlayerWithAI(g *domain.GameState, playerName string, ai domain.AIPlayer) ([]Event, error) {
	if err := s.guardReplacement(g); err != nil {
		return nil, err
	}
	if !g.HasPlayer(playerName) {
		return nil, ErrPlayerNotFound
	}
	if g.HasSeat(ai.Name) {
		return nil, ErrNameTaken
	}

	currentName := g.CurrentPlayerName()

	players := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		if p != playerName {
			players = append(players, p)
		}
	}
	g.Players = players
	g.AIPlayers = append(g.AIPlayers, ai)

	s.transplantSeat(g, playerName, ai.Name)

	if currentName == playerName {
		currentName = ai.Name
	}
	if idx := g.SeatIndexOf(currentName); idx >= 0 {
		g.CurrentPlayerIndex = idx
	}

	return []Event{{
		Kind: EventRosterChanged,
		Payload: RosterChangedPayload{
			OriginalName: playerName,
			NewName:      ai.Name,
			NewIsAI:      true,
			Snapshot:     BuildSnapshot(g),
		},
	}}, nil
}

// JoinWithReplacement seats a human over the first AI seat of a running
// game. Used when a game is full but still has computer players.
func (s *Service) JoinWithReplacement(g *domain.GameState, username string) (string, []Event, error) {
	if g.HasSeat(username) {
		return "", nil, ErrNameTaken
	}
	if len(g.AIPlayers) == 0 {
		return "", nil, ErrGameFull
	}
	aiName := g.AIPlayers[0].Name
	events, err := s.ReplaceAIWithPlayer(g, aiName, username)
	if err != nil {
		return "", nil, err
	}
	return aiName, events, nil
}

// transplantSeat moves the three card collections and the taken-column
// marker from one seat name to another. Move, not copy: the old keys are
// removed so no orphan entries survive.
func (s *Service) transplantSeat(g *domain.GameState, from, to string) {
	if cards, ok := g.PlayerCollections[from]; ok {
		g.PlayerCollections[to] = cards
		delete(g.PlayerCollections, from)
	}
	if cards, ok := g.WildCards[from]; ok {
		g.WildCards[to] = cards
		delete(g.WildCards, from)
	}
	if cards, ok := g.SummaryCards[from]; ok {
		g.SummaryCards[to] = cards
		delete(g.SummaryCards, from)
	}
	for i, name := range g.PlayersTakenColumn {
		if name == from {
			g.PlayersTakenColumn[i] = to
		}
	}
	if g.LastColumnTaker == from {
		g.LastColumnTaker = to
	}
}
