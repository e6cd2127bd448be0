package app

import (
	"math/rand"
	"time"

	"coloretto/internal/domain"
)

const (
	// MinPlayers and MaxPlayers bound the seats of a valid game.
	MinPlayers = 2
	MaxPlayers = 5
)

// Service contains the game use-cases operating on the GameState aggregate.
// It never persists or broadcasts; callers apply the returned events and
// save the aggregate. Every operation either mutates the aggregate fully or
// rejects it untouched: all validation happens before the first write.
type Service struct {
	rng *rand.Rand

	// MaxRounds caps the number of rounds before the game is scored.
	// Zero means no cap; the game then ends on deck exhaustion.
	MaxRounds int
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// CreateGame creates an empty game document owned by the given player.
func (s *Service) CreateGame(name, owner string, maxPlayers int, difficulty domain.Difficulty) (*domain.GameState, error) {
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers {
		return nil, ErrInvalidPlayers
	}
	return domain.NewGameState(name, owner, maxPlayers, difficulty), nil
}

// CreateAIGame creates a game pre-seated with the given AI players plus the
// owner. The caller generates the AI roster (names, strategies).
func (s *Service) CreateAIGame(name, owner string, ais []domain.AIPlayer, difficulty domain.Difficulty) (*domain.GameState, error) {
	seats := len(ais) + 1
	if seats < MinPlayers || seats > MaxPlayers {
		return nil, ErrInvalidPlayers
	}
	g, err := s.CreateGame(name, owner, seats, difficulty)
	if err != nil {
		return nil, err
	}
	g.AIPlayers = append(g.AIPlayers, ais...)
	return g, nil
}

// Join seats a new human player in an unstarted game.
func (s *Service) Join(g *domain.GameState, username string) ([]Event, error) {
	if g.IsFinished {
		return nil, ErrGameFinished
	}
	if g.IsPrepared {
		return nil, ErrGameInProgress
	}
	if g.HasPlayer(username) {
		return nil, ErrAlreadyJoined
	}
	if g.HasSeat(username) {
		return nil, ErrNameTaken
	}
	if g.SeatCount() >= g.MaxPlayers {
		return nil, ErrGameFull
	}

	g.Players = append(g.Players, username)
	return []Event{{
		Kind:    EventPlayerJoined,
		Payload: PlayerJoinedPayload{Name: username, Seat: g.SeatIndexOf(username)},
	}}, nil
}

// Leave removes a human player from an unstarted game. Mid-game departures
// go through ReplacePlayerWithAI so the seat keeps playing.
func (s *Service) Leave(g *domain.GameState, username string) ([]Event, error) {
	if !g.HasPlayer(username) {
		return nil, ErrPlayerNotFound
	}
	if g.IsPrepared && !g.IsFinished {
		return nil, ErrGameInProgress
	}

	players := make([]string, 0, len(g.Players))
	for _, p := range g.Players {
		if p != username {
			players = append(players, p)
		}
	}
	g.Players = players
	delete(g.PlayerCollections, username)
	delete(g.WildCards, username)
	delete(g.SummaryCards, username)

	return []Event{{
		Kind:    EventPlayerLeft,
		Payload: PlayerLeftPayload{Name: username},
	}}, nil
}

// Prepare builds the deck, sets up columns, deals starter and summary cards
// and picks the opening seat. The game becomes playable afterwards.
func (s *Service) Prepare(g *domain.GameState) ([]Event, error) {
	if g.IsFinished {
		return nil, ErrGameFinished
	}
	if g.IsPrepared {
		return nil, ErrAlreadyPrepared
	}
	seats := g.SeatCount()
	if seats < MinPlayers {
		return nil, ErrTooFewPlayers
	}
	if seats > MaxPlayers {
		return nil, ErrInvalidPlayers
	}

	deck := domain.NewDeck(seats)
	deck, _ = domain.FilterReducedColors(s.rng, deck, seats)
	deck = domain.ShuffleDeck(s.rng, deck)
	g.Columns, g.Deck = domain.SetupColumnsAndDeck(deck, seats)

	domain.AssignStarterCards(s.rng, g)
	domain.AssignSummaryCards(g)

	g.CurrentPlayerIndex = domain.StartingPlayerIndex(s.rng, seats)
	g.CurrentRound = 1
	g.IsPrepared = true

	return []Event{{
		Kind:    EventGamePrepared,
		Payload: GamePreparedPayload{Snapshot: BuildSnapshot(g)},
	}}, nil
}

// SetPaused toggles the pause flag. Turn actions and AI processing reject
// while paused.
func (s *Service) SetPaused(g *domain.GameState, paused bool) ([]Event, error) {
	if g.IsFinished {
		return nil, ErrGameFinished
	}
	g.IsPaused = paused
	return []Event{{
		Kind:    EventStateSnapshot,
		Payload: StateSnapshotPayload{Snapshot: BuildSnapshot(g)},
	}}, nil
}
