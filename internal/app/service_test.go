package app

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"coloretto/internal/domain"
)

func newSeededService() *Service {
	return NewService(rand.New(rand.NewSource(42)))
}

func TestCreateGameValidatesMaxPlayers(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()

	g, err := svc.CreateGame("g1", "ana", 4, domain.DifficultyBasic)
	assert.NoError(err)
	assert.Equal("g1", g.GameName)
	assert.Equal([]string{"ana"}, g.Players)
	assert.False(g.IsPrepared)

	_, err = svc.CreateGame("g2", "ana", 1, domain.DifficultyBasic)
	assert.ErrorIs(err, ErrInvalidPlayers)

	_, err = svc.CreateGame("g3", "ana", 6, domain.DifficultyBasic)
	assert.ErrorIs(err, ErrInvalidPlayers)
}

func TestCreateAIGame(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()

	ais := []domain.AIPlayer{
		{Name: "Rex", Difficulty: domain.DifficultyExpert, Strategy: domain.StrategyAggressive},
		{Name: "Iris", Difficulty: domain.DifficultyExpert, Strategy: domain.StrategyBalanced},
	}
	g, err := svc.CreateAIGame("g1", "ana", ais, domain.DifficultyExpert)
	assert.NoError(err)
	assert.Equal(3, g.SeatCount())
	assert.Equal([]string{"ana", "Rex", "Iris"}, g.SeatOrder())
}

func TestJoinRules(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()
	g, _ := svc.CreateGame("g1", "ana", 2, domain.DifficultyBasic)

	evs, err := svc.Join(g, "bo")
	assert.NoError(err)
	assert.Len(evs, 1)
	assert.Equal(EventPlayerJoined, evs[0].Kind)

	_, err = svc.Join(g, "bo")
	assert.ErrorIs(err, ErrAlreadyJoined)

	_, err = svc.Join(g, "cy")
	assert.ErrorIs(err, ErrGameFull)
}

func TestJoinRejectedOnceStarted(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()
	g, _ := svc.CreateGame("g1", "ana", 3, domain.DifficultyBasic)
	_, err := svc.Join(g, "bo")
	assert.NoError(err)

	_, err = svc.Prepare(g)
	assert.NoError(err)

	_, err = svc.Join(g, "cy")
	assert.ErrorIs(err, ErrGameInProgress)
}

func TestPrepareSetsUpGame(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()
	g, _ := svc.CreateGame("g1", "ana", 4, domain.DifficultyBasic)
	_, err := svc.Join(g, "bo")
	assert.NoError(err)
	_, err = svc.Join(g, "cy")
	assert.NoError(err)

	evs, err := svc.Prepare(g)
	assert.NoError(err)
	assert.True(g.IsPrepared)
	assert.Equal(1, g.CurrentRound)
	assert.Len(g.Columns, 3)
	assert.True(domain.ContainsEndRound(g.Deck))

	// Three players: one color removed, one starter chameleon each.
	for _, seat := range g.SeatOrder() {
		assert.Len(g.PlayerCollections[seat], 1, "starter for %s", seat)
		assert.Len(g.SummaryCards[seat], 1, "summary for %s", seat)
		assert.Equal(domain.ColorSummaryBrown, g.SummaryCards[seat][0].Color)
	}

	assert.GreaterOrEqual(g.CurrentPlayerIndex, 0)
	assert.Less(g.CurrentPlayerIndex, g.SeatCount())

	assert.Len(evs, 1)
	assert.Equal(EventGamePrepared, evs[0].Kind)
	snap := evs[0].Payload.(GamePreparedPayload).Snapshot
	assert.Equal(len(g.Deck), snap.DeckRemaining)
	assert.Len(snap.PlayerCollections, 3)

	_, err = svc.Prepare(g)
	assert.ErrorIs(err, ErrAlreadyPrepared)
}

func TestPrepareNeedsTwoSeats(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()
	g, _ := svc.CreateGame("g1", "ana", 4, domain.DifficultyBasic)

	_, err := svc.Prepare(g)
	assert.ErrorIs(err, ErrTooFewPlayers)
}

func TestLeaveBeforeStart(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()
	g, _ := svc.CreateGame("g1", "ana", 3, domain.DifficultyBasic)
	_, err := svc.Join(g, "bo")
	assert.NoError(err)

	evs, err := svc.Leave(g, "bo")
	assert.NoError(err)
	assert.Equal(EventPlayerLeft, evs[0].Kind)
	assert.False(g.HasPlayer("bo"))

	_, err = svc.Leave(g, "bo")
	assert.ErrorIs(err, ErrPlayerNotFound)
}

func TestLeaveRejectedMidGame(t *testing.T) {
	assert := assert.New(t)
	svc := newSeededService()
	g, _ := svc.CreateGame("g1", "ana", 2, domain.DifficultyBasic)
	_, err := svc.Join(g, "bo")
	assert.NoError(err)
	_, err = svc.Prepare(g)
	assert.NoError(err)

	_, err = svc.Leave(g, "bo")
	assert.ErrorIs(err, ErrGameInProgress)
}

func TestKindOfClassification(t *testing.T) {
	anError := assert.AnError
	assert := assert.New(t)
	assert.Equal(KindNotFound, KindOf(ErrGameNotFound))
	assert.Equal(KindInvalidMove, KindOf(ErrColumnFull))
	assert.Equal(KindConflict, KindOf(ErrNameTaken))
	assert.Equal(KindInternal, KindOf(ErrScoringFailed))
	assert.Equal(KindInternal, KindOf(anError))
}
