package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"coloretto/internal/app"
	"coloretto/internal/bot"
	"coloretto/internal/config"
	"coloretto/internal/domain"
	"coloretto/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match
// handler. The game document itself lives in Game; everything else is
// orchestration bookkeeping.
type MatchState struct {
	Tick       int64                       `json:"tick"`
	Presences  map[string]runtime.Presence `json:"-"` // seat name -> presence
	App        *app.Service                `json:"-"`
	Game       *domain.GameState           `json:"-"`
	Agents     map[string]*bot.Agent       `json:"-"` // AI seat name -> agent
	Opts       config.Options              `json:"-"`
	Store      ports.GameStore             `json:"-"`
	Difficulty domain.Difficulty           `json:"difficulty"`
	MaxPlayers int                         `json:"max_players"`

	// Tick deadlines. Zero means the timer is not armed.
	AIWaitUntil    int64 `json:"ai_wait_until"`    // tick when the acting AI seat moves
	ReassignAt     int64 `json:"reassign_at"`      // tick when the round-end pause expires
	AutoFillSince  int64 `json:"auto_fill_since"`  // tick when the short-handed lobby timer started
	EmptySinceTick int64 `json:"empty_since_tick"` // tick when the last human disconnected

	// Seats whose human left while replacement was locked; retried each tick.
	PendingAIReplacements []string `json:"pending_ai_replacements"`

	rng *rand.Rand
}

// matchLabel is advertised through the Nakama match listing for matchmaking
// queries.
type matchLabel struct {
	Open       int    `json:"open"`
	State      string `json:"state"`
	Difficulty string `json:"difficulty"`
}

type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type columnRequest struct {
	Column int `json:"column"`
}

type addAIRequest struct {
	Count      int               `json:"count"`
	Difficulty domain.Difficulty `json:"difficulty,omitempty"`
}

type replaceAIRequest struct {
	AIName string `json:"aiName,omitempty"` // empty means first AI seat
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// humanCount returns the number of connected human seats.
func (ms *MatchState) humanCount() int {
	if ms.Game == nil {
		return len(ms.Presences)
	}
	count := 0
	for _, name := range ms.Game.Players {
		if _, ok := ms.Presences[name]; ok {
			count++
		}
	}
	return count
}

func (ms *MatchState) openSeats() int {
	if ms.Game == nil {
		return ms.MaxPlayers
	}
	if ms.Game.IsPrepared {
		// Running games accept joiners only over AI seats.
		return len(ms.Game.AIPlayers)
	}
	return ms.Game.MaxPlayers - ms.Game.SeatCount()
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created. Creation params may carry
// "difficulty" (Basic or Expert) and "max_players".
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	opts, err := config.Load(env)
	if err != nil {
		logger.Error("MatchInit: Invalid match options: %v", err)
		return nil, 0, ""
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state := &MatchState{
		Presences:  make(map[string]runtime.Presence),
		App:        app.NewService(rng),
		Agents:     make(map[string]*bot.Agent),
		Opts:       opts,
		Store:      NewGameStoreAdapter(nk),
		Difficulty: domain.DifficultyBasic,
		MaxPlayers: app.MaxPlayers,
		rng:        rng,
	}
	state.App.MaxRounds = opts.MaxRounds

	if v, ok := params["difficulty"].(string); ok && domain.Difficulty(v) == domain.DifficultyExpert {
		state.Difficulty = domain.DifficultyExpert
	}
	if v, ok := params["max_players"].(float64); ok {
		n := int(v)
		if n >= app.MinPlayers && n <= app.MaxPlayers {
			state.MaxPlayers = n
		}
	}

	mh.resumeStoredGame(ctx, state, logger)

	labelState := "lobby"
	if state.Game != nil && state.Game.IsPrepared {
		labelState = "playing"
	}
	labelBytes, err := json.Marshal(matchLabel{
		Open:       state.openSeats(),
		State:      labelState,
		Difficulty: string(state.Difficulty),
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

// resumeStoredGame rebuilds the game document after a handler restart. A
// fresh match has no stored document and starts from the empty lobby.
func (mh *matchHandler) resumeStoredGame(ctx context.Context, state *MatchState, logger runtime.Logger) {
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if matchID == "" || state.Store == nil {
		return
	}

	g, err := state.Store.Load(ctx, matchID)
	if err != nil {
		if !errors.Is(err, ports.ErrGameDocNotFound) {
			logger.Warn("resumeStoredGame: Could not read game %s: %v", matchID, err)
		}
		return
	}
	if g == nil || g.IsFinished {
		return
	}

	state.Game = g
	state.Difficulty = g.DifficultyLevel
	state.MaxPlayers = g.MaxPlayers
	mh.ensureAgents(state, logger)
	logger.Info("resumeStoredGame: Resumed game %s at round %d.", g.GameName, g.CurrentRound)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Game != nil && matchState.Game.IsFinished {
		return state, false, "game finished"
	}
	if matchState.Presences[presence.GetUsername()] != nil {
		return state, false, "name already connected"
	}
	if matchState.openSeats() <= 0 {
		return state, false, "match full"
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		name := p.GetUsername()
		matchState.Presences[name] = p
		matchState.EmptySinceTick = 0

		// First joiner owns the game.
		if matchState.Game == nil {
			matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
			g, err := matchState.App.CreateGame(matchID, name, matchState.MaxPlayers, matchState.Difficulty)
			if err != nil {
				logger.Error("MatchJoin: Failed to create game for %s: %v", name, err)
				continue
			}
			matchState.Game = g
			mh.broadcastEvent(matchState, dispatcher, logger, app.Event{
				Kind:    app.EventPlayerJoined,
				Payload: app.PlayerJoinedPayload{Name: name, Seat: 0},
			})
			continue
		}

		if matchState.Game.HasPlayer(name) {
			// Reconnecting player: resync privately.
			mh.sendSnapshot(matchState, dispatcher, logger, name)
			continue
		}

		if matchState.Game.IsPrepared {
			// Running game: late joiners take over the first AI seat.
			replaced, events, err := matchState.App.JoinWithReplacement(matchState.Game, name)
			if err != nil {
				logger.Warn("MatchJoin: %s could not replace an AI seat: %v", name, err)
				mh.sendError(matchState, dispatcher, logger, name, err)
				continue
			}
			delete(matchState.Agents, replaced)
			mh.broadcastEvents(matchState, dispatcher, logger, events)
			mh.persist(ctx, matchState, logger)
			continue
		}

		events, err := matchState.App.Join(matchState.Game, name)
		if err != nil {
			logger.Warn("MatchJoin: %s could not join: %v", name, err)
			mh.sendError(matchState, dispatcher, logger, name, err)
			continue
		}
		mh.broadcastEvents(matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players disconnect. Mid-game seats
// are handed to an AI so the table keeps playing.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		name := p.GetUsername()
		delete(matchState.Presences, name)

		if matchState.Game == nil || !matchState.Game.HasPlayer(name) {
			continue
		}

		if !matchState.Game.IsPrepared {
			events, err := matchState.App.Leave(matchState.Game, name)
			if err != nil {
				logger.Warn("MatchLeave: %s could not leave lobby: %v", name, err)
				continue
			}
			mh.broadcastEvents(matchState, dispatcher, logger, events)
			continue
		}

		if matchState.Game.IsFinished {
			continue
		}
		mh.replaceSeatWithAI(ctx, matchState, dispatcher, logger, name)
	}

	if matchState.humanCount() == 0 && matchState.EmptySinceTick == 0 {
		matchState.EmptySinceTick = tick
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPrepareGame:
			mh.handlePrepare(ctx, matchState, dispatcher, logger, msg)
		case OpRevealCard:
			mh.handleReveal(ctx, matchState, dispatcher, logger, msg)
		case OpTakeColumn:
			mh.handleTake(ctx, matchState, dispatcher, logger, msg)
		case OpAddAIPlayers:
			mh.handleAddAI(ctx, matchState, dispatcher, logger, msg)
		case OpReplaceAI:
			mh.handleReplaceAI(ctx, matchState, dispatcher, logger, msg)
		case OpSetPaused:
			mh.handleSetPaused(ctx, matchState, dispatcher, logger, msg)
		case OpFetchState:
			mh.sendSnapshot(matchState, dispatcher, logger, msg.GetUsername())
		case OpHandOverSeat:
			mh.handleHandOverSeat(ctx, matchState, dispatcher, logger, msg)
		case OpFinalizeGame:
			mh.handleFinalize(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.retryPendingReplacements(ctx, matchState, dispatcher, logger)
	mh.processAutoFill(matchState, dispatcher, logger)
	mh.processRoundEnd(ctx, matchState, dispatcher, logger)
	mh.processAgents(ctx, matchState, dispatcher, logger)

	// Shut down once no human has been connected for the grace window.
	if matchState.humanCount() == 0 {
		if matchState.EmptySinceTick == 0 {
			matchState.EmptySinceTick = tick
		}
		if tick-matchState.EmptySinceTick >= int64(matchState.Opts.EmptyMatchShutdownTicks) {
			logger.Info("MatchLoop: Terminating empty match.")
			if matchState.Game != nil && !matchState.Game.IsFinished {
				// Nobody can rejoin a dead match id, the document is garbage.
				mh.discard(ctx, matchState, logger)
			} else {
				mh.persist(ctx, matchState, logger)
			}
			return nil
		}
	} else {
		matchState.EmptySinceTick = 0
	}

	return matchState
}

// senderSeat resolves a message sender to their seat name, or "" when the
// sender holds no human seat.
func (mh *matchHandler) senderSeat(state *MatchState, msg runtime.MatchData) string {
	name := msg.GetUsername()
	if state.Game != nil && state.Game.HasPlayer(name) {
		return name
	}
	return ""
}

func (mh *matchHandler) handlePrepare(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := msg.GetUsername()
	if state.Game == nil || state.Game.Owner != sender {
		logger.Warn("handlePrepare: %s is not the owner.", sender)
		mh.sendError(state, dispatcher, logger, sender, app.ErrPlayerNotFound)
		return
	}

	events, err := state.App.Prepare(state.Game)
	if err != nil {
		logger.Warn("handlePrepare: %v", err)
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}
	mh.ensureAgents(state, logger)
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) handleReveal(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := mh.senderSeat(state, msg)
	if sender == "" {
		mh.sendError(state, dispatcher, logger, msg.GetUsername(), app.ErrPlayerNotFound)
		return
	}

	var req columnRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleReveal: Bad payload from %s: %v", sender, err)
		mh.sendError(state, dispatcher, logger, sender, app.ErrInvalidColumn)
		return
	}

	events, err := state.App.RevealCard(state.Game, sender, req.Column)
	if err != nil {
		logger.Warn("handleReveal: %s column %d: %v", sender, req.Column, err)
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) handleTake(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := mh.senderSeat(state, msg)
	if sender == "" {
		mh.sendError(state, dispatcher, logger, msg.GetUsername(), app.ErrPlayerNotFound)
		return
	}

	var req columnRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleTake: Bad payload from %s: %v", sender, err)
		mh.sendError(state, dispatcher, logger, sender, app.ErrInvalidColumn)
		return
	}

	events, err := state.App.TakeColumn(state.Game, sender, req.Column)
	if err != nil {
		logger.Warn("handleTake: %s column %d: %v", sender, req.Column, err)
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) handleAddAI(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := msg.GetUsername()
	if state.Game == nil || state.Game.Owner != sender {
		logger.Warn("handleAddAI: %s is not the owner.", sender)
		mh.sendError(state, dispatcher, logger, sender, app.ErrPlayerNotFound)
		return
	}
	if state.Game.IsPrepared {
		mh.sendError(state, dispatcher, logger, sender, app.ErrGameInProgress)
		return
	}

	var req addAIRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil || req.Count < 1 {
		logger.Warn("handleAddAI: Bad payload from %s", sender)
		mh.sendError(state, dispatcher, logger, sender, app.ErrInvalidPlayers)
		return
	}
	if state.Game.SeatCount()+req.Count > state.Game.MaxPlayers {
		mh.sendError(state, dispatcher, logger, sender, app.ErrGameFull)
		return
	}

	difficulty := state.Game.DifficultyLevel
	if req.Difficulty == domain.DifficultyExpert || req.Difficulty == domain.DifficultyBasic {
		difficulty = req.Difficulty
	}
	mh.addAISeats(state, dispatcher, logger, difficulty, req.Count)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) handleReplaceAI(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := msg.GetUsername()
	if state.Game == nil {
		mh.sendError(state, dispatcher, logger, sender, app.ErrGameNotFound)
		return
	}

	var req replaceAIRequest
	if len(msg.GetData()) > 0 {
		if err := json.Unmarshal(msg.GetData(), &req); err != nil {
			logger.Warn("handleReplaceAI: Bad payload from %s: %v", sender, err)
			mh.sendError(state, dispatcher, logger, sender, app.ErrAINotFound)
			return
		}
	}

	var events []app.Event
	var err error
	replaced := req.AIName
	if replaced == "" {
		replaced, events, err = state.App.JoinWithReplacement(state.Game, sender)
	} else {
		events, err = state.App.ReplaceAIWithPlayer(state.Game, replaced, sender)
	}
	if err != nil {
		logger.Warn("handleReplaceAI: %s over %q: %v", sender, req.AIName, err)
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}

	delete(state.Agents, replaced)
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) handleSetPaused(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := msg.GetUsername()
	if state.Game == nil || state.Game.Owner != sender {
		logger.Warn("handleSetPaused: %s is not the owner.", sender)
		mh.sendError(state, dispatcher, logger, sender, app.ErrPlayerNotFound)
		return
	}

	var req pauseRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleSetPaused: Bad payload from %s: %v", sender, err)
		return
	}

	events, err := state.App.SetPaused(state.Game, req.Paused)
	if err != nil {
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.persist(ctx, state, logger)
}

// handleHandOverSeat lets a seated player hand their own seat to an AI and
// keep watching as a spectator.
func (mh *matchHandler) handleHandOverSeat(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := msg.GetUsername()
	if state.Game == nil || !state.Game.IsPrepared {
		mh.sendError(state, dispatcher, logger, sender, app.ErrGameNotPrepared)
		return
	}
	if !state.Game.HasPlayer(sender) {
		mh.sendError(state, dispatcher, logger, sender, app.ErrPlayerNotFound)
		return
	}

	roster := bot.BuildRoster(state.rng, state.Game.DifficultyLevel, 1, state.Game.SeatOrder())
	events, err := state.App.ReplacePlayerWithAI(state.Game, sender, roster[0])
	if err != nil {
		logger.Warn("handleHandOverSeat: %s: %v", sender, err)
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}

	state.Agents[roster[0].Name] = bot.NewAgent(roster[0])
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	mh.persist(ctx, state, logger)
}

// handleFinalize lets the owner end the game early and run the scoring
// sequence. On an already finished game the stored result is returned with
// no further mutation.
func (mh *matchHandler) handleFinalize(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	sender := msg.GetUsername()
	if state.Game == nil || state.Game.Owner != sender {
		logger.Warn("handleFinalize: %s is not the owner.", sender)
		mh.sendError(state, dispatcher, logger, sender, app.ErrPlayerNotFound)
		return
	}

	_, events, err := state.App.FinalizeScores(state.Game)
	if err != nil {
		logger.Warn("handleFinalize: %v", err)
		mh.sendError(state, dispatcher, logger, sender, err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	mh.persist(ctx, state, logger)
}

// replaceSeatWithAI hands a departed human seat to a fresh AI. When the
// round is closing the swap is deferred and retried from the loop.
func (mh *matchHandler) replaceSeatWithAI(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, name string) {
	roster := bot.BuildRoster(state.rng, state.Game.DifficultyLevel, 1, state.Game.SeatOrder())
	events, err := state.App.ReplacePlayerWithAI(state.Game, name, roster[0])
	if err != nil {
		logger.Info("replaceSeatWithAI: Deferring swap for %s: %v", name, err)
		state.PendingAIReplacements = append(state.PendingAIReplacements, name)
		return
	}

	state.Agents[roster[0].Name] = bot.NewAgent(roster[0])
	logger.Info("replaceSeatWithAI: %s handed to AI %s.", name, roster[0].Name)
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) retryPendingReplacements(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if len(state.PendingAIReplacements) == 0 || state.Game == nil {
		return
	}
	pending := state.PendingAIReplacements
	state.PendingAIReplacements = nil
	for _, name := range pending {
		if !state.Game.HasPlayer(name) {
			continue
		}
		if _, ok := state.Presences[name]; ok {
			// Reconnected before the swap went through.
			continue
		}
		mh.replaceSeatWithAI(ctx, state, dispatcher, logger, name)
	}
}

// processAutoFill adds AI seats to a short-handed lobby after the grace
// delay so a lone player still gets a game.
func (mh *matchHandler) processAutoFill(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Game == nil || state.Game.IsPrepared {
		state.AutoFillSince = 0
		return
	}
	if state.humanCount() == 0 || state.Game.SeatCount() >= app.MinPlayers {
		state.AutoFillSince = 0
		return
	}

	if state.AutoFillSince == 0 {
		state.AutoFillSince = state.Tick
		logger.Debug("processAutoFill: Short-handed lobby, starting auto-fill timer.")
		return
	}
	if state.Tick-state.AutoFillSince < ticksFor(state.Opts.AutoFillDelay) {
		return
	}
	state.AutoFillSince = 0

	missing := app.MinPlayers - state.Game.SeatCount()
	mh.addAISeats(state, dispatcher, logger, state.Game.DifficultyLevel, missing)
}

func (mh *matchHandler) addAISeats(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, difficulty domain.Difficulty, count int) {
	roster := bot.BuildRoster(state.rng, difficulty, count, state.Game.SeatOrder())
	for _, ai := range roster {
		state.Game.AIPlayers = append(state.Game.AIPlayers, ai)
		state.Agents[ai.Name] = bot.NewAgent(ai)
		logger.Info("addAISeats: Added AI %s (%s/%s).", ai.Name, ai.Difficulty, ai.Strategy)
	}
	mh.sendSnapshot(state, dispatcher, logger, "")
	mh.updateLabel(state, dispatcher, logger)
}

// processRoundEnd drives the pause between the last column take and the
// next deal, then closes the round.
func (mh *matchHandler) processRoundEnd(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g == nil || !g.IsPrepared || g.IsFinished || g.IsPaused {
		return
	}
	if !state.App.RoundOver(g) {
		state.ReassignAt = 0
		return
	}

	if state.ReassignAt == 0 {
		state.ReassignAt = state.Tick + ticksFor(state.Opts.ReassignDelay)
		mh.broadcastEvent(state, dispatcher, logger, app.Event{
			Kind:    app.EventRoundEnding,
			Payload: app.RoundEndingPayload{Round: g.CurrentRound},
		})
		return
	}
	if state.Tick < state.ReassignAt {
		return
	}
	state.ReassignAt = 0

	events, err := state.App.EndRound(g)
	if err != nil {
		logger.Error("processRoundEnd: %v", err)
		return
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	if g.IsFinished {
		mh.updateLabel(state, dispatcher, logger)
	}
	mh.persist(ctx, state, logger)
}

// processAgents lets the AI seat whose turn it is act after a simulated
// thinking pause.
func (mh *matchHandler) processAgents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	g := state.Game
	if g == nil || !g.IsPrepared || g.IsFinished || g.IsPaused || state.ReassignAt != 0 {
		return
	}
	if state.App.RoundOver(g) {
		return
	}

	current := g.CurrentPlayerName()
	ai := g.AIPlayerByName(current)
	if ai == nil {
		state.AIWaitUntil = 0
		return
	}

	if state.AIWaitUntil == 0 {
		minTicks := ticksFor(state.Opts.AIMinThinkDelay)
		maxTicks := ticksFor(state.Opts.AIMaxThinkDelay)
		delay := minTicks
		if maxTicks > minTicks {
			delay += state.rng.Int63n(maxTicks - minTicks + 1)
		}
		state.AIWaitUntil = state.Tick + delay
		return
	}
	if state.Tick < state.AIWaitUntil {
		return
	}
	state.AIWaitUntil = 0

	agent, exists := state.Agents[current]
	if !exists {
		agent = bot.NewAgent(*ai)
		state.Agents[current] = agent
	}

	decision, err := agent.Decide(g)
	if err != nil {
		logger.Error("processAgents: AI %s failed to decide: %v", current, err)
		return
	}

	var events []app.Event
	switch decision.Kind {
	case bot.ActionTake:
		events, err = state.App.TakeColumn(g, current, decision.Column)
	default:
		events, err = state.App.RevealCard(g, current, decision.Column)
	}
	if err != nil {
		// Fall back to any legal take so the round cannot stall.
		logger.Warn("processAgents: AI %s move rejected: %v", current, err)
		events, err = mh.fallbackTake(state, current)
		if err != nil {
			logger.Error("processAgents: AI %s has no legal move: %v", current, err)
			return
		}
	}
	mh.broadcastEvents(state, dispatcher, logger, events)
	mh.persist(ctx, state, logger)
}

func (mh *matchHandler) fallbackTake(state *MatchState, seat string) ([]app.Event, error) {
	g := state.Game
	var lastErr error
	for i := range g.Columns {
		if len(g.Columns[i].Cards) == 0 {
			continue
		}
		events, err := state.App.TakeColumn(g, seat, i)
		if err == nil {
			return events, nil
		}
		lastErr = err
	}
	// All columns empty: an empty take is legal then.
	events, err := state.App.TakeColumn(g, seat, 0)
	if err == nil {
		return events, nil
	}
	if lastErr == nil {
		lastErr = err
	}
	return nil, lastErr
}

// eventOpCodes maps app events to wire opcodes.
var eventOpCodes = map[app.EventKind]int64{
	app.EventPlayerJoined:      OpPlayerJoined,
	app.EventPlayerLeft:        OpPlayerLeft,
	app.EventGamePrepared:      OpGamePrepared,
	app.EventCardRevealed:      OpCardRevealed,
	app.EventRoundCardRevealed: OpRoundCardRevealed,
	app.EventColumnTaken:       OpColumnTaken,
	app.EventRoundEnding:       OpRoundEnding,
	app.EventRoundStarted:      OpRoundStarted,
	app.EventGameEnded:         OpGameEnded,
	app.EventRosterChanged:     OpRosterChanged,
	app.EventStateSnapshot:     OpStateSnapshot,
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent serializes an app event and dispatches it, honoring
// targeted recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, ok := eventOpCodes[ev.Kind]
	if !ok {
		logger.Warn("broadcastEvent: Unknown event kind: %v", ev.Kind)
		return
	}

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		logger.Error("broadcastEvent: Failed to marshal %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, name := range ev.Recipients {
			if p, ok := state.Presences[name]; ok {
				recipients = append(recipients, p)
			}
		}
		// Targeted recipients who are all offline (AI seats) must not
		// leak to the rest of the table.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: Failed to dispatch %v: %v", ev.Kind, err)
	}
}

// sendSnapshot sends the sanitized game view to one player, or to everyone
// when name is empty.
func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, name string) {
	if state.Game == nil {
		return
	}
	ev := app.Event{
		Kind:    app.EventStateSnapshot,
		Payload: app.StateSnapshotPayload{Snapshot: app.BuildSnapshot(state.Game)},
	}
	if name != "" {
		ev.Recipients = []string{name}
	}
	mh.broadcastEvent(state, dispatcher, logger, ev)
}

// errorCode maps the app error taxonomy to client-facing codes.
func errorCode(err error) int {
	switch app.KindOf(err) {
	case app.KindNotFound:
		return 404
	case app.KindInvalidMove:
		return 400
	case app.KindConflict:
		return 409
	default:
		return 500
	}
}

// sendError reports a rejected action to the offending player only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, name string, cause error) {
	presence, ok := state.Presences[name]
	if !ok {
		return
	}

	data, err := json.Marshal(errorPayload{Code: errorCode(cause), Message: cause.Error()})
	if err != nil {
		logger.Error("sendError: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpGameError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: Failed to dispatch: %v", err)
	}
}

// ensureAgents builds an agent for every AI seat missing one.
func (mh *matchHandler) ensureAgents(state *MatchState, logger runtime.Logger) {
	for _, ai := range state.Game.AIPlayers {
		if _, ok := state.Agents[ai.Name]; ok {
			continue
		}
		state.Agents[ai.Name] = bot.NewAgent(ai)
		logger.Debug("ensureAgents: Agent created for %s.", ai.Name)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	labelState := "lobby"
	if state.Game != nil && state.Game.IsPrepared {
		labelState = "playing"
	}
	if state.Game != nil && state.Game.IsFinished {
		labelState = "finished"
	}

	labelBytes, err := json.Marshal(matchLabel{
		Open:       state.openSeats(),
		State:      labelState,
		Difficulty: string(state.Difficulty),
	})
	if err != nil {
		logger.Error("updateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: Failed to update: %v", err)
	}
}

// persist saves the current game document. Persistence failures are logged
// and never interrupt play; the in-memory state stays authoritative.
func (mh *matchHandler) persist(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Game == nil || state.Store == nil {
		return
	}
	if err := state.Store.Save(ctx, state.Game); err != nil {
		logger.Error("persist: Failed to save game %s: %v", state.Game.GameName, err)
	}
}

// discard removes the stored document of a game nobody can return to.
func (mh *matchHandler) discard(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Game == nil || state.Store == nil {
		return
	}
	if err := state.Store.Delete(ctx, state.Game.GameName); err != nil {
		logger.Error("discard: Failed to delete game %s: %v", state.Game.GameName, err)
	}
}

// ticksFor converts a duration to loop ticks at the 1/sec tick rate.
func ticksFor(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	ticks := int64(d / time.Second)
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	mh.persist(ctx, matchState, logger)
	return matchState
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
