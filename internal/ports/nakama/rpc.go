package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// quickMatchRequest is the optional RPC payload. Difficulty and table size
// only apply when a new match has to be created.
type quickMatchRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
}

// RpcFindMatch finds a joinable match with open seats, creating one when
// none exists, and returns the match ID.
func RpcFindMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req quickMatchRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Warn("RpcFindMatch [User:%s]: Bad payload: %v", userID, err)
			return "", runtime.NewError("invalid payload", 3)
		}
	}

	// Filter on matches advertising at least one open seat, and on the
	// requested difficulty when the caller named one.
	labelQuery := fmt.Sprintf("+label.%s:>=1", MatchLabelKey_OpenSeats)
	if req.Difficulty != "" {
		labelQuery += fmt.Sprintf(" +label.difficulty:%s", req.Difficulty)
	}

	limit := 1
	authoritative := true
	minSize := 0
	maxSize := 5
	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, labelQuery)
	if err != nil {
		logger.Error("RpcFindMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) > 0 {
		matchID := matches[0].MatchId
		logger.Info("RpcFindMatch [User:%s]: Found existing match %s", userID, matchID)
		return matchID, nil
	}

	params := map[string]interface{}{}
	if req.Difficulty != "" {
		params["difficulty"] = req.Difficulty
	}
	if req.MaxPlayers > 0 {
		params["max_players"] = float64(req.MaxPlayers)
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameColoretto, params)
	if err != nil {
		logger.Error("RpcFindMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("RpcFindMatch [User:%s]: Created new match %s", userID, matchID)
	return matchID, nil
}

// RegisterRPCs wires all RPC handlers with the initializer.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcQuickMatch, RpcFindMatch)
}
