package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"coloretto/internal/domain"
	"coloretto/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// GameStoreAdapter implements ports.GameStore on Nakama's storage engine.
// Documents are owned by the system user; clients read game state through
// match events, never the storage API.
type GameStoreAdapter struct {
	nk runtime.NakamaModule
}

// NewGameStoreAdapter creates a storage adapter bound to the Nakama module.
func NewGameStoreAdapter(nk runtime.NakamaModule) *GameStoreAdapter {
	return &GameStoreAdapter{nk: nk}
}

// Load reads the stored document for a game name.
func (a *GameStoreAdapter) Load(ctx context.Context, gameName string) (*domain.GameState, error) {
	objects, err := a.nk.StorageRead(ctx, []*runtime.StorageRead{{
		Collection: StorageCollectionGames,
		Key:        gameName,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to read game %s: %w", gameName, err)
	}
	if len(objects) == 0 {
		return nil, ports.ErrGameDocNotFound
	}

	var g domain.GameState
	if err := json.Unmarshal([]byte(objects[0].GetValue()), &g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game %s: %w", gameName, err)
	}
	return &g, nil
}

// Save writes the full document. The match loop is the sole writer, so the
// write is a plain last-write-wins replacement.
func (a *GameStoreAdapter) Save(ctx context.Context, g *domain.GameState) error {
	value, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal game %s: %w", g.GameName, err)
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      StorageCollectionGames,
		Key:             g.GameName,
		Value:           string(value),
		PermissionRead:  0,
		PermissionWrite: 0,
	}})
	if err != nil {
		return fmt.Errorf("failed to write game %s: %w", g.GameName, err)
	}
	return nil
}

// Delete removes the stored document.
func (a *GameStoreAdapter) Delete(ctx context.Context, gameName string) error {
	err := a.nk.StorageDelete(ctx, []*runtime.StorageDelete{{
		Collection: StorageCollectionGames,
		Key:        gameName,
	}})
	if err != nil {
		return fmt.Errorf("failed to delete game %s: %w", gameName, err)
	}
	return nil
}
