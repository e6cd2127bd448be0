package ports

import (
	"context"
	"errors"

	"coloretto/internal/domain"
)

// ErrGameDocNotFound is returned when no stored document exists for a game.
var ErrGameDocNotFound = errors.New("game document not found")

// GameStore persists game documents so finished games survive match
// shutdown and crashed matches can be inspected. The match loop is the only
// writer of a given document.
type GameStore interface {
	// Load reads the stored document for a game name.
	Load(ctx context.Context, gameName string) (*domain.GameState, error)

	// Save writes the full document, replacing any previous version.
	Save(ctx context.Context, g *domain.GameState) error

	// Delete removes the stored document. Deleting a missing document is
	// not an error.
	Delete(ctx context.Context, gameName string) error
}
