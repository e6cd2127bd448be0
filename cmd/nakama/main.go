package main

import (
	"context"
	"database/sql"

	"coloretto/internal/ports/nakama"

	"github.com/heroiclabs/nakama-common/runtime"
)

// main is never called; this package is loaded by Nakama as a Go plugin,
// which uses InitModule as the entry point.
func main() {}

// InitModule proxies Nakama initialization to the nakama adapter package.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	return nakama.InitModule(ctx, logger, db, nk, initializer)
}
