package nakama

import (
	"context"
	"database/sql"

	"katarik/internal/app"
	"katarik/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires the RPC and match handler for the Nakama runtime. The
// room registry created here is shared by every match the process hosts.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("InitModule: could not load game config, using defaults: %v", err)
	}

	registry := app.NewRegistry()

	if err := initializer.RegisterRpc(RpcJoinRoom, RpcJoinRoomFn); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameKatarik, NewMatch(registry)); err != nil {
		return err
	}

	logger.Info("Katarik Go module loaded.")
	return nil
}
