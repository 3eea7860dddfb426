package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"loto/internal/bot"
	"loto/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs, hooks and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}

	if err := bot.LoadIdentities(botIdentitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else {
		bot.ProvisionBots(ctx, nk, logger)
	}

	if err := RegisterRPCs(initializer); err != nil {
		return fmt.Errorf("register rpcs: %w", err)
	}

	if err := initializer.RegisterMatch(MatchNameLoto, NewMatch); err != nil {
		return fmt.Errorf("register match: %w", err)
	}

	if err := initializer.RegisterAfterAuthenticateDevice(AfterAuthenticateDevice); err != nil {
		return fmt.Errorf("register after authenticate device: %w", err)
	}

	logger.Info("Lo To Go module loaded.")
	return nil
}
