// Package cli provides common initialization for the application binaries:
// env loading, logger setup, config validation, and state store wiring.
package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/jaas29/DinFlow/internal/config"
	"github.com/jaas29/DinFlow/internal/log"
	"github.com/jaas29/DinFlow/internal/state"
	"github.com/jaas29/DinFlow/internal/storage"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *log.Logger {
	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore builds the persistence adapter selected by the config and opens
// the state store over it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*state.Store, error) {
	var (
		adapter state.Adapter
		err     error
	)
	switch cfg.DataBackend {
	case "memory":
		adapter = storage.NewMemoryStore()
		logger.Info("Initialized memory backend")
	default:
		adapter, err = storage.NewSlotStore(cfg.SQLiteDBPath, cfg.StateSlot, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Initialized sqlite backend",
			"db_path", cfg.SQLiteDBPath, log.FieldSlot, cfg.StateSlot)
	}

	var opts []state.Option
	if cfg.StrictValidation {
		opts = append(opts, state.WithValidation())
	}
	return state.Open(ctx, adapter, logger, opts...)
}
