// Package cli provides common initialization utilities shared by
// cmd/kopilka and cmd/kopilka-export.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"kopilka/internal/config"
	"kopilka/internal/kv"
	"kopilka/internal/log"
)

// SetupLogger initializes structured logging at the given level and sets it
// as the process default.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Level = log.ParseLevel(level)
	logger := log.New(cfg)
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

// OpenStore opens the key-value backend named by the configuration.
// The returned cleanup closes the backend and is safe to call once.
func OpenStore(logger *log.Logger, cfg *config.Config) (kv.Store, func()) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, data will not survive restarts")
		return kv.NewMemory(), func() {}
	default:
		store, err := kv.OpenSQLite(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite storage", log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Closing SQLite storage failed", log.FieldError, err)
			}
		}
	}
}
