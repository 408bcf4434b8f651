// Package cli holds initialization shared by cmd/tracker and
// cmd/tracker-worker.
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/VishardMehta/Smart-Expense-Management/internal/config"
)

// Bootstrap loads .env and configuration, installs the default logger
// at the configured level and validates the config, exiting on failure
// so broken deployments fail fast.
func Bootstrap() (*config.Config, *slog.Logger) {
	// Missing .env files are fine; it is a local development aid.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := SetupLogger(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg, logger
}

// SetupLogger configures structured logging at the given level and
// installs it as the default logger.
func SetupLogger(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
