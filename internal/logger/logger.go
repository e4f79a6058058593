package logger

import (
	"go.uber.org/zap"

	"github.com/oubmed/medquiz-bot/internal/config"
)

// New builds the process logger from the configured environment:
// structured JSON for a deployed bot, console encoding for local runs.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch cfg.Env {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
