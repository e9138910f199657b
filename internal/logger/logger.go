// Package logger builds the bot's zap logger: human-readable output in
// development, JSON in production.
package logger

import (
	"go.uber.org/zap"

	"github.com/belajarku/belajarku-bot/internal/config"
)

func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == "production" {
		return zap.NewProduction()
	}

	return zap.NewDevelopment()
}
