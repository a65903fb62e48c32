package handlers

import (
	"log/slog"

	"github.com/edgard/streakwatch/internal/config"
	"github.com/edgard/streakwatch/internal/database"
	"github.com/edgard/streakwatch/internal/streak"
)

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Detector *streak.Detector
}
