package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/streakwatch/internal/streak"
)

// NewLeaderboardHandler returns a handler for the /leaderboard command.
// It formats per-offender counts, descending, straight from the store.
func NewLeaderboardHandler(deps HandlerDeps) bot.HandlerFunc {
	return leaderboardHandler{deps}.Handle
}

type leaderboardHandler struct {
	deps HandlerDeps
}

func (h leaderboardHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "leaderboard")

	if update.Message == nil {
		log.WarnContext(ctx, "Leaderboard handler received update with nil message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	queryCtx, cancel := context.WithTimeout(ctx, deps.Config.Watch.StoreTimeout)
	counts, err := deps.Store.OffenseCounts(queryCtx)
	cancel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to query offense counts, not replying", "error", err, "chat_id", chatID)
		return
	}

	SendReply(ctx, b, deps, chatID, 0, streak.RenderLeaderboard(counts))
}
