package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/streakwatch/internal/streak"
)

// NewRecentHandler returns a handler for the /recent command.
// It lists the latest offenses, newest first.
func NewRecentHandler(deps HandlerDeps) bot.HandlerFunc {
	return recentHandler{deps}.Handle
}

type recentHandler struct {
	deps HandlerDeps
}

func (h recentHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "recent")

	if update.Message == nil {
		log.WarnContext(ctx, "Recent handler received update with nil message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	queryCtx, cancel := context.WithTimeout(ctx, deps.Config.Watch.StoreTimeout)
	offenses, err := deps.Store.RecentOffenses(queryCtx, deps.Config.Watch.RecentLimit)
	cancel()
	if err != nil {
		log.ErrorContext(ctx, "Failed to query recent offenses, not replying", "error", err, "chat_id", chatID)
		return
	}

	SendReply(ctx, b, deps, chatID, 0, streak.RenderRecent(offenses))
}
