// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/streakwatch/internal/database"
	"github.com/edgard/streakwatch/internal/streak"
)

const sendMessageTimeout = 10 * time.Second

type watchHandler struct {
	deps HandlerDeps
}

// NewWatchHandler creates the default handler that watches every text message
// for forbidden words. On a hit it records the offense and replies with the
// streak report; everything else is ignored.
func NewWatchHandler(deps HandlerDeps) bot.HandlerFunc {
	return watchHandler{deps}.Handle
}

func (h watchHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	deps := h.deps
	log := deps.Logger.With("handler", "watch")

	msg := update.Message
	if msg == nil || msg.Text == "" || msg.From == nil {
		// Malformed inbound event: no text or no sender. Ignore silently.
		log.DebugContext(ctx, "Ignoring update with nil message, empty text, or nil sender", "update_id", update.ID)
		return
	}

	if !deps.Detector.Match(msg.Text) {
		return
	}

	chatID := msg.Chat.ID
	offense := &database.Offense{
		ChatID:      chatID,
		UserID:      msg.From.ID,
		MessageID:   int64(msg.ID),
		Username:    DisplayName(msg.From, deps.Config.Watch.FallbackName),
		MessageText: msg.Text,
	}

	log.InfoContext(ctx, "Forbidden word detected",
		"chat_id", chatID, "user_id", offense.UserID, "message_id", msg.ID)

	reply, err := BuildStreakReply(ctx, deps, offense)
	if err != nil {
		// No reply on store failure: better silence than a misleading report.
		log.ErrorContext(ctx, "Failed to build streak reply, not replying", "error", err, "chat_id", chatID)
		return
	}

	SendReply(ctx, b, deps, chatID, msg.ID, reply)
}

// BuildStreakReply records the offense and renders the streak-broken message
// from the two most recent offenses. It returns an error (and no text) when
// the store cannot serve the write or the follow-up read; the caller must not
// send anything in that case.
func BuildStreakReply(ctx context.Context, deps HandlerDeps, offense *database.Offense) (string, error) {
	log := deps.Logger.With("handler", "watch")
	timeout := deps.Config.Watch.StoreTimeout

	appendCtx, cancel := context.WithTimeout(ctx, timeout)
	err := deps.Store.AppendOffense(appendCtx, offense)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to record offense: %w", err)
	}

	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	recent, err := deps.Store.RecentOffenses(queryCtx, 2)
	cancel()
	if err != nil {
		return "", fmt.Errorf("failed to query recent offenses: %w", err)
	}

	report, err := streak.Compute(recent)
	if err != nil {
		if !errors.Is(err, streak.ErrNegativeElapsed) {
			return "", err
		}
		// Data-integrity fault in the store ordering. The report already
		// fell back to first-ever phrasing; log and keep going.
		log.WarnContext(ctx, "Negative elapsed duration between offenses, falling back to first-ever phrasing",
			"chat_id", offense.ChatID, "offense_id", offense.ID)
	}

	return streak.RenderReport(report, offense.Username), nil
}

// SendReply sends a reply message to the chat with a bounded timeout.
// Delivery failure is logged and not retried.
func SendReply(ctx context.Context, b *bot.Bot, deps HandlerDeps, chatID int64, replyTo int, text string) {
	log := deps.Logger.With("component", "send")

	if ctx.Err() != nil {
		log.ErrorContext(ctx, "Context cancelled before sending reply", "error", ctx.Err(), "chat_id", chatID)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	params := &bot.SendMessageParams{ChatID: chatID, Text: text}
	if replyTo > 0 {
		params.ReplyParameters = &models.ReplyParameters{MessageID: replyTo}
	}

	sent, err := b.SendMessage(sendCtx, params)
	if err != nil {
		log.ErrorContext(ctx, "Failed to send reply message", "error", err, "chat_id", chatID)
		return
	}

	log.DebugContext(ctx, "Sent reply", "chat_id", chatID, "message_id", sent.ID)
}

// DisplayName resolves a sender's display name: username first, then first
// name, then the configured fallback placeholder.
func DisplayName(from *models.User, fallback string) string {
	if from == nil {
		return fallback
	}
	if from.Username != "" {
		return from.Username
	}
	if from.FirstName != "" {
		return from.FirstName
	}
	return fallback
}
