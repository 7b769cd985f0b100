// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// secretTokenHeader carries the secret set with setWebhook.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler processes one Telegram update.
type UpdateHandler interface {
	Handle(ctx context.Context, update *tgbotapi.Update) error
}

// Telegram receives the bot webhook.
type Telegram struct {
	bot    UpdateHandler // nil when no bot token is configured
	secret string
}

// NewTelegram creates the webhook handlers. An empty secret disables the
// secret header check.
func NewTelegram(bot UpdateHandler, secret string) *Telegram {
	return &Telegram{bot: bot, secret: secret}
}

// Status answers GET on the webhook path.
func (h *Telegram) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "bot": "Telegram Bot Active"})
}

// Webhook decodes an update and hands it to the bot.
func (h *Telegram) Webhook(w http.ResponseWriter, r *http.Request) {
	if h.bot == nil {
		writeError(w, http.StatusInternalServerError, "Bot token not configured")
		return
	}
	if h.secret != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(secretTokenHeader)), []byte(h.secret)) != 1 {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var update tgbotapi.Update
	if err := decodeJSON(w, r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid update")
		return
	}

	if err := h.bot.Handle(r.Context(), &update); err != nil {
		slog.Error("telegram update failed", "update_id", update.UpdateID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
