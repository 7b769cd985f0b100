// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotSender sends replies through the Telegram Bot API.
type BotSender struct {
	bot *tgbotapi.BotAPI
}

// NewBotSender connects to the Bot API with the given token.
func NewBotSender(token string) (*BotSender, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	slog.Info("telegram bot connected", "username", bot.Self.UserName)
	return &BotSender{bot: bot}, nil
}

// SendHTML sends an HTML-formatted message.
func (s *BotSender) SendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// RequestContact sends a message with a one-tap "share contact" keyboard.
func (s *BotSender) RequestContact(chatID int64, text string) error {
	btn := tgbotapi.NewKeyboardButtonContact("📞 Отправить контакт")
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(btn))
	kb.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = kb
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// FileURL resolves a file id to a direct download URL.
func (s *BotSender) FileURL(fileID string) (string, error) {
	url, err := s.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("telegram file %s: %w", fileID, err)
	}
	return url, nil
}
