// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package telegram implements the catalog publishing bot. The owner
// authorises a Telegram account by sharing the allowed phone number as a
// contact; photos and videos sent from that account afterwards become
// catalog products, with the caption describing name, price and category.
package telegram

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lightshop/internal/models"
)

// PlaceholderImage is used for products whose media has no usable URL.
const PlaceholderImage = "https://placehold.co/400x300"

// Sender delivers bot replies.
type Sender interface {
	SendHTML(chatID int64, text string) error
	RequestContact(chatID int64, text string) error
	FileURL(fileID string) (string, error)
}

// Store persists the message log and the products created from it.
type Store interface {
	Save(ctx context.Context, m *models.TelegramMessage) (int64, error)
	HasAuthorizedContact(ctx context.Context, userID int64, phone string) (bool, error)
	CreateProductFromMessage(ctx context.Context, messageID int64, d models.ProductDraft) (*models.Product, error)
}

// Bot handles webhook updates.
type Bot struct {
	sender       Sender
	store        Store
	allowedPhone string

	// Mirror optionally copies a Telegram file into permanent storage and
	// returns its public URL. Direct Telegram file URLs embed the bot token
	// and expire, so they are only used when no mirror is configured.
	Mirror func(ctx context.Context, name, fileURL string) (string, error)

	// OnProductCreated is called after a product is published.
	OnProductCreated func(ctx context.Context, p *models.Product)
}

// NewBot creates a Bot that accepts posts from the owner of allowedPhone.
func NewBot(sender Sender, store Store, allowedPhone string) *Bot {
	return &Bot{
		sender:       sender,
		store:        store,
		allowedPhone: NormalizePhone(allowedPhone),
	}
}

// Handle processes one update. Returned errors are storage failures;
// problems delivering replies are only logged.
func (b *Bot) Handle(ctx context.Context, update *tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil
	}
	chatID := msg.Chat.ID
	userID := msg.From.ID

	if msg.Contact != nil {
		return b.handleContact(ctx, chatID, userID, msg.Contact.PhoneNumber)
	}

	authorized := false
	if b.allowedPhone != "" {
		var err error
		authorized, err = b.store.HasAuthorizedContact(ctx, userID, b.allowedPhone)
		if err != nil {
			return err
		}
	}
	if !authorized {
		b.requestContact(chatID, "❌ <b>Доступ запрещен</b>\n\nОтправьте ваш контакт для авторизации.")
		return nil
	}

	phone := b.allowedPhone
	record := &models.TelegramMessage{
		TelegramUserID: userID,
		PhoneNumber:    &phone,
		MessageType:    models.TelegramText,
		MessageText:    messageText(msg),
	}

	var fileID string
	switch {
	case len(msg.Photo) > 0:
		record.MessageType = models.TelegramPhoto
		fileID = largestPhoto(msg.Photo).FileID
	case msg.Video != nil:
		record.MessageType = models.TelegramVideo
		fileID = msg.Video.FileID
	case msg.Document != nil:
		record.MessageType = models.TelegramDocument
		fileID = msg.Document.FileID
	}
	if fileID != "" {
		record.FileID = &fileID
		if url, err := b.sender.FileURL(fileID); err != nil {
			slog.Warn("telegram file url failed", "error", err, "file_id", fileID)
		} else {
			record.FileURL = &url
		}
	}

	messageID, err := b.store.Save(ctx, record)
	if err != nil {
		return err
	}
	slog.Info("telegram message saved", "id", messageID, "type", record.MessageType, "user", userID)

	if record.MessageType != models.TelegramPhoto && record.MessageType != models.TelegramVideo {
		b.send(chatID, "📝 <b>Сообщение сохранено</b>\n\nЧтобы создать товар, отправьте фото с описанием.")
		return nil
	}

	draft := ParseCaption(record.MessageText)
	draft.ImageURL = b.imageURL(ctx, record)

	product, err := b.store.CreateProductFromMessage(ctx, messageID, draft)
	if err != nil {
		return err
	}
	slog.Info("product published from telegram", "id", product.ID, "message_id", messageID)
	if b.OnProductCreated != nil {
		b.OnProductCreated(ctx, product)
	}

	b.send(chatID, fmt.Sprintf("✅ <b>Товар добавлен!</b>\n\nID: %d\nНазвание: %s\n\nТовар опубликован на сайте.",
		product.ID, html.EscapeString(product.Name)))
	return nil
}

func (b *Bot) handleContact(ctx context.Context, chatID, userID int64, rawPhone string) error {
	phone := NormalizePhone(rawPhone)
	if _, err := b.store.Save(ctx, &models.TelegramMessage{
		TelegramUserID: userID,
		PhoneNumber:    &phone,
		MessageType:    models.TelegramContact,
		MessageText:    "Shared contact",
	}); err != nil {
		return err
	}

	if b.allowedPhone == "" || phone != b.allowedPhone {
		slog.Warn("telegram contact rejected", "user", userID)
		b.send(chatID, "❌ <b>Доступ запрещен</b>\n\nВаш номер телефона не авторизован.")
		return nil
	}

	slog.Info("telegram contact authorized", "user", userID)
	b.send(chatID, "✅ <b>Доступ разрешен!</b>\n\nТеперь вы можете публиковать товары.\n\n"+
		"<b>Как добавить товар:</b>\n"+
		"1. Отправьте фото товара\n"+
		"2. В описании укажите:\n"+
		"   • Название (первая строка)\n"+
		"   • Цена: 15000\n"+
		"   • Категория: интерьер/ландшафт\n"+
		"   • Описание товара")
	return nil
}

// imageURL picks the product image: a mirrored copy when possible, the
// direct Telegram URL otherwise, and a placeholder as the last resort.
func (b *Bot) imageURL(ctx context.Context, record *models.TelegramMessage) string {
	if record.FileURL == nil {
		return PlaceholderImage
	}
	if b.Mirror != nil && record.MessageType == models.TelegramPhoto {
		name := "telegram-" + *record.FileID + ".jpg"
		url, err := b.Mirror(ctx, name, *record.FileURL)
		if err == nil {
			return url
		}
		slog.Warn("telegram photo mirror failed", "error", err)
	}
	return *record.FileURL
}

func (b *Bot) send(chatID int64, text string) {
	if err := b.sender.SendHTML(chatID, text); err != nil {
		slog.Warn("telegram send failed", "error", err, "chat_id", chatID)
	}
}

func (b *Bot) requestContact(chatID int64, text string) {
	if err := b.sender.RequestContact(chatID, text); err != nil {
		slog.Warn("telegram send failed", "error", err, "chat_id", chatID)
	}
}

func messageText(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

// largestPhoto returns the biggest rendition Telegram offers.
func largestPhoto(photos []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := photos[0]
	for _, p := range photos[1:] {
		if p.FileSize > best.FileSize ||
			(p.FileSize == best.FileSize && p.Width*p.Height > best.Width*best.Height) {
			best = p
		}
	}
	return best
}

// NormalizePhone strips spaces, dashes and brackets and ensures a leading
// plus sign, so "7 (922) 214-29-96" and "+79222142996" compare equal.
func NormalizePhone(phone string) string {
	phone = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, phone)
	if phone == "" {
		return ""
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone
}
