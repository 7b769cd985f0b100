// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Telegram message types recorded in the message log.
const (
	TelegramContact  = "contact"
	TelegramPhoto    = "photo"
	TelegramVideo    = "video"
	TelegramDocument = "document"
	TelegramText     = "text"
)

// TelegramMessage is one logged message received by the publishing bot.
type TelegramMessage struct {
	ID             int64     `json:"id"`
	TelegramUserID int64     `json:"telegram_user_id"`
	PhoneNumber    *string   `json:"phone_number,omitempty"`
	MessageType    string    `json:"message_type"`
	MessageText    string    `json:"message_text"`
	FileURL        *string   `json:"file_url,omitempty"`
	FileID         *string   `json:"file_id,omitempty"`
	Processed      bool      `json:"processed"`
	ProductID      *int64    `json:"product_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
