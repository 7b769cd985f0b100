// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"lightshop/internal/models"
)

// TelegramStore persists the publishing bot's message log.
type TelegramStore struct {
	db *sql.DB
}

// NewTelegramStore creates a new TelegramStore with the given database connection.
func NewTelegramStore(db *sql.DB) *TelegramStore {
	return &TelegramStore{db: db}
}

// Save records an incoming message and returns its generated ID.
func (s *TelegramStore) Save(ctx context.Context, m *models.TelegramMessage) (int64, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO telegram_messages (telegram_user_id, phone_number, message_type,
			message_text, file_url, file_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		m.TelegramUserID, m.PhoneNumber, m.MessageType, m.MessageText, m.FileURL, m.FileID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("save telegram message: %w", err)
	}
	return m.ID, nil
}

// HasAuthorizedContact reports whether the user has ever shared a contact
// with the given phone number.
func (s *TelegramStore) HasAuthorizedContact(ctx context.Context, userID int64, phone string) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM telegram_messages
			WHERE telegram_user_id = $1 AND message_type = $2 AND phone_number = $3
		)`, userID, models.TelegramContact, phone,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check telegram contact: %w", err)
	}
	return ok, nil
}

// CreateProductFromMessage inserts a product built from a bot message and
// marks that message processed, in one transaction.
func (s *TelegramStore) CreateProductFromMessage(ctx context.Context, messageID int64, d models.ProductDraft) (*models.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin telegram tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		INSERT INTO products (name, category, price, image_url, glow_color, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		d.Name, d.Category, d.Price, d.ImageURL, d.GlowColor, d.Description,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product from message: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE telegram_messages SET processed = TRUE, product_id = $1 WHERE id = $2`,
		p.ID, messageID,
	); err != nil {
		return nil, fmt.Errorf("mark telegram message processed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit telegram tx: %w", err)
	}
	return p, nil
}

// FindByID retrieves one logged message. Returns nil, nil when absent.
func (s *TelegramStore) FindByID(ctx context.Context, id int64) (*models.TelegramMessage, error) {
	var m models.TelegramMessage
	err := s.db.QueryRowContext(ctx, `
		SELECT id, telegram_user_id, phone_number, message_type, message_text,
			file_url, file_id, processed, product_id, created_at
		FROM telegram_messages WHERE id = $1`, id,
	).Scan(
		&m.ID, &m.TelegramUserID, &m.PhoneNumber, &m.MessageType, &m.MessageText,
		&m.FileURL, &m.FileID, &m.Processed, &m.ProductID, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find telegram message: %w", err)
	}
	return &m, nil
}
