// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lightshop/internal/models"
)

// SiteSettingStore keeps the site settings record as one row per field.
// Values are JSON so every field type survives the text column.
type SiteSettingStore struct {
	db *sql.DB
}

// NewSiteSettingStore returns a SiteSettingStore on db.
func NewSiteSettingStore(db *sql.DB) *SiteSettingStore {
	return &SiteSettingStore{db: db}
}

// Rows returns the stored key/value pairs.
func (s *SiteSettingStore) Rows(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		kv[k] = v
	}
	return kv, rows.Err()
}

// Load returns the stored settings merged over the defaults.
func (s *SiteSettingStore) Load(ctx context.Context) (*models.SiteSettings, error) {
	kv, err := s.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return models.SiteSettingsFromKV(kv)
}

// Save replaces the whole record in one transaction. Rows for keys the
// record no longer has are removed.
func (s *SiteSettingStore) Save(ctx context.Context, settings *models.SiteSettings) error {
	kv, err := settings.ToKV()
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer tx.Rollback()

	keys := make([]string, 0, len(kv))
	now := time.Now()
	for k, v := range kv {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO site_settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
			k, v, now)
		if err != nil {
			return fmt.Errorf("save setting %s: %w", k, err)
		}
		keys = append(keys, k)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM site_settings WHERE NOT (key = ANY($1))`, keys); err != nil {
		return fmt.Errorf("drop stale settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}
	return nil
}

// Reset deletes every row so the defaults apply again.
func (s *SiteSettingStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM site_settings`); err != nil {
		return fmt.Errorf("reset settings: %w", err)
	}
	return nil
}
