// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"lightshop/internal/models"
)

// MediaStore handles all media-related database operations.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// mediaColumns lists the columns selected in media queries.
const mediaColumns = `id, folder_id, url, name, content_type, size_bytes,
	width, height, s3_key, thumb_s3_key, uploaded_at`

// scanMedia scans a media row from the result set.
func scanMedia(scanner interface{ Scan(...any) error }) (*models.MediaImage, error) {
	var m models.MediaImage
	err := scanner.Scan(
		&m.ID, &m.FolderID, &m.URL, &m.Name, &m.ContentType, &m.SizeBytes,
		&m.Width, &m.Height, &m.S3Key, &m.ThumbS3Key, &m.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new image record. A zero ID is replaced by a fresh UUID.
func (s *MediaStore) Create(ctx context.Context, m *models.MediaImage) (*models.MediaImage, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO media_images (id, folder_id, url, name, content_type, size_bytes,
			width, height, s3_key, thumb_s3_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+mediaColumns,
		m.ID, m.FolderID, m.URL, m.Name, m.ContentType, m.SizeBytes,
		m.Width, m.Height, m.S3Key, m.ThumbS3Key,
	)
	created, err := scanMedia(row)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	created.ThumbURL = m.ThumbURL
	return created, nil
}

// FindByID retrieves a single image record by its UUID.
func (s *MediaStore) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaImage, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_images WHERE id = $1`, id)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by id: %w", err)
	}
	return m, nil
}

// ListByFolder returns the images of one folder, newest first.
func (s *MediaStore) ListByFolder(ctx context.Context, folderID string) ([]*models.MediaImage, error) {
	return s.list(ctx, `
		SELECT `+mediaColumns+`
		FROM media_images
		WHERE folder_id = $1
		ORDER BY uploaded_at DESC, id`, folderID)
}

// ListAll returns every image, grouped by folder and newest first within
// a folder.
func (s *MediaStore) ListAll(ctx context.Context) ([]*models.MediaImage, error) {
	return s.list(ctx, `
		SELECT `+mediaColumns+`
		FROM media_images
		ORDER BY folder_id, uploaded_at DESC, id`)
}

func (s *MediaStore) list(ctx context.Context, query string, args ...any) ([]*models.MediaImage, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []*models.MediaImage
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Delete removes an image record from a folder and returns it so the
// caller can clean up the corresponding S3 objects. Returns nil, nil when
// the image does not exist in that folder.
func (s *MediaStore) Delete(ctx context.Context, folderID string, id uuid.UUID) (*models.MediaImage, error) {
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM media_images WHERE id = $1 AND folder_id = $2
		RETURNING `+mediaColumns, id, folderID)
	m, err := scanMedia(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}
