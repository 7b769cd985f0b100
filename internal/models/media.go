// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaFolder is a fixed bucket of images keyed by site section.
type MediaFolder struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Route  string        `json:"route"`
	Slug   string        `json:"slug"`
	Images []*MediaImage `json:"images"`
}

// MediaImage is an uploaded image. URL is either the public object storage
// URL or a data URI when no bucket is configured.
type MediaImage struct {
	ID          uuid.UUID `json:"id"`
	FolderID    string    `json:"folder_id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	S3Key       *string   `json:"-"`
	ThumbS3Key  *string   `json:"-"`
	ThumbURL    string    `json:"thumb_url,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// IsImage returns true if the content type is an image type.
func IsImage(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// FormatSize renders a byte count for upload messages ("2,5 МБ").
func FormatSize(n int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case n >= mb:
		return strings.Replace(fmt.Sprintf("%.1f МБ", float64(n)/mb), ".", ",", 1)
	case n >= kb:
		return fmt.Sprintf("%d КБ", (n+kb/2)/kb)
	default:
		return fmt.Sprintf("%d Б", n)
	}
}

// DefaultFolders returns the fixed folder registry, one folder per site
// section, in display order.
func DefaultFolders() []MediaFolder {
	return []MediaFolder{
		{ID: "1", Name: "Главная", Route: "/", Slug: "home"},
		{ID: "2", Name: "Каталог", Route: "/catalog", Slug: "catalog"},
		{ID: "3", Name: "Интерьерные", Route: "/interior", Slug: "interior"},
		{ID: "4", Name: "Уличные", Route: "/outdoor", Slug: "outdoor"},
		{ID: "5", Name: "Коммерческие", Route: "/commercial", Slug: "commercial"},
		{ID: "6", Name: "Дизайнерские", Route: "/designer", Slug: "designer"},
		{ID: "7", Name: "Рекламные", Route: "/advertising", Slug: "advertising"},
		{ID: "8", Name: "Услуги", Route: "/services", Slug: "services"},
		{ID: "9", Name: "Профессионалам", Route: "/professionals", Slug: "professionals"},
		{ID: "10", Name: "Проекты", Route: "/projects", Slug: "projects"},
		{ID: "11", Name: "О компании", Route: "/about", Slug: "about"},
		{ID: "12", Name: "Контакты", Route: "/contacts", Slug: "contacts"},
	}
}

// FindFolder looks a folder up by id or slug. It returns false when the
// folder is not part of the registry.
func FindFolder(key string) (MediaFolder, bool) {
	for _, f := range DefaultFolders() {
		if f.ID == key || f.Slug == key {
			return f, true
		}
	}
	return MediaFolder{}, false
}
