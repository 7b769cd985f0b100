// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Category groups catalog products by where the fixture is installed.
type Category string

const (
	CategoryInterior   Category = "interior"
	CategoryExterior   Category = "exterior"
	CategoryLandscape  Category = "landscape"
	CategoryDecorative Category = "decorative"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryInterior, CategoryExterior, CategoryLandscape, CategoryDecorative}

var categoryLabels = map[Category]string{
	CategoryInterior:   "Интерьерные",
	CategoryExterior:   "Экстерьерные",
	CategoryLandscape:  "Ландшафтные",
	CategoryDecorative: "Декоративные",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the storefront label for the category.
func (c Category) Label() string {
	return categoryLabels[c]
}

// GlowColor is a cosmetic accent tag used when rendering a product card.
type GlowColor string

const (
	GlowBlue  GlowColor = "blue"
	GlowWhite GlowColor = "white"
	GlowWarm  GlowColor = "warm"
	GlowRGB   GlowColor = "rgb"
)

var glowLabels = map[GlowColor]string{
	GlowBlue:  "Синий",
	GlowWhite: "Белый",
	GlowWarm:  "Тёплый",
	GlowRGB:   "RGB",
}

// Valid reports whether g is one of the known glow colors.
func (g GlowColor) Valid() bool {
	_, ok := glowLabels[g]
	return ok
}

// Label returns the storefront label for the glow color.
func (g GlowColor) Label() string {
	return glowLabels[g]
}

// Product is a catalog entry. ID and timestamps are assigned by the database.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	GlowColor   GlowColor `json:"glow_color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product field limits shared by every path that creates products.
const (
	MaxProductNameLen = 200
	MaxPrice          = 1_000_000_000_000
)

// ErrInvalidPrice is returned when a draft's price is not a whole number.
var ErrInvalidPrice = errors.New("price must be a whole number")

// ProductDraft is the writable subset of a product sent by the admin panel.
type ProductDraft struct {
	Name        string    `json:"name"`
	Category    Category  `json:"category"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	GlowColor   GlowColor `json:"glow_color"`
	Description string    `json:"description"`
}

// UnmarshalJSON accepts the price either as a JSON integer or as a numeric
// string, which is what the admin form's number input produces.
func (d *ProductDraft) UnmarshalJSON(data []byte) error {
	type plain ProductDraft
	var aux struct {
		plain
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = ProductDraft(aux.plain)

	raw := bytes.TrimSpace(aux.Price)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		d.Price = 0
		return nil
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return ErrInvalidPrice
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		d.Price = 0
		return nil
	}

	price, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return ErrInvalidPrice
	}
	d.Price = price
	return nil
}

// Normalize trims text fields and applies the default glow color.
func (d *ProductDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = Category(strings.ToLower(strings.TrimSpace(string(d.Category))))
	d.GlowColor = GlowColor(strings.ToLower(strings.TrimSpace(string(d.GlowColor))))
	if d.GlowColor == "" {
		d.GlowColor = GlowBlue
	}
}

// Draft returns the writable fields of p.
func (p *Product) Draft() ProductDraft {
	return ProductDraft{
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		GlowColor:   p.GlowColor,
		Description: p.Description,
	}
}
