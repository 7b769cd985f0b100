// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

type seedProduct struct {
	name, category, imageURL, glow, description string
	price                                       int64
}

// demoProducts fill an empty catalog in development so the storefront has
// something to show.
var demoProducts = []seedProduct{
	{
		name:        "Светящийся шар 50 см",
		category:    "landscape",
		price:       8900,
		imageURL:    "/img/products/sphere-50.jpg",
		glow:        "white",
		description: "Уличный светильник-шар из полиэтилена, IP65.",
	},
	{
		name:        "Подвесной светильник Orbit",
		category:    "interior",
		price:       12500,
		imageURL:    "/img/products/orbit.jpg",
		glow:        "warm",
		description: "Кольцевой LED-светильник для гостиной и кафе.",
	},
	{
		name:        "Фасадный прожектор Line",
		category:    "exterior",
		price:       6400,
		imageURL:    "/img/products/line.jpg",
		glow:        "blue",
		description: "Линейная подсветка фасадов, 24 Вт.",
	},
	{
		name:        "Световая фигура Олень",
		category:    "decorative",
		price:       15900,
		imageURL:    "/img/products/deer.jpg",
		glow:        "rgb",
		description: "Декоративная фигура с RGB-подсветкой и пультом.",
	},
}

// Seed populates the database with initial development data.
// It inserts the demo catalog only when the products table is empty.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("seed check products: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range demoProducts {
		_, err := tx.Exec(`
			INSERT INTO products (name, category, price, image_url, glow_color, description)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.name, p.category, p.price, p.imageURL, p.glow, p.description)
		if err != nil {
			return fmt.Errorf("seed insert product %q: %w", p.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo products", "count", len(demoProducts))
	return nil
}
