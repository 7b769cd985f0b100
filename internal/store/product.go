// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL persistence layer. Each store
// wraps a *sql.DB and maps rows to the types in package models.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"lightshop/internal/models"
)

// ProductStore handles all product-related database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

// productColumns lists the columns selected in product queries.
const productColumns = `id, name, category, price, image_url, glow_color,
	description, created_at, updated_at`

// scanProduct scans a product row from the result set.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.ImageURL, &p.GlowColor,
		&p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns products newest first. An empty category returns the whole
// catalog.
func (s *ProductStore) List(ctx context.Context, category models.Category) ([]models.Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			ORDER BY created_at DESC, id DESC`)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+productColumns+`
			FROM products
			WHERE category = $1
			ORDER BY created_at DESC, id DESC`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// FindByID retrieves a single product. Returns nil, nil when no row matches.
func (s *ProductStore) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// Create inserts a product and returns it with the generated ID and
// timestamps.
func (s *ProductStore) Create(ctx context.Context, d models.ProductDraft) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO products (name, category, price, image_url, glow_color, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+productColumns,
		d.Name, d.Category, d.Price, d.ImageURL, d.GlowColor, d.Description,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update overwrites every writable field of one product. It reports false
// when the product does not exist.
func (s *ProductStore) Update(ctx context.Context, id int64, d models.ProductDraft) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, category = $2, price = $3, image_url = $4,
			glow_color = $5, description = $6, updated_at = NOW()
		WHERE id = $7`,
		d.Name, d.Category, d.Price, d.ImageURL, d.GlowColor, d.Description, id,
	)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update product rows: %w", err)
	}
	return n > 0, nil
}

// Delete removes one product. It reports false when the product does not
// exist, so a repeated delete is distinguishable from the first one.
func (s *ProductStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product rows: %w", err)
	}
	return n > 0, nil
}
