// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the admin-side catalog tooling: a client for the
// product API and the spreadsheet import/export format.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"lightshop/internal/models"
)

// AdminTokenHeader carries the admin API token.
const AdminTokenHeader = "X-Admin-Token"

// APIError is a non-2xx response from the product API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Manager drives the product API the way the admin panel does: every
// successful mutation is followed by a full reload of the list.
type Manager struct {
	baseURL string
	token   string
	client  *http.Client
	confirm func(p *models.Product) bool

	mu       sync.Mutex
	products []*models.Product
}

// Option configures a Manager.
type Option func(*Manager)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.client = c }
}

// WithConfirm installs the prompt asked before each delete. Declining
// makes Delete a no-op.
func WithConfirm(fn func(p *models.Product) bool) Option {
	return func(m *Manager) { m.confirm = fn }
}

// NewManager creates a Manager for the API rooted at baseURL
// (e.g. "https://shop.example.com").
func NewManager(baseURL, token string, opts ...Option) *Manager {
	m := &Manager{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Products returns the list from the last successful Load.
func (m *Manager) Products() []*models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Product(nil), m.products...)
}

// Load fetches the full catalog and replaces the cached list.
func (m *Manager) Load(ctx context.Context) ([]*models.Product, error) {
	var resp struct {
		Products []*models.Product `json:"products"`
	}
	if err := m.do(ctx, http.MethodGet, "/api/products", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Products == nil {
		resp.Products = []*models.Product{}
	}

	m.mu.Lock()
	m.products = resp.Products
	m.mu.Unlock()
	return resp.Products, nil
}

// Create posts a new product and returns its server-assigned id.
func (m *Manager) Create(ctx context.Context, draft models.ProductDraft) (int64, error) {
	var resp struct {
		ProductID int64 `json:"product_id"`
	}
	if err := m.do(ctx, http.MethodPost, "/api/admin/products", draft, &resp); err != nil {
		return 0, err
	}
	if _, err := m.Load(ctx); err != nil {
		return resp.ProductID, err
	}
	return resp.ProductID, nil
}

// Update replaces the writable fields of product id.
func (m *Manager) Update(ctx context.Context, id int64, draft models.ProductDraft) error {
	if err := m.do(ctx, http.MethodPut, "/api/admin/products/"+strconv.FormatInt(id, 10), draft, nil); err != nil {
		return err
	}
	_, err := m.Load(ctx)
	return err
}

// Delete removes product id after confirmation. It returns false without
// calling the API when the confirmation is declined.
func (m *Manager) Delete(ctx context.Context, id int64) (bool, error) {
	if m.confirm != nil && !m.confirm(m.find(id)) {
		return false, nil
	}
	if err := m.do(ctx, http.MethodDelete, "/api/admin/products/"+strconv.FormatInt(id, 10), nil, nil); err != nil {
		return false, err
	}
	_, err := m.Load(ctx)
	return true, err
}

func (m *Manager) find(id int64) *models.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p
		}
	}
	return &models.Product{ID: id}
}

func (m *Manager) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("catalog marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set(AdminTokenHeader, m.token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("catalog read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(respBody)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("catalog unmarshal: %w", err)
	}
	return nil
}

// errorMessage picks the server's error text, falling back to a generic
// message when the body carries none.
func errorMessage(body []byte) string {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return "API request failed"
}
