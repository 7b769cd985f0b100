// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"lightshop/internal/cache"
	"lightshop/internal/catalog"
	"lightshop/internal/markdown"
	"lightshop/internal/models"
)

// maxImportSize caps an uploaded catalog spreadsheet.
const maxImportSize = 10 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductStore is the persistence the product handlers need.
type ProductStore interface {
	List(ctx context.Context, category models.Category) ([]models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, d models.ProductDraft) (*models.Product, error)
	Update(ctx context.Context, id int64, d models.ProductDraft) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Products groups the public catalog and the admin product CRUD handlers.
type Products struct {
	store ProductStore
	cache ResponseCache
}

// NewProducts creates the product handlers. cache may be nil.
func NewProducts(store ProductStore, cache ResponseCache) *Products {
	return &Products{store: store, cache: cache}
}

// productView is a product as served to the storefront, with the
// description rendered from Markdown.
type productView struct {
	models.Product
	DescriptionHTML string `json:"description_html"`
}

func newProductView(p models.Product) productView {
	html, err := markdown.ToHTML(p.Description)
	if err != nil {
		slog.Warn("render description failed", "id", p.ID, "error", err)
	}
	return productView{Product: p, DescriptionHTML: html}
}

// List returns the catalog, newest first, optionally filtered by
// ?category=. The legacy ?id= form returns a single product.
func (h *Products) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		h.Get(w, r)
		return
	}

	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	var category models.Category
	if raw != "" && raw != "all" {
		category = models.Category(raw)
		if !category.Valid() {
			writeError(w, http.StatusBadRequest, "Unknown category")
			return
		}
	}

	key := cache.ProductsKey(string(category))
	if h.cache != nil {
		if body, ok := h.cache.Get(r.Context(), key); ok {
			writeRawJSON(w, http.StatusOK, body)
			return
		}
	}

	products, err := h.store.List(r.Context(), category)
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	body, err := json.Marshal(map[string]any{"products": views, "count": len(views)})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	body = append(body, '\n')

	if h.cache != nil {
		h.cache.Set(r.Context(), key, body)
	}
	writeRawJSON(w, http.StatusOK, body)
}

// Get returns one product.
func (h *Products) Get(w http.ResponseWriter, r *http.Request) {
	id, msg := productID(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		slog.Error("find product failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, newProductView(*p))
}

// Create adds a product from a JSON draft.
func (h *Products) Create(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.readDraft(w, r)
	if !ok {
		return
	}

	p, err := h.store.Create(r.Context(), draft)
	if err != nil {
		slog.Error("create product failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.invalidate(r.Context())

	slog.Info("product created", "id", p.ID, "name", p.Name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":    true,
		"product_id": p.ID,
		"message":    "Product created",
	})
}

// Update replaces every writable field of one product.
func (h *Products) Update(w http.ResponseWriter, r *http.Request) {
	id, msg := productID(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	draft, ok := h.readDraft(w, r)
	if !ok {
		return
	}

	found, err := h.store.Update(r.Context(), id, draft)
	if err != nil {
		slog.Error("update product failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	h.invalidate(r.Context())

	slog.Info("product updated", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product updated"})
}

// Delete removes one product.
func (h *Products) Delete(w http.ResponseWriter, r *http.Request) {
	id, msg := productID(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	found, err := h.store.Delete(r.Context(), id)
	if err != nil {
		slog.Error("delete product failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	h.invalidate(r.Context())

	slog.Info("product deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Product deleted"})
}

// Export streams the whole catalog as an .xlsx workbook.
func (h *Products) Export(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.List(r.Context(), "")
	if err != nil {
		slog.Error("list products failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rows := make([]*models.Product, len(products))
	for i := range products {
		rows[i] = &products[i]
	}

	var buf bytes.Buffer
	if err := catalog.WriteXLSX(&buf, rows); err != nil {
		slog.Error("export catalog failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// importError reports one spreadsheet row that was skipped.
type importError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Import creates one product per valid spreadsheet row. Bad rows are
// reported and skipped; the rest still go in.
func (h *Products) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Spreadsheet file required")
		return
	}
	defer file.Close()

	rows, err := catalog.ParseXLSX(file)
	if err != nil {
		if errors.Is(err, catalog.ErrNoHeader) {
			writeError(w, http.StatusBadRequest, "Spreadsheet has no header row")
			return
		}
		writeError(w, http.StatusBadRequest, "Could not read spreadsheet")
		return
	}

	created := 0
	rowErrors := []importError{}
	for _, row := range rows {
		if row.Err != nil {
			rowErrors = append(rowErrors, importError{Row: row.Row, Error: row.Err.Error()})
			continue
		}
		draft := row.Draft
		draft.Normalize()
		if msg := validateDraft(&draft); msg != "" {
			rowErrors = append(rowErrors, importError{Row: row.Row, Error: msg})
			continue
		}
		if _, err := h.store.Create(r.Context(), draft); err != nil {
			slog.Error("import product failed", "row", row.Row, "error", err)
			rowErrors = append(rowErrors, importError{Row: row.Row, Error: "could not save product"})
			continue
		}
		created++
	}
	if created > 0 {
		h.invalidate(r.Context())
	}

	slog.Info("catalog imported", "created", created, "skipped", len(rowErrors))
	writeJSON(w, http.StatusOK, map[string]any{"created": created, "errors": rowErrors})
}

// readDraft decodes, normalizes and validates a draft body. It writes the
// 400 response itself and returns false on failure.
func (h *Products) readDraft(w http.ResponseWriter, r *http.Request) (models.ProductDraft, bool) {
	var draft models.ProductDraft
	if err := decodeJSON(w, r, &draft); err != nil {
		if errors.Is(err, models.ErrInvalidPrice) {
			writeError(w, http.StatusBadRequest, "Price must be a whole number")
		} else {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
		}
		return draft, false
	}
	draft.Normalize()
	if msg := validateDraft(&draft); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return draft, false
	}
	return draft, true
}

func (h *Products) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.InvalidateProducts(ctx)
	}
}
