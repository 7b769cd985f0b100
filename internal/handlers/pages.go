// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lightshop/internal/models"
	"lightshop/internal/slider"
)

// heroFolder is the media folder whose images feed the hero slider.
const heroFolder = "home"

// Rotator is the hero slider state machine.
type Rotator interface {
	State() slider.State
	SetSlides(slides []slider.Slide)
	Next() bool
	Prev() bool
	GoTo(i int) bool
	Pause()
	Resume()
}

// ProductFinder looks a single product up by id.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// OrderNotifier forwards accepted orders, e.g. to a Telegram chat.
type OrderNotifier interface {
	NotifyOrder(o *models.OrderRequest, p *models.Product, total int64) error
}

// Pages serves the data behind the presentational storefront sections.
type Pages struct {
	products ProductFinder
	rotator  Rotator
	folders  MediaLibrary  // optional source of hero images
	notifier OrderNotifier // optional
}

// NewPages creates the page handlers. folders and notifier may be nil.
func NewPages(products ProductFinder, rotator Rotator, folders MediaLibrary, notifier OrderNotifier) *Pages {
	return &Pages{products: products, rotator: rotator, folders: folders, notifier: notifier}
}

// Hero returns the slides, the autoplay interval and the current index.
// Images uploaded to the home folder replace the stock slide pictures.
func (h *Pages) Hero(w http.ResponseWriter, r *http.Request) {
	h.refreshSlides(r.Context())
	writeJSON(w, http.StatusOK, h.rotator.State())
}

// HeroControl applies a navigation action: next, prev, pause, resume, or
// goto with ?index=N. moved is false when a transition was still running.
func (h *Pages) HeroControl(w http.ResponseWriter, r *http.Request) {
	moved := true
	switch chi.URLParam(r, "action") {
	case "next":
		moved = h.rotator.Next()
	case "prev":
		moved = h.rotator.Prev()
	case "goto":
		i, err := strconv.Atoi(r.URL.Query().Get("index"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Slide index required")
			return
		}
		if n := len(h.rotator.State().Slides); i < 0 || i >= n {
			writeError(w, http.StatusBadRequest, "Slide index out of range")
			return
		}
		moved = h.rotator.GoTo(i)
	case "pause":
		h.rotator.Pause()
	case "resume":
		h.rotator.Resume()
	default:
		writeError(w, http.StatusNotFound, "Unknown action")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moved": moved, "state": h.rotator.State()})
}

func (h *Pages) refreshSlides(ctx context.Context) {
	if h.folders == nil {
		return
	}
	folder, err := h.folders.Folder(ctx, heroFolder)
	if err != nil {
		slog.Warn("hero images unavailable", "error", err)
		return
	}
	if len(folder.Images) == 0 {
		h.rotator.SetSlides(slider.DefaultSlides())
		return
	}
	urls := make([]string, 0, len(folder.Images))
	for _, img := range folder.Images {
		urls = append(urls, img.URL)
	}
	h.rotator.SetSlides(slider.FromImages(urls))
}

// Order validates a quote request and returns its total.
func (h *Pages) Order(w http.ResponseWriter, r *http.Request) {
	var o models.OrderRequest
	if err := decodeJSON(w, r, &o); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	o.Normalize()
	if msg := validateOrder(&o); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := h.products.FindByID(r.Context(), o.ProductID)
	if err != nil {
		slog.Error("find product failed", "id", o.ProductID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if p == nil {
		writeError(w, http.StatusBadRequest, "Товар не найден")
		return
	}

	total, err := models.OrderTotal(p.Price, o.Quantity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Слишком большая сумма заказа")
		return
	}
	slog.Info("order received", "product_id", p.ID, "quantity", o.Quantity, "total", total)

	if h.notifier != nil {
		if err := h.notifier.NotifyOrder(&o, p, total); err != nil {
			slog.Warn("order notification failed", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "total": total})
}

// deliveryStep is one block of the delivery section.
type deliveryStep struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var deliverySteps = []deliveryStep{
	{Icon: "Package", Title: "Оформление заказа", Description: "Оставьте заявку онлайн или по телефону"},
	{Icon: "CreditCard", Title: "Оплата", Description: "Наличными, картой или безналичный расчет"},
	{Icon: "Truck", Title: "Доставка", Description: "По Екатеринбургу и всей России"},
	{Icon: "CheckCircle", Title: "Получение", Description: "Проверка товара при получении"},
}

// Delivery returns the static delivery information blocks.
func (h *Pages) Delivery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"steps": deliverySteps})
}
