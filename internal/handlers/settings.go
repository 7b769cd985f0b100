// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"lightshop/internal/cache"
	"lightshop/internal/models"
	"lightshop/internal/themes"
)

// SettingsStore persists the site settings singleton.
type SettingsStore interface {
	Load(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, s *models.SiteSettings) error
	Reset(ctx context.Context) error
}

// Settings groups the settings panel handlers and the public resources
// derived from the settings.
type Settings struct {
	store SettingsStore
	cache ResponseCache
}

// NewSettings creates the settings handlers. cache may be nil.
func NewSettings(store SettingsStore, cache ResponseCache) *Settings {
	return &Settings{store: store, cache: cache}
}

// Get returns the stored settings merged over the defaults.
func (h *Settings) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "settings": s})
}

// Save overwrites the whole settings record. Fields missing from the body
// take their default value.
func (h *Settings) Save(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Settings json.RawMessage `json:"settings"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	raw := bytes.TrimSpace(body.Settings)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) || bytes.Equal(raw, []byte("{}")) {
		writeError(w, http.StatusBadRequest, "Settings object required")
		return
	}

	s := models.DefaultSiteSettings()
	if err := json.Unmarshal(raw, s); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid settings object")
		return
	}
	if msg := validateSettings(s); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.Save(r.Context(), s); err != nil {
		slog.Error("save settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.invalidate(r.Context())

	slog.Info("settings saved")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Settings saved"})
}

// Reset deletes every stored setting so the defaults apply again.
func (h *Settings) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		slog.Error("reset settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.invalidate(r.Context())

	slog.Info("settings reset")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Settings reset"})
}

// ThemeCSS serves the :root custom properties generated from the settings.
func (h *Settings) ThemeCSS(w http.ResponseWriter, r *http.Request) {
	body, ok := h.cached(r.Context(), cache.ThemeKey())
	if !ok {
		s, err := h.store.Load(r.Context())
		if err != nil {
			slog.Error("load settings failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		body = []byte(themes.GenerateCSS(s))
		h.remember(r.Context(), cache.ThemeKey(), body)
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Site returns the settings record for the storefront pages.
func (h *Settings) Site(w http.ResponseWriter, r *http.Request) {
	if body, ok := h.cached(r.Context(), cache.SiteKey()); ok {
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	s, err := h.store.Load(r.Context())
	if err != nil {
		slog.Error("load settings failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	body, err := json.Marshal(s)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	body = append(body, '\n')
	h.remember(r.Context(), cache.SiteKey(), body)
	writeRawJSON(w, http.StatusOK, body)
}

func (h *Settings) cached(ctx context.Context, key string) ([]byte, bool) {
	if h.cache == nil {
		return nil, false
	}
	return h.cache.Get(ctx, key)
}

func (h *Settings) remember(ctx context.Context, key string, body []byte) {
	if h.cache != nil {
		h.cache.Set(ctx, key, body)
	}
}

func (h *Settings) invalidate(ctx context.Context) {
	if h.cache != nil {
		h.cache.InvalidateSettings(ctx)
	}
}
