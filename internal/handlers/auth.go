// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"lightshop/internal/middleware"
	"lightshop/internal/session"
)

// Gate checks the panel credentials.
type Gate interface {
	CheckPassword(password string) bool
	TOTPEnabled() bool
	CheckCode(code string) bool
	QRCode() ([]byte, error)
}

// Sessions creates and destroys panel sessions.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Auth handles unlocking and locking the admin panel.
type Auth struct {
	gate     Gate
	sessions Sessions
	secure   bool
}

// NewAuth creates the auth handlers. secure marks issued cookies Secure.
func NewAuth(gate Gate, sessions Sessions, secure bool) *Auth {
	return &Auth{gate: gate, sessions: sessions, secure: secure}
}

// Status tells the panel whether it is unlocked and hands it the CSRF
// token for its next mutating request.
func (h *Auth) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"unlocked":   middleware.SessionFromCtx(r.Context()) != nil,
		"totp":       h.gate.TOTPEnabled(),
		"csrf_token": middleware.CSRFTokenFromCtx(r.Context()),
	})
}

// Unlock checks the password (and the TOTP code when 2FA is on) and starts
// a panel session.
func (h *Auth) Unlock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
		Code     string `json:"code"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ok := h.gate.CheckPassword(body.Password)
	if ok && h.gate.TOTPEnabled() {
		ok = h.gate.CheckCode(strings.TrimSpace(body.Code))
	}
	if !ok {
		slog.Warn("admin unlock failed", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Неверный пароль")
		return
	}

	data := &session.Data{
		RemoteAddr:   r.RemoteAddr,
		TOTPVerified: h.gate.TOTPEnabled(),
	}
	if _, err := h.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not start session")
		return
	}

	// A fresh CSRF token for the new session.
	token, err := middleware.IssueCSRFToken(w, h.secure)
	if err != nil {
		slog.Error("csrf token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not start session")
		return
	}

	slog.Info("admin panel unlocked", "audit_id", data.AuditID, "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "csrf_token": token})
}

// Lock ends the panel session.
func (h *Auth) Lock(w http.ResponseWriter, r *http.Request) {
	if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
		slog.Info("admin panel locked", "audit_id", sess.AuditID)
	}
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// TOTPQRCode serves the provisioning QR code for the configured secret.
func (h *Auth) TOTPQRCode(w http.ResponseWriter, r *http.Request) {
	if !h.gate.TOTPEnabled() {
		writeError(w, http.StatusNotFound, "Two-factor authentication is not configured")
		return
	}
	png, err := h.gate.QRCode()
	if err != nil {
		slog.Error("totp qr code failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
