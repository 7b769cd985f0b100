// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"lightshop/internal/session"
)

// AdminTokenHeader carries the shared API token for scripted admin clients.
const AdminTokenHeader = "X-Admin-Token"

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// SessionKey is the context key for the session data.
	SessionKey contextKey = "session"

	// authMethodKey is the context key for how the request was authorized.
	authMethodKey contextKey = "auth_method"
)

// AuthMethod records how an admin request was authorized.
type AuthMethod string

const (
	AuthNone    AuthMethod = ""
	AuthToken   AuthMethod = "token"
	AuthSession AuthMethod = "session"
)

// SessionGetter loads the admin session attached to a request.
type SessionGetter interface {
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
}

// TokenChecker validates the X-Admin-Token header.
type TokenChecker interface {
	CheckToken(token string) bool
}

// LoadSession retrieves the session from Valkey and stores it in the
// request context. Downstream handlers can access it via SessionFromCtx().
// This middleware does NOT enforce authentication, it just loads the
// session if one exists.
func LoadSession(store SessionGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r.Context(), r)
			if err != nil {
				slog.Warn("session load failed", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if data != nil {
				ctx := context.WithValue(r.Context(), SessionKey, data)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests that carry neither a valid admin token nor
// an unlocked panel session. Must be applied after LoadSession.
func RequireAdmin(gate TokenChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := AuthNone
			switch {
			case gate.CheckToken(r.Header.Get(AdminTokenHeader)):
				method = AuthToken
			case SessionFromCtx(r.Context()) != nil:
				method = AuthSession
			}

			if method == AuthNone {
				writeJSON(w, http.StatusUnauthorized, map[string]string{
					"error":   "Unauthorized",
					"message": "Invalid or missing admin token",
				})
				return
			}

			ctx := context.WithValue(r.Context(), authMethodKey, method)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromCtx extracts the session data from the request context.
// Returns nil if no session is loaded (panel is locked).
func SessionFromCtx(ctx context.Context) *session.Data {
	data, _ := ctx.Value(SessionKey).(*session.Data)
	return data
}

// AuthMethodFromCtx returns how the current request was authorized.
func AuthMethodFromCtx(ctx context.Context) AuthMethod {
	m, _ := ctx.Value(authMethodKey).(AuthMethod)
	return m
}
