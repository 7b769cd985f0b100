// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"

	"lightshop/internal/session"
)

const (
	// CSRFCookieName holds the double-submit token. Scripts can read it.
	CSRFCookieName = "ls_csrf"

	// CSRFHeaderName is where the admin panel echoes the token.
	CSRFHeaderName = "X-CSRF-Token"

	csrfTokenBytes = 32

	csrfTokenKey contextKey = "csrf_token"
)

// NewCSRF returns double-submit CSRF protection for the admin API. Every
// request gets a token cookie if it lacks one; writes must echo the cookie
// in the X-CSRF-Token header. Requests authorized by X-Admin-Token carry
// no ambient credentials and are not checked.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := GetCSRFToken(r)
			if token == "" {
				var err error
				if token, err = IssueCSRFToken(w, secure); err != nil {
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
					return
				}
			}
			r = r.WithContext(context.WithValue(r.Context(), csrfTokenKey, token))

			if !needsCSRFCheck(r) {
				next.ServeHTTP(w, r)
				return
			}

			echoed := r.Header.Get(CSRFHeaderName)
			if echoed == "" || subtle.ConstantTimeCompare([]byte(token), []byte(echoed)) != 1 {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "CSRF token mismatch"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func needsCSRFCheck(r *http.Request) bool {
	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return AuthMethodFromCtx(r.Context()) != AuthToken
}

// IssueCSRFToken sets a new token cookie next to the panel session cookie
// and returns the token.
func IssueCSRFToken(w http.ResponseWriter, secure bool) (string, error) {
	raw := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     session.CookiePath,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// GetCSRFToken returns the token cookie's value, or "".
func GetCSRFToken(r *http.Request) string {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CSRFTokenFromCtx returns the token NewCSRF attached to the request.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfTokenKey).(string)
	return token
}
