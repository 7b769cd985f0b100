// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package session keeps admin panel unlocks in Valkey. Unlocking the panel
// issues a random cookie; Valkey stores the session payload under a hash
// of that cookie, so the stored keys cannot be replayed as cookies.
// Sessions slide: every authenticated request pushes the expiry forward.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the panel session cookie.
	CookieName = "ls_admin"

	// CookiePath scopes the cookie to the admin API.
	CookiePath = "/api/admin"

	// DefaultTTL is how long an idle panel stays unlocked.
	DefaultTTL = 12 * time.Hour

	keyPrefix = "admin-session:"
	idBytes   = 32
)

// Data is the payload kept for an unlocked panel.
type Data struct {
	// AuditID names the session in logs without exposing the cookie.
	AuditID      uuid.UUID `json:"audit_id"`
	RemoteAddr   string    `json:"remote_addr"`
	TOTPVerified bool      `json:"totp_verified"`
	UnlockedAt   time.Time `json:"unlocked_at"`
}

// Store creates, loads and destroys panel sessions.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	secure bool
}

// NewStore returns a store on client. secure marks the cookie Secure and
// should be set whenever the panel is served over TLS.
func NewStore(client *redis.Client, secure bool) *Store {
	return &Store{client: client, ttl: DefaultTTL, secure: secure}
}

// Create saves data under a fresh session ID and sets the cookie. It
// returns the audit ID rendered as a string.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	raw := make([]byte, idBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	id := base64.RawURLEncoding.EncodeToString(raw)

	if data.AuditID == uuid.Nil {
		data.AuditID = uuid.New()
	}
	if data.UnlockedAt.IsZero() {
		data.UnlockedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, storageKey(id), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	s.setCookie(w, id, int(s.ttl.Seconds()))
	return data.AuditID.String(), nil
}

// Get loads the session named by the request cookie and extends its
// expiry. A missing cookie or an expired session yields (nil, nil).
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	payload, err := s.client.GetEx(ctx, storageKey(cookie.Value), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &data, nil
}

// Destroy deletes the session and expires the cookie. Without a cookie it
// only clears the browser side.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	defer s.setCookie(w, "", -1)

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	if err := s.client.Del(ctx, storageKey(cookie.Value)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Store) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     CookiePath,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

func storageKey(id string) string {
	sum := sha256.Sum256([]byte(id))
	return keyPrefix + hex.EncodeToString(sum[:])
}
