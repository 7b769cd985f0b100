// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth implements the admin gate: the panel unlock password, the
// optional TOTP second factor and the shared API token used by scripted
// clients.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

// Issuer is the name shown in authenticator apps.
const Issuer = "Lightshop"

// account is the TOTP account label; there is only one admin.
const account = "admin"

// ErrTOTPDisabled is returned by QRCode when no TOTP secret is configured.
var ErrTOTPDisabled = errors.New("totp is not configured")

// Gate checks admin credentials. It is safe for concurrent use.
type Gate struct {
	passwordHash []byte
	token        string
	totpSecret   string
}

// NewGate hashes the panel password with bcrypt so the plaintext is not
// kept in memory. An empty token disables header authentication and an
// empty secret disables the second factor.
func NewGate(password, token, totpSecret string) (*Gate, error) {
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Gate{
		passwordHash: hash,
		token:        token,
		totpSecret:   strings.ToUpper(strings.ReplaceAll(totpSecret, " ", "")),
	}, nil
}

// CheckPassword reports whether password unlocks the panel.
func (g *Gate) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(g.passwordHash, []byte(password)) == nil
}

// TOTPEnabled reports whether a second factor is required.
func (g *Gate) TOTPEnabled() bool {
	return g.totpSecret != ""
}

// CheckCode validates a TOTP code. It always succeeds when no secret is
// configured.
func (g *Gate) CheckCode(code string) bool {
	if !g.TOTPEnabled() {
		return true
	}
	return totp.Validate(strings.TrimSpace(code), g.totpSecret)
}

// CheckToken compares an X-Admin-Token value in constant time. It always
// fails when no token is configured.
func (g *Gate) CheckToken(token string) bool {
	if g.token == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) == 1
}

// Key returns the otpauth key for the configured secret.
func (g *Gate) Key() (*otp.Key, error) {
	if !g.TOTPEnabled() {
		return nil, ErrTOTPDisabled
	}
	v := url.Values{}
	v.Set("secret", g.totpSecret)
	v.Set("issuer", Issuer)
	u := url.URL{
		Scheme:   "otpauth",
		Host:     "totp",
		Path:     "/" + Issuer + ":" + account,
		RawQuery: v.Encode(),
	}
	key, err := otp.NewKeyFromURL(u.String())
	if err != nil {
		return nil, fmt.Errorf("build totp key: %w", err)
	}
	return key, nil
}

// QRCode renders the provisioning URL of the configured secret as a PNG.
func (g *Gate) QRCode() ([]byte, error) {
	key, err := g.Key()
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}

// GenerateSecret creates a fresh TOTP secret for ADMIN_TOTP_SECRET and
// returns it with its provisioning URL.
func GenerateSecret() (secret, provisioningURL string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      Issuer,
		AccountName: account,
	})
	if err != nil {
		return "", "", fmt.Errorf("totp generate: %w", err)
	}
	return key.Secret(), key.URL(), nil
}
