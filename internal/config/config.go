// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config loads the storefront server settings from environment
// variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAdminPassword is the development-only admin panel password.
const DefaultAdminPassword = "admin123"

// devDBPassword matches the docker-compose development database.
const devDBPassword = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// S3-compatible object storage for the media library
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	// Admin gate
	AdminToken      string // X-Admin-Token shared secret for API clients
	AdminPassword   string // panel unlock password, hashed at startup
	AdminTOTPSecret string // optional base32 TOTP secret

	// Telegram publishing bot
	TelegramBotToken      string
	TelegramAllowedPhone  string
	TelegramOrderChatID   int64
	TelegramWebhookSecret string // checked against X-Telegram-Bot-Api-Secret-Token

	// CORS allowed origin for the storefront
	CORSOrigin string

	// Reverse proxies whose X-Forwarded-For is believed. Empty means the
	// connection address is the client address.
	TrustedProxies []netip.Prefix
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set win over it.
// In production every development default secret is refused and all
// offending variables are reported together.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "lightshop"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", devDBPassword),
		DBName:     envOrDefault("POSTGRES_DB", "lightshop"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "ru-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "lightshop-media"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		AdminToken:      os.Getenv("ADMIN_TOKEN"),
		AdminPassword:   envOrDefault("ADMIN_PASSWORD", DefaultAdminPassword),
		AdminTOTPSecret: os.Getenv("ADMIN_TOTP_SECRET"),

		TelegramBotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAllowedPhone:  os.Getenv("TELEGRAM_ALLOWED_PHONE"),
		TelegramWebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),

		CORSOrigin: envOrDefault("CORS_ORIGIN", "*"),
	}

	if v := os.Getenv("TELEGRAM_ORDER_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ORDER_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramOrderChatID = id
	}

	proxies, err := parseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return nil, err
	}
	cfg.TrustedProxies = proxies

	if cfg.Env == "production" {
		if err := cfg.checkProduction(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// parseTrustedProxies reads a comma-separated list of IPs and CIDR ranges.
func parseTrustedProxies(v string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.Contains(item, "/") {
			p, err := netip.ParsePrefix(item)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(item)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func (c *Config) checkProduction() error {
	var errs []error
	if c.DBPassword == devDBPassword {
		errs = append(errs, errors.New("POSTGRES_PASSWORD must be set in production"))
	}
	if c.AdminToken == "" {
		errs = append(errs, errors.New("ADMIN_TOKEN must be set in production"))
	}
	if c.AdminPassword == DefaultAdminPassword {
		errs = append(errs, errors.New("ADMIN_PASSWORD must be set in production"))
	}
	if c.HasTelegram() && c.TelegramWebhookSecret == "" {
		errs = append(errs, errors.New("TELEGRAM_WEBHOOK_SECRET must be set when the bot is enabled in production"))
	}
	return errors.Join(errs...)
}

// DSN returns the PostgreSQL URL. Credentials are escaped, so passwords
// may contain any character.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev reports whether APP_ENV is "development".
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HasS3 reports whether object storage is configured.
func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

// HasTelegram reports whether the publishing bot is configured.
func (c *Config) HasTelegram() bool {
	return c.TelegramBotToken != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
