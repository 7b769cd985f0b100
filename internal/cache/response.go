// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go caches serialized public responses (product lists, theme CSS,
// site settings) in Valkey so repeat requests skip the database.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// respKeyPrefix is the Valkey key prefix for cached responses.
	respKeyPrefix = "resp:"

	// productsKeyPrefix groups every cached product list and product.
	productsKeyPrefix = "products:"

	// DefaultResponseTTL is how long a cached response stays valid.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages response body caching in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a new response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached body. The bool is false on miss or error.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, respKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a body under key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, respKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if err := rc.client.Del(ctx, respKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidateProducts drops every cached product list and product.
func (rc *ResponseCache) InvalidateProducts(ctx context.Context) {
	rc.invalidatePrefix(ctx, productsKeyPrefix)
}

// InvalidateSettings drops every response derived from the site settings.
func (rc *ResponseCache) InvalidateSettings(ctx context.Context) {
	rc.Invalidate(ctx, ThemeKey())
	rc.Invalidate(ctx, SiteKey())
}

// InvalidateAll removes all cached responses by scanning for the prefix.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) {
	rc.invalidatePrefix(ctx, "")
}

func (rc *ResponseCache) invalidatePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, respKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "prefix", prefix, "deleted", deleted)
	}
}

// ProductsKey returns the cache key for a product list. An empty category
// means the whole catalog.
func ProductsKey(category string) string {
	if category == "" {
		category = "all"
	}
	return productsKeyPrefix + "list:" + category
}

// ThemeKey returns the cache key for the generated theme stylesheet.
func ThemeKey() string {
	return "theme.css"
}

// SiteKey returns the cache key for the public site settings.
func SiteKey() string {
	return "site"
}
