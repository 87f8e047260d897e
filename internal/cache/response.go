// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public JSON responses.
// Published project and archive payloads are stored under their slug so
// repeat public reads skip the database entirely. Any admin write to a
// content kind invalidates that kind's keys.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultResponseTTL is how long a cached public response stays valid.
const DefaultResponseTTL = 5 * time.Minute

// ResponseCache manages public JSON response caching in Valkey.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, key).Bytes()
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

// Set stores a response body under the given key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := rc.client.Set(ctx, key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidateKind removes every cached response for a content kind by
// scanning for its prefix. Called after any admin create/update/delete/
// reorder, since listings and detail pages could both be affected.
func (rc *ResponseCache) InvalidateKind(ctx context.Context, kind string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, "resp:"+kind+":*", 100).Result()
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
		slog.Debug("response cache invalidated", "kind", kind, "deleted", deleted)
	}
}

// ProjectKey returns the cache key for a published project slug.
func ProjectKey(slug string) string {
	return "resp:projects:" + slug
}

// ArchiveKey returns the cache key for a published archive slug.
func ArchiveKey(slug string) string {
	return "resp:archives:" + slug
}

// PostKey returns the cache key for a published post slug.
func PostKey(slug string) string {
	return "resp:posts:" + slug
}
