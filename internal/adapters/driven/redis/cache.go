package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.ContentCache = (*ContentCache)(nil)

const (
	// Key prefixes for Redis
	resolvedPrefix = "claro:resolved:"
	generationKey  = "claro:resolved:generation"
)

// ContentCache implements driven.ContentCache using Redis.
// Entries expire on their own TTL, and the whole cache is invalidated
// in O(1) by bumping a generation counter that is part of every key,
// so a registry rebuild never has to scan or delete entries.
type ContentCache struct {
	client *redis.Client
}

// NewContentCache creates a new Redis-backed ContentCache.
func NewContentCache(client *redis.Client) *ContentCache {
	return &ContentCache{client: client}
}

// GetResolved retrieves a cached resolution for (id, level, locale).
// Returns domain.ErrNotFound on a miss.
func (c *ContentCache) GetResolved(ctx context.Context, id string, level int, locale domain.Locale) (*domain.ResolvedContent, error) {
	key, err := c.entryKey(ctx, id, level, locale)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached content: %w", err)
	}

	var rc domain.ResolvedContent
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached content: %w", err)
	}
	return &rc, nil
}

// SetResolved stores a resolution under the current generation with TTL.
func (c *ContentCache) SetResolved(ctx context.Context, rc *domain.ResolvedContent, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key, err := c.entryKey(ctx, rc.ID, rc.Level, rc.Locale)
	if err != nil {
		return err
	}

	data, err := json.Marshal(rc)
	if err != nil {
		return fmt.Errorf("failed to marshal resolved content: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resolved content: %w", err)
	}
	return nil
}

// Invalidate drops every cached resolution by bumping the generation.
// Entries written under the old generation become unreachable and age
// out through their TTLs.
func (c *ContentCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity.
func (c *ContentCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// entryKey builds the generation-scoped key for one resolution.
func (c *ContentCache) entryKey(ctx context.Context, id string, level int, locale domain.Locale) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("failed to read cache generation: %w", err)
	}
	return fmt.Sprintf("%s%d:%s:%d:%s", resolvedPrefix, gen, id, level, locale), nil
}
