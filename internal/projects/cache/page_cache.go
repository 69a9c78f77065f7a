package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/domain"
)

const (
	pageKeyPrefix = "projects:page:" // projects:page:{sort}:{limit}:{page}
	pageIndexKey  = "projects:pages" // set of every cached page key
)

// PageCache stores serialized project pages in Redis.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a cache whose entries expire after ttl.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{client: client, ttl: ttl}
}

// Get returns a cached page. The boolean is false on a miss.
func (c *PageCache) Get(ctx context.Context, sort string, page, limit int) ([]domain.Project, bool, error) {
	data, err := c.client.Get(ctx, c.pageKey(sort, page, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get page: %w", err)
	}

	var out []domain.Project
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	return out, true, nil
}

// Set caches a page.
func (c *PageCache) Set(ctx context.Context, sort string, page, limit int, projects []domain.Project) error {
	if projects == nil {
		projects = []domain.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	key := c.pageKey(sort, page, limit)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, pageIndexKey, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// Invalidate drops every cached page. Any write can move projects between
// pages, so pages are never invalidated one by one.
func (c *PageCache) Invalidate(ctx context.Context) (int, error) {
	keys, err := c.client.SMembers(ctx, pageIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list cached pages: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.Del(ctx, pageIndexKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to invalidate pages: %w", err)
	}
	return len(keys), nil
}

// Purge removes index entries whose page has already expired and returns how many were dropped.
func (c *PageCache) Purge(ctx context.Context) (int, error) {
	keys, err := c.client.SMembers(ctx, pageIndexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list cached pages: %w", err)
	}

	var stale []any
	for _, key := range keys {
		n, err := c.client.Exists(ctx, key).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to check page %s: %w", key, err)
		}
		if n == 0 {
			stale = append(stale, key)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := c.client.SRem(ctx, pageIndexKey, stale...).Err(); err != nil {
		return 0, fmt.Errorf("failed to purge page index: %w", err)
	}
	return len(stale), nil
}

// Ping checks the Redis connection.
func (c *PageCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *PageCache) pageKey(sort string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", pageKeyPrefix, sort, limit, page)
}
