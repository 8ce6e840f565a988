package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageCache = (*PageCache)(nil)

const pagePrefix = "page:"

// PageCache implements driven.PageCache using Redis. Extracted page
// content is cached per (document, page) with a TTL.
type PageCache struct {
	client *redis.Client
}

// NewPageCache creates a new Redis-backed PageCache
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

func pageKey(documentID string, pageNumber int) string {
	return pagePrefix + documentID + ":" + strconv.Itoa(pageNumber)
}

// GetPage retrieves a cached page
func (c *PageCache) GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	data, err := c.client.Get(ctx, pageKey(documentID, pageNumber)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	var page domain.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	return &page, nil
}

// SetPage caches a page with the given TTL
func (c *PageCache) SetPage(ctx context.Context, page *domain.Page, ttl time.Duration) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}

	if err := c.client.Set(ctx, pageKey(page.DocumentID, page.PageNumber), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache page: %w", err)
	}
	return nil
}

// Invalidate drops all cached pages for a document
func (c *PageCache) Invalidate(ctx context.Context, documentID string) error {
	var cursor uint64
	pattern := pagePrefix + documentID + ":*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan pages: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete pages: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
