package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

func TestPageCacheSetAndGet(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	cache := NewPageCache(client)
	ctx := context.Background()

	page := &domain.Page{
		DocumentID: "doc-1",
		PageNumber: 2,
		Content:    "page two content",
		Estimated:  true,
	}
	require.NoError(t, cache.SetPage(ctx, page, time.Hour))

	got, err := cache.GetPage(ctx, "doc-1", 2)
	require.NoError(t, err)
	assert.Equal(t, page.Content, got.Content)
	assert.True(t, got.Estimated)
}

func TestPageCacheMiss(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	cache := NewPageCache(client)

	_, err := cache.GetPage(context.Background(), "doc-1", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPageCacheInvalidate(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	cache := NewPageCache(client)
	ctx := context.Background()

	for n := 1; n <= 3; n++ {
		page := &domain.Page{DocumentID: "doc-1", PageNumber: n, Content: "x"}
		require.NoError(t, cache.SetPage(ctx, page, time.Hour))
	}
	other := &domain.Page{DocumentID: "doc-2", PageNumber: 1, Content: "keep"}
	require.NoError(t, cache.SetPage(ctx, other, time.Hour))

	require.NoError(t, cache.Invalidate(ctx, "doc-1"))

	for n := 1; n <= 3; n++ {
		_, err := cache.GetPage(ctx, "doc-1", n)
		assert.ErrorIs(t, err, domain.ErrNotFound, "doc-1 page %d should be gone", n)
	}
	_, err := cache.GetPage(ctx, "doc-2", 1)
	assert.NoError(t, err, "doc-2 page should survive invalidation of doc-1")
}
