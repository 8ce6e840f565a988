package driven

import (
	"context"
	"time"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// PageCache caches extracted page content (Redis). The cache is advisory:
// a miss or an unavailable backend means re-extraction, never an error
// surfaced to the caller.
type PageCache interface {
	// GetPage retrieves a cached page, ErrNotFound on miss
	GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error)

	// SetPage caches a page with the given TTL
	SetPage(ctx context.Context, page *domain.Page, ttl time.Duration) error

	// Invalidate drops all cached pages for a document
	Invalidate(ctx context.Context, documentID string) error
}
