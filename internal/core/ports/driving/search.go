package driving

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// SearchService finds documents by text and tag filters
type SearchService interface {
	// Search performs a free-text substring search over names, content
	// and tags
	Search(ctx context.Context, query string) ([]*domain.Document, error)

	// Advanced combines free text with year, program-area and donor
	// filters
	Advanced(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error)
}
