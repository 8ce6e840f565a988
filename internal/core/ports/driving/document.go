package driving

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// DocumentService provides access to stored documents
type DocumentService interface {
	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves documents, newest upload first
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// Count returns the total number of documents
	Count(ctx context.Context) (int, error)

	// Delete removes a document together with its pages, annotations,
	// cached content and the stored file
	Delete(ctx context.Context, id string) error

	// Summarize produces a sentence-boundary summary of the extracted
	// text. maxLength <= 0 uses the default.
	Summarize(ctx context.Context, id string, maxLength int) (*domain.DocumentSummary, error)
}

// PageService exposes paginated views of a document's extracted text
type PageService interface {
	// PageInfo reports the page count and whether it is estimated
	PageInfo(ctx context.Context, documentID string) (*domain.PageInfo, error)

	// GetPage returns one page of content, 1-based. Out-of-range pages
	// return empty content rather than an error.
	GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error)
}
