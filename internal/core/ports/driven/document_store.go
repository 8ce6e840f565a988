package driven

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// DocumentStore handles document persistence (PostgreSQL)
type DocumentStore interface {
	// Save creates or updates a document
	Save(ctx context.Context, doc *domain.Document) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List retrieves all documents, newest upload first
	List(ctx context.Context, limit, offset int) ([]*domain.Document, error)

	// Delete deletes a document and everything hanging off it
	Delete(ctx context.Context, id string) error

	// Count returns total document count
	Count(ctx context.Context) (int, error)

	// Search retrieves documents matching a substring filter over
	// name, extracted text and tags
	Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error)

	// Timeline groups uploads into calendar-month buckets
	Timeline(ctx context.Context) ([]domain.TimelineBucket, error)
}

// AnnotationStore handles page and annotation persistence (PostgreSQL).
// Pages freeze the content an annotation's offsets were created against;
// annotations are immutable rows appended beneath a frozen page.
type AnnotationStore interface {
	// EnsurePage inserts the page if absent and returns the stored row.
	// When the page already exists the given content is ignored and the
	// frozen content comes back, so offsets stay anchored to the text
	// the first annotator saw.
	EnsurePage(ctx context.Context, page *domain.Page) (*domain.Page, error)

	// GetPage retrieves a frozen page, ErrNotFound when never annotated
	GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error)

	// Append inserts a single annotation row
	Append(ctx context.Context, ann *domain.Annotation) error

	// ListByPage retrieves a page's annotations in insertion order
	ListByPage(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error)

	// ListByDocument retrieves all annotations across pages, ordered by
	// page number then insertion
	ListByDocument(ctx context.Context, documentID string) ([]*domain.Annotation, error)

	// Delete removes one annotation, ErrNotFound when the document has
	// no annotation with that ID
	Delete(ctx context.Context, documentID, annotationID string) error

	// DeleteByDocument removes all pages and annotations for a document
	DeleteByDocument(ctx context.Context, documentID string) error
}
