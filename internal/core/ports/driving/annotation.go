package driving

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// AnnotationService manages highlights over document pages
type AnnotationService interface {
	// Add validates the input against the page's frozen content and
	// appends a new annotation. The page is frozen on first use.
	Add(ctx context.Context, documentID string, input domain.AnnotationInput) (*domain.Annotation, error)

	// ListByPage returns a page's annotations in creation order
	ListByPage(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error)

	// ListByDocument returns every annotation on a document, ordered by
	// page then creation
	ListByDocument(ctx context.Context, documentID string) ([]*domain.Annotation, error)

	// Delete removes a single annotation
	Delete(ctx context.Context, documentID, annotationID string) error

	// RenderPage splits the page into plain and highlighted segments
	RenderPage(ctx context.Context, documentID string, pageNumber int) ([]domain.Segment, error)

	// ResolveSelection maps selected text back to character offsets in
	// the page content, disambiguating repeats with the start hint
	ResolveSelection(ctx context.Context, documentID string, pageNumber int, selected string, startHint int) (domain.Span, error)
}
