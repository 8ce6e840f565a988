package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

// Ensure annotationService implements AnnotationService
var _ driving.AnnotationService = (*annotationService)(nil)

// annotationService implements the AnnotationService interface.
//
// Annotation offsets are anchored to frozen page content: the first
// annotation on a page stores the content it was created against, and
// every later annotation on that page validates against the same frozen
// text even if extraction output drifts afterwards.
type annotationService struct {
	documentStore   driven.DocumentStore
	annotationStore driven.AnnotationStore
	pages           driving.PageService
}

// NewAnnotationService creates a new AnnotationService
func NewAnnotationService(
	documentStore driven.DocumentStore,
	annotationStore driven.AnnotationStore,
	pages driving.PageService,
) driving.AnnotationService {
	return &annotationService{
		documentStore:   documentStore,
		annotationStore: annotationStore,
		pages:           pages,
	}
}

// Add validates the input against the page's frozen content and appends
// a new annotation
func (s *annotationService) Add(ctx context.Context, documentID string, input domain.AnnotationInput) (*domain.Annotation, error) {
	if input.PageNumber < 1 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return nil, err
	}

	page, err := s.frozenPage(ctx, documentID, input.PageNumber)
	if err != nil {
		return nil, err
	}

	span := input.Position.Span()
	if err := span.Validate(len(page.Content)); err != nil {
		return nil, err
	}

	text := input.Text
	if text == "" {
		text = span.Substring(page.Content)
	}

	color := input.Color
	if color == "" {
		color = domain.DefaultHighlightColor
	}

	now := time.Now()
	ann := &domain.Annotation{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		PageNumber: input.PageNumber,
		Text:       text,
		Note:       input.Note,
		Position: domain.Position{
			StartIndex: input.Position.StartIndex,
			EndIndex:   input.Position.EndIndex,
			Page:       input.PageNumber,
		},
		Color:     color,
		Tags:      input.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.annotationStore.Append(ctx, ann); err != nil {
		return nil, err
	}
	return ann, nil
}

// ListByPage returns a page's annotations in creation order
func (s *annotationService) ListByPage(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error) {
	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return nil, err
	}
	return s.annotationStore.ListByPage(ctx, documentID, pageNumber)
}

// ListByDocument returns every annotation on a document
func (s *annotationService) ListByDocument(ctx context.Context, documentID string) ([]*domain.Annotation, error) {
	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return nil, err
	}
	return s.annotationStore.ListByDocument(ctx, documentID)
}

// Delete removes a single annotation
func (s *annotationService) Delete(ctx context.Context, documentID, annotationID string) error {
	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return err
	}
	return s.annotationStore.Delete(ctx, documentID, annotationID)
}

// RenderPage splits the page into plain and highlighted segments
func (s *annotationService) RenderPage(ctx context.Context, documentID string, pageNumber int) ([]domain.Segment, error) {
	content, err := s.pageContent(ctx, documentID, pageNumber)
	if err != nil {
		return nil, err
	}

	annotations, err := s.annotationStore.ListByPage(ctx, documentID, pageNumber)
	if err != nil {
		return nil, err
	}

	return domain.RenderPage(content, annotations), nil
}

// ResolveSelection maps selected text back to character offsets in the
// page content
func (s *annotationService) ResolveSelection(ctx context.Context, documentID string, pageNumber int, selected string, startHint int) (domain.Span, error) {
	content, err := s.pageContent(ctx, documentID, pageNumber)
	if err != nil {
		return domain.Span{}, err
	}
	return domain.ResolveSelection(content, selected, startHint)
}

// frozenPage returns the stored page, freezing current content on first
// use
func (s *annotationService) frozenPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	page, err := s.annotationStore.GetPage(ctx, documentID, pageNumber)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	live, err := s.pages.GetPage(ctx, documentID, pageNumber)
	if err != nil {
		return nil, err
	}
	live.CreatedAt = time.Now()
	return s.annotationStore.EnsurePage(ctx, live)
}

// pageContent prefers the frozen page so offsets line up with stored
// annotations, falling back to live extraction for unannotated pages
func (s *annotationService) pageContent(ctx context.Context, documentID string, pageNumber int) (string, error) {
	if pageNumber < 1 {
		return "", domain.ErrInvalidInput
	}
	if _, err := s.documentStore.Get(ctx, documentID); err != nil {
		return "", err
	}

	page, err := s.annotationStore.GetPage(ctx, documentID, pageNumber)
	if err == nil {
		return page.Content, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	live, err := s.pages.GetPage(ctx, documentID, pageNumber)
	if err != nil {
		return "", err
	}
	return live.Content, nil
}
