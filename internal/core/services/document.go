package services

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

// DefaultSummaryLength is the target character count for summaries when
// the caller does not specify one.
const DefaultSummaryLength = 500

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface
type documentService struct {
	documentStore   driven.DocumentStore
	annotationStore driven.AnnotationStore
	cache           driven.PageCache
}

// NewDocumentService creates a new DocumentService. cache may be nil.
func NewDocumentService(
	documentStore driven.DocumentStore,
	annotationStore driven.AnnotationStore,
	cache driven.PageCache,
) driving.DocumentService {
	return &documentService{
		documentStore:   documentStore,
		annotationStore: annotationStore,
		cache:           cache,
	}
}

// Get retrieves a document by ID
func (s *documentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.documentStore.Get(ctx, id)
}

// List retrieves documents, newest upload first
func (s *documentService) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}
	return s.documentStore.List(ctx, limit, offset)
}

// Count returns the total number of documents
func (s *documentService) Count(ctx context.Context) (int, error) {
	return s.documentStore.Count(ctx)
}

// Delete removes a document together with its pages, annotations,
// cached content and the stored file
func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.annotationStore.DeleteByDocument(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
	if err := s.documentStore.Delete(ctx, id); err != nil {
		return err
	}

	if doc.Path != "" {
		// Best effort, the row is already gone
		_ = os.Remove(doc.Path)
	}
	return nil
}

// Summarize produces a sentence-boundary summary of the extracted text
func (s *documentService) Summarize(ctx context.Context, id string, maxLength int) (*domain.DocumentSummary, error) {
	doc, err := s.documentStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.HasText() {
		return nil, domain.ErrExtractionUnavailable
	}
	if maxLength <= 0 {
		maxLength = DefaultSummaryLength
	}

	summary := summarize(doc.ExtractedText, maxLength)

	ratio := 0.0
	if len(doc.ExtractedText) > 0 {
		ratio = float64(len(summary)) / float64(len(doc.ExtractedText))
	}
	return &domain.DocumentSummary{
		DocumentID:       doc.ID,
		Filename:         doc.OriginalName,
		Summary:          summary,
		OriginalLength:   len(doc.ExtractedText),
		SummaryLength:    len(summary),
		CompressionRatio: ratio,
	}, nil
}

// summarize accumulates whole sentences until adding the next one would
// exceed maxLength. Text without sentence punctuation, or a first
// sentence longer than the limit, is truncated instead.
func summarize(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxLength {
		return text
	}

	sentences := sentencePattern.FindAllString(text, -1)
	var b strings.Builder
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		add := len(sentence)
		if b.Len() > 0 {
			add++
		}
		if b.Len()+add > maxLength {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}

	if b.Len() == 0 {
		return strings.TrimSpace(text[:maxLength]) + "..."
	}
	return b.String()
}
