package services

import (
	"context"
	"errors"
	"time"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

// EstimatedPageSize is the target character count of one estimated page
// for formats without a native page concept.
const EstimatedPageSize = 2000

// pageCacheTTL bounds how long extracted page content is reused
const pageCacheTTL = time.Hour

// Ensure pageService implements PageService
var _ driving.PageService = (*pageService)(nil)

// pageService implements the PageService interface
type pageService struct {
	documentStore driven.DocumentStore
	extractor     driven.PageExtractor
	cache         driven.PageCache
}

// NewPageService creates a new PageService. cache may be nil, in which
// case every view re-extracts.
func NewPageService(
	documentStore driven.DocumentStore,
	extractor driven.PageExtractor,
	cache driven.PageCache,
) driving.PageService {
	return &pageService{
		documentStore: documentStore,
		extractor:     extractor,
		cache:         cache,
	}
}

// PageInfo reports the page count and whether it is estimated
func (s *pageService) PageInfo(ctx context.Context, documentID string) (*domain.PageInfo, error) {
	doc, err := s.documentStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.IsPDF() && s.extractor != nil {
		count, err := s.extractor.PageCount(ctx, doc.Path)
		if err == nil && count > 0 {
			return &domain.PageInfo{TotalPages: count, Estimated: false}, nil
		}
		// Fall through to estimation when the tool is missing
	}

	return &domain.PageInfo{
		TotalPages: estimatedPageCount(len(doc.ExtractedText)),
		Estimated:  true,
	}, nil
}

// GetPage returns one page of content, 1-based. Out-of-range pages
// return empty content rather than an error.
func (s *pageService) GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	if pageNumber < 1 {
		return nil, domain.ErrInvalidInput
	}

	if s.cache != nil {
		if page, err := s.cache.GetPage(ctx, documentID, pageNumber); err == nil {
			return page, nil
		}
	}

	doc, err := s.documentStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}

	page, err := s.extractPage(ctx, doc, pageNumber)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Cache failures never fail the view
		_ = s.cache.SetPage(ctx, page, pageCacheTTL)
	}
	return page, nil
}

func (s *pageService) extractPage(ctx context.Context, doc *domain.Document, pageNumber int) (*domain.Page, error) {
	if doc.IsPDF() && s.extractor != nil {
		content, err := s.extractor.ExtractPage(ctx, doc.Path, pageNumber)
		switch {
		case err == nil:
			return &domain.Page{
				DocumentID: doc.ID,
				PageNumber: pageNumber,
				Content:    content,
				Estimated:  false,
			}, nil
		case errors.Is(err, domain.ErrExtractionUnavailable):
			// Tool missing, estimate instead
		case errors.Is(err, domain.ErrNotFound):
			// Past the last native page
			return &domain.Page{DocumentID: doc.ID, PageNumber: pageNumber}, nil
		default:
			return nil, err
		}
	}

	return &domain.Page{
		DocumentID: doc.ID,
		PageNumber: pageNumber,
		Content:    estimatedPageContent(doc.ExtractedText, pageNumber),
		Estimated:  true,
	}, nil
}

// estimatedPageCount divides text into roughly EstimatedPageSize pages
func estimatedPageCount(length int) int {
	pages := length / EstimatedPageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// estimatedPageContent slices out the window for one estimated page:
// [(pageNumber-1)*window, min(pageNumber*window, len)). Because window is
// the floored per-page size, the trailing division remainder belongs to
// no page. Pages past the end are empty.
func estimatedPageContent(text string, pageNumber int) string {
	total := estimatedPageCount(len(text))
	if pageNumber > total {
		return ""
	}

	window := len(text) / total
	if window < 1 {
		window = 1
	}

	start := (pageNumber - 1) * window
	if start >= len(text) {
		return ""
	}
	end := pageNumber * window
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}
