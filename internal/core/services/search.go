package services

import (
	"context"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

// searchService implements the SearchService interface
type searchService struct {
	documentStore driven.DocumentStore
}

// NewSearchService creates a new SearchService
func NewSearchService(documentStore driven.DocumentStore) driving.SearchService {
	return &searchService{documentStore: documentStore}
}

// Search performs a free-text substring search over names, content and
// tags
func (s *searchService) Search(ctx context.Context, query string) ([]*domain.Document, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.documentStore.Search(ctx, domain.SearchFilter{Query: query})
}

// Advanced combines free text with year, program-area and donor filters
func (s *searchService) Advanced(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if filter.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	return s.documentStore.Search(ctx, filter)
}
