package mocks

import (
	"context"
	"sync"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Ensure MockExtractor implements PageExtractor
var _ driven.PageExtractor = (*MockExtractor)(nil)

// MockExtractor is a mock implementation of TextExtractor/PageExtractor
// for testing. Text and pages are configured per file path.
type MockExtractor struct {
	mu        sync.RWMutex
	MimeTypes []string
	Texts     map[string]string   // path -> full text
	Pages     map[string][]string // path -> per-page text
	Default   string              // returned when the path is not configured
	Err       error
}

// NewMockExtractor creates a new MockExtractor
func NewMockExtractor(mimeTypes ...string) *MockExtractor {
	return &MockExtractor{
		MimeTypes: mimeTypes,
		Texts:     make(map[string]string),
		Pages:     make(map[string][]string),
	}
}

func (m *MockExtractor) Supports(mimeType string) bool {
	for _, mt := range m.MimeTypes {
		if mt == mimeType {
			return true
		}
	}
	return false
}

func (m *MockExtractor) Extract(ctx context.Context, path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return "", m.Err
	}
	text, ok := m.Texts[path]
	if !ok {
		if m.Default != "" {
			return m.Default, nil
		}
		return "", domain.ErrNotFound
	}
	return text, nil
}

func (m *MockExtractor) PageCount(ctx context.Context, path string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return 0, m.Err
	}
	pages, ok := m.Pages[path]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return len(pages), nil
}

func (m *MockExtractor) ExtractPage(ctx context.Context, path string, page int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Err != nil {
		return "", m.Err
	}
	pages, ok := m.Pages[path]
	if !ok || page < 1 || page > len(pages) {
		return "", domain.ErrNotFound
	}
	return pages[page-1], nil
}

// SetText configures the full text for a path
func (m *MockExtractor) SetText(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Texts[path] = text
}

// SetPages configures per-page text for a path
func (m *MockExtractor) SetPages(path string, pages []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pages[path] = pages
}
