package mocks

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// MockAnnotationStore is a mock implementation of AnnotationStore for testing
type MockAnnotationStore struct {
	mu          sync.RWMutex
	pages       map[string]*domain.Page          // key: documentID:page
	annotations map[string][]*domain.Annotation  // key: documentID:page, insertion order
}

// NewMockAnnotationStore creates a new MockAnnotationStore
func NewMockAnnotationStore() *MockAnnotationStore {
	return &MockAnnotationStore{
		pages:       make(map[string]*domain.Page),
		annotations: make(map[string][]*domain.Annotation),
	}
}

func pageKey(documentID string, pageNumber int) string {
	return documentID + ":" + strconv.Itoa(pageNumber)
}

func (m *MockAnnotationStore) EnsurePage(ctx context.Context, page *domain.Page) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pageKey(page.DocumentID, page.PageNumber)
	if existing, ok := m.pages[key]; ok {
		return existing, nil
	}
	stored := *page
	m.pages[key] = &stored
	return &stored, nil
}

func (m *MockAnnotationStore) GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	page, ok := m.pages[pageKey(documentID, pageNumber)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return page, nil
}

func (m *MockAnnotationStore) Append(ctx context.Context, ann *domain.Annotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pageKey(ann.DocumentID, ann.PageNumber)
	m.annotations[key] = append(m.annotations[key], ann)
	return nil
}

func (m *MockAnnotationStore) ListByPage(ctx context.Context, documentID string, pageNumber int) ([]*domain.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	anns := m.annotations[pageKey(documentID, pageNumber)]
	out := make([]*domain.Annotation, len(anns))
	copy(out, anns)
	return out, nil
}

func (m *MockAnnotationStore) ListByDocument(ctx context.Context, documentID string) ([]*domain.Annotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Annotation
	var pageNumbers []int
	for _, page := range m.pages {
		if page.DocumentID == documentID {
			pageNumbers = append(pageNumbers, page.PageNumber)
		}
	}
	sort.Ints(pageNumbers)
	for _, n := range pageNumbers {
		out = append(out, m.annotations[pageKey(documentID, n)]...)
	}
	return out, nil
}

func (m *MockAnnotationStore) Delete(ctx context.Context, documentID, annotationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, anns := range m.annotations {
		for i, ann := range anns {
			if ann.DocumentID == documentID && ann.ID == annotationID {
				m.annotations[key] = append(anns[:i], anns[i+1:]...)
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (m *MockAnnotationStore) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, page := range m.pages {
		if page.DocumentID == documentID {
			delete(m.pages, key)
			delete(m.annotations, key)
		}
	}
	return nil
}

// Helper methods for testing

func (m *MockAnnotationStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = make(map[string]*domain.Page)
	m.annotations = make(map[string][]*domain.Annotation)
}

func (m *MockAnnotationStore) PageCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}
