package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// MockDocumentStore is a mock implementation of DocumentStore for testing
type MockDocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*domain.Document
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		documents: make(map[string]*domain.Document),
	}
}

func (m *MockDocumentStore) Save(ctx context.Context, doc *domain.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.ID] = doc
	return nil
}

func (m *MockDocumentStore) Get(ctx context.Context, id string) (*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockDocumentStore) List(ctx context.Context, limit, offset int) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	docs := m.sorted()
	if offset >= len(docs) {
		return []*domain.Document{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(docs) {
		end = len(docs)
	}
	return docs[offset:end], nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.documents, id)
	return nil
}

func (m *MockDocumentStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.documents), nil
}

func (m *MockDocumentStore) Search(ctx context.Context, filter domain.SearchFilter) ([]*domain.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Document
	for _, doc := range m.sorted() {
		if matchesFilter(doc, filter) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *MockDocumentStore) Timeline(ctx context.Context) ([]domain.TimelineBucket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byMonth := make(map[[2]int]*domain.TimelineBucket)
	for _, doc := range m.documents {
		key := [2]int{doc.UploadedAt.Year(), int(doc.UploadedAt.Month())}
		b, ok := byMonth[key]
		if !ok {
			b = &domain.TimelineBucket{Year: key[0], Month: key[1]}
			byMonth[key] = b
		}
		b.Count++
		b.TotalSize += doc.Size
	}
	var buckets []domain.TimelineBucket
	for _, b := range byMonth {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year < buckets[j].Year
		}
		return buckets[i].Month < buckets[j].Month
	})
	return buckets, nil
}

func (m *MockDocumentStore) sorted() []*domain.Document {
	docs := make([]*domain.Document, 0, len(m.documents))
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs
}

func matchesFilter(doc *domain.Document, filter domain.SearchFilter) bool {
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		hit := strings.Contains(strings.ToLower(doc.OriginalName), q) ||
			strings.Contains(strings.ToLower(doc.ExtractedText), q)
		for _, tag := range doc.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	if filter.Year != "" && !hasTag(doc, "year-"+filter.Year) {
		return false
	}
	if filter.ProgramArea != "" && !hasTag(doc, strings.ToLower(filter.ProgramArea)) {
		return false
	}
	if filter.Donor != "" {
		d := strings.ToLower(filter.Donor)
		hit := strings.Contains(strings.ToLower(doc.OriginalName), d)
		for _, tag := range doc.Tags {
			if strings.Contains(strings.ToLower(tag), d) {
				hit = true
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func hasTag(doc *domain.Document, tag string) bool {
	for _, t := range doc.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Helper methods for testing

func (m *MockDocumentStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents = make(map[string]*domain.Document)
}
