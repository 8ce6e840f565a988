package mocks

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Ensure MockPageCache implements PageCache
var _ driven.PageCache = (*MockPageCache)(nil)

// MockPageCache is a mock implementation of PageCache for testing.
// TTLs are recorded but never enforced.
type MockPageCache struct {
	mu    sync.RWMutex
	pages map[string]*domain.Page
	Sets  int
	Hits  int
}

// NewMockPageCache creates a new MockPageCache
func NewMockPageCache() *MockPageCache {
	return &MockPageCache{
		pages: make(map[string]*domain.Page),
	}
}

func (m *MockPageCache) GetPage(ctx context.Context, documentID string, pageNumber int) (*domain.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[documentID+":"+strconv.Itoa(pageNumber)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m.Hits++
	return page, nil
}

func (m *MockPageCache) SetPage(ctx context.Context, page *domain.Page, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[page.DocumentID+":"+strconv.Itoa(page.PageNumber)] = page
	m.Sets++
	return nil
}

func (m *MockPageCache) Invalidate(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.pages {
		if strings.HasPrefix(key, documentID+":") {
			delete(m.pages, key)
		}
	}
	return nil
}

// Helper methods for testing

func (m *MockPageCache) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = make(map[string]*domain.Page)
	m.Sets = 0
	m.Hits = 0
}
