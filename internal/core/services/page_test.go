package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven/mocks"
)

func saveDoc(t *testing.T, store *mocks.MockDocumentStore, doc *domain.Document) {
	t.Helper()
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now()
	}
	if err := store.Save(context.Background(), doc); err != nil {
		t.Fatalf("save document: %v", err)
	}
}

func TestPageInfoEstimated(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	svc := NewPageService(docStore, nil, nil)
	ctx := context.Background()

	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		MimeType:      "text/plain",
		ExtractedText: strings.Repeat("x", 5000),
	})

	info, err := svc.PageInfo(ctx, "doc-1")
	if err != nil {
		t.Fatalf("page info: %v", err)
	}
	if info.TotalPages != 2 {
		t.Errorf("expected 2 pages for 5000 chars, got %d", info.TotalPages)
	}
	if !info.Estimated {
		t.Error("expected estimated page count")
	}
}

func TestPageInfoShortDocument(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	svc := NewPageService(docStore, nil, nil)

	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		MimeType:      "text/plain",
		ExtractedText: "tiny",
	})

	info, err := svc.PageInfo(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("page info: %v", err)
	}
	if info.TotalPages != 1 {
		t.Errorf("expected at least 1 page, got %d", info.TotalPages)
	}
}

func TestGetPageEstimatedWindows(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	svc := NewPageService(docStore, nil, nil)
	ctx := context.Background()

	text := strings.Repeat("a", 2500) + strings.Repeat("b", 2500)
	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		MimeType:      "text/plain",
		ExtractedText: text,
	})

	page1, err := svc.GetPage(ctx, "doc-1", 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := svc.GetPage(ctx, "doc-1", 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}

	if page1.Content+page2.Content != text {
		t.Error("expected pages to cover the full text without gaps")
	}
	if !page1.Estimated || !page2.Estimated {
		t.Error("expected estimated pages")
	}
}

func TestGetPageEstimatedRemainderDropped(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	svc := NewPageService(docStore, nil, nil)
	ctx := context.Background()

	// 4501 chars: 2 pages of floor(4501/2) = 2250; the odd char past
	// 2*2250 falls outside every window.
	text := strings.Repeat("x", 4501)
	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		MimeType:      "text/plain",
		ExtractedText: text,
	})

	page1, err := svc.GetPage(ctx, "doc-1", 1)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := svc.GetPage(ctx, "doc-1", 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}

	if len(page1.Content) != 2250 {
		t.Errorf("expected page 1 to hold 2250 chars, got %d", len(page1.Content))
	}
	if len(page2.Content) != 2250 {
		t.Errorf("expected page 2 to hold 2250 chars, got %d", len(page2.Content))
	}
	if page1.Content+page2.Content != text[:4500] {
		t.Error("expected pages to cover exactly the windowed prefix")
	}
}

func TestGetPageOutOfRange(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	svc := NewPageService(docStore, nil, nil)

	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		MimeType:      "text/plain",
		ExtractedText: "short",
	})

	page, err := svc.GetPage(context.Background(), "doc-1", 99)
	if err != nil {
		t.Fatalf("expected no error for out-of-range page, got %v", err)
	}
	if page.Content != "" {
		t.Errorf("expected empty content, got %q", page.Content)
	}
}

func TestGetPageInvalidNumber(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	svc := NewPageService(docStore, nil, nil)

	_, err := svc.GetPage(context.Background(), "doc-1", 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetPageDocumentMissing(t *testing.T) {
	svc := NewPageService(mocks.NewMockDocumentStore(), nil, nil)

	_, err := svc.GetPage(context.Background(), "nope", 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetPageNativePDF(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	extractor := mocks.NewMockExtractor("application/pdf")
	extractor.SetPages("/tmp/report.pdf", []string{"first page", "second page"})
	svc := NewPageService(docStore, extractor, nil)
	ctx := context.Background()

	saveDoc(t, docStore, &domain.Document{
		ID:       "doc-1",
		MimeType: "application/pdf",
		Path:     "/tmp/report.pdf",
	})

	info, err := svc.PageInfo(ctx, "doc-1")
	if err != nil {
		t.Fatalf("page info: %v", err)
	}
	if info.TotalPages != 2 || info.Estimated {
		t.Errorf("expected 2 native pages, got %+v", info)
	}

	page, err := svc.GetPage(ctx, "doc-1", 2)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.Content != "second page" || page.Estimated {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestGetPageUsesCache(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	cache := mocks.NewMockPageCache()
	svc := NewPageService(docStore, nil, cache)
	ctx := context.Background()

	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		MimeType:      "text/plain",
		ExtractedText: "cache me",
	})

	if _, err := svc.GetPage(ctx, "doc-1", 1); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if cache.Sets != 1 {
		t.Fatalf("expected 1 cache write, got %d", cache.Sets)
	}

	if _, err := svc.GetPage(ctx, "doc-1", 1); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if cache.Hits != 1 {
		t.Errorf("expected 1 cache hit, got %d", cache.Hits)
	}
}
