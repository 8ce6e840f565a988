package services

import (
	"context"
	"errors"
	"testing"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven/mocks"
)

func seedSearchDocs(t *testing.T, docStore *mocks.MockDocumentStore) {
	t.Helper()
	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		OriginalName:  "education-report-2021.pdf",
		ExtractedText: "School literacy programme results",
		Tags:          []string{"year-2021", "education"},
	})
	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-2",
		OriginalName:  "ford-grant-agreement.pdf",
		ExtractedText: "Grant terms with the Ford Foundation",
		Tags:          []string{"year-2022", "donor-ford-foundation"},
	})
	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-3",
		OriginalName:  "health-survey.docx",
		ExtractedText: "Village health and sanitation survey",
		Tags:          []string{"health"},
	})
}

func TestSearchByContent(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	seedSearchDocs(t, docStore)
	svc := NewSearchService(docStore)

	docs, err := svc.Search(context.Background(), "literacy")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Errorf("expected doc-1, got %v", docs)
	}
}

func TestSearchByTag(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	seedSearchDocs(t, docStore)
	svc := NewSearchService(docStore)

	docs, err := svc.Search(context.Background(), "donor-ford")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-2" {
		t.Errorf("expected doc-2, got %v", docs)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	svc := NewSearchService(mocks.NewMockDocumentStore())

	_, err := svc.Search(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAdvancedByYear(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	seedSearchDocs(t, docStore)
	svc := NewSearchService(docStore)

	docs, err := svc.Advanced(context.Background(), domain.SearchFilter{Year: "2021"})
	if err != nil {
		t.Fatalf("advanced: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-1" {
		t.Errorf("expected doc-1, got %v", docs)
	}
}

func TestAdvancedCombinedFilters(t *testing.T) {
	docStore := mocks.NewMockDocumentStore()
	seedSearchDocs(t, docStore)
	svc := NewSearchService(docStore)

	docs, err := svc.Advanced(context.Background(), domain.SearchFilter{
		Query: "grant",
		Donor: "ford",
	})
	if err != nil {
		t.Fatalf("advanced: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "doc-2" {
		t.Errorf("expected doc-2, got %v", docs)
	}

	docs, err = svc.Advanced(context.Background(), domain.SearchFilter{
		Query: "grant",
		Year:  "2021",
	})
	if err != nil {
		t.Fatalf("advanced: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no matches for conflicting filters, got %v", docs)
	}
}

func TestAdvancedEmptyFilter(t *testing.T) {
	svc := NewSearchService(mocks.NewMockDocumentStore())

	_, err := svc.Advanced(context.Background(), domain.SearchFilter{})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
