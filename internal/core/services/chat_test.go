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

func newChatFixture(t *testing.T) *chatService {
	t.Helper()
	docStore := mocks.NewMockDocumentStore()
	annStore := mocks.NewMockAnnotationStore()
	pages := NewPageService(docStore, nil, nil)
	documents := NewDocumentService(docStore, annStore, nil)
	svc := NewChatService(docStore, documents, pages).(*chatService)

	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-1",
		Filename:      "doc-1.pdf",
		OriginalName:  "annual-report-2021.pdf",
		MimeType:      "application/pdf",
		Size:          2 << 20,
		ExtractedText: "The annual report covers education outcomes. Literacy improved across districts.",
		Tags:          []string{"year-2021", "education"},
		UploadedAt:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	saveDoc(t, docStore, &domain.Document{
		ID:            "doc-2",
		Filename:      "doc-2.txt",
		OriginalName:  "meeting-notes.txt",
		MimeType:      "text/plain",
		Size:          512,
		ExtractedText: "Budget discussion notes.",
		UploadedAt:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	return svc
}

func TestChatCount(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "how many documents do we have?"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "**2**") {
		t.Errorf("expected total of 2, got %q", resp.Response)
	}
}

func TestChatCountByFiletype(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "how many pdf files?"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "**1**") || !strings.Contains(resp.Response, "pdf") {
		t.Errorf("expected 1 pdf, got %q", resp.Response)
	}
}

func TestChatSearch(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "find documents about literacy"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "annual-report-2021.pdf") {
		t.Errorf("expected annual report in results, got %q", resp.Response)
	}
}

func TestChatSummarize(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "summarize the annual report"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "Summary of annual-report-2021.pdf") {
		t.Errorf("expected summary heading, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "education outcomes") {
		t.Errorf("expected summary content, got %q", resp.Response)
	}
}

func TestChatRetrieve(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "open meeting-notes"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "meeting-notes.txt") {
		t.Errorf("expected document details, got %q", resp.Response)
	}
	if !strings.Contains(resp.Response, "512 B") {
		t.Errorf("expected size in details, got %q", resp.Response)
	}
}

func TestChatPage(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "show me page 1 of meeting-notes"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "Budget discussion notes.") {
		t.Errorf("expected page content, got %q", resp.Response)
	}
}

func TestChatTag(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "documents tagged with education"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "annual-report-2021.pdf") {
		t.Errorf("expected tagged document, got %q", resp.Response)
	}
}

func TestChatUnknownDocument(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "summarize the missing file"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "couldn't find") {
		t.Errorf("expected a not-found reply, got %q", resp.Response)
	}
}

func TestChatGeneralFallback(t *testing.T) {
	svc := newChatFixture(t)

	resp, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if !strings.Contains(resp.Response, "I can help") {
		t.Errorf("expected help message, got %q", resp.Response)
	}
}

func TestChatEmptyMessage(t *testing.T) {
	svc := newChatFixture(t)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Message: "  "})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
