package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
	"github.com/bhaktikarche/eureka/internal/intent"
)

const chatResultLimit = 5

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService implements the ChatService interface. Answers are built
// from the corpus alone, no external model involved.
type chatService struct {
	documentStore driven.DocumentStore
	documents     driving.DocumentService
	pages         driving.PageService
}

// NewChatService creates a new ChatService
func NewChatService(
	documentStore driven.DocumentStore,
	documents driving.DocumentService,
	pages driving.PageService,
) driving.ChatService {
	return &chatService{
		documentStore: documentStore,
		documents:     documents,
		pages:         pages,
	}
}

// Chat classifies the message intent and builds a markdown answer
func (s *chatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrInvalidInput
	}

	analysis := intent.Classify(req.Message)

	var response string
	var err error
	switch analysis.Intent {
	case domain.IntentCount:
		response, err = s.answerCount(ctx, analysis)
	case domain.IntentFiletype:
		response, err = s.answerFiletype(ctx, analysis)
	case domain.IntentSearch:
		response, err = s.answerSearch(ctx, analysis)
	case domain.IntentSummarize:
		response, err = s.answerSummarize(ctx, analysis)
	case domain.IntentRetrieve:
		response, err = s.answerRetrieve(ctx, analysis)
	case domain.IntentPage:
		response, err = s.answerPage(ctx, analysis)
	case domain.IntentTag:
		response, err = s.answerTag(ctx, analysis)
	default:
		response = helpMessage
	}
	if err != nil {
		return nil, err
	}

	return &domain.ChatResponse{Response: response}, nil
}

const helpMessage = "I can help you explore your documents. Try:\n" +
	"- *find reports about education*\n" +
	"- *how many pdf files do we have?*\n" +
	"- *summarize the annual report*\n" +
	"- *show me page 2 of the project proposal*\n" +
	"- *documents tagged with health*"

func (s *chatService) answerCount(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	docs, err := s.documentStore.Search(ctx, domain.SearchFilter{})
	if err != nil {
		return "", err
	}

	if analysis.Parameters.Filetype != "" {
		n := 0
		for _, doc := range docs {
			if hasExtension(doc, analysis.Parameters.Filetype) {
				n++
			}
		}
		return fmt.Sprintf("You have **%d** %s file(s).", n, analysis.Parameters.Filetype), nil
	}
	return fmt.Sprintf("You have **%d** document(s) in total.", len(docs)), nil
}

func (s *chatService) answerFiletype(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	docs, err := s.documentStore.Search(ctx, domain.SearchFilter{})
	if err != nil {
		return "", err
	}

	var matched []*domain.Document
	for _, doc := range docs {
		if analysis.Parameters.Filetype != "" && !hasExtension(doc, analysis.Parameters.Filetype) {
			continue
		}
		if !matchesSize(doc, analysis.Parameters) {
			continue
		}
		matched = append(matched, doc)
	}

	if len(matched) == 0 {
		return "No documents matched.", nil
	}
	return "Matching documents:\n" + documentList(matched), nil
}

func (s *chatService) answerSearch(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	subject := analysis.Parameters.Document
	if subject == "" {
		subject = analysis.OriginalQuery
	}

	docs, err := s.documentStore.Search(ctx, domain.SearchFilter{Query: subject})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return fmt.Sprintf("I couldn't find any documents matching *%s*.", subject), nil
	}
	return fmt.Sprintf("Found **%d** document(s) for *%s*:\n%s",
		len(docs), subject, documentList(docs)), nil
}

func (s *chatService) answerSummarize(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	doc, err := s.findByName(ctx, analysis.Parameters.Document)
	if err != nil {
		return fmt.Sprintf("I couldn't find a document named *%s*.", analysis.Parameters.Document), nil
	}

	summary, err := s.documents.Summarize(ctx, doc.ID, 0)
	if err != nil {
		return fmt.Sprintf("**%s** has no extractable text to summarize.", doc.OriginalName), nil
	}
	return fmt.Sprintf("**Summary of %s:**\n\n%s", doc.OriginalName, summary.Summary), nil
}

func (s *chatService) answerRetrieve(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	doc, err := s.findByName(ctx, analysis.Parameters.Document)
	if err != nil {
		return fmt.Sprintf("I couldn't find a document named *%s*.", analysis.Parameters.Document), nil
	}

	return fmt.Sprintf("**%s**\n- Type: %s\n- Size: %s\n- Uploaded: %s\n- Tags: %s",
		doc.OriginalName,
		doc.MimeType,
		formatSize(doc.Size),
		doc.UploadedAt.Format("2 Jan 2006"),
		tagList(doc.Tags)), nil
}

func (s *chatService) answerPage(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	doc, err := s.findByName(ctx, analysis.Parameters.Document)
	if err != nil {
		return fmt.Sprintf("I couldn't find a document named *%s*.", analysis.Parameters.Document), nil
	}

	page, err := s.pages.GetPage(ctx, doc.ID, analysis.Parameters.Page)
	if err != nil {
		return "", err
	}
	if page.Content == "" {
		return fmt.Sprintf("**%s** has no page %d.", doc.OriginalName, analysis.Parameters.Page), nil
	}

	content := page.Content
	if len(content) > 1000 {
		content = content[:1000] + "..."
	}
	return fmt.Sprintf("**Page %d of %s:**\n\n%s",
		analysis.Parameters.Page, doc.OriginalName, content), nil
}

func (s *chatService) answerTag(ctx context.Context, analysis domain.QueryAnalysis) (string, error) {
	tag := analysis.Parameters.Document
	if tag == "" {
		return "Which tag are you interested in?", nil
	}

	docs, err := s.documentStore.Search(ctx, domain.SearchFilter{Query: tag})
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return fmt.Sprintf("No documents are tagged *%s*.", tag), nil
	}
	return fmt.Sprintf("Documents tagged *%s*:\n%s", tag, documentList(docs)), nil
}

// findByName resolves a chat reference to the best-matching document.
// Every word of the reference must appear in the filename, so
// "annual report" matches "annual-report-2021.pdf".
func (s *chatService) findByName(ctx context.Context, name string) (*domain.Document, error) {
	name = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(name), "the "))
	words := strings.Fields(name)
	if len(words) == 0 {
		return nil, domain.ErrNotFound
	}

	docs, err := s.documentStore.Search(ctx, domain.SearchFilter{})
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		filename := strings.ToLower(doc.OriginalName)
		matched := true
		for _, word := range words {
			if !strings.Contains(filename, word) {
				matched = false
				break
			}
		}
		if matched {
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func documentList(docs []*domain.Document) string {
	var b strings.Builder
	for i, doc := range docs {
		if i == chatResultLimit {
			fmt.Fprintf(&b, "- ...and %d more", len(docs)-chatResultLimit)
			break
		}
		fmt.Fprintf(&b, "- **%s** (%s)\n", doc.OriginalName, formatSize(doc.Size))
	}
	return strings.TrimRight(b.String(), "\n")
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, ", ")
}

func hasExtension(doc *domain.Document, filetype string) bool {
	return strings.HasSuffix(strings.ToLower(doc.Filename), "."+filetype)
}

func matchesSize(doc *domain.Document, params domain.QueryParameters) bool {
	if params.SizeComparison == "" {
		return true
	}

	threshold := params.SizeValue
	switch params.SizeUnit {
	case "kb":
		threshold *= 1 << 10
	case "mb":
		threshold *= 1 << 20
	case "gb":
		threshold *= 1 << 30
	}

	if params.SizeComparison == "smaller" {
		return doc.Size < threshold
	}
	return doc.Size > threshold
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
