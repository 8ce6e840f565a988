package driving

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// ChatService answers natural-language questions about the corpus
type ChatService interface {
	// Chat classifies the message intent and builds a markdown answer
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error)
}
