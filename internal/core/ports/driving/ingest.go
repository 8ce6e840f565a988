package driving

import (
	"context"
	"io"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// IngestService turns uploaded files into searchable documents
type IngestService interface {
	// Ingest stores the file, extracts its text and auto-tags it
	Ingest(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Document, error)

	// IngestPath ingests a file already on disk (drop folder)
	IngestPath(ctx context.Context, path string) (*domain.Document, error)
}
