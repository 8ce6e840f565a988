package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
	"github.com/bhaktikarche/eureka/internal/core/ports/driving"
	"github.com/bhaktikarche/eureka/internal/tagger"
)

// MaxUploadSize caps uploaded files at 10MB
const MaxUploadSize = 10 << 20

// mimeByExtension is the upload allow-list. Anything else is rejected
// with ErrUnsupportedType.
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
	".csv":  "text/csv",
}

// Ensure ingestService implements IngestService
var _ driving.IngestService = (*ingestService)(nil)

// ingestService implements the IngestService interface
type ingestService struct {
	documentStore driven.DocumentStore
	extractor     driven.TextExtractor
	uploadDir     string
}

// NewIngestService creates a new IngestService. Files are stored under
// uploadDir with generated names.
func NewIngestService(
	documentStore driven.DocumentStore,
	extractor driven.TextExtractor,
	uploadDir string,
) driving.IngestService {
	return &ingestService{
		documentStore: documentStore,
		extractor:     extractor,
		uploadDir:     uploadDir,
	}
}

// Ingest stores the file, extracts its text and auto-tags it
func (s *ingestService) Ingest(ctx context.Context, originalName string, size int64, r io.Reader) (*domain.Document, error) {
	if originalName == "" {
		return nil, domain.ErrInvalidInput
	}
	if size > MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxUploadSize)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	mimeType, ok := mimeByExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}

	id := uuid.NewString()
	filename := id + ext
	path := filepath.Join(s.uploadDir, filename)

	written, err := s.writeFile(path, r)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		// Extraction failure leaves the document searchable by name only
		text = ""
	}
	if len(text) > domain.MaxExtractedChars {
		text = text[:domain.MaxExtractedChars]
	}

	doc := &domain.Document{
		ID:            id,
		Filename:      filename,
		OriginalName:  originalName,
		Path:          path,
		Size:          written,
		MimeType:      mimeType,
		ExtractedText: text,
		Tags:          tagger.Generate(originalName),
		UploadedAt:    time.Now(),
	}

	if err := s.documentStore.Save(ctx, doc); err != nil {
		_ = os.Remove(path)
		return nil, err
	}
	return doc, nil
}

// IngestPath ingests a file already on disk (drop folder)
func (s *ingestService) IngestPath(ctx context.Context, path string) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return s.Ingest(ctx, filepath.Base(path), info.Size(), f)
}

// writeFile copies the upload to disk, enforcing the size cap even when
// the declared size lied
func (s *ingestService) writeFile(path string, r io.Reader) (int64, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	written, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	if written > MaxUploadSize {
		_ = os.Remove(path)
		return 0, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrInvalidInput, MaxUploadSize)
	}
	return written, nil
}
