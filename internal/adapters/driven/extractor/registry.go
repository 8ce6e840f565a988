package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageExtractor = (*Registry)(nil)

// mimeByExtension maps file extensions to the mime type used for
// extractor dispatch
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".txt":  "text/plain",
	".rtf":  "application/rtf",
	".csv":  "text/csv",
}

// Registry dispatches extraction to format-specific extractors based on
// the file extension. Formats without a registered extractor fail with
// ErrUnsupportedType.
type Registry struct {
	extractors []driven.TextExtractor
}

// NewRegistry creates a registry with all built-in extractors
func NewRegistry() *Registry {
	return &Registry{
		extractors: []driven.TextExtractor{
			NewPlaintext(),
			NewPDF(),
			NewWord(),
			NewDocx(),
			NewRTF(),
		},
	}
}

// Supports reports whether any registered extractor handles the mime type
func (r *Registry) Supports(mimeType string) bool {
	return r.find(mimeType) != nil
}

// Extract dispatches to the extractor for the file's type
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	e, err := r.forPath(path)
	if err != nil {
		return "", err
	}
	return e.Extract(ctx, path)
}

// PageCount returns the native page count. Only formats with a native
// page concept support this; everything else reports
// ErrExtractionUnavailable so callers fall back to estimation.
func (r *Registry) PageCount(ctx context.Context, path string) (int, error) {
	e, err := r.forPath(path)
	if err != nil {
		return 0, err
	}
	pe, ok := e.(driven.PageExtractor)
	if !ok {
		return 0, domain.ErrExtractionUnavailable
	}
	return pe.PageCount(ctx, path)
}

// ExtractPage returns the text of one native page, 1-based
func (r *Registry) ExtractPage(ctx context.Context, path string, page int) (string, error) {
	e, err := r.forPath(path)
	if err != nil {
		return "", err
	}
	pe, ok := e.(driven.PageExtractor)
	if !ok {
		return "", domain.ErrExtractionUnavailable
	}
	return pe.ExtractPage(ctx, path, page)
}

func (r *Registry) forPath(path string) (driven.TextExtractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mimeType, ok := mimeByExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, ext)
	}
	e := r.find(mimeType)
	if e == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, mimeType)
	}
	return e, nil
}

func (r *Registry) find(mimeType string) driven.TextExtractor {
	for _, e := range r.extractors {
		if e.Supports(mimeType) {
			return e
		}
	}
	return nil
}
