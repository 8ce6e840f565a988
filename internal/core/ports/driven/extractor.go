package driven

import "context"

// TextExtractor pulls plain text out of an uploaded file. Implementations
// are registered per mime type; Supports gates dispatch.
type TextExtractor interface {
	// Supports reports whether this extractor handles the mime type
	Supports(mimeType string) bool

	// Extract returns the plain text of the file at path.
	// ErrExtractionUnavailable signals a missing external tool rather
	// than a bad file.
	Extract(ctx context.Context, path string) (string, error)
}

// PageExtractor additionally extracts a single page's text. Only formats
// with a native page concept (PDF) implement it; everything else falls
// back to estimated page windows over the full text.
type PageExtractor interface {
	TextExtractor

	// PageCount returns the number of native pages in the file
	PageCount(ctx context.Context, path string) (int, error)

	// ExtractPage returns the text of one native page, 1-based
	ExtractPage(ctx context.Context, path string, page int) (string, error)
}
