package domain

import "time"

// MaxExtractedChars caps the stored extracted text of a document.
// Extraction output is truncated to this length at ingestion time;
// page content and annotation offsets are derived from the truncated text.
const MaxExtractedChars = 10000

// Document represents an uploaded file with its extracted text
type Document struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`      // Stored name on disk
	OriginalName  string    `json:"original_name"` // Name as uploaded
	Path          string    `json:"path"`
	Size          int64     `json:"size"`
	MimeType      string    `json:"mime_type"`
	ExtractedText string    `json:"extracted_text"`
	Tags          []string  `json:"tags"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// IsPDF reports whether the document is a PDF and therefore a candidate
// for page-aware extraction
func (d *Document) IsPDF() bool {
	return d.MimeType == "application/pdf"
}

// HasText reports whether any text was extracted at ingestion time
func (d *Document) HasText() bool {
	return len(d.ExtractedText) > 0
}

// Page is a logical subdivision of a document's extracted text.
// Pages are created lazily by the first annotation against their number;
// Content is frozen at that moment so stored offsets stay interpretable
// even if pagination inputs later change.
type Page struct {
	DocumentID string    `json:"document_id"`
	PageNumber int       `json:"page_number"`
	Content    string    `json:"content"`
	Estimated  bool      `json:"estimated"` // Content came from the character-window fallback
	CreatedAt  time.Time `json:"created_at"`
}

// PageInfo describes a document's page count for viewers
type PageInfo struct {
	TotalPages int  `json:"total_pages"`
	Estimated  bool `json:"estimated"`
}

// DocumentSummary is the summarization result for a document
type DocumentSummary struct {
	DocumentID       string  `json:"document_id"`
	Filename         string  `json:"filename"`
	Summary          string  `json:"summary"`
	OriginalLength   int     `json:"original_length"`
	SummaryLength    int     `json:"summary_length"`
	CompressionRatio float64 `json:"compression_ratio"`
}
