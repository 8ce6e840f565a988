package domain

import "time"

// DefaultHighlightColor is applied when an annotation is created without
// an explicit color
const DefaultHighlightColor = "#ffeb3b"

// Position anchors an annotation within a page. Page duplicates the owning
// page's number so flattened all-annotations views carry it inline.
type Position struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
	Page       int `json:"page"`
}

// Span returns the position's character range
func (p Position) Span() Span {
	return Span{StartIndex: p.StartIndex, EndIndex: p.EndIndex}
}

// Annotation is a user highlight over a span of page text, optionally
// carrying a note and tags. Annotations are immutable once created: there
// is no update operation and UpdatedAt is never advanced past CreatedAt.
type Annotation struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	PageNumber int       `json:"page_number"`
	Text       string    `json:"text"` // Exact covered substring, kept alongside offsets
	Note       string    `json:"note,omitempty"`
	Position   Position  `json:"position"`
	Color      string    `json:"color"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AnnotationInput is the caller-supplied payload for creating an annotation
type AnnotationInput struct {
	PageNumber int      `json:"pageNumber"`
	Text       string   `json:"text"`
	Note       string   `json:"note,omitempty"`
	Position   Position `json:"position"`
	Color      string   `json:"color,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}
