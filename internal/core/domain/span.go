package domain

// Span is a half-open character range [StartIndex, EndIndex) over a
// reference string. Offsets are zero-based byte indexes into the page
// content the span was created against.
type Span struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// Validate checks the span against a reference text of the given length.
// A span is valid when 0 <= StartIndex < EndIndex <= length.
func (s Span) Validate(length int) error {
	if s.StartIndex < 0 || s.EndIndex > length || s.StartIndex >= s.EndIndex {
		return ErrInvalidRange
	}
	return nil
}

// ValidIn reports whether the span is valid for a text of the given length
func (s Span) ValidIn(length int) bool {
	return s.Validate(length) == nil
}

// Len returns the number of characters the span covers
func (s Span) Len() int {
	return s.EndIndex - s.StartIndex
}

// Substring returns the portion of text the span covers.
// The span must be valid for text; callers validate first.
func (s Span) Substring(text string) string {
	return text[s.StartIndex:s.EndIndex]
}
