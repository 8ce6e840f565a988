package extractor

import (
	"context"
	"os"
	"strings"
	"unicode/utf8"
)

// Plaintext reads text files as-is, replacing invalid UTF-8
type Plaintext struct{}

// NewPlaintext creates a plaintext extractor
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// Supports reports whether this extractor handles the mime type
func (p *Plaintext) Supports(mimeType string) bool {
	return mimeType == "text/plain" || mimeType == "text/csv"
}

// Extract returns the file contents as UTF-8 text
func (p *Plaintext) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), ""), nil
}
