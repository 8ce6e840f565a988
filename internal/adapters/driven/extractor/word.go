package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// Word extracts text from legacy .doc files via antiword
type Word struct {
	antiword string
}

// NewWord creates a Word extractor using antiword from PATH
func NewWord() *Word {
	return &Word{antiword: "antiword"}
}

// Supports reports whether this extractor handles the mime type
func (w *Word) Supports(mimeType string) bool {
	return mimeType == "application/msword"
}

// Extract returns the document text
func (w *Word) Extract(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(w.antiword); err != nil {
		return "", domain.ErrExtractionUnavailable
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, w.antiword, path)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("antiword: %w", err)
	}
	return out.String(), nil
}
