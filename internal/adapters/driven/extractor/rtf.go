package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// RTF extracts text from RTF files via unrtf
type RTF struct {
	unrtf string
}

// NewRTF creates an RTF extractor using unrtf from PATH
func NewRTF() *RTF {
	return &RTF{unrtf: "unrtf"}
}

// Supports reports whether this extractor handles the mime type
func (r *RTF) Supports(mimeType string) bool {
	return mimeType == "application/rtf" || mimeType == "text/rtf"
}

// Extract returns the document text
func (r *RTF) Extract(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath(r.unrtf); err != nil {
		return "", domain.ErrExtractionUnavailable
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, r.unrtf, "--text", "--quiet", path)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("unrtf: %w", err)
	}
	return out.String(), nil
}
