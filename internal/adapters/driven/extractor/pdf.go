package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
	"github.com/bhaktikarche/eureka/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PageExtractor = (*PDF)(nil)

// PDF extracts text from PDFs by shelling out to poppler's pdftotext
// and pdfinfo. When the tools are not installed extraction reports
// ErrExtractionUnavailable and callers fall back to estimated pages.
type PDF struct {
	pdftotext string
	pdfinfo   string
}

// NewPDF creates a PDF extractor using the poppler tools from PATH
func NewPDF() *PDF {
	return &PDF{pdftotext: "pdftotext", pdfinfo: "pdfinfo"}
}

// Supports reports whether this extractor handles the mime type
func (p *PDF) Supports(mimeType string) bool {
	return mimeType == "application/pdf"
}

// Extract returns the full text of the PDF
func (p *PDF) Extract(ctx context.Context, path string) (string, error) {
	return p.run(ctx, "-q", path, "-")
}

// PageCount parses the Pages field from pdfinfo output
func (p *PDF) PageCount(ctx context.Context, path string) (int, error) {
	if _, err := exec.LookPath(p.pdfinfo); err != nil {
		return 0, domain.ErrExtractionUnavailable
	}

	out, err := exec.CommandContext(ctx, p.pdfinfo, path).Output()
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w", err)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		count, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
		if err != nil {
			return 0, fmt.Errorf("pdfinfo: bad page count: %w", err)
		}
		return count, nil
	}
	return 0, fmt.Errorf("pdfinfo: no page count for %s", path)
}

// ExtractPage returns the text of one page, 1-based. Pages past the end
// report ErrNotFound.
func (p *PDF) ExtractPage(ctx context.Context, path string, page int) (string, error) {
	count, err := p.PageCount(ctx, path)
	if err != nil {
		return "", err
	}
	if page > count {
		return "", domain.ErrNotFound
	}

	n := strconv.Itoa(page)
	return p.run(ctx, "-q", "-f", n, "-l", n, path, "-")
}

func (p *PDF) run(ctx context.Context, args ...string) (string, error) {
	if _, err := exec.LookPath(p.pdftotext); err != nil {
		return "", domain.ErrExtractionUnavailable
	}

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, p.pdftotext, args...)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return out.String(), nil
}
