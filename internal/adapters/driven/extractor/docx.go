package extractor

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// Docx extracts text from .docx files by reading word/document.xml
// straight out of the zip container. No external tool needed.
type Docx struct{}

// NewDocx creates a docx extractor
func NewDocx() *Docx {
	return &Docx{}
}

// Supports reports whether this extractor handles the mime type
func (d *Docx) Supports(mimeType string) bool {
	return mimeType == "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Extract returns the document text with paragraphs separated by newlines
func (d *Docx) Extract(ctx context.Context, path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("docx: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("docx: %w", err)
		}
		defer rc.Close()
		return documentText(rc)
	}
	return "", fmt.Errorf("%w: no document.xml in %s", domain.ErrInvalidInput, path)
}

// documentText walks the WordprocessingML token stream, collecting text
// runs and turning paragraph ends into newlines
func documentText(r io.Reader) (string, error) {
	var sb strings.Builder
	dec := xml.NewDecoder(r)

	var inText bool
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("docx: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
