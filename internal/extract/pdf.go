package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"code.sajari.com/docconv"
)

// PDFExtractor extracts the text layer of a PDF byte buffer.
type PDFExtractor struct {
	useReadability bool
}

// NewPDFExtractor returns a PDFExtractor. Readability cleanup is off by
// default; scientific PDFs lose section headers under it.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{useReadability: false}
}

// Extract decodes data as a PDF and returns its concatenated page text.
// Returns ErrUnreadableDocument when the buffer is not a valid PDF and
// ErrEmptyText when the PDF has no text layer.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), "application/pdf", e.useReadability)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	text := strings.TrimSpace(res.Body)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}
