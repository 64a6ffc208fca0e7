package domain

import "context"

// ExtractionResult is the outcome of a PDF text extraction.
type ExtractionResult struct {
	Text      string `json:"text"`
	Partial   bool   `json:"partial"`
	CharCount int    `json:"charCount"`
}

// PageReader parses document bytes into per-page text.
// Implemented by extract.FitzReader.
type PageReader interface {
	ReadPages(ctx context.Context, data []byte) ([]string, error)
}
