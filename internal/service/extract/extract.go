// Package extract implements the PDF text extraction pipeline: parse the
// document in memory, join per-page text, and cap the result.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gen2brain/go-fitz"

	"docmill/internal/domain"
)

// Service extracts plain text from uploaded PDFs.
type Service struct {
	charCap int
	reader  domain.PageReader
	logger  *slog.Logger
}

// NewService creates an extraction service capping results at charCap characters.
func NewService(charCap int, reader domain.PageReader, logger *slog.Logger) *Service {
	return &Service{charCap: charCap, reader: reader, logger: logger}
}

// Extract parses the uploaded PDF and returns its text, page texts joined by
// newlines, truncated to the service's character cap.
func (s *Service) Extract(ctx context.Context, upload domain.Upload) (*domain.ExtractionResult, error) {
	if upload.Ext() != ".pdf" {
		return nil, domain.ErrUnsupportedFormat(upload.Ext(), ".pdf")
	}

	pages, err := s.reader.ReadPages(ctx, upload.Data)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Error("pdf parse failed", "file", upload.Filename, "error", err)
		return nil, domain.ErrParse("the PDF could not be parsed")
	}

	result := truncate(strings.Join(pages, "\n"), s.charCap)
	s.logger.Info("text extracted",
		"file", upload.Filename,
		"pages", len(pages),
		"chars", result.CharCount,
		"partial", result.Partial,
	)
	return &result, nil
}

// truncate caps text at limit characters. Characters, not bytes: a capped
// result must never split a multi-byte rune.
func truncate(text string, limit int) domain.ExtractionResult {
	runes := []rune(text)
	if len(runes) <= limit {
		return domain.ExtractionResult{Text: text, Partial: false, CharCount: len(runes)}
	}
	return domain.ExtractionResult{Text: string(runes[:limit]), Partial: true, CharCount: limit}
}

// FitzReader reads per-page text through MuPDF.
type FitzReader struct{}

// NewFitzReader returns the MuPDF-backed page reader used in production.
func NewFitzReader() *FitzReader {
	return &FitzReader{}
}

// ReadPages opens the document from memory and collects the text of every
// page, honoring ctx between pages.
func (FitzReader) ReadPages(ctx context.Context, data []byte) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close() //nolint:errcheck

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

var _ domain.PageReader = (*FitzReader)(nil)
