package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmill/internal/domain"
)

// stubReader implements domain.PageReader without fixture PDFs.
type stubReader struct {
	pages []string
	err   error
}

func (s stubReader) ReadPages(ctx context.Context, _ []byte) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.pages, nil
}

func newTestService(charCap int, reader domain.PageReader) *Service {
	return NewService(charCap, reader, slog.New(slog.DiscardHandler))
}

func TestExtract_JoinsPagesWithNewline(t *testing.T) {
	svc := newTestService(100, stubReader{pages: []string{"first page", "second page"}})

	got, err := svc.Extract(context.Background(), domain.Upload{Filename: "doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "first page\nsecond page", got.Text)
	assert.False(t, got.Partial)
	assert.Equal(t, len("first page\nsecond page"), got.CharCount)
}

func TestExtract_TruncatesAtCap(t *testing.T) {
	svc := newTestService(10, stubReader{pages: []string{strings.Repeat("a", 50)}})

	got, err := svc.Extract(context.Background(), domain.Upload{Filename: "doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 10), got.Text)
	assert.True(t, got.Partial)
	assert.Equal(t, 10, got.CharCount)
}

func TestExtract_ExactCapIsNotPartial(t *testing.T) {
	svc := newTestService(5, stubReader{pages: []string{"abcde"}})

	got, err := svc.Extract(context.Background(), domain.Upload{Filename: "doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "abcde", got.Text)
	assert.False(t, got.Partial)
	assert.Equal(t, 5, got.CharCount)
}

func TestExtract_CapCountsRunesNotBytes(t *testing.T) {
	svc := newTestService(4, stubReader{pages: []string{"héllo"}})

	got, err := svc.Extract(context.Background(), domain.Upload{Filename: "doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "héll", got.Text)
	assert.True(t, got.Partial)
	assert.Equal(t, 4, got.CharCount)
	assert.True(t, utf8.ValidString(got.Text), "truncation must not split a rune")
}

func TestExtract_EmptyDocument(t *testing.T) {
	svc := newTestService(10000, stubReader{})

	got, err := svc.Extract(context.Background(), domain.Upload{Filename: "blank.pdf"})
	require.NoError(t, err)
	assert.Empty(t, got.Text)
	assert.False(t, got.Partial)
	assert.Zero(t, got.CharCount)
}

func TestExtract_RejectsNonPDF(t *testing.T) {
	svc := newTestService(10000, stubReader{pages: []string{"x"}})

	_, err := svc.Extract(context.Background(), domain.Upload{Filename: "notes.txt"})
	require.Error(t, err)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, ".txt")
}

func TestExtract_ParseFailureIsParseError(t *testing.T) {
	svc := newTestService(10000, stubReader{err: errors.New("mupdf: cannot recognize format")})

	_, err := svc.Extract(context.Background(), domain.Upload{Filename: "doc.pdf"})
	require.Error(t, err)
	var parse *domain.ParseError
	require.ErrorAs(t, err, &parse)
	assert.NotContains(t, parse.Message, "mupdf", "library detail must not leak")
}

func TestExtract_GarbageBytesFailCleanly(t *testing.T) {
	// Exercises the real MuPDF path with input it cannot open.
	svc := newTestService(10000, NewFitzReader())

	_, err := svc.Extract(context.Background(), domain.Upload{Filename: "junk.pdf", Data: []byte("definitely not a pdf")})
	require.Error(t, err)
	var parse *domain.ParseError
	assert.ErrorAs(t, err, &parse)
}

func TestExtract_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := newTestService(10000, stubReader{pages: []string{"x"}})

	_, err := svc.Extract(ctx, domain.Upload{Filename: "doc.pdf"})
	assert.ErrorIs(t, err, context.Canceled)
}
