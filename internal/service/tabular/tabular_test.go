package tabular

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docmill/internal/domain"
)

func newTestService() *Service {
	return NewService(slog.New(slog.DiscardHandler))
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"email_lowercased", " JEAN@EXAMPLE.COM ", "jean@example.com"},
		{"capitalize_keeps_hyphen_parts", "jean-pierre dupont!!", "Jean-pierre Dupont"},
		{"capitalize_lowercases_rest", "JEAN DUPONT", "Jean Dupont"},
		{"accented_letters_survive", "série à côté", "Série À Côté"},
		{"special_chars_stripped", "hello!!! world###", "Hello World"},
		{"broken_email_dropped", "broken@@mail", ""},
		{"email_with_trailing_text_dropped", "user@mail.com extra", ""},
		{"digits_kept", "42", "42"},
		{"missing_marker_na", "na", ""},
		{"missing_marker_upper", "NULL", ""},
		{"missing_marker_hash", "#N/A", ""},
		{"whitespace_only", "   ", ""},
		{"empty", "", ""},
		{"collapses_inner_whitespace", "marie   curie", "Marie Curie"},
		{"underscore_is_word_char", "user_name", "User_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCell(tt.in))
		})
	}
}

func TestClean_CSV(t *testing.T) {
	svc := newTestService()
	in := "name,email,notes\n" +
		"jean-pierre dupont!!,JEAN@EXAMPLE.COM,na\n" +
		"jean-pierre dupont!!,JEAN@EXAMPLE.COM,na\n" +
		"marie curie,broken@@mail,  vérifié !\n"

	got, err := svc.Clean(context.Background(), domain.Upload{Filename: "contacts.csv", Data: []byte(in)}, domain.DefaultCleaningOptions())
	require.NoError(t, err)

	want := "name,email,notes\n" +
		"Jean-pierre Dupont,jean@example.com,\n" +
		"Marie Curie,,Vérifié\n"
	assert.Equal(t, want, got.Output)
}

func TestClean_CSVSkipsUnparseableRows(t *testing.T) {
	svc := newTestService()
	in := "a,b\n" +
		"1,2,3\n" + // wider than the header
		"only\n" + // narrower: padded
		"x\"y,z\n" + // bare quote: unparseable
		"4,5\n"

	got, err := svc.Clean(context.Background(), domain.Upload{Filename: "rows.csv", Data: []byte(in)}, domain.DefaultCleaningOptions())
	require.NoError(t, err)

	want := "a,b\n" +
		"Only,\n" +
		"4,5\n"
	assert.Equal(t, want, got.Output)
}

func TestClean_CSVOptionsOff(t *testing.T) {
	svc := newTestService()
	in := "a,b\n" +
		"dirty!!,KEEP\n" +
		"dirty!!,KEEP\n"

	got, err := svc.Clean(context.Background(), domain.Upload{Filename: "raw.csv", Data: []byte(in)},
		domain.CleaningOptions{RemoveDuplicates: false, CleanText: false})
	require.NoError(t, err)

	assert.Equal(t, in, got.Output, "with both options off the data round-trips")
}

func TestClean_CSVDedupOnly(t *testing.T) {
	svc := newTestService()
	in := "a,b\n" +
		"x,y\n" +
		"x,y\n" +
		"x,z\n"

	got, err := svc.Clean(context.Background(), domain.Upload{Filename: "dup.csv", Data: []byte(in)},
		domain.CleaningOptions{RemoveDuplicates: true, CleanText: false})
	require.NoError(t, err)

	assert.Equal(t, "a,b\nx,y\nx,z\n", got.Output)
}

func TestClean_CSVHeaderOnly(t *testing.T) {
	svc := newTestService()

	got, err := svc.Clean(context.Background(), domain.Upload{Filename: "empty.csv", Data: []byte("col1,col2\n")}, domain.DefaultCleaningOptions())
	require.NoError(t, err)
	assert.Equal(t, "col1,col2\n", got.Output)
}

func TestClean_CSVEmptyFile(t *testing.T) {
	svc := newTestService()

	_, err := svc.Clean(context.Background(), domain.Upload{Filename: "void.csv", Data: nil}, domain.DefaultCleaningOptions())
	require.Error(t, err)
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestClean_XLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "email"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "  jean dupont "))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "JEAN@EXAMPLE.COM"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "  jean dupont "))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "JEAN@EXAMPLE.COM"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	svc := newTestService()
	got, err := svc.Clean(context.Background(), domain.Upload{Filename: "contacts.xlsx", Data: buf.Bytes()}, domain.DefaultCleaningOptions())
	require.NoError(t, err)

	assert.Equal(t, "name,email\nJean Dupont,jean@example.com\n", got.Output)
}

func TestClean_XLSXMalformed(t *testing.T) {
	svc := newTestService()

	_, err := svc.Clean(context.Background(), domain.Upload{Filename: "broken.xlsx", Data: []byte("this is not a zip archive")}, domain.DefaultCleaningOptions())
	require.Error(t, err)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "XLSX")
}

func TestClean_UnsupportedExtension(t *testing.T) {
	svc := newTestService()

	_, err := svc.Clean(context.Background(), domain.Upload{Filename: "sheet.ods", Data: []byte("x")}, domain.DefaultCleaningOptions())
	require.Error(t, err)
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, ".ods")
}

func TestClean_ContextCanceled(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Clean(ctx, domain.Upload{Filename: "a.csv", Data: []byte("a,b\n1,2\n")}, domain.DefaultCleaningOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
