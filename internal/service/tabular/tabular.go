// Package tabular implements the spreadsheet cleaning pipeline: parse CSV or
// XLSX, normalize cells, drop duplicate rows, and serialize back to CSV.
package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"docmill/internal/domain"
)

// Service cleans uploaded spreadsheets.
type Service struct {
	logger *slog.Logger
}

// NewService creates a tabular cleaning service.
func NewService(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Clean parses the upload by extension, applies the enabled cleaning steps,
// and returns the result as CSV text. CSV inputs tolerate broken rows by
// skipping them; a broken XLSX aborts the request.
func (s *Service) Clean(ctx context.Context, upload domain.Upload, opts domain.CleaningOptions) (*domain.CleanedSheet, error) {
	var (
		header  []string
		rows    [][]string
		skipped int
		err     error
	)
	switch upload.Ext() {
	case ".csv":
		header, rows, skipped, err = readCSV(upload.Data)
	case ".xlsx":
		header, rows, err = readXLSX(upload.Data)
	default:
		return nil, domain.ErrUnsupportedFormat(upload.Ext(), ".csv", ".xlsx")
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows = normalizeWidth(rows, len(header))
	if opts.CleanText {
		for _, row := range rows {
			for j := range row {
				row[j] = CleanCell(row[j])
			}
		}
	}
	before := len(rows)
	if opts.RemoveDuplicates {
		rows = dedupRows(rows)
	}

	out, err := writeCSV(header, rows)
	if err != nil {
		s.logger.Error("could not serialize cleaned sheet", "file", upload.Filename, "error", err)
		return nil, domain.ErrParse("could not serialize the cleaned spreadsheet")
	}

	s.logger.Info("spreadsheet cleaned",
		"file", upload.Filename,
		"rows", len(rows),
		"duplicates_dropped", before-len(rows),
		"rows_skipped", skipped,
	)
	return &domain.CleanedSheet{Output: out}, nil
}

// readCSV parses CSV bytes leniently: rows that fail to parse or carry more
// fields than the header are skipped, shorter rows are padded later.
func readCSV(data []byte) (header []string, rows [][]string, skipped int, err error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err = r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, 0, domain.ErrMalformedSpreadsheet("the file contains no data")
	}
	if err != nil {
		return nil, nil, 0, domain.ErrMalformedSpreadsheet("the first row could not be read as CSV")
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(rec) > len(header) {
			skipped++
			continue
		}
		rows = append(rows, rec)
	}
	return header, rows, skipped, nil
}

// readXLSX parses the first sheet of an XLSX workbook. Any failure aborts:
// unlike CSV there is no meaningful way to skip a broken row.
func readXLSX(data []byte) (header []string, rows [][]string, err error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, domain.ErrMalformedSpreadsheet("the file is not a readable XLSX workbook")
	}
	defer wb.Close() //nolint:errcheck

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, domain.ErrMalformedSpreadsheet("the workbook contains no sheets")
	}
	all, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, domain.ErrMalformedSpreadsheet("the sheet %q could not be read", sheets[0])
	}
	if len(all) == 0 {
		return nil, nil, domain.ErrMalformedSpreadsheet("the sheet contains no data")
	}
	return all[0], all[1:], nil
}

// normalizeWidth pads short rows with empty cells and truncates long ones so
// every row matches the header width.
func normalizeWidth(rows [][]string, width int) [][]string {
	for i, row := range rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		case len(row) > width:
			rows[i] = row[:width]
		}
	}
	return rows
}

func writeCSV(header []string, rows [][]string) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
