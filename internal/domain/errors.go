// Package domain defines core types, interfaces, and errors for the document service.
package domain

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// ValidationError indicates invalid caller input (missing file, unsupported
// format, malformed spreadsheet).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PayloadTooLargeError indicates an upload over the global size cap.
type PayloadTooLargeError struct {
	Message string
}

func (e *PayloadTooLargeError) Error() string { return e.Message }

// ParseError indicates a document that could not be parsed or serialized.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// ConverterError indicates the external converter failed or could not be run.
type ConverterError struct {
	Message string
}

func (e *ConverterError) Error() string { return e.Message }

// IOError indicates a scratch-directory read, write, or delete failure.
type IOError struct {
	Message string
}

func (e *IOError) Error() string { return e.Message }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrMissingFile creates a ValidationError for an absent upload field.
func ErrMissingFile(field string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("no file uploaded: form field %q is required", field)}
}

// ErrUnsupportedFormat creates a ValidationError for a file extension the
// route does not accept.
func ErrUnsupportedFormat(got string, want ...string) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf("unsupported file format %q: expected one of %v", got, want)}
}

// ErrMalformedSpreadsheet creates a ValidationError for a workbook that could
// not be opened or read.
func ErrMalformedSpreadsheet(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrPayloadTooLarge creates a PayloadTooLargeError naming the cap.
func ErrPayloadTooLarge(limit int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{Message: fmt.Sprintf("file too large: uploads are limited to %s", humanize.IBytes(uint64(limit)))} //nolint:gosec // limit is validated positive
}

// ErrParse creates a ParseError with a formatted message.
func ErrParse(format string, args ...interface{}) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// ErrConverter creates a ConverterError with a formatted message.
func ErrConverter(format string, args ...interface{}) *ConverterError {
	return &ConverterError{Message: fmt.Sprintf(format, args...)}
}

// ErrIO creates an IOError with a formatted message.
func ErrIO(format string, args ...interface{}) *IOError {
	return &IOError{Message: fmt.Sprintf(format, args...)}
}
