// Package api provides the HTTP handlers and router for the document
// transformation endpoints.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gabriel-vasile/mimetype"

	"docmill/internal/domain"
	"docmill/internal/service/compress"
	"docmill/internal/service/extract"
	"docmill/internal/service/tabular"
)

// Handler serves the transformation endpoints.
type Handler struct {
	extract  *extract.Service
	tabular  *tabular.Service
	compress *compress.Service
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required service dependencies.
func NewHandler(extractSvc *extract.Service, tabularSvc *tabular.Service, compressSvc *compress.Service, logger *slog.Logger) *Handler {
	return &Handler{
		extract:  extractSvc,
		tabular:  tabularSvc,
		compress: compressSvc,
		logger:   logger,
	}
}

// HandleHealth serves GET /health.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the JSON error envelope shared by all endpoints.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its HTTP status and writes the error envelope.
// Unknown errors get a generic message so internals never leak.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, known := httpStatusFromDomainError(err)
	message := err.Error()
	if !known {
		h.logger.Error("unhandled error", "path", r.URL.Path, "error", err)
		message = "internal server error"
	} else if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Code: status, Message: message})
}

// formUpload reads the uploaded file from the named multipart form field.
// A body that trips the size cap while being read surfaces as a
// PayloadTooLargeError rather than a missing-file error.
func formUpload(r *http.Request, field string) (domain.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if maxErr := maxBytesError(err); maxErr != nil {
			return domain.Upload{}, domain.ErrPayloadTooLarge(maxErr.Limit)
		}
		return domain.Upload{}, domain.ErrMissingFile(field)
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		if maxErr := maxBytesError(err); maxErr != nil {
			return domain.Upload{}, domain.ErrPayloadTooLarge(maxErr.Limit)
		}
		return domain.Upload{}, domain.ErrIO("the uploaded file could not be read")
	}
	return domain.Upload{Filename: header.Filename, Data: data}, nil
}

func maxBytesError(err error) *http.MaxBytesError {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return maxErr
	}
	return nil
}

// formFlag reads a boolean form field. An absent field keeps the default;
// any value other than "true" disables the behavior.
func formFlag(r *http.Request, field string, def bool) bool {
	v := r.FormValue(field)
	if v == "" {
		return def
	}
	return v == "true"
}

// logUpload records what arrived, with the sniffed content type. The sniff
// is informational only: routing decisions stay on the file extension.
func (h *Handler) logUpload(endpoint string, upload domain.Upload) {
	h.logger.Debug("upload received",
		"endpoint", endpoint,
		"file", upload.Filename,
		"size", len(upload.Data),
		"detected_type", mimetype.Detect(upload.Data).String(),
	)
}
