package middleware

import (
	"encoding/json"
	"net/http"

	"docmill/internal/domain"
)

// MaxUploadBytes returns an HTTP middleware that caps request body size.
// Requests declaring a larger Content-Length are rejected up front; every
// other body is wrapped with http.MaxBytesReader so chunked uploads and
// clients that lie about their size hit the same ceiling while the handler
// reads the form.
func MaxUploadBytes(limit int64) func(http.Handler) http.Handler {
	message := domain.ErrPayloadTooLarge(limit).Error()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSONError(w, http.StatusRequestEntityTooLarge, message)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSONError emits the error body shared by the limiter middlewares.
func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    code,
		"message": message,
	})
}
