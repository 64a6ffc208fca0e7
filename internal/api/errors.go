package api

import (
	"errors"
	"net/http"

	"docmill/internal/domain"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes. The
// second return reports whether err is a known domain error whose message is
// safe to hand back to the caller.
func httpStatusFromDomainError(err error) (int, bool) {
	var validation *domain.ValidationError
	var tooLarge *domain.PayloadTooLargeError
	var parse *domain.ParseError
	var converter *domain.ConverterError
	var ioErr *domain.IOError

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, true
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, true
	case errors.As(err, &parse):
		return http.StatusInternalServerError, true
	case errors.As(err, &converter):
		return http.StatusInternalServerError, true
	case errors.As(err, &ioErr):
		return http.StatusInternalServerError, true
	default:
		return http.StatusInternalServerError, false
	}
}
