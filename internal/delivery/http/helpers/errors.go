package helpers

import (
	"errors"
	"net/http"

	"roomreserve/internal/domain"
)

// WriteDomainError maps a domain error to an HTTP status and writes the
// error envelope. It returns the status written so callers can decide
// whether to log (5xx means something unexpected happened).
func WriteDomainError(w http.ResponseWriter, err error) int {
	status, code := statusForError(err)
	WriteJSONError(w, status, code, err.Error())
	return status
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrInsufficientRoster),
		errors.Is(err, domain.ErrNameUnavailable),
		errors.Is(err, domain.ErrSelectionFull),
		errors.Is(err, domain.ErrIncompleteSelection),
		errors.Is(err, domain.ErrAlreadyInProgress),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrUnderflow):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrSubmissionFailed),
		errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, ErrCodeUpstreamError
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}
