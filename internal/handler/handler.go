package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"tienda-api/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes an envelope with the given status code.
func writeJSON(w http.ResponseWriter, resp model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	// Headers are already sent at this point, nothing useful to do on error.
	_ = json.NewEncoder(w).Encode(resp)
}

// writeSuccess wraps data in a success envelope.
func writeSuccess(w http.ResponseWriter, message string, status int, data any) {
	writeJSON(w, model.NewSuccessResponse(message, status, data))
}

// writeError wraps an error message in an error envelope.
func writeError(w http.ResponseWriter, message string, status int, data any, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, model.NewErrorResponse(message, status, data))
}

// respondError maps a service error to the error envelope. Validation
// failures carry their field details in the data payload; unknown errors are
// reported as persistence failures without leaking internals.
func respondError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, validationErr.Message, http.StatusBadRequest, validationErr.Fields, logger)
		return
	}

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, domainErr.Message, statusForCode(domainErr.Code), nil, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	writeError(w, "Database query error", http.StatusInternalServerError, nil, logger)
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeInsufficientStock, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeEmptyPurchase, model.ErrCodeDuplicateProduct, model.ErrCodeInvalidLine,
		model.ErrCodeConflict, model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// idFromPath extracts a numeric id from a path like /api/compras/42.
// Returns false when the segment is missing or not a positive integer.
func idFromPath(path, prefix string) (int64, bool) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}

	return id, true
}
