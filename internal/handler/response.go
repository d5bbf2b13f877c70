package handler

// Response helpers shared by every API endpoint. All errors leave this
// service in one shape:
//
//	{"success": false, "error": "duplicate_email", "message": "...", "detail": "..."}
//
// The message is always safe to show; detail is optional and longer. The
// mapping from domain errors to HTTP status codes lives here and only here —
// the service layer never sees a status code.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/learning-waitlist/internal/apperror"
)

// ErrorResponse is the standard error body for all API endpoints.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`            // machine-readable kind, e.g. "invalid_email"
	Message string `json:"message"`          // short human-readable message
	Field   string `json:"field,omitempty"`  // offending form field, validation errors only
	Detail  string `json:"detail,omitempty"` // longer diagnostic/remediation text
}

// writeJSON sends a JSON response. Headers and status must go out before the
// body — once Encode writes, they are frozen.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error onto HTTP and sends the standard body.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		// Untyped error: generic 500, raw cause stays in the logs.
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
		return
	}

	status := http.StatusInternalServerError
	kind := "internal_error"

	switch {
	case errors.Is(err, apperror.ErrMissingField):
		status, kind = http.StatusBadRequest, "missing_required_field"
	case errors.Is(err, apperror.ErrInvalidEmail):
		status, kind = http.StatusBadRequest, "invalid_email"
	case errors.Is(err, apperror.ErrNoChallengeSelected):
		status, kind = http.StatusBadRequest, "no_challenge_selected"
	case errors.Is(err, apperror.ErrMissingOtherDescription):
		status, kind = http.StatusBadRequest, "missing_other_description"
	case errors.Is(err, apperror.ErrDuplicateEmail):
		status, kind = http.StatusConflict, "duplicate_email"
	case errors.Is(err, apperror.ErrStoreNotProvisioned):
		status, kind = http.StatusInternalServerError, "store_not_provisioned"
	case errors.Is(err, apperror.ErrStore):
		status, kind = http.StatusInternalServerError, "store_error"
	case errors.Is(err, apperror.ErrUnavailable):
		status, kind = http.StatusServiceUnavailable, "unavailable"
	}

	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: appErr.Message,
		Field:   appErr.Field,
		Detail:  appErr.Detail,
	})
}
