package web

// errors.go turns service errors into JSON responses.
//
// The technical error is logged with the request ID; the client receives
// the mapped UserMessage and an HTTP status derived from the sentinel in
// the error chain.

import (
	"context"
	"errors"
	"net/http"

	"github.com/JonMunkholm/vetrecords/internal/core"
	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs err and writes its user-facing form with the status
// statusFor picks.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("request error",
			"path", r.URL.Path,
			"method", r.Method,
			"status", status,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	} else {
		logger.Warn("request rejected",
			"path", r.URL.Path,
			"method", r.Method,
			"status", status,
			"error", err.Error(),
			"code", userMsg.Code,
		)
	}

	respondErrorJSON(w, userMsg, status)
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, status int) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// statusFor maps an error chain to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrParse),
		errors.Is(err, core.ErrUnknownFormat),
		errors.Is(err, core.ErrFieldMissing),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrPersistenceValidation),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNoActingUser):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrUnknownKind),
		errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, core.ErrImportBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Request-shape errors raised by the handlers themselves.
var (
	errBadRequest = errors.New("invalid request")
	errTooLarge   = errors.New("file too large")
)
