package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bench2012/Esphome-Chatbot/internal/automation"
	"github.com/bench2012/Esphome-Chatbot/internal/roboeyes"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadRequest  = "bad_request"
	CodeNotFound    = "not_found"
	CodeValidation  = "validation_error"
	CodeUnavailable = "unavailable"
	CodeTimeout     = "timeout"
	CodeInternal    = "internal_error"
)

// errLogDisabled is reported by execution endpoints when no database is
// configured.
var errLogDisabled = errors.New("execution log disabled")

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	//nolint:errcheck // client may have gone away
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respond(w, status, ErrorResponse{Status: status, Code: code, Message: message})
}

// classify maps a domain error to a status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, automation.ErrScriptNotFound),
		errors.Is(err, automation.ErrExecutionNotFound),
		errors.Is(err, roboeyes.ErrUnknownComponent):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, automation.ErrInvalidArgs):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, automation.ErrRunTimeout):
		return http.StatusGatewayTimeout, CodeTimeout
	case errors.Is(err, automation.ErrEngineStopped), errors.Is(err, errLogDisabled),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// fail writes err as an ErrorResponse. Internal errors are logged and
// replaced by a generic message.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r),
			"error", err,
		)
		msg = "internal server error"
	}
	respondError(w, status, code, msg)
}
